package cmd

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/go-drift/tether/internal/showcase"
	"github.com/go-drift/tether/pkg/host/htmldom"
	"github.com/go-drift/tether/pkg/proxy"
	"github.com/go-drift/tether/pkg/vdom"
)

func init() {
	RegisterCommand(&Command{
		Name:  "showcase",
		Short: "Mount the demo applications",
		Long: `Mount the counter, signals and observer demos into an in-memory page,
optionally click elements, and print the page.

Each -click takes an XPath expression; the first matching element receives
a click event. Clicks run in the order given.

Examples:
  tether showcase
  tether showcase -click '//button[@id="sig-inc"]' -click '//button[@id="sig-theme"]'
  tether showcase -click '//section[@id="vdom-root"]//button[text()="Increment"]'`,
		Usage: "tether showcase [-click xpath]... [-dir dir]",
		Run:   runShowcase,
	})
}

// stringList collects repeated flag values.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runShowcase(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("showcase", flag.ContinueOnError)
	fs.SetOutput(out)
	var clicks stringList
	fs.Var(&clicks, "click", "XPath of an element to click (repeatable)")
	dir := fs.String("dir", ".", "project directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, logger, err := loadProject(*dir)
	if err != nil {
		return err
	}

	doc, err := htmldom.Parse(strings.NewReader(showcase.Page))
	if err != nil {
		return err
	}
	proxies := proxy.NewRegistry()
	if _, err := showcase.Mount(doc, proxies, vdom.WithLogger(logger)); err != nil {
		return err
	}

	for _, xpath := range clicks {
		els, err := doc.Query(xpath)
		if err != nil {
			return err
		}
		if len(els) == 0 {
			return fmt.Errorf("no element matches %s", xpath)
		}
		ran, err := doc.Dispatch(els[0], "click")
		if err != nil {
			return err
		}
		logger.Debug("clicked", "xpath", xpath, "listeners", ran)
	}

	if err := doc.Render(out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out)
	return err
}
