package cmd

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-drift/tether/internal/config"
	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/host/htmldom"
	"github.com/go-drift/tether/pkg/host/jsdom"
	"github.com/go-drift/tether/pkg/logging"
	"github.com/go-drift/tether/pkg/observability"
	"github.com/go-drift/tether/pkg/proxy"
	"github.com/go-drift/tether/pkg/vdom"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a tree description",
		Long: `Render a YAML tree description into a host document and print it.

The description is a scalar (a text node) or a mapping with "tag",
optional "props" and optional "children". Event properties name one of
the built-in handlers: "log" logs the event, "noop" does nothing.

Hosts:
  htmldom   in-memory HTML document (default); prints the whole page
  jsdom     document inside an embedded JavaScript runtime; prints <body>

Defaults for -container and the log level come from tether.yaml in the
project directory.

Examples:
  tether render -f tree.yaml
  tether render -f tree.yaml -page index.html -container root
  cat tree.yaml | tether render -f - -host jsdom
  tether render -f tree.yaml -metrics render.prom`,
		Usage: "tether render -f <file|-> [-page file] [-container id] [-host htmldom|jsdom] [-metrics file] [-dir dir]",
		Run:   runRender,
	})
}

func runRender(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(out)
	file := fs.String("f", "", "tree description file, or - for stdin")
	page := fs.String("page", "", "HTML page to render into (htmldom only)")
	container := fs.String("container", "", "container element id")
	hostName := fs.String("host", "htmldom", "host document: htmldom or jsdom")
	metricsFile := fs.String("metrics", "", "write Prometheus metrics to this file")
	dir := fs.String("dir", ".", "project directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("a tree description is required\n\nUsage: tether render -f <file|->")
	}

	cfg, logger, err := loadProject(*dir)
	if err != nil {
		return err
	}
	if *container == "" {
		*container = cfg.Container
	}

	data, err := readInput(*file)
	if err != nil {
		return err
	}
	tree, err := vdom.Decode(data, builtinHandlers(logger))
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	proxies := proxy.NewRegistry()
	metrics, err := observability.NewMetrics(registry, proxies)
	if err != nil {
		return err
	}
	opts := []vdom.Option{vdom.WithRegistry(proxies), vdom.WithLogger(logger), vdom.WithMetrics(metrics)}

	switch *hostName {
	case "htmldom":
		err = renderHTML(out, tree, *page, *container, opts)
	case "jsdom":
		if *page != "" {
			return fmt.Errorf("-page is only supported with -host htmldom")
		}
		err = renderJS(out, tree, *container, logger, opts)
	default:
		return fmt.Errorf("unknown host %q (use htmldom or jsdom)", *hostName)
	}
	if err != nil {
		return err
	}

	logger.Info("rendered", "app", cfg.AppName, "host", *hostName, "container", *container, "proxies", proxies.Len())

	if *metricsFile != "" {
		if err := prometheus.WriteToTextfile(*metricsFile, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func renderHTML(out io.Writer, tree vdom.Node, page, container string, opts []vdom.Option) error {
	var doc *htmldom.Document
	if page != "" {
		f, err := os.Open(page)
		if err != nil {
			return fmt.Errorf("failed to open page: %w", err)
		}
		defer f.Close()
		if doc, err = htmldom.Parse(f); err != nil {
			return err
		}
	} else {
		doc = htmldom.New()
		if _, err := doc.AppendContainer(container); err != nil {
			return err
		}
	}

	if err := vdom.NewRenderer(doc, container, opts...).Patch(tree); err != nil {
		return err
	}
	if err := doc.Render(out); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out)
	return err
}

func renderJS(out io.Writer, tree vdom.Node, container string, logger *slog.Logger, opts []vdom.Option) error {
	doc, err := jsdom.New(jsdom.WithContainer(container), jsdom.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := vdom.NewRenderer(doc, container, opts...).Patch(tree); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, doc.OuterHTML(doc.Body()))
	return err
}

// loadProject resolves tether.yaml from dir and applies its log level
// unless --log-level was given.
func loadProject(dir string) (*config.Resolved, *slog.Logger, error) {
	root, err := config.FindProjectRoot(dir)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if !logLevelSet {
		logging.SetDefault(logging.New(cfg.LogLevel))
	}
	return cfg, logging.Default(), nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func builtinHandlers(logger *slog.Logger) vdom.Handlers {
	return vdom.Handlers{
		"log": func(ev host.Event) {
			logger.Info("event", "type", ev.Type)
		},
		"noop": func(host.Event) {},
	}
}
