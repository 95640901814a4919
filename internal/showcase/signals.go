package showcase

import (
	"strconv"

	"github.com/go-drift/tether/pkg/bind"
	"github.com/go-drift/tether/pkg/core"
	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/proxy"
)

// Themes understood by SignalsDemo.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var themeStyles = map[string]string{
	ThemeLight: "background-color: #fff; color: #000",
	ThemeDark:  "background-color: #333; color: #fff",
}

// SignalsDemo drives fixed elements from two signals.
type SignalsDemo struct {
	Count *core.Signal[int]
	Theme *core.Signal[string]
}

// NewSignalsDemo returns the demo with a zero count and the light theme.
func NewSignalsDemo() *SignalsDemo {
	return &SignalsDemo{
		Count: core.NewSignal(0),
		Theme: core.NewSignal(ThemeLight),
	}
}

// Setup subscribes the page elements and attaches the button listeners.
func (s *SignalsDemo) Setup(doc host.Document, reg *proxy.Registry) error {
	bind.Signal(doc, s.Count, SignalCount, "")
	s.Count.Subscribe(func(v int) {
		setProperty(doc, SignalDouble, "innerText", strconv.Itoa(v*2))
	})
	s.Theme.Subscribe(func(v string) {
		setProperty(doc, SignalCard, "style", themeStyles[v])
	})

	if err := listen(doc, reg, SignalInc, "click", s.Increment); err != nil {
		return err
	}
	return listen(doc, reg, SignalTheme, "click", s.ToggleTheme)
}

// Increment adds one to Count.
func (s *SignalsDemo) Increment(host.Event) {
	s.Count.Update(func(v int) int { return v + 1 })
}

// ToggleTheme flips Theme between light and dark.
func (s *SignalsDemo) ToggleTheme(host.Event) {
	if s.Theme.Value() == ThemeLight {
		s.Theme.Set(ThemeDark)
		return
	}
	s.Theme.Set(ThemeLight)
}
