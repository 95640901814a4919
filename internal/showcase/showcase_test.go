package showcase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/tether/pkg/errors"
	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/host/htmldom"
	"github.com/go-drift/tether/pkg/proxy"
)

func mount(t *testing.T) (*htmldom.Document, *proxy.Registry, *Showcase) {
	t.Helper()
	doc, err := htmldom.Parse(strings.NewReader(Page))
	require.NoError(t, err)
	reg := proxy.NewRegistry()
	s, err := Mount(doc, reg)
	require.NoError(t, err)
	return doc, reg, s
}

func click(t *testing.T, doc *htmldom.Document, xpath string) {
	t.Helper()
	els, err := doc.Query(xpath)
	require.NoError(t, err)
	require.Len(t, els, 1, xpath)
	ran, err := doc.Dispatch(els[0], "click")
	require.NoError(t, err)
	require.Equal(t, 1, ran)
}

func text(doc *htmldom.Document, id string) string {
	return doc.GetElementByID(id).(*htmldom.Element).Text()
}

func TestCounter(t *testing.T) {
	doc, reg, s := mount(t)

	assert.Equal(t,
		`<section id="vdom-root"><div class="card"><h2>Counter</h2><p>Count: 0</p><button>Increment</button><button>Reset</button></div></section>`,
		doc.OuterHTML(doc.GetElementByID(CounterRoot)))

	// Two counter handlers, two signal buttons, two observer listeners.
	assert.Equal(t, 6, reg.Len())

	increment := `//section[@id="vdom-root"]//button[text()="Increment"]`
	click(t, doc, increment)
	click(t, doc, increment)
	assert.Equal(t, 2, s.Counter.Count())
	assert.Contains(t, doc.OuterHTML(doc.GetElementByID(CounterRoot)), "<p>Count: 2</p>")
	assert.Equal(t, 10, reg.Len(), "every render creates fresh proxies")

	click(t, doc, `//section[@id="vdom-root"]//button[text()="Reset"]`)
	assert.Zero(t, s.Counter.Count())
	assert.Contains(t, doc.OuterHTML(doc.GetElementByID(CounterRoot)), "<p>Count: 0</p>")
}

func TestSignals(t *testing.T) {
	doc, _, s := mount(t)

	assert.Equal(t, "0", text(doc, SignalCount))
	assert.Equal(t, "0", text(doc, SignalDouble))
	style, _ := doc.GetElementByID(SignalCard).GetAttribute("style")
	assert.Equal(t, themeStyles[ThemeLight], style)

	click(t, doc, `//button[@id="sig-inc"]`)
	click(t, doc, `//button[@id="sig-inc"]`)
	assert.Equal(t, 2, s.Signals.Count.Value())
	assert.Equal(t, "2", text(doc, SignalCount))
	assert.Equal(t, "4", text(doc, SignalDouble))

	click(t, doc, `//button[@id="sig-theme"]`)
	assert.Equal(t, ThemeDark, s.Signals.Theme.Value())
	style, _ = doc.GetElementByID(SignalCard).GetAttribute("style")
	assert.Equal(t, themeStyles[ThemeDark], style)

	click(t, doc, `//button[@id="sig-theme"]`)
	assert.Equal(t, ThemeLight, s.Signals.Theme.Value())
}

func TestObserver(t *testing.T) {
	doc, _, s := mount(t)

	assert.Equal(t, "0", text(doc, ObserverCount))
	assert.Equal(t, "Go Developer", text(doc, ObserverName))

	click(t, doc, `//button[@id="obs-inc"]`)
	assert.Equal(t, 1, s.Observer.Store.Snapshot().Count)
	assert.Equal(t, "1", text(doc, ObserverCount))
	title, _ := doc.GetElementByID(ObserverBadge).GetAttribute("title")
	assert.Equal(t, "1", title)

	input := doc.GetElementByID(ObserverInput)
	require.NoError(t, input.SetProperty("value", "Gopher"))
	ran, err := doc.Dispatch(input, "input")
	require.NoError(t, err)
	assert.Equal(t, 1, ran)
	assert.Equal(t, "Gopher", text(doc, ObserverName))
}

func TestMount_NoCounterContainer(t *testing.T) {
	doc := htmldom.New()
	reg := proxy.NewRegistry()

	_, err := Mount(doc, reg)

	require.Error(t, err, "the counter has no container to patch")
	assert.Equal(t, 2, reg.Len(), "the counter's handlers are registered before the container check")
}

// readOnlyDoc resolves only the given id, to an element that rejects writes.
type readOnlyDoc struct {
	host.Document
	id string
}

func (d readOnlyDoc) GetElementByID(id string) host.Element {
	if id != d.id {
		return nil
	}
	return readOnlyElement{}
}

type readOnlyElement struct {
	host.Element
}

func (readOnlyElement) SetProperty(string, string) error { return host.ErrForeignNode }

func TestSignals_WriteFailurePanics(t *testing.T) {
	doc := readOnlyDoc{Document: htmldom.New(), id: SignalDouble}

	defer func() {
		err, ok := recover().(*errors.HostError)
		require.True(t, ok, "expected a *errors.HostError panic")
		assert.Equal(t, "showcase.SetProperty", err.Op)
		assert.Equal(t, SignalDouble, err.Target)
		assert.ErrorIs(t, err, host.ErrForeignNode)
	}()
	NewSignalsDemo().Setup(doc, proxy.NewRegistry())
}
