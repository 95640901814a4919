package testing

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/go-drift/tether/pkg/host/htmldom"
)

// Finder locates elements in the mounted tree.
type Finder interface {
	// Evaluate returns all matching elements under root (depth-first pre-order).
	Evaluate(root *htmldom.Element) []*htmldom.Element
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	elements []*htmldom.Element
	finder   Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *htmldom.Element {
	if len(r.elements) == 0 {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder found no elements: %s", desc))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *htmldom.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *htmldom.Element {
	if index < 0 || index >= len(r.elements) {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.elements), desc))
	}
	return r.elements[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*htmldom.Element {
	return r.elements
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.elements)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.elements) > 0
}

// Text returns the text content of the first match. Panics if no matches.
func (r FinderResult) Text() string {
	return r.First().Text()
}

// --- Concrete finders ---

type tagFinder struct {
	tag string
}

func (f *tagFinder) Evaluate(root *htmldom.Element) []*htmldom.Element {
	return collectMatches(root, func(e *htmldom.Element) bool {
		return e.TagName() == f.tag
	})
}

func (f *tagFinder) Description() string {
	return fmt.Sprintf("ByTag(%q)", f.tag)
}

// ByTag returns a finder that matches elements by tag name.
func ByTag(tag string) Finder {
	return &tagFinder{tag: strings.ToLower(tag)}
}

// textFinder matches elements whose own text equals text.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root *htmldom.Element) []*htmldom.Element {
	return collectMatches(root, func(e *htmldom.Element) bool {
		return ownText(e) == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches elements whose direct text children,
// concatenated, equal text. Text inside nested elements does not count, so
// a wrapper is not matched together with the element that holds the text.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root *htmldom.Element) []*htmldom.Element {
	return collectMatches(root, func(e *htmldom.Element) bool {
		own := ownText(e)
		return own != "" && strings.Contains(own, f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches elements whose own text
// contains substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

// attrFinder matches elements carrying an attribute, optionally with a value.
type attrFinder struct {
	name  string
	value *string
}

func (f *attrFinder) Evaluate(root *htmldom.Element) []*htmldom.Element {
	return collectMatches(root, func(e *htmldom.Element) bool {
		v, ok := e.GetAttribute(f.name)
		if !ok {
			return false
		}
		return f.value == nil || v == *f.value
	})
}

func (f *attrFinder) Description() string {
	if f.value == nil {
		return fmt.Sprintf("ByAttr(%q)", f.name)
	}
	return fmt.Sprintf("ByAttr(%q, %q)", f.name, *f.value)
}

// ByAttr returns a finder that matches elements whose attribute name equals
// value.
func ByAttr(name, value string) Finder {
	return &attrFinder{name: name, value: &value}
}

// HasAttr returns a finder that matches elements carrying attribute name.
func HasAttr(name string) Finder {
	return &attrFinder{name: name}
}

// ByID returns a finder that matches the element with the given id.
func ByID(id string) Finder {
	return ByAttr("id", id)
}

type xpathFinder struct {
	expr string
}

func (f *xpathFinder) Evaluate(root *htmldom.Element) []*htmldom.Element {
	nodes, err := htmlquery.QueryAll(root.Node(), f.expr)
	if err != nil {
		return nil
	}
	doc := root.Document().(*htmldom.Document)
	var results []*htmldom.Element
	for _, n := range nodes {
		if el := doc.ElementFor(n); el != nil {
			results = append(results, el)
		}
	}
	return results
}

func (f *xpathFinder) Description() string {
	return fmt.Sprintf("ByXPath(%q)", f.expr)
}

// ByXPath returns a finder that evaluates an XPath expression relative to
// the root. An invalid expression matches nothing.
func ByXPath(expr string) Finder {
	return &xpathFinder{expr: expr}
}

// predicateFinder matches elements satisfying a predicate.
type predicateFinder struct {
	fn   func(*htmldom.Element) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *htmldom.Element) []*htmldom.Element {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches elements satisfying fn.
func ByPredicate(fn func(*htmldom.Element) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds elements matching 'matching' that are descendants
// of elements matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *htmldom.Element) []*htmldom.Element {
	ancestors := f.of.Evaluate(root)
	if len(ancestors) == 0 {
		return nil
	}
	var results []*htmldom.Element
	seen := make(map[*htmldom.Element]bool)
	for _, ancestor := range ancestors {
		// Search within each ancestor's subtree (skip the ancestor itself)
		for _, child := range childElements(ancestor) {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches elements satisfying 'matching'
// that are descendants of elements matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

func ownText(e *htmldom.Element) string {
	var sb strings.Builder
	for c := e.Node().FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func childElements(e *htmldom.Element) []*htmldom.Element {
	var out []*htmldom.Element
	for _, c := range e.Children() {
		if el, ok := c.(*htmldom.Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// collectMatches performs depth-first pre-order traversal, collecting
// elements that satisfy the predicate.
func collectMatches(root *htmldom.Element, predicate func(*htmldom.Element) bool) []*htmldom.Element {
	var results []*htmldom.Element
	walkTree(root, func(e *htmldom.Element) bool {
		if predicate(e) {
			results = append(results, e)
		}
		return true
	})
	return results
}

// walkTree performs a depth-first pre-order traversal of the element tree.
// The visitor returns false to stop traversal.
func walkTree(root *htmldom.Element, visitor func(*htmldom.Element) bool) bool {
	if !visitor(root) {
		return false
	}
	for _, child := range childElements(root) {
		if !walkTree(child, visitor) {
			return false
		}
	}
	return true
}
