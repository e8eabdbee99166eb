package dyncss

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/dyncss/cssom"
	"github.com/npillmayer/dyncss/cssom/douceuradapter"
	"github.com/npillmayer/dyncss/csstext"
	"github.com/npillmayer/dyncss/style"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sheet is a handle for one dynamically created stylesheet. It owns a
// <style> element, appended to the head section it was constructed
// with, together with the rule list of the element's stylesheet.
//
// Rule order is significant: among rules of equal specificity the later
// one wins the cascade, so insertion positions matter to callers.
//
// A Sheet is usable immediately after construction and stays usable
// after a failed operation; mutations already performed before a
// failure remain in place.
type Sheet struct {
	container *html.Node
	rules     cssom.RuleList
	caps      capabilities
}

// The mutation primitives of a rule list come in inconsistent
// historical spellings. We resolve them once, at construction, instead
// of probing on every call.
type capabilities struct {
	insert cssom.RuleInserter
	add    cssom.LegacyRuleAdder
	del    cssom.RuleDeleter
	remove cssom.LegacyRuleRemover
}

func resolve(rules cssom.RuleList) capabilities {
	var caps capabilities
	caps.insert, _ = rules.(cssom.RuleInserter)
	caps.add, _ = rules.(cssom.LegacyRuleAdder)
	caps.del, _ = rules.(cssom.RuleDeleter)
	caps.remove, _ = rules.(cssom.LegacyRuleRemover)
	return caps
}

// A rule list lacking every insertion primitive forces the degraded
// text-append path: literal CSS text is appended to the container and
// structured indexing is best-effort only.
func (caps capabilities) degraded() bool {
	return caps.insert == nil && caps.add == nil
}

// New creates a stylesheet handle. A fresh <style> element is created,
// given the attributes of attrs, and appended as last child to head;
// the element's stylesheet is a fresh douceur-backed rule list.
//
// The style element always receives a non-empty text node child: some
// engines will not recognize the stylesheet object of an empty style
// element.
//
// attrs may be nil. head is typically the <head> element of a document,
// but any element accepting children will do; see also NewForDocument.
func New(head *html.Node, attrs map[string]string) (*Sheet, error) {
	return NewWithRules(head, attrs, douceuradapter.Empty())
}

// NewWithAttr is a convenience for creating a handle with a single
// container attribute, e.g.
//
//     dyncss.NewWithAttr(head, "media", "screen")
//
func NewWithAttr(head *html.Node, name, value string) (*Sheet, error) {
	return New(head, map[string]string{name: value})
}

// NewWithRules creates a stylesheet handle with a client-provided rule
// list implementation (see interface cssom.RuleList). The capability
// set of rules is resolved here, once.
func NewWithRules(head *html.Node, attrs map[string]string, rules cssom.RuleList) (*Sheet, error) {
	if head == nil {
		return nil, errors.New("cannot attach stylesheet: no head element")
	}
	if rules == nil {
		rules = douceuradapter.Empty()
	}
	container := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     "style",
	}
	container.AppendChild(&html.Node{Type: html.TextNode, Data: " "})
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		container.Attr = append(container.Attr, html.Attribute{Key: name, Val: attrs[name]})
	}
	head.AppendChild(container)
	sheet := &Sheet{
		container: container,
		rules:     rules,
		caps:      resolve(rules),
	}
	if sheet.caps.degraded() {
		tracer().Infof("rule list of type %T supports no insertion primitive, falling back to text mode", rules)
	}
	return sheet, nil
}

// NewForDocument creates a stylesheet handle attached to the <head>
// element of an HTML document. It fails if the document has none.
func NewForDocument(doc *html.Node, attrs map[string]string) (*Sheet, error) {
	head := findElement(atom.Head, doc)
	if head == nil {
		return nil, errors.New("cannot attach stylesheet: document has no head section")
	}
	return New(head, attrs)
}

// Container returns the <style> element owned by this handle.
func (sheet *Sheet) Container() *html.Node {
	return sheet.container
}

// Rules returns the rule list behind this handle.
func (sheet *Sheet) Rules() cssom.RuleList {
	return sheet.rules
}

// Len returns the number of rules currently held.
func (sheet *Sheet) Len() int {
	return sheet.rules.Len()
}

// AddRule inserts a rule "selector { declarations }" at position at.
// If at is omitted or out of range, the rule is appended at the current
// end of the rule list. Positions of rules at or after the insertion
// point shift by one.
//
// Errors from the underlying rule list (e.g. declarations which do not
// parse) propagate unchanged.
func (sheet *Sheet) AddRule(selector string, declarations string, at ...int) error {
	index := sheet.clamp(at)
	switch {
	case sheet.caps.insert != nil:
		return sheet.caps.insert.InsertRule(csstext.RuleText(selector, declarations), index)
	case sheet.caps.add != nil:
		return sheet.caps.add.AddRule(selector, declarations, index)
	}
	// degraded text mode
	tracer().Debugf("appending rule for %q as literal CSS text", selector)
	sheet.container.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: csstext.RuleText(selector, declarations) + "\n",
	})
	return nil
}

// RemoveRule deletes the rule at position index. Positions of
// subsequent rules shift down by one. An out-of-range index is an
// error of the underlying rule list, propagated unchanged.
func (sheet *Sheet) RemoveRule(index int) error {
	switch {
	case sheet.caps.del != nil:
		return sheet.caps.del.DeleteRule(index)
	case sheet.caps.remove != nil:
		return sheet.caps.remove.RemoveRule(index)
	}
	return fmt.Errorf("rule list of type %T supports no removal primitive", sheet.rules)
}

// ClearRules removes all rules, from the highest position down to zero.
// Removing front to back instead would shift positions underneath the
// iteration. Calling ClearRules on an empty rule list is a no-op.
func (sheet *Sheet) ClearRules() error {
	if sheet.caps.degraded() {
		sheet.clearText()
		return nil
	}
	for i := sheet.rules.Len() - 1; i >= 0; i-- {
		if err := sheet.RemoveRule(i); err != nil {
			return err
		}
	}
	return nil
}

// In text mode the rules live in text node children of the container.
// Drop them and restore the initial non-empty text child.
func (sheet *Sheet) clearText() {
	for ch := sheet.container.FirstChild; ch != nil; {
		next := ch.NextSibling
		sheet.container.RemoveChild(ch)
		ch = next
	}
	sheet.container.AppendChild(&html.Node{Type: html.TextNode, Data: " "})
}

// AddCSS adds one rule per selector of css. The declaration text of
// each rule is built from the selector's style block: property names
// are converted from camelCase to kebab-case, and a list-valued
// property contributes one declaration per list entry, in order (see
// style.Block).
//
// Selectors are processed in sorted order. A block containing an
// unusable value fails with a *style.InvalidStyleError naming the
// offending selector; rules for selectors processed earlier remain
// added.
//
// When an explicit position is given together with several selectors,
// every rule is inserted at that same position, each insertion shifting
// its predecessors up. Callers wanting a stable relative order should
// add multi-selector sets without a position.
func (sheet *Sheet) AddCSS(css map[string]style.Block, at ...int) error {
	selectors := make([]string, 0, len(css))
	for selector := range css {
		selectors = append(selectors, selector)
	}
	sort.Strings(selectors)
	for _, selector := range selectors {
		declarations, err := css[selector].DeclarationText()
		if err != nil {
			var invalid *style.InvalidStyleError
			if errors.As(err, &invalid) {
				invalid.Selector = selector
			}
			return err
		}
		if err := sheet.AddRule(selector, declarations, at...); err != nil {
			return err
		}
	}
	return nil
}

// RemoveCSS removes rules by selector text. Without a position it
// removes every rule whose selector text equals selector exactly,
// scanning from the highest position down so that removals cannot
// shift not-yet-visited rules. With a position it removes the rule
// there only if its selector text matches; a mismatch removes nothing
// and is not an error.
func (sheet *Sheet) RemoveCSS(selector string, at ...int) error {
	if len(at) > 0 {
		index := at[0]
		rule := sheet.rules.Rule(index)
		if rule == nil || rule.SelectorText() != selector {
			return nil
		}
		return sheet.RemoveRule(index)
	}
	for i := sheet.rules.Len() - 1; i >= 0; i-- {
		rule := sheet.rules.Rule(i)
		if rule == nil || rule.SelectorText() != selector {
			continue
		}
		if err := sheet.RemoveRule(i); err != nil {
			return err
		}
	}
	return nil
}

// String serializes the stylesheet: the CSS text of every rule in
// position order, each followed by a newline, surrounding whitespace
// trimmed. In degraded text mode the text content of the container is
// returned instead.
func (sheet *Sheet) String() string {
	if sheet.caps.degraded() {
		return strings.TrimSpace(sheet.textContent())
	}
	var b strings.Builder
	for i := 0; i < sheet.rules.Len(); i++ {
		b.WriteString(sheet.rules.Rule(i).CSSText())
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}

func (sheet *Sheet) textContent() string {
	var b strings.Builder
	for ch := sheet.container.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			b.WriteString(ch.Data)
		}
	}
	return b.String()
}

// Detach removes the container element from its parent, destroying the
// stylesheet for the document it was attached to. The handle itself
// stays intact; re-attaching is up to the caller.
func (sheet *Sheet) Detach() {
	if sheet.container.Parent != nil {
		sheet.container.Parent.RemoveChild(sheet.container)
	}
}

// AdoptStyleElements creates handles for the <style> elements already
// present in the head and body sections of a document, in document
// order. The rules of each element are parsed into a douceur-backed
// rule list; the element itself becomes the handle's container.
func AdoptStyleElements(doc *html.Node) ([]*Sheet, error) {
	var sheets []*Sheet
	for _, a := range []atom.Atom{atom.Head, atom.Body} {
		section := findElement(a, doc)
		if section == nil {
			continue
		}
		for ch := section.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.DataAtom != atom.Style {
				continue
			}
			rules, err := douceuradapter.FromStyleElement(ch)
			if err != nil {
				return sheets, err
			}
			sheets = append(sheets, &Sheet{
				container: ch,
				rules:     rules,
				caps:      resolve(rules),
			})
		}
	}
	return sheets, nil
}

// An omitted or out-of-range insertion position appends.
func (sheet *Sheet) clamp(at []int) int {
	n := sheet.rules.Len()
	if len(at) == 0 {
		return n
	}
	if index := at[0]; index >= 0 && index <= n {
		return index
	}
	return n
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	ch := h.FirstChild
	for ch != nil {
		r := findElement(a, ch)
		if r != nil && r.DataAtom == a {
			return r
		}
		ch = ch.NextSibling
	}
	return nil
}
