/*
Package douceuradapter is a concrete implementation of interface cssom.RuleList.

It wraps the stylesheet type of the douceur CSS parser and supports the
current-day mutation spellings (insertRule / deleteRule). It is the
default rule list used by dynamic sheet handles.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/dyncss/cssom"
	"github.com/npillmayer/dyncss/csstext"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer will return a tracer. We are tracing to 'dyncss.cssom'
func tracer() tracing.Trace {
	return tracing.Select("dyncss.cssom")
}

// CSSRules is an adapter for interface cssom.RuleList.
// For an explanation of the motivation behind this design, please refer
// to documentation for interface cssom.RuleList.
type CSSRules struct {
	css css.Stylesheet
}

// Wrap a douceur.css.Stylesheet into CSSRules.
// The stylesheet is now managed by the wrapper.
func Wrap(css *css.Stylesheet) *CSSRules {
	rules := &CSSRules{*css}
	return rules
}

// Empty creates a rule list without any rules.
func Empty() *CSSRules {
	return &CSSRules{}
}

// Parse CSS text into a fresh rule list.
func Parse(text string) (*CSSRules, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return Wrap(sheet), nil
}

// Len returns the number of rules currently held.
//
// Interface cssom.RuleList
func (rules *CSSRules) Len() int {
	return len(rules.css.Rules)
}

// Rule returns the rule at a given position, or nil if index is out of range.
//
// Interface cssom.RuleList
func (rules *CSSRules) Rule(index int) cssom.Rule {
	if index < 0 || index >= len(rules.css.Rules) {
		return nil
	}
	return Rule(*rules.css.Rules[index])
}

// InsertRule parses a serialized rule and splices it into the list at
// index. index has to be in the range 0 … Len(); any other index is an
// error, as is rule text which does not parse to at least one rule.
//
// Interface cssom.RuleInserter
func (rules *CSSRules) InsertRule(cssText string, index int) error {
	if index < 0 || index > len(rules.css.Rules) {
		return fmt.Errorf("insertRule: index %d out of range [0…%d]", index, len(rules.css.Rules))
	}
	sheet, err := parser.Parse(cssText)
	if err != nil {
		return err
	}
	if len(sheet.Rules) == 0 {
		return fmt.Errorf("insertRule: no rule found in %q", cssText)
	}
	tracer().Debugf("inserting %d rule(s) at position %d", len(sheet.Rules), index)
	tail := rules.css.Rules[index:]
	head := rules.css.Rules[:index:index]
	rules.css.Rules = append(append(head, sheet.Rules...), tail...)
	return nil
}

// DeleteRule removes the rule at index. An out-of-range index is an error.
//
// Interface cssom.RuleDeleter
func (rules *CSSRules) DeleteRule(index int) error {
	if index < 0 || index >= len(rules.css.Rules) {
		return fmt.Errorf("deleteRule: index %d out of range [0…%d)", index, len(rules.css.Rules))
	}
	rules.css.Rules = append(rules.css.Rules[:index], rules.css.Rules[index+1:]...)
	return nil
}

var _ cssom.RuleList = &CSSRules{}
var _ cssom.RuleInserter = &CSSRules{}
var _ cssom.RuleDeleter = &CSSRules{}

// Rule is an adapter for interface cssom.Rule.
type Rule css.Rule

// SelectorText returns the prelude / selectors of the rule.
func (r Rule) SelectorText() string {
	return strings.TrimSpace(r.Prelude)
}

// DeclarationText returns the "property:value;…" body of the rule.
func (r Rule) DeclarationText() string {
	decl := r.Declarations
	segs := make([]string, 0, len(decl))
	for _, d := range decl {
		segs = append(segs, d.String())
	}
	return strings.Join(segs, " ")
}

// CSSText returns the serialized rule, selector and braces included.
func (r Rule) CSSText() string {
	return csstext.RuleText(r.SelectorText(), r.DeclarationText())
}

var _ cssom.Rule = Rule{}

// --- Extracting styles from a DOM ------------------------------------------

// FromStyleElement parses the text content of a <style> element into a
// rule list.
func FromStyleElement(elem *html.Node) (*CSSRules, error) {
	var text strings.Builder
	for ch := elem.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			text.WriteString(ch.Data)
		}
	}
	return Parse(text.String())
}

// ExtractStyleElements visits <head> and <body> elements in an HTML parse
// tree and searches for embedded <style>s. It returns the content of
// style-elements as rule lists.
func ExtractStyleElements(htmldoc *html.Node) []*CSSRules {
	var rules []*CSSRules
	for _, a := range []atom.Atom{atom.Head, atom.Body} {
		section := findElement(a, htmldoc)
		if section == nil {
			continue
		}
		for ch := section.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.DataAtom != atom.Style {
				continue
			}
			r, err := FromStyleElement(ch)
			if err != nil {
				break
			}
			rules = append(rules, r)
		}
	}
	return rules
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
