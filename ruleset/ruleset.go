/*
Package ruleset loads declarative CSS rule bundles from YAML and applies
them to a dynamic stylesheet.

A bundle is a sequence of selector/props pairs:

    - selector: ".header"
      props:
        backgroundColor: "#fafafa"
        display: ["-webkit-box", "flex"]
    - selector: ".header h1"
      props:
        margin: 0

Sequence order is kept: rules are appended to the sheet in document
order, so a bundle controls its own cascade precedence.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ruleset

import (
	"fmt"
	"io"

	"github.com/npillmayer/dyncss"
	"github.com/npillmayer/dyncss/style"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer will return a tracer. We are tracing to 'dyncss.ruleset'
func tracer() tracing.Trace {
	return tracing.Select("dyncss.ruleset")
}

// Rule is one selector/props pair of a bundle.
type Rule struct {
	Selector string                 `yaml:"selector"`
	Props    map[string]interface{} `yaml:"props"`
}

// RuleSet is an ordered bundle of rules.
type RuleSet []Rule

// Load reads a YAML bundle.
func Load(r io.Reader) (RuleSet, error) {
	var set RuleSet
	if err := yaml.NewDecoder(r).Decode(&set); err != nil {
		return nil, err
	}
	tracer().Debugf("loaded rule set with %d rule(s)", len(set))
	return set, nil
}

// Parse reads a YAML bundle from a byte slice.
func Parse(data []byte) (RuleSet, error) {
	var set RuleSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	return set, nil
}

// ApplyTo appends the rules of the bundle to a sheet, in bundle order.
// On failure, rules applied before the offending one remain on the
// sheet.
func (set RuleSet) ApplyTo(sheet *dyncss.Sheet) error {
	for _, rule := range set {
		block, err := rule.block()
		if err != nil {
			return err
		}
		if err := sheet.AddCSS(map[string]style.Block{rule.Selector: block}); err != nil {
			return err
		}
	}
	return nil
}

// YAML scalars arrive as interface{} values; fold them into the value
// shapes style.Block accepts.
func (rule Rule) block() (style.Block, error) {
	block := make(style.Block, len(rule.Props))
	for name, value := range rule.Props {
		switch v := value.(type) {
		case []interface{}:
			vals := make([]string, 0, len(v))
			for _, entry := range v {
				s, err := scalar(entry)
				if err != nil {
					return nil, &style.InvalidStyleError{Selector: rule.Selector, Property: name, Value: entry}
				}
				vals = append(vals, s)
			}
			block[name] = vals
		default:
			s, err := scalar(v)
			if err != nil {
				return nil, &style.InvalidStyleError{Selector: rule.Selector, Property: name, Value: v}
			}
			block[name] = s
		}
	}
	return block, nil
}

func scalar(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int, int64, float64, bool:
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("not a scalar: %v", value)
}
