package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/dyncss/csstext"
)

// Block is a set of style properties for a single selector, keyed by
// property name. Property names may be given in camelCase ("backgroundSize")
// or in kebab-case ("background-size"); camelCase names are converted
// during serialization.
//
// A property value is either a single value (string or Property), or an
// ordered list of values ([]string or []Property). A list produces one
// declaration per entry under the same property name, in list order.
// Browsers pick the last declaration they understand, which is the usual
// idiom for vendor-prefixed fallbacks:
//
//     style.Block{"display": []string{"-webkit-box", "flex"}}
//
type Block map[string]interface{}

// InvalidStyleError flags a property value of an unsupported type inside
// a Block. Selector is empty unless the block was processed as part of a
// multi-selector operation.
type InvalidStyleError struct {
	Selector string
	Property string
	Value    interface{}
}

func (e *InvalidStyleError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("invalid style value %v (%T) for property %q", e.Value, e.Value, e.Property)
	}
	return fmt.Sprintf("invalid style value %v (%T) for property %q of selector %q",
		e.Value, e.Value, e.Property, e.Selector)
}

// DeclarationText serializes a block into the declaration part of a CSS
// rule, i.e. the "property:value;…" text between the braces. Property
// names are serialized in sorted order to keep output deterministic
// (Go maps do not preserve insertion order).
//
// DeclarationText will fail with an *InvalidStyleError on the first
// property value which is neither a (list of) string nor a (list of)
// Property.
func (b Block) DeclarationText() (string, error) {
	keys := make([]string, 0, len(b))
	for key := range b {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var text strings.Builder
	for _, key := range keys {
		name := csstext.CamelToKebab(key)
		switch value := b[key].(type) {
		case string:
			writeDecl(&text, name, value)
		case Property:
			writeDecl(&text, name, string(value))
		case []string:
			for _, v := range value {
				writeDecl(&text, name, v)
			}
		case []Property:
			for _, v := range value {
				writeDecl(&text, name, string(v))
			}
		default:
			tracer().Debugf("style block value of unusable type %T", value)
			return "", &InvalidStyleError{Property: key, Value: value}
		}
	}
	return text.String(), nil
}

func writeDecl(b *strings.Builder, name, value string) {
	b.WriteString(name)
	b.WriteByte(':')
	b.WriteString(value)
	b.WriteByte(';')
}
