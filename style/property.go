package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

// tracer will return a tracer. We are tracing to 'dyncss.style'
func tracer() tracing.Trace {
	return tracing.Select("dyncss.style")
}

// Property is a raw value for a CSS property. For example, with
//
//     color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient type conversion functions and other helpers.
type Property string

func (p Property) String() string {
	return string(p)
}

// --- Dimension valued properties -------------------------------------------

// FromDimen converts a dimension to a point-valued CSS property, e.g.
//
//     FromDimen(10 * dimen.PT)   ⇒   "10pt"
//
func FromDimen(d dimen.DU) Property {
	pts := float64(d) / float64(dimen.PT)
	return Property(fmt.Sprintf("%gpt", pts))
}

// FromPercent converts a percentage to a CSS property value.
func FromPercent(p percent.Percent) Property {
	return Property(p.String())
}
