/*
Package dyncss manages dynamically created CSS stylesheets for HTML DOMs.

Status

Early draft—API may change frequently. Please stay patient.

Overview

Host applications sometimes need to create and mutate CSS rules at
runtime, e.g. for theming or for injecting presentation into documents
they did not author. This package
provides a handle type, Sheet, which owns one dynamically created
<style> element and exposes normalized operations to add, remove,
bulk-set, bulk-clear, and serialize the rules of the element's
stylesheet.

DOM trees are those of golang.org/x/net/html. The stylesheet behind a
Sheet is an implementation of interface cssom.RuleList; stylesheet
implementations historically disagree on the spelling of their mutation
primitives, so the handle resolves the capability set of its rule list
once at construction and dispatches accordingly (see package cssom).
The default rule list is backed by the douceur CSS parser (package
cssom/douceuradapter); hosts with their own stylesheet machinery
inject it through NewWithRules.

This package deliberately stops short of styling semantics. There is no
selector matching and no cascade computation here; it is plumbing for
rule lists, nothing more.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dyncss

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'dyncss.sheet'
func tracer() tracing.Trace {
	return tracing.Select("dyncss.sheet")
}
