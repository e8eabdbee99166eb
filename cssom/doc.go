/*
Package cssom provides interface types for dynamic CSS stylesheets.

Status

This is a very first draft. It is unstable and the API will change without
notice. Please be patient.

Overview

CSSOM is the "CSS Object Model", similar to the DOM for HTML. Stylesheet
implementations have accumulated inconsistent historical spellings for
their rule-mutation primitives (insertRule vs. addRule, deleteRule vs.
removeRule). This package describes a rule list and its rules as narrow
interfaces, and each mutation spelling as an optional capability
interface. The dynamic sheet handle in the module root resolves the
capability set of its rule list once, at construction time.

Concrete implementations may be found in sub-packages; douceuradapter
wraps the stylesheet type of the douceur CSS parser and is the default.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom
