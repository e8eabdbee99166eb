package cssom

// RuleList is an interface to abstract away a stylesheet-implementation.
// In order to de-couple implementations of CSS-stylesheets from the
// dynamic sheet handle, we introduce an interface for the ordered,
// index-addressable rule collection of one stylesheet. Clients may
// provide a concrete implementation of this interface (e.g., see
// package douceuradapter, which is the default).
//
// Having this interface imposes a performance hit. However, this
// implementation of CSS-styling will never trade modularity and
// clarity for performance. Clients in need for a production grade
// browser engine (where performance is key) should opt for headless
// versions of the main browser projects.
//
// See interface Rule.
type RuleList interface {
	Len() int      // number of rules currently held
	Rule(int) Rule // rule at a given position; nil if out of range
}

// Rule is the type rule lists consist of. Rules are owned by their list
// and addressed by position or by selector text, never by identity.
//
// See interface RuleList.
type Rule interface {
	SelectorText() string    // the prelude / selectors of the rule
	DeclarationText() string // the "property:value;…" body of the rule
	CSSText() string         // the serialized rule, selector and braces included
}

// Historically, stylesheet implementations disagree on the spelling of
// their mutation primitives. We model each spelling as an optional
// capability interface; a handle resolves the capabilities of its rule
// list once, at construction, instead of probing on every call.

// RuleInserter is the current-day insertion primitive: it receives a
// complete serialized rule.
type RuleInserter interface {
	InsertRule(cssText string, index int) error
}

// LegacyRuleAdder is the older addition primitive, with selector and
// declarations passed separately.
type LegacyRuleAdder interface {
	AddRule(selector string, declarations string, index int) error
}

// RuleDeleter is the current-day removal primitive.
type RuleDeleter interface {
	DeleteRule(index int) error
}

// LegacyRuleRemover is the older removal spelling.
type LegacyRuleRemover interface {
	RemoveRule(index int) error
}
