package dyncss_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/dyncss"
	"github.com/npillmayer/dyncss/cssom"
	"github.com/npillmayer/dyncss/csstext"
	"github.com/npillmayer/dyncss/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func parseDoc(t *testing.T) *html.Node {
	doc, err := html.Parse(strings.NewReader("<html><head></head><body><p>hi</p></body></html>"))
	require.NoError(t, err)
	return doc
}

func newSheet(t *testing.T) *dyncss.Sheet {
	sheet, err := dyncss.NewForDocument(parseDoc(t), nil)
	require.NoError(t, err)
	return sheet
}

func selectors(sheet *dyncss.Sheet) []string {
	sels := make([]string, 0, sheet.Len())
	for i := 0; i < sheet.Len(); i++ {
		sels = append(sels, sheet.Rules().Rule(i).SelectorText())
	}
	return sels
}

func TestNewAttachesContainer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	doc := parseDoc(t)
	sheet, err := dyncss.NewForDocument(doc, map[string]string{"media": "screen"})
	require.NoError(t, err)
	container := sheet.Container()
	if container.Parent == nil || container.Parent.DataAtom != atom.Head {
		t.Error("expected container to be attached to the head section, isn't")
	}
	if container.FirstChild == nil || container.FirstChild.Type != html.TextNode ||
		container.FirstChild.Data == "" {
		t.Error("expected container to carry a non-empty text child, doesn't")
	}
}

func TestNewWithAttr(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	doc := parseDoc(t)
	head := doc.FirstChild.FirstChild // html > head
	require.Equal(t, atom.Head, head.DataAtom)
	sheet, err := dyncss.NewWithAttr(head, "media", "screen")
	require.NoError(t, err)
	var media string
	for _, attr := range sheet.Container().Attr {
		if attr.Key == "media" {
			media = attr.Val
		}
	}
	if media != "screen" {
		t.Errorf("expected container attribute media=screen, got %q", media)
	}
}

func TestNewWithoutHead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	if _, err := dyncss.New(nil, nil); err == nil {
		t.Error("expected construction without a head element to fail, didn't")
	}
}

func TestAddRuleAndLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	require.NoError(t, sheet.AddRule(".a", "color:red;"))
	require.Equal(t, 1, sheet.Len())
	rule := sheet.Rules().Rule(sheet.Len() - 1)
	if rule.SelectorText() != ".a" {
		t.Errorf("expected last rule's selector to be '.a', is %q", rule.SelectorText())
	}
	if csstext.Normalize(rule.DeclarationText()) != "color:red;" {
		t.Errorf("unexpected declaration text %q", rule.DeclarationText())
	}
}

func TestAddRuleAtIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	require.NoError(t, sheet.AddRule(".a", "color:red;"))
	require.NoError(t, sheet.AddRule(".b", "color:blue;"))
	require.NoError(t, sheet.AddRule(".c", "color:green;", 0))
	require.Equal(t, []string{".c", ".a", ".b"}, selectors(sheet))
}

func TestAddRuleClampsInvalidIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	require.NoError(t, sheet.AddRule(".a", "color:red;"))
	require.NoError(t, sheet.AddRule(".b", "color:blue;", -5))  // negative ⇒ append
	require.NoError(t, sheet.AddRule(".c", "color:green;", 99)) // past end ⇒ append
	require.Equal(t, []string{".a", ".b", ".c"}, selectors(sheet))
}

func TestRemoveRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	require.NoError(t, sheet.AddRule(".a", "color:red;"))
	require.NoError(t, sheet.AddRule(".b", "color:blue;"))
	require.NoError(t, sheet.RemoveRule(0))
	require.Equal(t, []string{".b"}, selectors(sheet))
	if err := sheet.RemoveRule(5); err == nil {
		t.Error("expected out-of-range removal to fail, didn't")
	}
}

func TestClearRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, sheet.AddRule(fmt.Sprintf(".r%d", i), "margin:0;"))
	}
	require.NoError(t, sheet.ClearRules())
	require.Equal(t, 0, sheet.Len())
	require.NoError(t, sheet.ClearRules()) // idempotent
	if sheet.String() != "" {
		t.Errorf("expected empty serialization after ClearRules, got %q", sheet.String())
	}
}

func TestAddCSSRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	require.NoError(t, sheet.AddCSS(map[string]style.Block{
		".a": {"color": "red"},
	}))
	out := csstext.Normalize(sheet.String())
	if !strings.Contains(out, csstext.Normalize(".a {color:red;}")) {
		t.Errorf("expected serialization to contain '.a {color:red;}', got %q", sheet.String())
	}
}

func TestAddCSSKebabCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	require.NoError(t, sheet.AddCSS(map[string]style.Block{
		".b": {"backgroundSize": "cover"},
	}))
	decl := sheet.Rules().Rule(0).DeclarationText()
	if !strings.Contains(csstext.Normalize(decl), "background-size:cover;") {
		t.Errorf("expected kebab-case declaration, got %q", decl)
	}
	if strings.Contains(decl, "backgroundSize") {
		t.Errorf("camelCase property name leaked into rule: %q", decl)
	}
}

func TestAddCSSValueList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	require.NoError(t, sheet.AddCSS(map[string]style.Block{
		".c": {"display": []string{"-webkit-box", "flex"}},
	}))
	decl := csstext.Normalize(sheet.Rules().Rule(0).DeclarationText())
	first := strings.Index(decl, "display:-webkit-box;")
	second := strings.Index(decl, "display:flex;")
	if first < 0 || second < 0 || second < first {
		t.Errorf("expected two display declarations in list order, got %q", decl)
	}
}

func TestAddCSSInvalidValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	err := sheet.AddCSS(map[string]style.Block{
		".a": {"color": "red"},
		".b": {"margin": 3.14},
	})
	require.Error(t, err)
	invalid, ok := err.(*style.InvalidStyleError)
	require.True(t, ok, "expected *style.InvalidStyleError, got %T", err)
	if invalid.Selector != ".b" {
		t.Errorf("expected error to name selector '.b', names %q", invalid.Selector)
	}
	// '.a' sorts before '.b' and must have been added before the failure
	require.Equal(t, []string{".a"}, selectors(sheet))
}

func TestAddCSSMultiSelectorAtIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	require.NoError(t, sheet.AddRule(".z", "margin:0;"))
	require.NoError(t, sheet.AddCSS(map[string]style.Block{
		".a": {"color": "red"},
		".b": {"color": "blue"},
	}, 0))
	// both inserted at 0: '.b' (processed second) ends up above '.a'
	require.Equal(t, []string{".b", ".a", ".z"}, selectors(sheet))
}

func TestRemoveCSSAllMatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	require.NoError(t, sheet.AddRule(".x", "color:red;"))
	require.NoError(t, sheet.AddRule(".y", "color:blue;"))
	require.NoError(t, sheet.AddRule(".x", "color:green;"))
	require.NoError(t, sheet.RemoveCSS(".x"))
	require.Equal(t, []string{".y"}, selectors(sheet))
}

func TestRemoveCSSAtIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	require.NoError(t, sheet.AddRule(".x", "color:red;"))
	require.NoError(t, sheet.AddRule(".y", "color:blue;"))
	require.NoError(t, sheet.RemoveCSS(".x", 1)) // selector mismatch ⇒ no-op
	require.Equal(t, []string{".x", ".y"}, selectors(sheet))
	require.NoError(t, sheet.RemoveCSS(".x", 7)) // out of range ⇒ no-op
	require.NoError(t, sheet.RemoveCSS(".x", 0))
	require.Equal(t, []string{".y"}, selectors(sheet))
}

func TestStringJoinsRulesInOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	require.NoError(t, sheet.AddRule(".a", "color:red;"))
	require.NoError(t, sheet.AddRule(".b", "color:blue;"))
	out := sheet.String()
	if strings.Index(out, ".a") > strings.Index(out, ".b") {
		t.Errorf("expected rules serialized in position order, got %q", out)
	}
	if out != strings.TrimSpace(out) {
		t.Errorf("expected serialization to be trimmed, got %q", out)
	}
}

func TestDetach(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	sheet := newSheet(t)
	require.NotNil(t, sheet.Container().Parent)
	sheet.Detach()
	if sheet.Container().Parent != nil {
		t.Error("expected container to be detached from the document, isn't")
	}
}

func TestAdoptStyleElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	doc, err := html.Parse(strings.NewReader(
		`<html><head><style>.a { color: red; }</style></head><body></body></html>`))
	require.NoError(t, err)
	sheets, err := dyncss.AdoptStyleElements(doc)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	require.Equal(t, []string{".a"}, selectors(sheets[0]))
	// adopted sheets are fully mutable handles
	require.NoError(t, sheets[0].AddRule(".b", "margin:0;"))
	require.Equal(t, 2, sheets[0].Len())
}

// --- Capability dispatch ---------------------------------------------------

// legacyList is a rule list which only speaks the older mutation
// spellings (addRule / removeRule).
type legacyList struct {
	rules []legacyRule
}

type legacyRule struct {
	selector     string
	declarations string
}

func (r legacyRule) SelectorText() string    { return r.selector }
func (r legacyRule) DeclarationText() string { return r.declarations }
func (r legacyRule) CSSText() string         { return csstext.RuleText(r.selector, r.declarations) }

func (l *legacyList) Len() int { return len(l.rules) }

func (l *legacyList) Rule(index int) cssom.Rule {
	if index < 0 || index >= len(l.rules) {
		return nil
	}
	return l.rules[index]
}

func (l *legacyList) AddRule(selector string, declarations string, index int) error {
	if index < 0 || index > len(l.rules) {
		return fmt.Errorf("addRule: index %d out of range", index)
	}
	l.rules = append(l.rules, legacyRule{})
	copy(l.rules[index+1:], l.rules[index:])
	l.rules[index] = legacyRule{selector, declarations}
	return nil
}

func (l *legacyList) RemoveRule(index int) error {
	if index < 0 || index >= len(l.rules) {
		return fmt.Errorf("removeRule: index %d out of range", index)
	}
	l.rules = append(l.rules[:index], l.rules[index+1:]...)
	return nil
}

// frozenList supports no mutation primitive at all, forcing the
// degraded text-append path.
type frozenList struct{}

func (frozenList) Len() int            { return 0 }
func (frozenList) Rule(int) cssom.Rule { return nil }

func TestLegacyDispatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	doc := parseDoc(t)
	list := &legacyList{}
	sheet, err := dyncss.NewWithRules(findHead(t, doc), nil, list)
	require.NoError(t, err)
	require.NoError(t, sheet.AddRule(".a", "color:red;"))
	require.NoError(t, sheet.AddRule(".b", "color:blue;", 0))
	require.Equal(t, []string{".b", ".a"}, selectors(sheet))
	require.NoError(t, sheet.RemoveCSS(".b"))
	require.Equal(t, []string{".a"}, selectors(sheet))
	require.NoError(t, sheet.ClearRules())
	require.Equal(t, 0, sheet.Len())
}

func TestDegradedTextFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncss.sheet")
	defer teardown()
	//
	doc := parseDoc(t)
	sheet, err := dyncss.NewWithRules(findHead(t, doc), nil, frozenList{})
	require.NoError(t, err)
	require.NoError(t, sheet.AddRule(".a", "color:red;"))
	out := csstext.Normalize(sheet.String())
	if !strings.Contains(out, csstext.Normalize(".a {color:red;}")) {
		t.Errorf("expected literal CSS text in container, got %q", sheet.String())
	}
	if err := sheet.RemoveRule(0); err == nil {
		t.Error("expected structured removal to fail in text mode, didn't")
	}
	require.NoError(t, sheet.ClearRules())
	if sheet.String() != "" {
		t.Errorf("expected empty serialization after ClearRules, got %q", sheet.String())
	}
}

func findHead(t *testing.T, doc *html.Node) *html.Node {
	head := doc.FirstChild.FirstChild
	require.Equal(t, atom.Head, head.DataAtom)
	return head
}
