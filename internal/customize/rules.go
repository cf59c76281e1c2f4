// Package customize rewrites the demo edge-test page into an entity-specific page.
//
// Rewriting is a single left-to-right pass over the template. At each position the
// first rule (in list order) whose pattern matches is applied and scanning resumes
// after the match, so replacement text is never matched again. Rule order therefore
// expresses priority: specific literals come before the bare "Demo"/"demo" catch-alls.
package customize

import (
	"strings"

	"github.com/example/edgegen/internal/entities"
)

// Placeholder tokens accepted in demo templates authored for edgegen.
const (
	TokenDisplayName        = "{{DISPLAY_NAME}}"
	TokenDisplayNameCompact = "{{DISPLAY_NAME_COMPACT}}"
	TokenKey                = "{{KEY}}"
	TokenKeyUpper           = "{{KEY_UPPER}}"
	TokenItemLabel          = "{{ITEM_LABEL}}"
	TokenItemLabelLower     = "{{ITEM_LABEL_LOWER}}"
	TokenItemsLabel         = "{{ITEMS_LABEL}}"
	TokenItemsLabelTitle    = "{{ITEMS_LABEL_TITLE}}"
	TokenIDField            = "{{ID_FIELD}}"
)

// StyleHeader is the header comment of the demo stylesheet.
const StyleHeader = "Demo Class (Template)"

// Rule replaces every occurrence of Pattern with Replacement.
type Rule struct {
	Pattern     string
	Replacement string
}

// RuleSet is an ordered list of rules; earlier rules win when patterns overlap.
type RuleSet []Rule

// Apply rewrites text in a single pass.
func (rs RuleSet) Apply(text string) string {
	pairs := make([]string, 0, len(rs)*2)
	for _, r := range rs {
		if r.Pattern == "" {
			continue
		}
		pairs = append(pairs, r.Pattern, r.Replacement)
	}
	if len(pairs) == 0 {
		return text
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// tokenRules maps every placeholder token to its configured value.
func tokenRules(cfg entities.EntityConfig) RuleSet {
	return RuleSet{
		{TokenDisplayName, cfg.DisplayName},
		{TokenDisplayNameCompact, Compact(cfg.DisplayName)},
		{TokenKey, cfg.Key},
		{TokenKeyUpper, UpperSnake(cfg.Key)},
		{TokenItemLabel, itemLabel(cfg)},
		{TokenItemLabelLower, strings.ToLower(itemLabel(cfg))},
		{TokenItemsLabel, itemsLabel(cfg)},
		{TokenItemsLabelTitle, TitleCase(itemsLabel(cfg))},
		{TokenIDField, cfg.EffectiveIDField()},
	}
}

// ScriptRules returns the rules applied to the demo script.js.
func ScriptRules(cfg entities.EntityConfig) RuleSet {
	name := cfg.DisplayName
	key := cfg.Key
	item := itemLabel(cfg)
	items := itemsLabel(cfg)

	rules := tokenRules(cfg)
	rules = append(rules,
		Rule{StyleHeader, name + " Class"},
		Rule{"Demo Class", name + " Class"},
		Rule{"[Edge Tests Demo]", "[Edge Tests " + name + "]"},
		Rule{"EdgeTestsDemo", "EdgeTests" + Compact(name)},
		Rule{"demo/template", strings.ToLower(name) + " functionality"},
		Rule{"demo functionality", strings.ToLower(name) + " functionality"},
		Rule{`"demo"`, `"` + key + `"`},
		Rule{"'demo'", "'" + key + "'"},
		Rule{"/demo", "/" + key},
		Rule{"Demo Items", TitleCase(items)},
		Rule{"demo items", items},
		Rule{"Demo Item", item},
		Rule{"demo item", strings.ToLower(item)},
	)

	if cfg.HasCustomIDField() {
		def := entities.DefaultIDField
		id := cfg.EffectiveIDField()
		rules = append(rules,
			Rule{"inputValues." + def, "inputValues." + id},
			Rule{"{" + def + "}", "{" + id + "}"},
			Rule{"'" + def + "'", "'" + id + "'"},
			Rule{`"` + def + `"`, `"` + id + `"`},
		)
	}

	// Catch-alls last: every pattern above contains one of these.
	rules = append(rules,
		Rule{"DEMO", UpperSnake(key)},
		Rule{"Demo", name},
		Rule{"demo", key},
	)
	return rules
}

// StyleRules returns the rules applied to the demo style.css: placeholder tokens and
// the header comment. The stylesheet is otherwise copied verbatim.
func StyleRules(cfg entities.EntityConfig) RuleSet {
	return append(tokenRules(cfg), Rule{StyleHeader, cfg.DisplayName + " Class"})
}

// CustomizeScript rewrites the demo script for cfg.
func CustomizeScript(src string, cfg entities.EntityConfig) string {
	return ScriptRules(cfg).Apply(src)
}

// CustomizeStyle rewrites the demo stylesheet for cfg.
func CustomizeStyle(src string, cfg entities.EntityConfig) string {
	return StyleRules(cfg).Apply(src)
}

func itemLabel(cfg entities.EntityConfig) string {
	if cfg.ItemLabel == "" {
		return cfg.DisplayName + " Item"
	}
	return cfg.ItemLabel
}

func itemsLabel(cfg entities.EntityConfig) string {
	if cfg.ItemsLabel == "" {
		return strings.ToLower(itemLabel(cfg)) + "s"
	}
	return cfg.ItemsLabel
}
