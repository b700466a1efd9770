// Package split holds the weekly split templates: for a sex, a session count
// and a variant, the muscle groups targeted by each session.
package split

import (
	"slices"

	"github.com/claude/coachgen/internal/catalog"
)

// Sex selects a template family.
type Sex string

const (
	Male   Sex = "Homme"
	Female Sex = "Femme"
)

// Variant selects between the two template variants of a session count.
type Variant string

const (
	VariantA Variant = "A"
	VariantB Variant = "B"
)

// Session counts supported by the templates.
const (
	MinSessions = 1
	MaxSessions = 7
)

var sexNames = map[string]Sex{
	"homme":  Male,
	"h":      Male,
	"male":   Male,
	"m":      Male,
	"man":    Male,
	"femme":  Female,
	"f":      Female,
	"female": Female,
	"woman":  Female,
}

// ParseSex accepts Homme/Femme and their common spellings, case and accent
// insensitive.
func ParseSex(s string) (Sex, bool) {
	sex, ok := sexNames[catalog.Fold(s)]
	return sex, ok
}

// Plan returns the target groups of each session. Variant B falls back to A
// when the count has no B template; an unknown sex or count yields an empty,
// non-nil split. The result is a copy the caller may modify.
func Plan(sex Sex, count int, v Variant) [][]string {
	variants, ok := templates[sex]
	if !ok {
		return [][]string{}
	}
	tpl, ok := variants[v][count]
	if !ok {
		tpl, ok = variants[VariantA][count]
	}
	if !ok {
		return [][]string{}
	}
	out := make([][]string, len(tpl))
	for i, groups := range tpl {
		out[i] = slices.Clone(groups)
	}
	return out
}

// Template is one split table, exported for documentation surfaces.
type Template struct {
	Sex      Sex        `json:"sexe"`
	Variant  Variant    `json:"variante"`
	Count    int        `json:"nbSeances"`
	Sessions [][]string `json:"seances"`
}

// Templates lists every defined template ordered by sex, count and variant.
func Templates() []Template {
	var out []Template
	for _, sex := range []Sex{Male, Female} {
		for count := MinSessions; count <= MaxSessions; count++ {
			for _, v := range []Variant{VariantA, VariantB} {
				if _, ok := templates[sex][v][count]; !ok {
					continue
				}
				out = append(out, Template{Sex: sex, Variant: v, Count: count, Sessions: Plan(sex, count, v)})
			}
		}
	}
	return out
}

const (
	chest      = catalog.GroupChest
	back       = catalog.GroupBack
	shoulders  = catalog.GroupShoulders
	biceps     = catalog.GroupBiceps
	triceps    = catalog.GroupTriceps
	quads      = catalog.GroupQuads
	hamstrings = catalog.GroupHamstrings
	glutes     = catalog.GroupGlutes
	calves     = catalog.GroupCalves
	adductors  = catalog.GroupAdductors
	traps      = catalog.GroupTraps
	forearms   = catalog.GroupForearms
)

type table map[int][][]string

var templates = map[Sex]map[Variant]table{
	Male: {
		VariantA: {
			1: {{chest, back, quads, shoulders, hamstrings}},
			2: {{chest, back, shoulders, biceps, triceps}, {quads, hamstrings, glutes, calves}},
			3: {{chest, shoulders, triceps}, {back, biceps, traps}, {quads, hamstrings, glutes, calves}},
			4: {{chest, triceps}, {back, biceps}, {quads, hamstrings, calves}, {shoulders, traps, forearms}},
			5: {{chest}, {back}, {quads, hamstrings, calves}, {shoulders, traps}, {biceps, triceps, forearms}},
			6: {
				{chest, shoulders, triceps}, {back, biceps}, {quads, hamstrings, calves},
				{chest, shoulders, triceps}, {back, biceps, traps}, {glutes, hamstrings, quads},
			},
			7: {
				{chest, triceps}, {back, biceps}, {quads, calves}, {shoulders, traps},
				{hamstrings, glutes}, {chest, back}, {biceps, triceps, forearms},
			},
		},
		VariantB: {
			2: {{quads, chest, back}, {hamstrings, shoulders, biceps, triceps}},
			3: {{chest, back, quads}, {shoulders, hamstrings, biceps}, {glutes, triceps, back}},
			4: {{chest, back, shoulders}, {quads, hamstrings, calves}, {back, chest, biceps, triceps}, {glutes, hamstrings, quads}},
			6: {
				{chest, back}, {quads, hamstrings}, {shoulders, biceps, triceps},
				{back, chest}, {glutes, quads}, {shoulders, traps, forearms},
			},
		},
	},
	Female: {
		VariantA: {
			1: {{glutes, quads, hamstrings, back, shoulders}},
			2: {{glutes, quads, hamstrings, calves}, {back, shoulders, chest, triceps}},
			3: {{glutes, quads}, {back, shoulders, triceps}, {hamstrings, glutes, adductors}},
			4: {{glutes, quads}, {back, shoulders}, {hamstrings, glutes, calves}, {chest, biceps, triceps}},
			5: {{glutes, quads}, {back, biceps}, {hamstrings, adductors}, {shoulders, triceps}, {glutes, calves}},
			6: {
				{glutes, quads}, {back, shoulders}, {hamstrings, adductors},
				{chest, triceps}, {glutes, hamstrings}, {shoulders, biceps},
			},
			7: {
				{glutes, quads}, {back, biceps}, {hamstrings, adductors}, {shoulders, triceps},
				{glutes, calves}, {chest, back}, {quads, glutes},
			},
		},
		VariantB: {
			2: {{glutes, hamstrings, back}, {quads, shoulders, chest}},
			3: {{glutes, hamstrings}, {quads, adductors, calves}, {back, shoulders, triceps}},
			4: {{glutes, quads}, {back, chest, triceps}, {hamstrings, adductors}, {shoulders, biceps}},
		},
	},
}
