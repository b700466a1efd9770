package generator

import (
	"slices"
	"strings"

	"github.com/claude/coachgen/internal/catalog"
)

// complementRule describes what pairs well with a principal: a preferred group,
// name keywords (folded) and movement families.
type complementRule struct {
	Group    string
	Keywords []string
	Families []string
}

var (
	quadRule = complementRule{
		Group:    catalog.GroupQuads,
		Keywords: []string{"leg extension", "extension jambes", "extension des jambes", "fente", "sissy"},
		Families: []string{catalog.MovementQuadIso, catalog.MovementLegsKnee},
	}
	hamRule = complementRule{
		Group:    catalog.GroupHamstrings,
		Keywords: []string{"leg curl", "curl ischio", "curl jambes", "nordic", "jambes tendues"},
		Families: []string{catalog.MovementHamIso, catalog.MovementLegsHip},
	}
	gluteRule = complementRule{
		Group:    catalog.GroupGlutes,
		Keywords: []string{"kickback", "abduction", "hip thrust", "pont fessier"},
		Families: []string{catalog.MovementGluteIso, catalog.MovementLegsHip},
	}
	tricepsRule = complementRule{
		Group:    catalog.GroupTriceps,
		Keywords: []string{"extension triceps", "barre au front", "pushdown", "dips", "kickback triceps"},
		Families: []string{catalog.MovementTricepsIso},
	}
	bicepsRule = complementRule{
		Group:    catalog.GroupBiceps,
		Keywords: []string{"curl"},
		Families: []string{catalog.MovementBicepsIso},
	}
	shoulderRule = complementRule{
		Group:    catalog.GroupShoulders,
		Keywords: []string{"elevation laterale", "elevations laterales", "oiseau", "face pull", "elevation frontale"},
		Families: []string{catalog.MovementShoulderIso},
	}
	calfRule = complementRule{
		Group:    catalog.GroupCalves,
		Keywords: []string{"mollet", "calf"},
		Families: []string{catalog.MovementCalfIso},
	}
	lowerBackRule = complementRule{
		Group:    catalog.GroupLowerBack,
		Keywords: []string{"hyperextension", "superman", "good morning", "extension lombaire"},
		Families: []string{catalog.MovementLowerBack, catalog.MovementLegsHip},
	}
	adductorRule = complementRule{
		Group:    catalog.GroupAdductors,
		Keywords: []string{"adduction", "adducteur", "sumo"},
		Families: []string{catalog.MovementGluteIso},
	}
)

// complementByGroup is consulted first, keyed by the principal's group.
var complementByGroup = map[string]complementRule{
	catalog.GroupQuads:      quadRule,
	catalog.GroupHamstrings: hamRule,
	catalog.GroupGlutes:     gluteRule,
	catalog.GroupChest:      tricepsRule,
	catalog.GroupTriceps:    tricepsRule,
	catalog.GroupBack:       bicepsRule,
	catalog.GroupBiceps:     bicepsRule,
	catalog.GroupShoulders:  shoulderRule,
	catalog.GroupCalves:     calfRule,
	catalog.GroupLowerBack:  lowerBackRule,
	catalog.GroupAdductors:  adductorRule,
}

// complementByFamily is consulted when the principal's group has no rule.
var complementByFamily = map[string]complementRule{
	catalog.MovementLegsKnee:    quadRule,
	catalog.MovementQuadIso:     quadRule,
	catalog.MovementLegsHip:     hamRule,
	catalog.MovementHamIso:      hamRule,
	catalog.MovementGluteIso:    gluteRule,
	catalog.MovementPress:       tricepsRule,
	catalog.MovementTricepsIso:  tricepsRule,
	catalog.MovementPull:        bicepsRule,
	catalog.MovementBicepsIso:   bicepsRule,
	catalog.MovementShoulderIso: shoulderRule,
	catalog.MovementCalfIso:     calfRule,
	catalog.MovementLowerBack:   lowerBackRule,
}

func complementFor(principal catalog.Exercise) complementRule {
	if r, ok := complementByGroup[principal.Group]; ok {
		return r
	}
	if r, ok := complementByFamily[principal.MovementFamily]; ok {
		return r
	}
	return complementRule{Group: principal.Group}
}

func (r complementRule) keywordHit(key string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(key, k) {
			return true
		}
	}
	return false
}

func (r complementRule) matches(c catalog.Exercise) bool {
	return c.Group == r.Group || r.keywordHit(c.Key) || slices.Contains(r.Families, c.MovementFamily)
}

// returnPattern blocks a second exercise of the same pattern in one main block.
type returnPattern struct {
	name     string
	keywords []string
}

func (p returnPattern) match(key string) bool {
	for _, k := range p.keywords {
		if strings.Contains(key, k) {
			return true
		}
	}
	return false
}

var returnPatterns = []returnPattern{
	{"ham_curl", []string{"leg curl", "curl ischio", "curl jambes", "curl allonge", "curl assis", "nordic"}},
	{"quad_extension", []string{"leg extension", "extension jambes", "extension des jambes", "extension quadriceps"}},
	{"glute_kickback", []string{"kickback fessier", "kickback a la poulie", "donkey"}},
	{"glute_abduction", []string{"abduction", "abducteur"}},
	{"lateral_raise", []string{"elevation laterale", "elevations laterales"}},
	{"calf_raise", []string{"mollet", "calf"}},
}

// complementaryQuota is the number of complementary picks allowed per semantic
// family in one session.
const complementaryQuota = 1

// complementScore ranks a candidate; lower is better.
func complementScore(st *sessionState, r complementRule, c catalog.Exercise) int {
	score := 0
	if c.Group == r.Group {
		score -= 4
	}
	if r.keywordHit(c.Key) {
		score -= 3
	}
	if slices.Contains(r.Families, c.MovementFamily) {
		score -= 2
	}
	if !st.families[c.SemanticFamily] {
		score--
	}
	if !st.isTarget(c.Group) {
		score++
	}
	return score
}

// pickComplementary chooses the exercise paired with a principal. Candidates
// matching the rule are preferred, then those of the principal's group, then
// any eligible candidate.
func (b *build) pickComplementary(st *sessionState, principal catalog.Exercise) (catalog.Exercise, bool) {
	r := complementFor(principal)

	var eligible []catalog.Exercise
	for _, c := range shuffled(b.src, b.catalog.Main) {
		if c.Key == principal.Key || st.used(c) || c.IsAbdominal() || c.IsErgometer {
			continue
		}
		if !c.FitsLevel(b.level) {
			continue
		}
		if st.complementaryFamilies[c.SemanticFamily] >= complementaryQuota || st.bannedByReturn(c) {
			continue
		}
		eligible = append(eligible, c)
	}

	tiers := []func(catalog.Exercise) bool{
		r.matches,
		func(c catalog.Exercise) bool { return c.Group == principal.Group },
		func(catalog.Exercise) bool { return true },
	}
	for _, inTier := range tiers {
		best, bestScore, found := catalog.Exercise{}, 0, false
		for _, c := range eligible {
			if !inTier(c) {
				continue
			}
			if s := complementScore(st, r, c); !found || s < bestScore {
				best, bestScore, found = c, s, true
			}
		}
		if found {
			return best, true
		}
	}
	return catalog.Exercise{}, false
}
