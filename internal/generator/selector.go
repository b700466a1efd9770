package generator

import (
	"github.com/claude/coachgen/internal/catalog"
	"github.com/claude/coachgen/internal/models"
)

// pickPrincipal returns the first compound exercise of the group in shuffled
// order, relaxing the compound requirement when none qualifies. Only exercises
// whose group is exactly the target qualify.
func (b *build) pickPrincipal(st *sessionState, group string) (catalog.Exercise, bool) {
	candidates := shuffled(b.src, b.catalog.Main)
	for _, requirePrincipal := range []bool{true, false} {
		for _, c := range candidates {
			if c.Group != group {
				continue
			}
			if requirePrincipal && !c.IsPrincipal {
				continue
			}
			if !c.FitsLevel(b.level) || st.used(c) || c.IsAbdominal() || c.IsErgometer {
				continue
			}
			return c, true
		}
	}
	return catalog.Exercise{}, false
}

// mainBlock builds the principal and complementary picks for every target group.
func (b *build) mainBlock(st *sessionState) []models.ResolvedExercise {
	out := []models.ResolvedExercise{}
	for _, group := range st.targets {
		principal, ok := b.pickPrincipal(st, group)
		if !ok {
			continue
		}
		st.recordMain(principal, false)
		out = append(out, b.resolve(principal, models.SectionMain, models.RolePrincipal, true))

		comp, ok := b.pickComplementary(st, principal)
		if !ok {
			continue
		}
		st.recordMain(comp, true)
		out = append(out, b.resolve(comp, models.SectionMain, models.RoleComplementary, true))
	}
	return out
}
