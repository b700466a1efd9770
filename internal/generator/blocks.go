package generator

import (
	"github.com/claude/coachgen/internal/catalog"
	"github.com/claude/coachgen/internal/models"
)

const (
	warmupCatalogChance = 0.5
	maxBonusAbs         = 2
)

// warmupBlock picks either one warmup exercise per target group or a single
// ergometer tagged for warmup.
func (b *build) warmupBlock(st *sessionState) []models.ResolvedExercise {
	out := []models.ResolvedExercise{}
	if chance(b.src, warmupCatalogChance) {
		candidates := shuffled(b.src, b.catalog.Warmup)
		for _, group := range st.targets {
			for _, c := range candidates {
				if c.Group != group || st.used(c) || !c.FitsLevel(b.level) {
					continue
				}
				st.use(c)
				out = append(out, b.resolve(c, models.SectionWarmup, models.RoleWarmup, false))
				break
			}
		}
		return out
	}

	if c, ok := b.firstErgometer(st, catalog.UsageWarmup); ok {
		st.use(c)
		out = append(out, b.resolve(c, models.SectionWarmup, models.RoleWarmup, false))
	}
	return out
}

// bonusBlock adds abdominal work on odd sessions and a cardio ergometer on even
// ones. Session numbers start at 1.
func (b *build) bonusBlock(st *sessionState, number int) []models.ResolvedExercise {
	out := []models.ResolvedExercise{}
	if number%2 == 1 {
		for _, c := range shuffled(b.src, b.catalog.Main) {
			if len(out) == maxBonusAbs {
				break
			}
			if !c.IsAbdominal() || c.IsErgometer || st.used(c) || !c.FitsLevel(b.level) {
				continue
			}
			st.use(c)
			out = append(out, b.resolve(c, models.SectionBonus, models.RoleBonus, true))
		}
		return out
	}

	if c, ok := b.firstErgometer(st, catalog.UsageCardio); ok {
		st.use(c)
		out = append(out, b.resolve(c, models.SectionBonus, models.RoleBonus, false))
	}
	return out
}

// cooldownBlock picks one cooldown exercise per target group, falling back to a
// full body one. A cooldown name is used once per session.
func (b *build) cooldownBlock(st *sessionState) []models.ResolvedExercise {
	out := []models.ResolvedExercise{}
	candidates := shuffled(b.src, b.catalog.Cooldown)
	available := func(c catalog.Exercise) bool {
		return !st.cooldownNames[c.Key] && !st.used(c)
	}
	for _, group := range st.targets {
		pick, found := catalog.Exercise{}, false
		for _, c := range candidates {
			if c.Group == group && available(c) {
				pick, found = c, true
				break
			}
		}
		if !found {
			for _, c := range candidates {
				if c.Group == catalog.GroupFullBody && available(c) {
					pick, found = c, true
					break
				}
			}
		}
		if !found {
			continue
		}
		st.cooldownNames[pick.Key] = true
		st.use(pick)
		out = append(out, b.resolve(pick, models.SectionCooldown, models.RoleCooldown, false))
	}
	return out
}

func (b *build) firstErgometer(st *sessionState, usage string) (catalog.Exercise, bool) {
	for _, c := range shuffled(b.src, b.catalog.Ergometer) {
		if c.HasUsage(usage) && !st.used(c) {
			return c, true
		}
	}
	return catalog.Exercise{}, false
}
