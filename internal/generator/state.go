package generator

import (
	"slices"

	"github.com/claude/coachgen/internal/catalog"
)

// sessionState is the selection history of one session. It is created per
// session and discarded once the session is built.
type sessionState struct {
	targets []string

	// blacklist holds folded names already used anywhere in the session.
	blacklist map[string]bool
	// families holds semantic families present in the main block.
	families map[string]bool
	// complementaryFamilies counts complementary picks per semantic family.
	complementaryFamilies map[string]int
	// returnHits holds the return patterns already matched by the main block.
	returnHits map[string]bool
	// cooldownNames holds folded names chosen for the cooldown block.
	cooldownNames map[string]bool
}

func newSessionState(targets []string) *sessionState {
	return &sessionState{
		targets:               targets,
		blacklist:             map[string]bool{},
		families:              map[string]bool{},
		complementaryFamilies: map[string]int{},
		returnHits:            map[string]bool{},
		cooldownNames:         map[string]bool{},
	}
}

func (s *sessionState) isTarget(group string) bool {
	return slices.Contains(s.targets, group)
}

func (s *sessionState) used(e catalog.Exercise) bool {
	return s.blacklist[e.Key]
}

// use blacklists an exercise picked outside the main block.
func (s *sessionState) use(e catalog.Exercise) {
	s.blacklist[e.Key] = true
}

// recordMain registers a main block pick.
func (s *sessionState) recordMain(e catalog.Exercise, complementary bool) {
	s.blacklist[e.Key] = true
	s.families[e.SemanticFamily] = true
	if complementary {
		s.complementaryFamilies[e.SemanticFamily]++
	}
	for _, p := range returnPatterns {
		if p.match(e.Key) {
			s.returnHits[p.name] = true
		}
	}
}

// bannedByReturn reports whether e repeats a return pattern already present in
// the main block.
func (s *sessionState) bannedByReturn(e catalog.Exercise) bool {
	for _, p := range returnPatterns {
		if s.returnHits[p.name] && p.match(e.Key) {
			return true
		}
	}
	return false
}
