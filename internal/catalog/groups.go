package catalog

import "strings"

// Canonical muscle groups referenced by the engine.
const (
	GroupAbs        = "abdominaux"
	GroupChest      = "pectoraux"
	GroupBack       = "dos"
	GroupShoulders  = "epaules"
	GroupBiceps     = "biceps"
	GroupTriceps    = "triceps"
	GroupQuads      = "quadriceps"
	GroupHamstrings = "ischio-jambiers"
	GroupGlutes     = "fessiers"
	GroupCalves     = "mollets"
	GroupAdductors  = "adducteurs"
	GroupLowerBack  = "lombaires"
	GroupTraps      = "trapezes"
	GroupForearms   = "avant-bras"
	GroupWrists     = "poignets"
	GroupFullBody   = "fullbody"
)

// groupSynonyms maps folded group names to their canonical form.
var groupSynonyms = map[string]string{
	"abdos":           GroupAbs,
	"abdo":            GroupAbs,
	"abdominal":       GroupAbs,
	"abdominaux":      GroupAbs,
	"abs":             GroupAbs,
	"pecs":            GroupChest,
	"pectoral":        GroupChest,
	"pectoraux":       GroupChest,
	"poitrine":        GroupChest,
	"chest":           GroupChest,
	"dos":             GroupBack,
	"back":            GroupBack,
	"epaule":          GroupShoulders,
	"epaules":         GroupShoulders,
	"deltoides":       GroupShoulders,
	"shoulders":       GroupShoulders,
	"biceps":          GroupBiceps,
	"triceps":         GroupTriceps,
	"quadri":          GroupQuads,
	"quads":           GroupQuads,
	"quadriceps":      GroupQuads,
	"ischios":         GroupHamstrings,
	"ischio":          GroupHamstrings,
	"ischio jambiers": GroupHamstrings,
	"hamstrings":      GroupHamstrings,
	"fessier":         GroupGlutes,
	"fessiers":        GroupGlutes,
	"glutes":          GroupGlutes,
	"mollet":          GroupCalves,
	"mollets":         GroupCalves,
	"calves":          GroupCalves,
	"adducteur":       GroupAdductors,
	"adducteurs":      GroupAdductors,
	"lombaire":        GroupLowerBack,
	"lombaires":       GroupLowerBack,
	"trapeze":         GroupTraps,
	"trapezes":        GroupTraps,
	"avant bras":      GroupForearms,
	"forearms":        GroupForearms,
	"poignet":         GroupWrists,
	"poignets":        GroupWrists,
	"full body":       GroupFullBody,
	"fullbody":        GroupFullBody,
	"corps entier":    GroupFullBody,
}

// nonPriorityGroups never host a principal exercise.
var nonPriorityGroups = map[string]bool{
	GroupCalves:   true,
	GroupAbs:      true,
	GroupForearms: true,
	GroupTraps:    true,
	GroupWrists:   true,
}

// CanonicalGroup folds a group name and maps it through the synonym table.
// Unknown groups keep their folded form with spaces replaced by hyphens.
func CanonicalGroup(name string) string {
	folded := Fold(name)
	if g, ok := groupSynonyms[folded]; ok {
		return g
	}
	return strings.ReplaceAll(folded, " ", "-")
}

// Level ranks.
const (
	LevelBeginner     = 1
	LevelIntermediate = 2
	LevelAdvanced     = 3
)

var levelNames = map[string]int{
	"debutant":      LevelBeginner,
	"debutante":     LevelBeginner,
	"beginner":      LevelBeginner,
	"intermediaire": LevelIntermediate,
	"intermediate":  LevelIntermediate,
	"confirme":      LevelAdvanced,
	"confirmee":     LevelAdvanced,
	"avance":        LevelAdvanced,
	"advanced":      LevelAdvanced,
	"expert":        LevelAdvanced,
}

// ParseLevel returns the rank of a level name, or 0 when unknown.
func ParseLevel(name string) int {
	return levelNames[Fold(name)]
}

// Usage tags recognised by the block selectors.
const (
	UsageWarmup   = "echauffement"
	UsageCardio   = "cardio"
	UsageCooldown = "retour calme"
)

var usageSynonyms = map[string]string{
	"warmup":          UsageWarmup,
	"warm up":         UsageWarmup,
	"echauffement":    UsageWarmup,
	"cardio":          UsageCardio,
	"conditioning":    UsageCardio,
	"cooldown":        UsageCooldown,
	"cool down":       UsageCooldown,
	"retour calme":    UsageCooldown,
	"retour au calme": UsageCooldown,
}

func canonicalUsage(name string) string {
	folded := Fold(name)
	if u, ok := usageSynonyms[folded]; ok {
		return u
	}
	return folded
}
