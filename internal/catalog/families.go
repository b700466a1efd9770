package catalog

import (
	"regexp"
	"strings"
)

// patternRule tags folded text that matches any of a set of folded keywords. A
// keyword matches at a word start, so "squat" also matches "squats".
type patternRule struct {
	Tag string
	re  *regexp.Regexp
}

func rule(tag string, keywords ...string) patternRule {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return patternRule{Tag: tag, re: regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)`)}
}

// Match reports whether the folded text contains one of the rule keywords.
func (r patternRule) Match(folded string) bool {
	return r.re.MatchString(folded)
}

// firstMatch returns the tag of the first matching rule.
func firstMatch(rules []patternRule, folded string) (string, bool) {
	for _, r := range rules {
		if r.Match(folded) {
			return r.Tag, true
		}
	}
	return "", false
}

// Movement families.
const (
	MovementLegsKnee    = "legs_knee"
	MovementLegsHip     = "legs_hip"
	MovementLowerBack   = "lower_back"
	MovementQuadIso     = "quad_iso"
	MovementHamIso      = "ham_iso"
	MovementCalfIso     = "calf_iso"
	MovementTricepsIso  = "triceps_iso"
	MovementGluteIso    = "glute_iso"
	MovementShoulderIso = "shoulder_iso"
	MovementChestIso    = "chest_iso"
	MovementBicepsIso   = "biceps_iso"
	MovementPress       = "press"
	MovementPull        = "pull"
	MovementCore        = "core"
	MovementOther       = "other"
)

// movementRules is ordered: isolation patterns that share words with compound
// lifts ("french press", "leg curl") come before the broad press/pull/curl rules.
var movementRules = []patternRule{
	rule(MovementLegsKnee, "squat", "presse a cuisses", "presse jambes", "presse inclinee", "leg press", "hack", "fente", "lunge", "step up", "montee sur banc", "pistol"),
	rule(MovementLowerBack, "lombaire", "superman", "extension du dos"),
	rule(MovementLegsHip, "souleve de terre", "deadlift", "rdl", "roumain", "jambes tendues", "good morning", "hip thrust", "pont fessier", "glute bridge", "swing", "hyperextension"),
	rule(MovementQuadIso, "leg extension", "extension des jambes", "extension jambes", "extension quadriceps", "extension assise"),
	rule(MovementHamIso, "leg curl", "curl ischio", "curl jambes", "curl allonge", "curl assis", "nordic"),
	rule(MovementCalfIso, "mollet", "calf", "extension des pieds"),
	rule(MovementTricepsIso, "extension triceps", "triceps", "barre au front", "skull", "pushdown", "extension nuque", "overhead extension", "french press"),
	rule(MovementGluteIso, "kickback", "abduction", "abducteur", "fessier a la poulie", "donkey", "clamshell", "fire hydrant"),
	rule(MovementShoulderIso, "elevation laterale", "elevations laterales", "elevation frontale", "elevations frontales", "oiseau", "lateral raise", "front raise", "face pull", "rear delt", "reverse fly"),
	rule(MovementChestIso, "ecarte", "fly", "pec deck", "butterfly", "vis a vis", "cable cross"),
	rule(MovementBicepsIso, "curl"),
	rule(MovementPress, "developpe", "bench", "press", "dips", "pompe", "push up", "pushup", "overhead", "militaire"),
	rule(MovementPull, "rowing", "row", "tirage", "traction", "pull up", "pullup", "chin up", "pulldown", "pull over", "pullover"),
	rule(MovementCore, "gainage", "planche", "plank", "crunch", "releve de jambes", "leg raise", "russian twist", "abdo", "sit up", "hollow", "mountain climber", "roue abdominale"),
}

// semanticRules identify the finer movement pattern used for session diversity.
// Specific variants come before their generic family.
var semanticRules = []patternRule{
	rule("triceps_kickback", "kickback triceps", "triceps kickback"),
	rule("glute_kickback", "kickback", "donkey"),
	rule("glute_abduction", "abduction", "abducteur", "clamshell", "fire hydrant"),
	rule("glute_hip_thrust", "hip thrust"),
	rule("glute_bridge", "pont fessier", "glute bridge"),
	rule("ham_nordic", "nordic"),
	rule("ham_curl", "leg curl", "curl ischio", "curl jambes", "curl allonge", "curl assis"),
	rule("quad_extension", "leg extension", "extension des jambes", "extension jambes", "extension quadriceps", "extension assise"),
	rule("squat_front", "front squat", "squat avant"),
	rule("squat_goblet", "goblet"),
	rule("squat_split", "bulgare", "bulgarian", "split squat"),
	rule("squat_hack", "hack"),
	rule("leg_press", "presse a cuisses", "presse jambes", "presse inclinee", "leg press"),
	rule("lunge", "fente", "lunge"),
	rule("step_up", "step up", "montee sur banc"),
	rule("squat_back", "squat"),
	rule("deadlift_romanian", "roumain", "rdl", "romanian", "jambes tendues"),
	rule("deadlift_sumo", "sumo"),
	rule("deadlift", "souleve de terre", "deadlift"),
	rule("good_morning", "good morning"),
	rule("back_extension", "hyperextension", "lombaire", "superman", "extension du dos"),
	rule("calf_seated", "mollets assis", "seated calf"),
	rule("calf_raise", "mollet", "calf", "extension des pieds"),
	rule("bench_incline", "developpe incline", "incline bench", "incline press"),
	rule("bench_decline", "developpe decline", "decline bench", "decline press"),
	rule("chest_fly", "ecarte", "fly", "pec deck", "butterfly", "vis a vis", "cable cross"),
	rule("dips", "dips"),
	rule("pushup", "pompe", "push up", "pushup"),
	rule("overhead_press", "militaire", "overhead press", "developpe epaules", "developpe assis", "arnold"),
	rule("bench_flat", "developpe couche", "bench"),
	rule("lateral_raise", "elevation laterale", "elevations laterales", "lateral raise"),
	rule("front_raise", "elevation frontale", "elevations frontales", "front raise"),
	rule("rear_delt", "oiseau", "rear delt", "reverse fly", "face pull"),
	rule("pulldown", "tirage vertical", "tirage poitrine", "tirage nuque", "pulldown", "lat pull"),
	rule("pullup", "traction", "pull up", "pullup", "chin up"),
	rule("row_cable", "tirage horizontal", "rowing poulie", "seated row", "cable row"),
	rule("row", "rowing", "row"),
	rule("pullover", "pull over", "pullover"),
	rule("curl_hammer", "marteau", "hammer"),
	rule("curl_concentration", "concentration"),
	rule("curl_preacher", "pupitre", "larry scott", "preacher"),
	rule("triceps_overhead", "extension nuque", "overhead extension", "french press"),
	rule("triceps_skull", "barre au front", "skull"),
	rule("triceps_pushdown", "pushdown", "triceps poulie", "triceps a la poulie"),
	rule("curl", "curl"),
	rule("plank", "gainage", "planche", "plank"),
	rule("crunch", "crunch"),
	rule("leg_raise", "releve de jambes", "leg raise"),
}

// principalKeywords mark multi-joint lifts eligible as a session's principal.
var principalKeywords = rule("principal",
	"squat", "presse", "press", "developpe", "traction", "pull up", "chin up", "rowing", "row",
	"tirage", "souleve de terre", "deadlift", "fente", "lunge", "hip thrust", "dips", "pompes",
	"hack", "good morning", "militaire", "overhead",
)

var staticHoldRule = rule("static",
	"gainage", "planche", "plank", "hold", "isometri", "chaise", "wall sit", "maintien",
	"hollow", "l sit", "statique",
)

var stretchRule = rule("stretch",
	"etirement", "stretch", "mobilite", "mobility", "souplesse", "yoga", "posture",
)

func movementFamily(folded string) string {
	if tag, ok := firstMatch(movementRules, folded); ok {
		return tag
	}
	return MovementOther
}

func semanticFamily(folded, movement, group string) string {
	if tag, ok := firstMatch(semanticRules, folded); ok {
		return tag
	}
	return movement + "__" + group
}

func isPrincipal(folded, group string) bool {
	if nonPriorityGroups[group] {
		return false
	}
	return principalKeywords.Match(folded)
}
