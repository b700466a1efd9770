package catalog

// ErgoKind is the machine type of an ergometer exercise.
type ErgoKind string

const (
	ErgoTreadmill  ErgoKind = "treadmill"
	ErgoBike       ErgoKind = "bike"
	ErgoRower      ErgoKind = "rower"
	ErgoElliptical ErgoKind = "elliptical"
	ErgoSkiErg     ErgoKind = "skierg"
	ErgoStepper    ErgoKind = "stepper"
	ErgoGeneric    ErgoKind = "generic"
)

// ergoRules is ordered so that "velo elliptique" is an elliptical and "bike erg"
// is not a rower.
var ergoRules = []patternRule{
	rule(string(ErgoSkiErg), "ski erg", "skierg", "ski"),
	rule(string(ErgoElliptical), "elliptique", "elliptical", "cross trainer"),
	rule(string(ErgoStepper), "stepper", "escalier", "stair", "step mill"),
	rule(string(ErgoBike), "velo", "bike", "cycl", "spinning", "airbike", "assault"),
	rule(string(ErgoRower), "rameur", "rower", "aviron", "rowing machine", "concept2"),
	rule(string(ErgoTreadmill), "tapis", "treadmill", "course", "running", "marche"),
}

// cardioHintRule recognises cardio machines from free text. It only affects how
// an exercise is displayed outside the main block.
var cardioHintRule = rule("cardio",
	"tapis de course", "treadmill", "velo", "bike", "rameur", "rower", "elliptique", "elliptical",
	"ski erg", "skierg", "stepper", "airbike", "assault", "spinning", "ergometre", "ergometer",
	"cardio",
)

// ergometerCollections are the folded collection values that mark a record as an
// ergometer.
var ergometerCollections = map[string]bool{
	"ergometre":  true,
	"ergometres": true,
	"ergometer":  true,
	"ergometers": true,
}

func ergoKind(folded string) ErgoKind {
	if tag, ok := firstMatch(ergoRules, folded); ok {
		return ErgoKind(tag)
	}
	return ErgoGeneric
}
