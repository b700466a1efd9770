package catalog

import (
	"testing"

	"github.com/claude/coachgen/internal/models"
)

// TestClassification checks the rule tables against representative catalog names.
func TestClassification(t *testing.T) {
	tests := []struct {
		name      string
		group     string
		principal bool
		movement  string
		semantic  string
	}{
		{"Squat barre", "quadriceps", true, MovementLegsKnee, "squat_back"},
		{"Presse à cuisses", "quadriceps", true, MovementLegsKnee, "leg_press"},
		{"Fentes bulgares", "fessiers", true, MovementLegsKnee, "squat_split"},
		{"Soulevé de terre roumain", "ischio-jambiers", true, MovementLegsHip, "deadlift_romanian"},
		{"Hip thrust", "fessiers", true, MovementLegsHip, "glute_hip_thrust"},
		{"Leg extension", "quadriceps", false, MovementQuadIso, "quad_extension"},
		{"Leg curl allongé", "ischio-jambiers", false, MovementHamIso, "ham_curl"},
		{"Extension mollets debout", "mollets", false, MovementCalfIso, "calf_raise"},
		{"Extension triceps poulie", "triceps", false, MovementTricepsIso, "triceps_pushdown"},
		{"Kickback fessier à la poulie", "fessiers", false, MovementGluteIso, "glute_kickback"},
		{"Élévations latérales", "epaules", false, MovementShoulderIso, "lateral_raise"},
		{"Curl marteau", "biceps", false, MovementBicepsIso, "curl_hammer"},
		{"Développé couché", "pectoraux", true, MovementPress, "bench_flat"},
		{"Développé incliné haltères", "pectoraux", true, MovementPress, "bench_incline"},
		{"Développé militaire", "epaules", true, MovementPress, "overhead_press"},
		{"Tractions pronation", "dos", true, MovementPull, "pullup"},
		{"Rowing barre", "dos", true, MovementPull, "row"},
		{"Crunch", "abdominaux", false, MovementCore, "crunch"},
		{"Shrug haltères", "trapezes", false, MovementOther, "other__trapezes"},
		// Compound keyword on a non-priority group is not principal.
		{"Presse mollets", "mollets", false, MovementCalfIso, "calf_raise"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Normalize(models.RawExercise{"nom": tt.name, "groupe": tt.group})
			if e.IsPrincipal != tt.principal {
				t.Errorf("IsPrincipal = %v, want %v", e.IsPrincipal, tt.principal)
			}
			if e.MovementFamily != tt.movement {
				t.Errorf("MovementFamily = %q, want %q", e.MovementFamily, tt.movement)
			}
			if e.SemanticFamily != tt.semantic {
				t.Errorf("SemanticFamily = %q, want %q", e.SemanticFamily, tt.semantic)
			}
		})
	}
}

// TestErgoKind verifies machine detection order over name, model and equipment.
func TestErgoKind(t *testing.T) {
	tests := []struct {
		raw  models.RawExercise
		want ErgoKind
	}{
		{models.RawExercise{"nom": "Tapis de course"}, ErgoTreadmill},
		{models.RawExercise{"nom": "Vélo elliptique"}, ErgoElliptical},
		{models.RawExercise{"nom": "Vélo assis"}, ErgoBike},
		{models.RawExercise{"nom": "Rameur"}, ErgoRower},
		{models.RawExercise{"nom": "SkiErg"}, ErgoSkiErg},
		{models.RawExercise{"nom": "Machine", "modele": "Concept2 RowErg"}, ErgoRower},
		{models.RawExercise{"nom": "Cardio libre", "materiel": "Stepper"}, ErgoStepper},
		{models.RawExercise{"nom": "Machine inconnue"}, ErgoGeneric},
	}
	for _, tt := range tests {
		if got := Normalize(tt.raw).ErgoKind; got != tt.want {
			t.Errorf("ErgoKind(%v) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

// TestCardioHint verifies the display-only cardio detector does not set IsErgometer.
func TestCardioHint(t *testing.T) {
	e := Normalize(models.RawExercise{"nom": "Vélo d'appartement", "groupe": "fullbody"})
	if !e.CardioHint {
		t.Error("expected CardioHint")
	}
	if e.IsErgometer {
		t.Error("CardioHint must not imply IsErgometer")
	}
	if e.Group != GroupFullBody {
		t.Errorf("Group = %q, want %q", e.Group, GroupFullBody)
	}
}

// TestStretchDetection verifies stretch and static hold detectors.
func TestStretchDetection(t *testing.T) {
	tests := []struct {
		name    string
		stretch bool
		static  bool
	}{
		{"Étirement des ischios", true, false},
		{"Mobilité hanches", true, false},
		{"Planche latérale", false, true},
		{"Chaise contre le mur", false, true},
		{"Squat goblet", false, false},
	}
	for _, tt := range tests {
		e := Normalize(models.RawExercise{"nom": tt.name})
		if e.IsStretch != tt.stretch || e.IsStaticHold != tt.static {
			t.Errorf("%q: stretch=%v static=%v, want %v %v", tt.name, e.IsStretch, e.IsStaticHold, tt.stretch, tt.static)
		}
	}
}

// TestCanonicalGroup verifies the group synonym table.
func TestCanonicalGroup(t *testing.T) {
	tests := map[string]string{
		"Abdos":           GroupAbs,
		"Poitrine":        GroupChest,
		"Ischios":         GroupHamstrings,
		"Ischio-jambiers": GroupHamstrings,
		"Épaule":          GroupShoulders,
		"Full Body":       GroupFullBody,
		"Corps entier":    GroupFullBody,
		"Avant-bras":      GroupForearms,
		"Grand dorsal":    "grand-dorsal",
	}
	for in, want := range tests {
		if got := CanonicalGroup(in); got != want {
			t.Errorf("CanonicalGroup(%q) = %q, want %q", in, got, want)
		}
	}
}
