package models

import (
	"time"

	"github.com/google/uuid"
)

// Section keys. They double as the JSON names of the session blocks.
const (
	SectionWarmup   = "echauffement"
	SectionMain     = "corps"
	SectionBonus    = "bonus"
	SectionCooldown = "retourCalme"
)

// Roles of a resolved exercise inside its session.
const (
	RolePrincipal     = "principal"
	RoleComplementary = "complementaire"
	RoleWarmup        = "echauffement"
	RoleBonus         = "bonus"
	RoleCooldown      = "retourCalme"
)

// Program is a generated multi-session training program.
type Program struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nom"`
	Objective string    `json:"objectif"`
	Level     string    `json:"niveau"`
	Sex       string    `json:"sexe"`
	Variant   string    `json:"variante"`
	CreatedAt time.Time `json:"createdAt"`
	Sessions  []Session `json:"sessions"`
}

// Session is one training day. The four blocks are never nil.
type Session struct {
	Number       int                `json:"numero"`
	TargetGroups []string           `json:"groupesCibles"`
	Warmup       []ResolvedExercise `json:"echauffement"`
	Main         []ResolvedExercise `json:"corps"`
	Bonus        []ResolvedExercise `json:"bonus"`
	Cooldown     []ResolvedExercise `json:"retourCalme"`
}

// NewSession returns a session with empty, non-nil blocks.
func NewSession(number int, targets []string) Session {
	return Session{
		Number:       number,
		TargetGroups: targets,
		Warmup:       []ResolvedExercise{},
		Main:         []ResolvedExercise{},
		Bonus:        []ResolvedExercise{},
		Cooldown:     []ResolvedExercise{},
	}
}

// ResolvedExercise is a catalog exercise with concrete training parameters.
// Repetitions and Duration are mutually exclusive for strength work; ergometer
// exercises never carry Repetitions and strength exercises never carry
// ergometer metrics.
type ResolvedExercise struct {
	Name      string   `json:"nom"`
	Group     string   `json:"groupeMusculaire"`
	Equipment []string `json:"materiel,omitempty"`
	Role      string   `json:"role"`
	Ergometer bool     `json:"ergometre"`
	ErgoKind  string   `json:"typeErgometre,omitempty"`

	Series      *int `json:"series,omitempty"`
	Repetitions *int `json:"repetitions,omitempty"`
	Duration    *int `json:"duree,omitempty"`
	Rest        *int `json:"repos,omitempty"`

	Speed      *float64 `json:"vitesse,omitempty"`
	Distance   *float64 `json:"distance,omitempty"`
	Watts      *float64 `json:"watts,omitempty"`
	Calories   *float64 `json:"calories,omitempty"`
	Intensity  *float64 `json:"intensite,omitempty"`
	Incline    *float64 `json:"inclinaison,omitempty"`
	Cadence    *float64 `json:"cadence,omitempty"`
	Resistance *float64 `json:"resistance,omitempty"`
	Pace       *float64 `json:"allure,omitempty"`
	HeartRate  *float64 `json:"frequenceCardiaque,omitempty"`

	OptionsEnabled map[string]bool `json:"optionsEnabled"`
	OptionsOrder   []string        `json:"optionsOrder"`
}

// HasErgoMetrics reports whether any ergometer metric field is set.
func (r ResolvedExercise) HasErgoMetrics() bool {
	return r.Speed != nil || r.Distance != nil || r.Watts != nil || r.Calories != nil ||
		r.Intensity != nil || r.Incline != nil || r.Cadence != nil || r.Resistance != nil ||
		r.Pace != nil || r.HeartRate != nil
}
