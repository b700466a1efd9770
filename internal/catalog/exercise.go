package catalog

import (
	"slices"
	"strings"
)

// Metric names an ergometer metric. The values are the output labels.
type Metric string

const (
	MetricSpeed      Metric = "vitesse"
	MetricDistance   Metric = "distance"
	MetricWatts      Metric = "watts"
	MetricCalories   Metric = "calories"
	MetricIntensity  Metric = "intensite"
	MetricIncline    Metric = "inclinaison"
	MetricCadence    Metric = "cadence"
	MetricResistance Metric = "resistance"
	MetricPace       Metric = "allure"
	MetricHeartRate  Metric = "frequenceCardiaque"
)

// MetricOrder lists every metric in output order.
var MetricOrder = []Metric{
	MetricSpeed, MetricDistance, MetricWatts, MetricCalories, MetricIntensity,
	MetricIncline, MetricCadence, MetricResistance, MetricPace, MetricHeartRate,
}

// Metrics holds the metric values present in a record or parameter table.
type Metrics map[Metric]Value

// Phase is the warmup or cooldown sub-table of an ergometer parameter table.
type Phase struct {
	Duration Value
	Rest     Value
	Metrics  Metrics
}

// Params is the parameter table of one objective.
type Params struct {
	Series   Value
	Reps     Value
	Rest     Value
	Duration Value
	Warmup   *Phase
	Cooldown *Phase
	Metrics  Metrics
}

// Exercise is a normalized catalog record with its classification cached.
type Exercise struct {
	Name            string
	Key             string
	Group           string
	SecondaryGroups []string
	Equipment       []string
	Levels          []int
	Usages          []string
	Model           string
	Params          map[string]Params
	Metrics         Metrics

	IsPrincipal    bool
	IsErgometer    bool
	CardioHint     bool
	IsStaticHold   bool
	IsStretch      bool
	MovementFamily string
	SemanticFamily string
	ErgoKind       ErgoKind
}

// FitsLevel reports whether the exercise suits a trainee of the given rank. An
// exercise without level tags suits everyone.
func (e Exercise) FitsLevel(level int) bool {
	if len(e.Levels) == 0 {
		return true
	}
	for _, l := range e.Levels {
		if l <= level {
			return true
		}
	}
	return false
}

// HasUsage reports whether the exercise carries the canonical usage tag.
func (e Exercise) HasUsage(usage string) bool {
	for _, u := range e.Usages {
		if u == usage {
			return true
		}
	}
	return false
}

// IsAbdominal reports whether the primary group is the abdominals.
func (e Exercise) IsAbdominal() bool {
	return e.Group == GroupAbs
}

// ObjectiveKey folds an objective name into the key used by parameter tables:
// "Perte de poids" -> "perte_de_poids".
func ObjectiveKey(objective string) string {
	return strings.ReplaceAll(Fold(objective), " ", "_")
}

// Classification is the externally visible classification of an exercise.
type Classification struct {
	Name           string   `json:"nom"`
	Group          string   `json:"groupeMusculaire"`
	Levels         []int    `json:"niveaux,omitempty"`
	Usages         []string `json:"usages,omitempty"`
	Principal      bool     `json:"principal"`
	Ergometer      bool     `json:"ergometre"`
	CardioHint     bool     `json:"cardio"`
	StaticHold     bool     `json:"statique"`
	Stretch        bool     `json:"etirement"`
	MovementFamily string   `json:"familleMouvement"`
	SemanticFamily string   `json:"familleSemantique"`
	ErgoKind       string   `json:"typeErgometre,omitempty"`
	Objectives     []string `json:"objectifs,omitempty"`
}

// Describe returns the classification of e.
func Describe(e Exercise) Classification {
	c := Classification{
		Name:           e.Name,
		Group:          e.Group,
		Levels:         e.Levels,
		Usages:         e.Usages,
		Principal:      e.IsPrincipal,
		Ergometer:      e.IsErgometer,
		CardioHint:     e.CardioHint,
		StaticHold:     e.IsStaticHold,
		Stretch:        e.IsStretch,
		MovementFamily: e.MovementFamily,
		SemanticFamily: e.SemanticFamily,
	}
	if e.IsErgometer || e.CardioHint {
		c.ErgoKind = string(e.ErgoKind)
	}
	for k := range e.Params {
		c.Objectives = append(c.Objectives, k)
	}
	slices.Sort(c.Objectives)
	return c
}
