package generator

import (
	"math"

	"github.com/claude/coachgen/internal/catalog"
	"github.com/claude/coachgen/internal/models"
)

// objectiveAliases maps objective keys to the parameter table that serves them.
var objectiveAliases = map[string]string{
	"perte_de_poids":  "endurance",
	"seche":           "endurance",
	"tonification":    "endurance",
	"remise_en_forme": "endurance",
	"prise_de_masse":  "hypertrophie",
	"masse":           "hypertrophie",
	"volume":          "hypertrophie",
	"hypertrophy":     "hypertrophie",
	"puissance":       "force",
	"strength":        "force",
}

// fallbackObjectives are tried when the objective has no table of its own.
var fallbackObjectives = []string{"default", "general"}

// Defaults, in seconds for time fields.
const (
	defaultSeries         = 3
	defaultCooldownSeries = 1
	defaultReps           = 10
	defaultHold           = 30
	defaultRestMain       = 60
	defaultRestLight      = 30
	defaultEffortMain     = 60
	defaultEffortLight    = 180
	secondsPerRep         = 2
	timeStep              = 15
)

func lookupParams(e catalog.Exercise, objective string) catalog.Params {
	key := catalog.ObjectiveKey(objective)
	if p, ok := e.Params[key]; ok {
		return p
	}
	if alias, ok := objectiveAliases[key]; ok {
		if p, ok := e.Params[alias]; ok {
			return p
		}
	}
	for _, k := range fallbackObjectives {
		if p, ok := e.Params[k]; ok {
			return p
		}
	}
	return catalog.Params{}
}

// effectiveErgometer reports whether e is resolved as an ergometer in section.
// The cardio hint only applies outside the main block.
func effectiveErgometer(e catalog.Exercise, section string) bool {
	return e.IsErgometer || (e.CardioHint && section != models.SectionMain)
}

func lightSection(section string) bool {
	return section == models.SectionWarmup || section == models.SectionCooldown
}

// resolveParams turns the parameter table of e into concrete values for the
// given section.
func resolveParams(e catalog.Exercise, objective string, forceReps bool, section string, src Source) models.ResolvedExercise {
	r := models.ResolvedExercise{
		Name:      e.Name,
		Group:     e.Group,
		Equipment: e.Equipment,
	}
	p := lookupParams(e, objective)
	if effectiveErgometer(e, section) {
		resolveErgometer(&r, e, p, section, src)
	} else {
		resolveStrength(&r, e, p, forceReps, section, src)
	}
	return r
}

func resolveStrength(r *models.ResolvedExercise, e catalog.Exercise, p catalog.Params, forceReps bool, section string, src Source) {
	seriesDefault := defaultSeries
	if section == models.SectionCooldown {
		seriesDefault = defaultCooldownSeries
	}
	r.Series = ptr(sampleCount(p.Series, seriesDefault, src))

	useDuration := e.IsStaticHold || e.IsStretch || !forceReps || section == models.SectionCooldown
	switch {
	case useDuration:
		r.Duration = ptr(sampleTime(p.Duration, defaultHold, src))
	case p.Reps.Set:
		r.Repetitions = ptr(sampleCount(p.Reps, defaultReps, src))
	case p.Duration.Set:
		r.Repetitions = ptr(max(sampleCount(p.Duration, 0, src)/secondsPerRep, 1))
	default:
		r.Repetitions = ptr(defaultReps)
	}

	restDefault := defaultRestMain
	if lightSection(section) {
		restDefault = defaultRestLight
	}
	r.Rest = ptr(sampleTime(p.Rest, restDefault, src))
}

func resolveErgometer(r *models.ResolvedExercise, e catalog.Exercise, p catalog.Params, section string, src Source) {
	r.Ergometer = true
	r.ErgoKind = string(e.ErgoKind)

	var phase *catalog.Phase
	switch section {
	case models.SectionWarmup:
		phase = p.Warmup
	case models.SectionCooldown:
		phase = p.Cooldown
	}
	if phase == nil {
		phase = &catalog.Phase{}
	}

	effortDefault, restDefault := defaultEffortMain, defaultRestMain
	if lightSection(section) {
		effortDefault, restDefault = defaultEffortLight, defaultRestLight
	}
	r.Duration = ptr(sampleTime(firstSet(phase.Duration, p.Duration), effortDefault, src))
	r.Rest = ptr(sampleTime(firstSet(phase.Rest, p.Rest), restDefault, src))

	for _, m := range catalog.MetricOrder {
		v := firstSet(phase.Metrics[m], p.Metrics[m], e.Metrics[m])
		if !v.Set {
			continue
		}
		val := sampleMetric(v, src)
		if val == 0 {
			continue
		}
		*metricField(r, m) = ptr(val)
	}
}

func firstSet(values ...catalog.Value) catalog.Value {
	for _, v := range values {
		if v.Set {
			return v
		}
	}
	return catalog.Value{}
}

// sampleCount resolves a count: fixed values are used as given, ranges are
// sampled uniformly.
func sampleCount(v catalog.Value, def int, src Source) int {
	if !v.Set {
		return def
	}
	if !v.IsRange() {
		return int(math.Round(v.Min))
	}
	return randInt(src, int(math.Ceil(v.Min)), int(math.Floor(v.Max)))
}

// sampleTime resolves a time in seconds. Sampled ranges are rounded to 15 s.
func sampleTime(v catalog.Value, def int, src Source) int {
	if !v.Set {
		return def
	}
	if !v.IsRange() {
		return int(math.Round(v.Min))
	}
	t := roundTo(randInt(src, int(math.Ceil(v.Min)), int(math.Floor(v.Max))), timeStep)
	if t == 0 && v.Max > 0 {
		t = timeStep
	}
	return t
}

// sampleMetric keeps fixed metric values as authored (speeds and inclines may be
// fractional) and samples ranges as integers.
func sampleMetric(v catalog.Value, src Source) float64 {
	if !v.IsRange() {
		return v.Min
	}
	lo, hi := int(math.Ceil(v.Min)), int(math.Floor(v.Max))
	if hi < lo {
		return v.Min
	}
	return float64(randInt(src, lo, hi))
}

func metricField(r *models.ResolvedExercise, m catalog.Metric) **float64 {
	switch m {
	case catalog.MetricSpeed:
		return &r.Speed
	case catalog.MetricDistance:
		return &r.Distance
	case catalog.MetricWatts:
		return &r.Watts
	case catalog.MetricCalories:
		return &r.Calories
	case catalog.MetricIntensity:
		return &r.Intensity
	case catalog.MetricIncline:
		return &r.Incline
	case catalog.MetricCadence:
		return &r.Cadence
	case catalog.MetricResistance:
		return &r.Resistance
	case catalog.MetricPace:
		return &r.Pace
	default:
		return &r.HeartRate
	}
}

func ptr[T any](v T) *T {
	return &v
}
