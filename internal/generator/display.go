package generator

import (
	"github.com/claude/coachgen/internal/catalog"
	"github.com/claude/coachgen/internal/models"
)

// Display labels that are not ergometer metrics.
const (
	LabelSeries      = "series"
	LabelRepetitions = "repetitions"
	LabelDuration    = "duree"
	LabelRest        = "repos"
	LabelLoad        = "charge"
)

// Labels lists every display label in canonical order.
var Labels = []string{
	LabelSeries, LabelRepetitions, LabelDuration, LabelRest, LabelLoad,
	string(catalog.MetricSpeed), string(catalog.MetricDistance), string(catalog.MetricIncline),
	string(catalog.MetricWatts), string(catalog.MetricCadence), string(catalog.MetricResistance),
	string(catalog.MetricPace), string(catalog.MetricCalories), string(catalog.MetricIntensity),
	string(catalog.MetricHeartRate),
}

// ergoLabels are the machine-specific metrics shown for each ergometer kind.
var ergoLabels = map[catalog.ErgoKind][]catalog.Metric{
	catalog.ErgoTreadmill:  {catalog.MetricSpeed, catalog.MetricDistance, catalog.MetricIncline, catalog.MetricPace, catalog.MetricHeartRate},
	catalog.ErgoBike:       {catalog.MetricSpeed, catalog.MetricDistance, catalog.MetricWatts, catalog.MetricCadence, catalog.MetricResistance, catalog.MetricHeartRate},
	catalog.ErgoRower:      {catalog.MetricDistance, catalog.MetricWatts, catalog.MetricPace, catalog.MetricHeartRate},
	catalog.ErgoSkiErg:     {catalog.MetricDistance, catalog.MetricWatts, catalog.MetricPace, catalog.MetricHeartRate},
	catalog.ErgoStepper:    {catalog.MetricDistance, catalog.MetricWatts, catalog.MetricPace, catalog.MetricHeartRate},
	catalog.ErgoElliptical: {catalog.MetricSpeed, catalog.MetricDistance, catalog.MetricCadence, catalog.MetricResistance, catalog.MetricHeartRate},
	catalog.ErgoGeneric:    {catalog.MetricSpeed, catalog.MetricDistance, catalog.MetricWatts},
}

// displayOptions returns which fields a renderer should show for r in section,
// as a map over every label and the enabled labels in canonical order.
func displayOptions(r models.ResolvedExercise, section string, stretch bool) (map[string]bool, []string) {
	on := map[string]bool{}
	switch {
	case r.Ergometer:
		on[LabelDuration] = true
		if section != models.SectionCooldown {
			on[LabelRest] = true
		}
		on[string(catalog.MetricCalories)] = true
		on[string(catalog.MetricIntensity)] = true
		kind := catalog.ErgoKind(r.ErgoKind)
		metrics, ok := ergoLabels[kind]
		if !ok {
			metrics = ergoLabels[catalog.ErgoGeneric]
		}
		for _, m := range metrics {
			on[string(m)] = true
		}
	case section == models.SectionCooldown || stretch:
		on[LabelDuration] = true
	default:
		on[LabelSeries] = true
		on[LabelRest] = true
		if r.Repetitions != nil {
			on[LabelRepetitions] = true
		} else {
			on[LabelDuration] = true
		}
		if section == models.SectionMain {
			on[LabelLoad] = true
		}
	}

	enabled := make(map[string]bool, len(Labels))
	order := []string{}
	for _, l := range Labels {
		enabled[l] = on[l]
		if on[l] {
			order = append(order, l)
		}
	}
	return enabled, order
}
