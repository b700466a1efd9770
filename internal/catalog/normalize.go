package catalog

import (
	"maps"
	"slices"
	"strings"

	"github.com/claude/coachgen/internal/models"
)

// Field aliases, in folded-key form. The first alias present in a record wins.
var (
	aliasName       = []string{"nom", "name", "exercice", "exercise", "titre", "title"}
	aliasGroup      = []string{"groupemusculaire", "groupe", "muscle", "musclegroup", "groupeprincipal", "primarymuscle", "muscleprincipal"}
	aliasSecondary  = []string{"groupessecondaires", "musclessecondaires", "secondarymuscles", "secondaires"}
	aliasEquipment  = []string{"materiel", "equipement", "equipment", "machine"}
	aliasLevels     = []string{"niveau", "niveaux", "level", "levels"}
	aliasUsages     = []string{"usage", "usages", "utilisation", "categorieusage", "usagecategory"}
	aliasCollection = []string{"collection", "categorie", "category", "type"}
	aliasModel      = []string{"modele", "model", "marque"}
	aliasParams     = []string{"parametres", "objectifs", "params", "parameters", "objectives"}
	aliasSeries     = []string{"series", "sets", "nbseries"}
	aliasReps       = []string{"repetitions", "reps", "rep", "nbrepetitions"}
	aliasRest       = []string{"repos", "pause", "dureerepos", "rest", "recuperation", "tempsrepos"}
	aliasDuration   = []string{"duree", "duration", "temps", "time", "dureeeffort", "effort"}
	aliasWarmup     = []string{"echauffement", "warmup"}
	aliasCooldown   = []string{"retourcalme", "cooldown", "retouraucalme"}
)

var metricAliases = map[Metric][]string{
	MetricSpeed:      {"vitesse", "speed"},
	MetricDistance:   {"distance"},
	MetricWatts:      {"watts", "puissance", "power"},
	MetricCalories:   {"calories", "kcal"},
	MetricIntensity:  {"intensite", "intensity"},
	MetricIncline:    {"inclinaison", "incline", "pente"},
	MetricCadence:    {"cadence", "rpm", "spm"},
	MetricResistance: {"resistance"},
	MetricPace:       {"allure", "pace"},
	MetricHeartRate:  {"frequencecardiaque", "fc", "heartrate", "bpm"},
}

// fields is a record indexed by folded key.
type fields map[string]any

func indexFields(m map[string]any) fields {
	out := make(fields, len(m))
	// Sorted so that colliding keys ("Nom" and "nom") resolve the same way every run.
	for _, k := range slices.Sorted(maps.Keys(m)) {
		fk := foldKey(k)
		if _, dup := out[fk]; !dup {
			out[fk] = m[k]
		}
	}
	return out
}

func (f fields) get(aliases []string) any {
	for _, a := range aliases {
		if v, ok := f[a]; ok && v != nil {
			return v
		}
	}
	return nil
}

func (f fields) has(aliases []string) bool {
	return f.get(aliases) != nil
}

func (f fields) table(aliases []string) fields {
	m, ok := asMap(f.get(aliases))
	if !ok {
		return nil
	}
	return indexFields(m)
}

// asMap accepts both JSON objects and YAML mappings with non-string keys.
func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case models.RawExercise:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if s, ok := k.(string); ok {
				out[s] = val
			}
		}
		return out, true
	}
	return nil, false
}

// Normalize resolves field aliases of a raw record and classifies it. A record
// without a usable name yields an Exercise with an empty Name.
func Normalize(raw models.RawExercise) Exercise {
	f := indexFields(raw)

	name := asString(f.get(aliasName))
	e := Exercise{
		Name:  name,
		Key:   Fold(name),
		Group: CanonicalGroup(asString(f.get(aliasGroup))),
		Model: asString(f.get(aliasModel)),
	}
	for _, g := range asStrings(f.get(aliasSecondary)) {
		e.SecondaryGroups = append(e.SecondaryGroups, CanonicalGroup(g))
	}
	e.Equipment = asStrings(f.get(aliasEquipment))
	for _, l := range asStrings(f.get(aliasLevels)) {
		if rank := ParseLevel(l); rank > 0 && !slices.Contains(e.Levels, rank) {
			e.Levels = append(e.Levels, rank)
		}
	}
	for _, u := range asStrings(f.get(aliasUsages)) {
		if cu := canonicalUsage(u); cu != "" && !slices.Contains(e.Usages, cu) {
			e.Usages = append(e.Usages, cu)
		}
	}

	e.Params = parseParamsTable(f.get(aliasParams))
	if hasInlineParams(f) {
		if _, ok := e.Params[defaultObjective]; !ok {
			if e.Params == nil {
				e.Params = map[string]Params{}
			}
			e.Params[defaultObjective] = parseParams(f)
		}
	}
	e.Metrics = parseMetrics(f)

	classify(&e, f)
	return e
}

// defaultObjective is the parameter table used when the trainee's objective has
// no entry.
const defaultObjective = "default"

func hasInlineParams(f fields) bool {
	return f.has(aliasSeries) || f.has(aliasReps) || f.has(aliasRest) || f.has(aliasDuration) ||
		f.has(aliasWarmup) || f.has(aliasCooldown)
}

// parseParamsTable reads the per-objective parameter tables, keyed by
// ObjectiveKey.
func parseParamsTable(v any) map[string]Params {
	t, ok := asMap(v)
	if !ok || len(t) == 0 {
		return nil
	}
	out := make(map[string]Params, len(t))
	for _, k := range slices.Sorted(maps.Keys(t)) {
		m, ok := asMap(t[k])
		if !ok {
			continue
		}
		key := ObjectiveKey(k)
		if _, dup := out[key]; dup {
			continue
		}
		out[key] = parseParams(indexFields(m))
	}
	// A flat table ({"series": 3, "repos": 60}) applies to every objective.
	if len(out) == 0 {
		if flat := indexFields(t); hasInlineParams(flat) {
			out[defaultObjective] = parseParams(flat)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseParams(f fields) Params {
	p := Params{
		Series:   parseValue(f.get(aliasSeries)),
		Reps:     parseValue(f.get(aliasReps)),
		Rest:     parseValue(f.get(aliasRest)),
		Duration: parseValue(f.get(aliasDuration)),
		Metrics:  parseMetrics(f),
	}
	if sub := f.table(aliasWarmup); sub != nil {
		ph := parsePhase(sub)
		p.Warmup = &ph
	}
	if sub := f.table(aliasCooldown); sub != nil {
		ph := parsePhase(sub)
		p.Cooldown = &ph
	}
	return p
}

func parsePhase(f fields) Phase {
	return Phase{
		Duration: parseValue(f.get(aliasDuration)),
		Rest:     parseValue(f.get(aliasRest)),
		Metrics:  parseMetrics(f),
	}
}

// parseMetrics keeps only set, non-zero metric values.
func parseMetrics(f fields) Metrics {
	var out Metrics
	for _, m := range MetricOrder {
		v := parseValue(f.get(metricAliases[m]))
		if !v.Set || v.Max == 0 {
			continue
		}
		if out == nil {
			out = Metrics{}
		}
		out[m] = v
	}
	return out
}

func classify(e *Exercise, f fields) {
	e.IsPrincipal = isPrincipal(e.Key, e.Group)
	e.MovementFamily = movementFamily(e.Key)
	e.SemanticFamily = semanticFamily(e.Key, e.MovementFamily, e.Group)
	e.IsStaticHold = staticHoldRule.Match(e.Key)
	e.IsStretch = stretchRule.Match(e.Key)

	for _, c := range asStrings(f.get(aliasCollection)) {
		if ergometerCollections[foldKey(c)] {
			e.IsErgometer = true
		}
	}
	for _, u := range asStrings(f.get(aliasUsages)) {
		if ergometerCollections[foldKey(u)] {
			e.IsErgometer = true
		}
	}

	machine := strings.Join(append([]string{e.Key, Fold(e.Model)}, foldAll(e.Equipment)...), " ")
	e.CardioHint = cardioHintRule.Match(machine)
	e.ErgoKind = ergoKind(machine)
}

func foldAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Fold(s)
	}
	return out
}

// NormalizeAll normalizes a partition, dropping records without a name.
func NormalizeAll(raws []models.RawExercise) []Exercise {
	out := make([]Exercise, 0, len(raws))
	for _, raw := range raws {
		e := Normalize(raw)
		if e.Key == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// NormalizePartition normalizes the records of a named partition. Records of the
// ergometer partition are ergometers whatever their collection field says.
func NormalizePartition(partition string, raws []models.RawExercise) []Exercise {
	out := NormalizeAll(raws)
	if partition == models.PartitionErgometer {
		for i := range out {
			out[i].IsErgometer = true
		}
	}
	return out
}
