package generator

import (
	"math/rand/v2"

	"github.com/claude/coachgen/internal/models"
)

// constSource always returns the same value.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed))
}

func ex(name, group string) models.RawExercise {
	return models.RawExercise{"nom": name, "groupe": group}
}

func with(r models.RawExercise, kv ...any) models.RawExercise {
	for i := 0; i+1 < len(kv); i += 2 {
		r[kv[i].(string)] = kv[i+1]
	}
	return r
}

// testRaw is a small but complete catalog. Every time value is either a range or
// a multiple of 15 s.
func testRaw() *models.RawCatalog {
	return &models.RawCatalog{
		Main: []models.RawExercise{
			with(ex("Squat barre", "quadriceps"), "parametres", map[string]any{
				"force":        map[string]any{"series": 5, "repetitions": "3-5", "repos": "150-180"},
				"hypertrophie": map[string]any{"series": 4, "repetitions": "8-12", "repos": 90},
			}),
			ex("Presse à cuisses", "quadriceps"),
			ex("Fentes avant", "quadriceps"),
			with(ex("Leg extension", "quadriceps"), "series", 3, "repetitions", "10-15", "repos", "45-75"),
			ex("Soulevé de terre roumain", "ischio-jambiers"),
			ex("Leg curl allongé", "ischio-jambiers"),
			ex("Leg curl assis", "ischio-jambiers"),
			with(ex("Nordic curl", "ischio-jambiers"), "niveau", "Confirmé"),
			ex("Hip thrust", "fessiers"),
			ex("Kickback fessier à la poulie", "fessiers"),
			ex("Abduction machine", "fessiers"),
			ex("Développé couché", "pectoraux"),
			ex("Développé incliné haltères", "pectoraux"),
			ex("Écarté poulie vis-à-vis", "pectoraux"),
			ex("Tractions", "dos"),
			ex("Rowing barre", "dos"),
			ex("Tirage vertical", "dos"),
			ex("Pull over", "dos"),
			ex("Développé militaire", "epaules"),
			ex("Élévations latérales", "epaules"),
			ex("Oiseau haltères", "epaules"),
			ex("Curl barre", "biceps"),
			ex("Curl marteau", "biceps"),
			ex("Extension triceps poulie", "triceps"),
			ex("Barre au front", "triceps"),
			ex("Dips", "triceps"),
			ex("Extension mollets debout", "mollets"),
			ex("Mollets assis", "mollets"),
			ex("Shrug haltères", "trapezes"),
			ex("Curl poignets", "avant-bras"),
			ex("Adduction machine", "adducteurs"),
			ex("Crunch", "abdominaux"),
			with(ex("Gainage", "abdominaux"), "duree", "30-60"),
			ex("Relevé de jambes", "abdominaux"),
			ex("Hyperextension", "lombaires"),
		},
		Warmup: []models.RawExercise{
			ex("Squat poids du corps", "quadriceps"),
			ex("Pompes inclinées", "pectoraux"),
			ex("Rotations d'épaules", "epaules"),
			ex("Tirage élastique", "dos"),
			ex("Pont fessier", "fessiers"),
			ex("Good morning à vide", "ischio-jambiers"),
		},
		Cooldown: []models.RawExercise{
			ex("Étirement quadriceps", "quadriceps"),
			ex("Étirement pectoraux", "pectoraux"),
			ex("Étirement dorsaux", "dos"),
			ex("Étirement ischios", "ischio-jambiers"),
			ex("Étirement global", "fullbody"),
			ex("Respiration diaphragmatique", "fullbody"),
		},
		Ergometer: []models.RawExercise{
			with(ex("Vélo droit", "fullbody"), "usage", []any{"echauffement", "cardio"}, "parametres", map[string]any{
				"endurance": map[string]any{
					"duree":        "600-900",
					"watts":        150,
					"echauffement": map[string]any{"duree": 300, "watts": 100},
				},
			}),
			with(ex("Tapis de course", "fullbody"), "usage", []any{"cardio", "echauffement"}, "vitesse", "8-12"),
			with(ex("Rameur", "fullbody"), "usage", "echauffement", "distance", 1000),
		},
	}
}

func testCatalog() Catalog {
	return NewCatalog(testRaw())
}
