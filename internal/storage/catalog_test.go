package storage

import (
	"testing"

	"github.com/claude/coachgen/internal/models"
)

// TestComputeCatalogStats verifies per-partition counts, principals and
// ergometer kinds.
func TestComputeCatalogStats(t *testing.T) {
	raw := &models.RawCatalog{
		Main: []models.RawExercise{
			{"nom": "Squat barre", "groupe": "quadriceps"},
			{"nom": "Leg extension", "groupe": "quadriceps"},
			{"nom": "Développé couché", "groupe": "pecs"},
			{"groupe": "dos"},
		},
		Ergometer: []models.RawExercise{
			{"nom": "Rameur"},
			{"nom": "Vélo droit"},
			{"nom": "Vélo couché"},
		},
	}

	stats := ComputeCatalogStats(raw)
	if len(stats) != len(models.Partitions) {
		t.Fatalf("stats = %d partitions, want %d", len(stats), len(models.Partitions))
	}

	main := stats[0]
	if main.Partition != models.PartitionMain {
		t.Fatalf("first partition = %q, want main", main.Partition)
	}
	if main.Exercises != 3 {
		t.Errorf("main exercises = %d, want 3 (unnamed record dropped)", main.Exercises)
	}
	if main.Principals != 2 {
		t.Errorf("main principals = %d, want 2", main.Principals)
	}
	if main.ByGroup["quadriceps"] != 2 || main.ByGroup["pectoraux"] != 1 {
		t.Errorf("main by group = %v", main.ByGroup)
	}

	ergo := stats[3]
	if ergo.Ergometers != 3 {
		t.Errorf("ergometers = %d, want 3", ergo.Ergometers)
	}
	if ergo.ByErgoKind["bike"] != 2 || ergo.ByErgoKind["rower"] != 1 {
		t.Errorf("by kind = %v", ergo.ByErgoKind)
	}

	if stats[1].Exercises != 0 || stats[2].Exercises != 0 {
		t.Errorf("empty partitions counted: %+v %+v", stats[1], stats[2])
	}
}
