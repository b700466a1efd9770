package models

// Catalog partition names.
const (
	PartitionMain      = "main"
	PartitionWarmup    = "warmup"
	PartitionCooldown  = "cooldown"
	PartitionErgometer = "ergometer"
)

// Partitions lists every catalog partition in load order.
var Partitions = []string{PartitionMain, PartitionWarmup, PartitionCooldown, PartitionErgometer}

// IsPartition reports whether name is a known catalog partition.
func IsPartition(name string) bool {
	for _, p := range Partitions {
		if p == name {
			return true
		}
	}
	return false
}

// RawExercise is a catalog record as authored. Field names are not consistent
// across sources (nom/name, repos/pause/duree_repos, ...); the catalog package
// resolves them into a canonical form.
type RawExercise map[string]any

// RawCatalog holds the raw records of each partition.
type RawCatalog struct {
	Main      []RawExercise `json:"main"`
	Warmup    []RawExercise `json:"warmup"`
	Cooldown  []RawExercise `json:"cooldown"`
	Ergometer []RawExercise `json:"ergometer"`
}

// Partition returns the records of the named partition.
func (c *RawCatalog) Partition(name string) []RawExercise {
	switch name {
	case PartitionMain:
		return c.Main
	case PartitionWarmup:
		return c.Warmup
	case PartitionCooldown:
		return c.Cooldown
	case PartitionErgometer:
		return c.Ergometer
	default:
		return nil
	}
}

// SetPartition replaces the records of the named partition.
func (c *RawCatalog) SetPartition(name string, records []RawExercise) {
	switch name {
	case PartitionMain:
		c.Main = records
	case PartitionWarmup:
		c.Warmup = records
	case PartitionCooldown:
		c.Cooldown = records
	case PartitionErgometer:
		c.Ergometer = records
	}
}
