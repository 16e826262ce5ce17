package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

//go:embed exercises.toml
var defaultCatalogToml string

type Entry struct {
	ID                 string   `json:"id" toml:"id"`
	Name               string   `json:"name" toml:"name"`
	PrimaryMuscleGroup string   `json:"primaryMuscleGroup" toml:"primary_muscle_group"`
	MuscleRegion       string   `json:"muscleRegion" toml:"muscle_region"`
	MovementPattern    string   `json:"movementPattern" toml:"movement_pattern"`
	Category           string   `json:"category" toml:"category"`
	Alternatives       []string `json:"alternatives" toml:"alternatives"`
	EquipmentRequired  []string `json:"equipmentRequired,omitempty" toml:"equipment_required"`
	Difficulty         string   `json:"difficulty,omitempty" toml:"difficulty"`
	VideoURL           string   `json:"videoUrl,omitempty" toml:"video_url"`
}

type catalogFile struct {
	Exercises []Entry `toml:"exercise"`
}

// Catalog is a read-only exercise catalog. All lookups go through Key,
// so they are trimmed and case-insensitive everywhere.
type Catalog struct {
	entries []Entry
	byKey   map[string]int
}

func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byKey:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		key := Key(e.Name)
		if key == "" {
			log.Warnf("catalog: skipping exercise with empty name [id: %s]", e.ID)
			continue
		}
		if _, ok := c.byKey[key]; ok {
			log.Warnf("catalog: duplicate exercise [%s], keeping the first one", e.Name)
			continue
		}
		c.byKey[key] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// Load reads a catalog from a TOML file with [[exercise]] tables.
func Load(path string) (*Catalog, error) {
	var f catalogFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode catalog file [%s]: %w", path, err)
	}
	return New(f.Exercises), nil
}

// Default returns the catalog shipped with the service.
func Default() (*Catalog, error) {
	var f catalogFile
	if _, err := toml.Decode(defaultCatalogToml, &f); err != nil {
		return nil, fmt.Errorf("decode default catalog: %w", err)
	}
	return New(f.Exercises), nil
}

func (c *Catalog) Lookup(name string) (Entry, bool) {
	idx, ok := c.byKey[Key(name)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[idx], true
}

func (c *Catalog) All() []Entry {
	all := make([]Entry, len(c.entries))
	copy(all, c.entries)
	return all
}

func (c *Catalog) Len() int {
	return len(c.entries)
}
