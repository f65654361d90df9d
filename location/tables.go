package location

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

//go:embed data/divisions.json data/districts.json data/upazilas.json
var dataFS embed.FS

// Area is one row of a reference table: a named entry linked to its parent
// level by id.
type Area struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BnName     string `json:"bn_name,omitempty"`
	DivisionID string `json:"division_id,omitempty"`
	DistrictID string `json:"district_id,omitempty"`
}

// Tables holds the three-level static location hierarchy.
type Tables struct {
	divisions []Area
	districts []Area
	upazilas  []Area
}

// The bundled files are database dumps: a JSON array whose third element is
// the table object carrying the rows under "data".
func parseDump(raw []byte) ([]Area, error) {
	var sections []json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, err
	}
	if len(sections) < 3 {
		return nil, fmt.Errorf("dump has %d sections, want at least 3", len(sections))
	}
	var table struct {
		Data []Area `json:"data"`
	}
	if err := json.Unmarshal(sections[2], &table); err != nil {
		return nil, err
	}
	return table.Data, nil
}

func loadTable(name string) []Area {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		log.Printf("[Location] Error reading %s: %v", name, err)
		return nil
	}
	rows, err := parseDump(raw)
	if err != nil {
		// A bad table leaves its candidate list empty rather than failing
		// the whole editor.
		log.Printf("[Location] Error reading %s: %v", name, err)
		return nil
	}
	return rows
}

// Load reads the bundled reference tables.
func Load() *Tables {
	return &Tables{
		divisions: loadTable("divisions.json"),
		districts: loadTable("districts.json"),
		upazilas:  loadTable("upazilas.json"),
	}
}

var (
	defaultTables *Tables
	loadOnce      sync.Once
)

// Default returns the process-wide tables, loaded on first use.
func Default() *Tables {
	loadOnce.Do(func() {
		defaultTables = Load()
	})
	return defaultTables
}

// Divisions returns the top-level entries.
func (t *Tables) Divisions() []Area {
	return t.divisions
}

// DistrictsOf returns the districts whose division_id matches.
func (t *Tables) DistrictsOf(divisionID string) []Area {
	var out []Area
	for _, d := range t.districts {
		if d.DivisionID == divisionID {
			out = append(out, d)
		}
	}
	return out
}

// UpazilasOf returns the upazilas whose district_id matches.
func (t *Tables) UpazilasOf(districtID string) []Area {
	var out []Area
	for _, u := range t.upazilas {
		if u.DistrictID == districtID {
			out = append(out, u)
		}
	}
	return out
}

func findByName(areas []Area, name string) (Area, bool) {
	for _, a := range areas {
		if a.Name == name {
			return a, true
		}
	}
	return Area{}, false
}
