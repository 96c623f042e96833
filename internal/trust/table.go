// Package trust maps publisher names to static reliability records.
package trust

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/infomate/veracity/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed table.yaml
var embeddedTable []byte

type tableFile struct {
	Publishers []tableEntry `yaml:"publishers"`
	Default    tableDefault `yaml:"default"`
}

type tableEntry struct {
	Key      string  `yaml:"key"`
	Rank     int     `yaml:"rank"`
	Score    float64 `yaml:"score"`
	Category string  `yaml:"category"`
}

type tableDefault struct {
	Score    float64 `yaml:"score"`
	Category string  `yaml:"category"`
}

// Table is the read-only publisher reliability table.
// It is loaded once at process start and safe for concurrent lookups.
type Table struct {
	entries []tableEntry
	def     tableDefault
}

// New loads the embedded reliability table.
func New() (*Table, error) {
	return parse(embeddedTable)
}

// NewFromFile loads a reliability table from an override file.
func NewFromFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trust table: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse trust table: %w", err)
	}
	if len(file.Publishers) == 0 {
		return nil, fmt.Errorf("trust table has no publishers")
	}
	return &Table{entries: file.Publishers, def: file.Default}, nil
}

// Lookup returns the trust record for a publisher name.
// Matching is case-sensitive substring containment over the table keys in
// file order; the first key contained in the name wins. Unknown publishers
// get the default record rather than a floor score.
func (t *Table) Lookup(publisher string) model.TrustRecord {
	for _, e := range t.entries {
		if strings.Contains(publisher, e.Key) {
			rank := e.Rank
			return model.TrustRecord{
				Rank:     &rank,
				Score:    e.Score,
				Category: e.Category,
			}
		}
	}
	return model.TrustRecord{
		Rank:     nil,
		Score:    t.def.Score,
		Category: t.def.Category,
	}
}
