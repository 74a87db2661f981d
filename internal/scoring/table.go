package scoring

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ErrInvalidTable is returned when a threshold table has gaps, overlaps,
// unlabeled bands or does not start at zero.
var ErrInvalidTable = errors.New("invalid threshold table")

// Band is an inclusive score interval mapped to a result category.
type Band struct {
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
	Label  string `yaml:"label"`
	Advice string `yaml:"advice"`
}

// Contains reports whether score falls inside the band.
func (b Band) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// Table is an ordered, contiguous set of bands covering [0, MaxScore].
type Table struct {
	bands []Band
}

// tableFile is the on-disk layout of a threshold table.
type tableFile struct {
	Bands []Band `yaml:"bands"`
}

// DefaultTable returns the built-in interpretation table.
func DefaultTable() *Table {
	t, err := NewTable([]Band{
		{Min: 0, Max: 5, Label: "No depression",
			Advice: "Your answers suggest no signs of depression. Keep looking after yourself."},
		{Min: 6, Max: 10, Label: "Moderate depression",
			Advice: "Your answers suggest moderate depression. Consider talking to someone you trust or a professional."},
		{Min: 11, Max: 21, Label: "Severe depression",
			Advice: "Your answers suggest severe depression. Please reach out to a mental health professional."},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable validates bands and builds a table from them. Bands must be
// given in ascending order.
func NewTable(bands []Band) (*Table, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: no bands", ErrInvalidTable)
	}
	next := 0
	for i, b := range bands {
		if b.Label == "" {
			return nil, fmt.Errorf("%w: band %d has no label", ErrInvalidTable, i)
		}
		if b.Max < b.Min {
			return nil, fmt.Errorf("%w: band %q has max %d below min %d", ErrInvalidTable, b.Label, b.Max, b.Min)
		}
		if b.Min != next {
			return nil, fmt.Errorf("%w: band %q starts at %d, want %d", ErrInvalidTable, b.Label, b.Min, next)
		}
		next = b.Max + 1
	}
	out := make([]Band, len(bands))
	copy(out, bands)
	return &Table{bands: out}, nil
}

// LoadTable reads a YAML threshold table from path.
//
//	bands:
//	  - {min: 0, max: 5, label: No depression, advice: ...}
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read threshold table: %w", err)
	}
	return ParseTable(data)
}

// ParseTable decodes a YAML threshold table.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	return NewTable(f.Bands)
}

// Classify returns the band containing score. Scores above the table
// resolve to the top band.
func (t *Table) Classify(score int) Band {
	for _, b := range t.bands {
		if b.Contains(score) {
			return b
		}
	}
	if score < 0 {
		return t.bands[0]
	}
	return t.bands[len(t.bands)-1]
}

// Bands returns a copy of the table's bands in ascending order.
func (t *Table) Bands() []Band {
	out := make([]Band, len(t.bands))
	copy(out, t.bands)
	return out
}

// MaxScore is the upper bound of the top band.
func (t *Table) MaxScore() int {
	return t.bands[len(t.bands)-1].Max
}
