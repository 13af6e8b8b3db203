// Package catalog loads and validates activity records used to fill activity stores.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/boredclicker/bored"
	"gopkg.in/yaml.v3"
)

//go:embed activities.json
var defaultCatalog []byte

var ErrDuplicatedKey = errors.New("duplicated activity key")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf guesses format from file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported catalog extension %q", filepath.Ext(path))
	}
}

// Record is the serialized form of a single activity.
type Record struct {
	Activity      string  `json:"activity" yaml:"activity" validate:"required"`
	Type          string  `json:"type" yaml:"type" validate:"activity_type"`
	Participants  int     `json:"participants" yaml:"participants" validate:"min=1,max=5"`
	Price         float64 `json:"price" yaml:"price" validate:"min=0,max=1"`
	Link          string  `json:"link" yaml:"link" validate:"omitempty,url"`
	Key           string  `json:"key" yaml:"key" validate:"activity_key"`
	Accessibility float64 `json:"accessibility" yaml:"accessibility" validate:"min=0,max=1"`
}

func (r Record) ToDomain() bored.Activity {
	return bored.Activity{
		Activity:      r.Activity,
		Type:          bored.Type(r.Type),
		Participants:  r.Participants,
		Price:         r.Price,
		Link:          r.Link,
		Key:           bored.Key(r.Key),
		Accessibility: r.Accessibility,
	}
}

func FromDomain(a bored.Activity) Record {
	return Record{
		Activity:      a.Activity,
		Type:          string(a.Type),
		Participants:  a.Participants,
		Price:         a.Price,
		Link:          a.Link,
		Key:           string(a.Key),
		Accessibility: a.Accessibility,
	}
}

// Default returns the catalog compiled into the binary.
func Default() ([]bored.Activity, error) {
	return Load(bytes.NewReader(defaultCatalog), FormatJSON)
}

func LoadFile(path string) ([]bored.Activity, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f, format)
}

// Load decodes records and validates every one of them. Keys must be unique.
func Load(r io.Reader, format Format) ([]bored.Activity, error) {
	var records []Record
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}

	activities := make([]bored.Activity, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, record := range records {
		if err := validate.Struct(record); err != nil {
			return nil, fmt.Errorf("record %d (key %q): %w", i, record.Key, err)
		}
		if seen[record.Key] {
			return nil, fmt.Errorf("record %d: %w: %s", i, ErrDuplicatedKey, record.Key)
		}
		seen[record.Key] = true
		activities = append(activities, record.ToDomain())
	}
	return activities, nil
}
