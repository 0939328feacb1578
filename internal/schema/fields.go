// Package schema resolves which dynamic attribute fields are active for a
// product category, from a JSON reference document loaded once at startup.
package schema

import (
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Field is one active attribute field of a category, with its UI label.
type Field struct {
	Name    string
	Display string
	Type    string
	Options []string
}

type fieldConfig struct {
	Display string   `json:"display"`
	Used    bool     `json:"used"`
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

type categoryConfig struct {
	Fields map[string]fieldConfig `json:"fields"`
}

type Resolver struct {
	byCategory map[string]categoryConfig
}

// Load reads the field document at path. Reference-data unavailability must
// degrade, not crash: any load failure yields a resolver that serves empty
// field lists.
func Load(path string) *Resolver {
	r := &Resolver{byCategory: map[string]categoryConfig{}}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("field configuration not loaded from %s: %v", path, err)
		return r
	}
	if err := json.Unmarshal(data, &r.byCategory); err != nil {
		log.Errorf("error reading field configuration %s: %v", path, err)
		r.byCategory = map[string]categoryConfig{}
		return r
	}

	log.Infof("loaded field configuration for %d categories from %s", len(r.byCategory), path)
	return r
}

// CategoryCount reports how many categories the document configured.
func (r *Resolver) CategoryCount() int {
	return len(r.byCategory)
}

// FieldsFor returns the active fields of a category, sorted by field name so
// the order is deterministic (the source document is an unordered JSON
// object). Unknown categories and empty configurations yield an empty slice,
// never an error.
func (r *Resolver) FieldsFor(categoryID int) []Field {
	if len(r.byCategory) == 0 {
		log.Warnf("field configuration is empty, no fields for category %d", categoryID)
		return []Field{}
	}

	cfg, ok := r.byCategory[strconv.Itoa(categoryID)]
	if !ok {
		return []Field{}
	}

	fields := make([]Field, 0, len(cfg.Fields))
	for name, fc := range cfg.Fields {
		if !fc.Used {
			continue
		}
		display := fc.Display
		if display == "" {
			display = name
		}
		typ := strings.ToLower(fc.Type)
		if typ == "" {
			typ = "text"
		}
		fields = append(fields, Field{
			Name:    name,
			Display: display,
			Type:    typ,
			Options: fc.Options,
		})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}
