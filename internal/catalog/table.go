// Package catalog holds the category rule table: declarative, per-category rules that map
// attribute keys to highlight phrases and feature blocks.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed rules/categories.yaml
var defaultRules []byte

type HighlightRule struct {
	Key      string `yaml:"key" json:"key"`
	Template string `yaml:"template" json:"template"`
}

type FeatureRule struct {
	Key         string `yaml:"key" json:"key"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// CategoryRule is one row of the table. A row may serve several slugs.
type CategoryRule struct {
	Slugs      []string        `yaml:"slugs" json:"slugs"`
	Highlights []HighlightRule `yaml:"highlights" json:"highlights"`
	Features   []FeatureRule   `yaml:"features" json:"features"`
}

// TableDefinition is the on-disk shape of the table.
type TableDefinition struct {
	Version    string         `yaml:"version" json:"version"`
	Categories []CategoryRule `yaml:"categories" json:"categories"`
}

// Table is immutable after construction and safe for concurrent use.
type Table struct {
	version string
	rows    []CategoryRule
	bySlug  map[string]int
}

func NewTable(def TableDefinition) (*Table, error) {
	t := &Table{
		version: def.Version,
		rows:    make([]CategoryRule, 0, len(def.Categories)),
		bySlug:  make(map[string]int),
	}
	for i, row := range def.Categories {
		if len(row.Slugs) == 0 {
			return nil, fmt.Errorf("category rule %d has no slugs", i)
		}
		for _, slug := range row.Slugs {
			key := normalizeSlug(slug)
			if _, dup := t.bySlug[key]; dup {
				return nil, fmt.Errorf("slug %q is declared twice", slug)
			}
			t.bySlug[key] = len(t.rows)
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// Parse decodes a YAML table definition.
func Parse(data []byte) (*Table, error) {
	var def TableDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse category rules: %w", err)
	}
	return NewTable(def)
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the table embedded in the binary.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Parse(defaultRules)
	})
	return defaultTable, defaultErr
}

// MustDefault panics if the embedded table is broken, which only a bad build can cause.
func MustDefault() *Table {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Version() string { return t.version }

func (t *Table) Len() int { return len(t.rows) }

// Lookup finds the rule row serving slug. Unknown slugs are not an error.
func (t *Table) Lookup(slug string) (CategoryRule, bool) {
	idx, ok := t.bySlug[normalizeSlug(slug)]
	if !ok {
		return CategoryRule{}, false
	}
	return t.rows[idx], true
}

// Resolve returns the rule rows for slugs in the given order, each row at most once.
func (t *Table) Resolve(slugs []string) []CategoryRule {
	seen := make(map[int]bool)
	var out []CategoryRule
	for _, slug := range slugs {
		idx, ok := t.bySlug[normalizeSlug(slug)]
		if !ok || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, t.rows[idx])
	}
	return out
}

// Definition returns a copy of the table in its serialisable form.
func (t *Table) Definition() TableDefinition {
	rows := make([]CategoryRule, len(t.rows))
	copy(rows, t.rows)
	return TableDefinition{Version: t.version, Categories: rows}
}

func normalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Render fills {value} in a template.
func Render(template, value string) string {
	return strings.ReplaceAll(template, "{value}", value)
}
