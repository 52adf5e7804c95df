package holiday

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the key format used by holiday tables.
const DateLayout = "2006-01-02"

//go:embed india.yaml
var indiaTable []byte

// Calendar returns the raw holiday name for a civil date.
type Calendar interface {
	Lookup(date time.Time) (string, bool)
}

// Table is an in-memory Calendar keyed by YYYY-MM-DD.
type Table map[string]string

// Lookup uses only the year, month and day of date in its own location.
func (t Table) Lookup(date time.Time) (string, bool) {
	name, ok := t[date.Format(DateLayout)]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// ParseTable decodes a YAML holiday table and validates its keys.
func ParseTable(data []byte) (Table, error) {
	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode holiday table: %w", err)
	}
	t := make(Table, len(raw))
	for k, v := range raw {
		d, err := time.Parse(DateLayout, k)
		if err != nil {
			return nil, fmt.Errorf("holiday date %q: %w", k, err)
		}
		t[d.Format(DateLayout)] = v
	}
	return t, nil
}

// LoadTable reads a YAML holiday table from disk.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holiday table: %w", err)
	}
	return ParseTable(data)
}

// India returns the bundled India holiday table.
func India() Table {
	t, err := ParseTable(indiaTable)
	if err != nil {
		panic(fmt.Sprintf("embedded holiday table: %v", err))
	}
	return t
}

// Years returns the sorted distinct years present in the table.
func (t Table) Years() []int {
	seen := map[int]bool{}
	var years []int
	for k := range t {
		d, err := time.Parse(DateLayout, k)
		if err != nil || seen[d.Year()] {
			continue
		}
		seen[d.Year()] = true
		years = append(years, d.Year())
	}
	sort.Ints(years)
	return years
}

// Filter returns a copy of the table restricted to the given years.
// An empty list keeps every entry.
func (t Table) Filter(years ...int) Table {
	if len(years) == 0 {
		return t
	}
	keep := map[int]bool{}
	for _, y := range years {
		keep[y] = true
	}
	out := Table{}
	for k, v := range t {
		d, err := time.Parse(DateLayout, k)
		if err == nil && keep[d.Year()] {
			out[k] = v
		}
	}
	return out
}
