// Package applicant holds the visa applicant record: a nested JSON document
// addressed with dot-notation paths, matching the field mappings in the form
// layout.
package applicant

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Record is a parsed applicant data document.
type Record map[string]any

// Load reads an applicant record from a JSON file.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading applicant data: %w", err)
	}
	return Parse(data)
}

// Parse decodes an applicant record from JSON bytes.
func Parse(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing applicant data: %w", err)
	}
	return r, nil
}

// Get returns the value at a dot-notation path ("personal_info.last_name"),
// or nil when any segment is missing.
func (r Record) Get(path string) any {
	var value any = map[string]any(r)
	for _, key := range strings.Split(path, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		value, ok = m[key]
		if !ok {
			return nil
		}
	}
	return value
}

// GetString returns the value at path rendered as a string; numbers and other
// scalars are formatted, missing values come back empty.
func (r Record) GetString(path string) string {
	v := r.Get(path)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// FullName assembles first, middle and last name, skipping empty and "N/A"
// parts. The form itself keeps N/A values in place; the full name is for the
// caller (file naming, API responses).
func (r Record) FullName() string {
	var parts []string
	for _, path := range []string{
		"personal_info.first_name",
		"personal_info.middle_name",
		"personal_info.last_name",
	} {
		p := r.GetString(path)
		if p != "" && !strings.EqualFold(p, "N/A") {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
