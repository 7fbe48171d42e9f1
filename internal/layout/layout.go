// Package layout describes the geometry of the Lebanon visa application
// form: where each field, checkbox and label sits on the US Letter page
// (612x792pt, y measured from the top). The default layout is embedded;
// a custom one can be loaded from YAML to adjust for template revisions
// without rebuilding.
package layout

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultYAML []byte

// XY is a page coordinate in points, origin top-left.
type XY [2]float64

func (c XY) X() float64 { return c[0] }
func (c XY) Y() float64 { return c[1] }

// Rect is a redaction area in points.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Label is a piece of static form text drawn when rendering the blank form.
type Label struct {
	Text string  `yaml:"text"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Size float64 `yaml:"size,omitempty"`
	Bold bool    `yaml:"bold,omitempty"`
}

// Layout is the full form description.
type Layout struct {
	FontSize            float64 `yaml:"font_size"`
	CheckboxChar        string  `yaml:"checkbox_char"`
	CheckboxFontSize    float64 `yaml:"checkbox_font_size"`
	BottomLabelFontSize float64 `yaml:"bottom_label_font_size"`

	// ArabicPrefix is the localized "accompanied by" lead-in, stored in
	// logical order so it is shaped together with the name that follows it.
	ArabicPrefix string `yaml:"arabic_prefix"`

	Coordinates map[string]XY `yaml:"coordinates"`

	// CheckboxMappings translate applicant values to checkbox coordinate
	// keys, grouped by field (sex, marital_status, purpose_of_trip,
	// visa_type, visa_duration).
	CheckboxMappings map[string]map[string]string `yaml:"checkbox_mappings"`

	// TextFields maps applicant record dot-paths to coordinate keys.
	TextFields map[string]string `yaml:"text_fields"`

	// DateAliases duplicates one record value into several fields (the trip
	// dates appear both in the duration line and the arrival/departure
	// questions).
	DateAliases map[string][]string `yaml:"date_aliases"`

	VisaTypeLabels map[string]string `yaml:"visa_type_labels"`

	// Redactions white out pre-printed template content before filling.
	Redactions []Rect `yaml:"redactions"`

	// Labels reproduce the blank form's printed text.
	Labels []Label `yaml:"labels"`
}

// Default returns the embedded layout.
func Default() (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(defaultYAML, &l); err != nil {
		return nil, fmt.Errorf("parsing embedded layout: %w", err)
	}
	return &l, nil
}

// Load reads a layout from a YAML file.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file: %w", err)
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing layout file: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	return &l, nil
}

// Save writes the layout to a YAML file.
func (l *Layout) Save(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing layout file: %w", err)
	}
	return nil
}

// DefaultYAML returns the embedded layout source, for dumping a starting
// point that can be edited and passed back with --layout.
func DefaultYAML() []byte {
	return defaultYAML
}

// Validate checks internal consistency: every mapping target must exist in
// the coordinates table, and the sizes must be positive.
func (l *Layout) Validate() error {
	if l.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive, got %v", l.FontSize)
	}
	if l.CheckboxChar == "" {
		return fmt.Errorf("checkbox_char is empty")
	}
	if len(l.Coordinates) == 0 {
		return fmt.Errorf("no coordinates defined")
	}

	for group, values := range l.CheckboxMappings {
		for value, key := range values {
			if _, ok := l.Coordinates[key]; !ok {
				return fmt.Errorf("checkbox mapping %s/%s points at unknown coordinate %q", group, value, key)
			}
		}
	}
	for path, key := range l.TextFields {
		if _, ok := l.Coordinates[key]; !ok {
			return fmt.Errorf("text field %s points at unknown coordinate %q", path, key)
		}
	}
	for path, keys := range l.DateAliases {
		for _, key := range keys {
			if _, ok := l.Coordinates[key]; !ok {
				return fmt.Errorf("date alias %s points at unknown coordinate %q", path, key)
			}
		}
	}
	return nil
}
