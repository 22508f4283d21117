package summarizer

import (
	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders a Summary as YAML for machine consumption.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAMLFormatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format implements Formatter. Durations are written in time.Duration notation.
func (f *YAMLFormatter) Format(s *Summary) string {
	data, err := yaml.Marshal(s)
	if err != nil {
		// Summary holds only plain values; Marshal cannot fail on it.
		panic(err)
	}
	return string(data)
}

var _ Formatter = (*YAMLFormatter)(nil)
