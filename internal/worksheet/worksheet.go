// Package worksheet reads and writes bench worksheets: the YAML files that
// hold a standards table and a list of sample absorbance readings.
//
// Cells are kept as raw strings. Deciding whether a cell is a number is the
// engine's job, so a malformed entry survives loading and is dropped (or
// reported as unset) exactly as it would be in the interactive table.
package worksheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/alexshd/beerslaw"
)

// Sample table limits of the bench worksheet.
const (
	DefaultSamples = 6
	MaxSamples     = 10
)

// Row is one line of the standards table.
type Row struct {
	Concentration string `yaml:"concentration"` // ppm
	Absorbance    string `yaml:"absorbance"`
}

// Worksheet is the on-disk input of one calibration run.
type Worksheet struct {
	MinStandards int      `yaml:"min_standards" validate:"gte=3,lte=20"`
	Standards    []Row    `yaml:"standards" validate:"required,min=1"`
	Samples      []string `yaml:"samples" validate:"required,min=1,max=10"`
}

var validate = validator.New()

// Load reads and validates a worksheet file.
func Load(path string) (*Worksheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %s: %w", path, err)
	}
	ws, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("worksheet %s: %w", path, err)
	}
	return ws, nil
}

// Parse decodes and validates worksheet YAML. A missing min_standards takes
// the engine default; an explicit 0 is invalid.
func Parse(data []byte) (*Worksheet, error) {
	ws := &Worksheet{}
	if err := yaml.Unmarshal(data, ws); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var keys struct {
		MinStandards *int `yaml:"min_standards"`
	}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if keys.MinStandards == nil {
		ws.MinStandards = beerslaw.DefaultConfig().MinStandards
	}
	if err := ws.Validate(); err != nil {
		return nil, err
	}
	return ws, nil
}

// Validate checks the structural limits of the worksheet. It does not look
// inside cells.
func (w *Worksheet) Validate() error {
	err := validate.Struct(w)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid worksheet: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := map[string]string{
		"MinStandards": "min_standards",
		"Standards":    "standards",
		"Samples":      "samples",
	}[fe.Field()]

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// Entries converts the standards table for beerslaw.Fit.
func (w *Worksheet) Entries() []beerslaw.StandardEntry {
	entries := make([]beerslaw.StandardEntry, len(w.Standards))
	for i, r := range w.Standards {
		entries[i] = beerslaw.StandardEntry{
			Concentration: r.Concentration,
			Absorbance:    r.Absorbance,
		}
	}
	return entries
}

// Template returns a blank worksheet with n standard rows and the default
// number of sample slots.
func Template(n int) *Worksheet {
	return &Worksheet{
		MinStandards: n,
		Standards:    make([]Row, n),
		Samples:      make([]string, DefaultSamples),
	}
}

// Write saves the worksheet as YAML, creating parent directories. Existing
// files are not overwritten.
func (w *Worksheet) Write(path string) error {
	data, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to marshal worksheet: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create worksheet directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("worksheet %s already exists: %w", path, err)
		}
		return fmt.Errorf("failed to create worksheet: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write worksheet: %w", err)
	}
	return f.Close()
}
