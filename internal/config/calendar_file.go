package config

import (
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/calendar"
	"gopkg.in/yaml.v3"
)

// CalendarFile is the on-disk holiday calendar.
//
//	include_defaults: true
//	holidays:
//	  - 2025-12-26
//	  - 2025-12-31
type CalendarFile struct {
	IncludeDefaults *bool    `yaml:"include_defaults"`
	Holidays        []string `yaml:"holidays"`
}

// LoadCalendarFile reads a YAML calendar file from path and validates it.
func LoadCalendarFile(path string) (*CalendarFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("calendar: read %s: %w", path, err)
	}
	return ParseCalendarFile(data)
}

// ParseCalendarFile unmarshals YAML bytes into a validated CalendarFile.
func ParseCalendarFile(data []byte) (*CalendarFile, error) {
	var f CalendarFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("calendar: parse: %w", err)
	}
	f.applyDefaults()
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// applyDefaults keeps the built-in holidays unless the file opts out.
func (f *CalendarFile) applyDefaults() {
	if f.IncludeDefaults == nil {
		yes := true
		f.IncludeDefaults = &yes
	}
	for i, h := range f.Holidays {
		f.Holidays[i] = strings.TrimSpace(h)
	}
}

// validate checks every holiday is a real date.
func (f *CalendarFile) validate() error {
	var errs []string
	for i, h := range f.Holidays {
		if _, err := civil.ParseDate(h); err != nil {
			errs = append(errs, fmt.Sprintf("holidays[%d] %q is not a YYYY-MM-DD date", i, h))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("calendar: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Build returns the calendar the file describes.
func (f *CalendarFile) Build() (*calendar.Calendar, error) {
	holidays := append([]string(nil), f.Holidays...)
	if f.IncludeDefaults == nil || *f.IncludeDefaults {
		holidays = append(holidays, calendar.DefaultHolidays()...)
	}
	return calendar.New(holidays...)
}
