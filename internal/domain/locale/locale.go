// Package locale provides the supported report locales and their number and plural rules.
package locale

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Locale is a supported report language code.
type Locale string

const (
	German  Locale = "de"
	English Locale = "en"
	Spanish Locale = "es"
	French  Locale = "fr"
	Hindi   Locale = "hi"
	Marathi Locale = "mr"
	Dutch   Locale = "nl"
	Russian Locale = "ru"
	Chinese Locale = "zh"
)

// numberingTags holds the formatting tags for locales that do not use Latin digits.
var numberingTags = map[Locale]string{
	Hindi:   "hi-IN-u-nu-deva",
	Marathi: "mr-IN-u-nu-deva",
}

// String returns the locale code.
func (l Locale) String() string {
	return string(l)
}

// Set is the configured set of supported locales with a fallback.
type Set struct {
	supported []Locale
	fallback  Locale
}

// NewSet creates a locale set. The fallback must be one of the supported codes.
func NewSet(codes []string, fallback string) (*Set, error) {
	if len(codes) == 0 {
		return nil, errors.New("at least one locale is required")
	}

	supported := make([]Locale, 0, len(codes))
	for _, code := range codes {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		supported = append(supported, Locale(code))
	}

	def := Locale(strings.ToLower(strings.TrimSpace(fallback)))
	if !slices.Contains(supported, def) {
		return nil, errors.Newf("default locale %q is not in supported locales %v", fallback, codes)
	}

	return &Set{supported: supported, fallback: def}, nil
}

// Resolve returns the locale for code, or the fallback when code is empty or unsupported.
func (s *Set) Resolve(code string) Locale {
	if code == "" {
		return s.fallback
	}
	if l := Locale(code); slices.Contains(s.supported, l) {
		return l
	}
	return s.fallback
}

// Default returns the fallback locale.
func (s *Set) Default() Locale {
	return s.fallback
}

// Supported returns the supported locales in configured order.
func (s *Set) Supported() []Locale {
	return slices.Clone(s.supported)
}
