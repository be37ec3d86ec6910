// Package dictionary loads the per-locale strings used in reports.
package dictionary

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/osa030/playtime/internal/domain/locale"
)

//go:embed locales/*.yaml
var embedded embed.FS

// SpeedPlaceholder is replaced by the formatted multiplier in ReportStrings.Speed.
const SpeedPlaceholder = "{speed}"

// Dictionary holds the strings of one locale.
type Dictionary struct {
	Report    ReportStrings     `yaml:"report"`
	Languages map[string]string `yaml:"languages"`
}

// ReportStrings holds report labels and unit templates.
// Unit templates list plural forms as "one | other" or "one | few | many | other".
type ReportStrings struct {
	By                  string `yaml:"by"`
	TotalPlaylistLength string `yaml:"totalPlaylistLength"`
	TotalVideos         string `yaml:"totalVideos"`
	AverageVideoLength  string `yaml:"averageVideoLength"`
	Speed               string `yaml:"speed" validate:"required,contains={speed}"`
	Day                 string `yaml:"day" validate:"required"`
	Hour                string `yaml:"hour" validate:"required"`
	Minute              string `yaml:"minute" validate:"required"`
	Second              string `yaml:"second" validate:"required"`
	Oops                string `yaml:"oops"`
	Unavailable         string `yaml:"unavailable"`
	UnknownPlaylist     string `yaml:"unknownPlaylist" validate:"required"`
	UnknownChannel      string `yaml:"unknownChannel" validate:"required"`
}

// Provider loads dictionaries from a filesystem and keeps them once loaded.
type Provider struct {
	fs       afero.Fs
	validate *validator.Validate

	mu     sync.RWMutex
	loaded map[locale.Locale]*Dictionary
}

// New creates a provider over the embedded dictionaries. Files in overrideDir,
// when given, take precedence over the embedded ones.
func New(overrideDir string) (*Provider, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded dictionaries")
	}

	var fsys afero.Fs = afero.FromIOFS{FS: sub}
	if overrideDir != "" {
		zlog.Info().Msgf("Dictionary overrides enabled: dir=%s", overrideDir)
		fsys = afero.NewCopyOnWriteFs(fsys, afero.NewBasePathFs(afero.NewOsFs(), overrideDir))
	}
	return NewWithFs(fsys), nil
}

// NewWithFs creates a provider reading "<locale>.yaml" files from the root of fsys.
func NewWithFs(fsys afero.Fs) *Provider {
	return &Provider{
		fs:       fsys,
		validate: validator.New(),
		loaded:   make(map[locale.Locale]*Dictionary),
	}
}

// Get returns the dictionary for l.
func (p *Provider) Get(l locale.Locale) (*Dictionary, error) {
	p.mu.RLock()
	if d, ok := p.loaded[l]; ok {
		p.mu.RUnlock()
		return d, nil
	}
	p.mu.RUnlock()

	data, err := afero.ReadFile(p.fs, l.String()+".yaml")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dictionary for %s", l)
	}

	var d Dictionary
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrapf(err, "failed to parse dictionary for %s", l)
	}
	if err := p.validate.Struct(d.Report); err != nil {
		return nil, errors.Wrapf(err, "invalid dictionary for %s", l)
	}

	p.mu.Lock()
	p.loaded[l] = &d
	p.mu.Unlock()

	return &d, nil
}

// Preload loads every locale so that missing or broken dictionaries fail at startup.
func (p *Provider) Preload(locales []locale.Locale) error {
	for _, l := range locales {
		if _, err := p.Get(l); err != nil {
			return err
		}
	}
	return nil
}
