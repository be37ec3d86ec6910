// Package report builds the localized playlist duration report.
package report

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/osa030/playtime/internal/domain/locale"
	"github.com/osa030/playtime/internal/domain/playlist"
	"github.com/osa030/playtime/internal/domain/video"
	"github.com/osa030/playtime/internal/infra/dictionary"
)

// Speeds are the playback multipliers listed in every report.
var Speeds = []float64{1.25, 1.5, 1.75, 2.0}

// Report is the duration summary of one playlist.
type Report struct {
	ChannelTitle           string  `json:"channelTitle"`
	Title                  string  `json:"title"`
	TotalVideos            string  `json:"totalVideos"`
	UnavailableVideosCount int     `json:"unavailableVideosCount"`
	UnavailableVideos      string  `json:"unavailableVideos"`
	TotalDuration          string  `json:"totalDuration"`
	AverageVideoLength     string  `json:"averageVideoLength"`
	Speeds                 []Speed `json:"speeds"`
}

// Speed is the playlist length at one playback multiplier.
type Speed struct {
	Label string `json:"label"`
	Time  string `json:"time"`
}

// Dictionaries supplies the strings of a locale.
type Dictionaries interface {
	Get(l locale.Locale) (*dictionary.Dictionary, error)
}

// Builder assembles reports.
type Builder struct {
	dicts Dictionaries
}

// NewBuilder creates a report builder.
func NewBuilder(dicts Dictionaries) *Builder {
	return &Builder{dicts: dicts}
}

// Build summarizes videos of pl in locale l.
func (b *Builder) Build(pl playlist.Playlist, videos []video.Video, l locale.Locale) (*Report, error) {
	dict, err := b.dicts.Get(l)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dictionary")
	}
	strs := dict.Report
	f := locale.NewFormatter(l)

	total := playlist.TotalDuration(videos)
	unavailable := pl.Unavailable(len(videos))

	speeds := make([]Speed, 0, len(Speeds))
	for _, s := range Speeds {
		speeds = append(speeds, Speed{
			Label: strings.ReplaceAll(strs.Speed, dictionary.SpeedPlaceholder, f.Decimal(s)),
			Time:  FormatDuration(time.Duration(float64(total)/s), f, strs),
		})
	}

	return &Report{
		ChannelTitle:           orDefault(pl.ChannelTitle, strs.UnknownChannel),
		Title:                  orDefault(pl.Title, strs.UnknownPlaylist),
		TotalVideos:            f.Integer(len(videos)),
		UnavailableVideosCount: unavailable,
		UnavailableVideos:      f.Integer(unavailable),
		TotalDuration:          FormatDuration(total, f, strs),
		AverageVideoLength:     FormatDuration(playlist.AverageDuration(videos), f, strs),
		Speeds:                 speeds,
	}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
