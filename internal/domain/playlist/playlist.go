// Package playlist provides the Playlist domain entity.
package playlist

import (
	"time"

	"github.com/samber/mo"

	"github.com/osa030/playtime/internal/domain/video"
)

// Playlist represents a YouTube playlist snapshot.
type Playlist struct {
	ID           string               // YouTube playlist ID
	Title        string               // Playlist title (may be localized)
	ChannelTitle string               // Owning channel name
	PublishedAt  mo.Option[time.Time] // Publish date, when reported
	ItemCount    mo.Option[int]       // Declared item count, includes unavailable videos
}

// TotalDuration returns the summed duration of videos, ignoring non-positive durations.
func TotalDuration(videos []video.Video) time.Duration {
	var total time.Duration
	for _, v := range videos {
		if v.Duration > 0 {
			total += v.Duration
		}
	}
	return total
}

// AverageDuration returns the mean video duration, or zero for no videos.
func AverageDuration(videos []video.Video) time.Duration {
	if len(videos) == 0 {
		return 0
	}
	return TotalDuration(videos) / time.Duration(len(videos))
}

// Unavailable estimates how many declared items were not returned as videos.
// Owners can hide, delete or make videos private; those still count in ItemCount.
func (p *Playlist) Unavailable(fetched int) int {
	count, ok := p.ItemCount.Get()
	if !ok {
		return 0
	}
	return max(0, count-fetched)
}
