package analyzer

import (
	"time"

	"github.com/samber/mo"
)

// CachePolicy picks how long upstream responses for a playlist may be reused.
// Recently published playlists still change (new videos, edited titles), so
// they get the short lifetime; older ones the long lifetime.
type CachePolicy struct {
	Short     time.Duration
	Long      time.Duration
	Threshold time.Duration    // age below which a playlist counts as recent
	Now       func() time.Time // defaults to time.Now
}

// Lifetime returns the cache lifetime for a playlist published at publishedAt.
// An unknown publish date gets the short lifetime.
func (p CachePolicy) Lifetime(publishedAt mo.Option[time.Time]) time.Duration {
	published, ok := publishedAt.Get()
	if !ok {
		return p.Short
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	if now().Sub(published) < p.Threshold {
		return p.Short
	}
	return p.Long
}
