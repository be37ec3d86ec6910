package analyzer

import (
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
)

func TestCachePolicy_Lifetime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	policy := CachePolicy{
		Short:     time.Hour,
		Long:      24 * time.Hour,
		Threshold: 24 * time.Hour,
		Now:       func() time.Time { return now },
	}

	tests := []struct {
		name        string
		publishedAt mo.Option[time.Time]
		want        time.Duration
	}{
		{name: "unknown publish date", publishedAt: mo.None[time.Time](), want: time.Hour},
		{name: "two hours old", publishedAt: mo.Some(now.Add(-2 * time.Hour)), want: time.Hour},
		{name: "thirty days old", publishedAt: mo.Some(now.Add(-30 * 24 * time.Hour)), want: 24 * time.Hour},
		{name: "exactly at threshold", publishedAt: mo.Some(now.Add(-24 * time.Hour)), want: 24 * time.Hour},
		{name: "published in the future", publishedAt: mo.Some(now.Add(time.Hour)), want: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Lifetime(tt.publishedAt))
		})
	}
}

func TestCachePolicy_DefaultClock(t *testing.T) {
	policy := CachePolicy{Short: time.Minute, Long: time.Hour, Threshold: 24 * time.Hour}

	assert.Equal(t, time.Minute, policy.Lifetime(mo.Some(time.Now().Add(-time.Hour))))
	assert.Equal(t, time.Hour, policy.Lifetime(mo.Some(time.Now().Add(-48*time.Hour))))
}
