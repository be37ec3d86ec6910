package playlist

import (
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"

	"github.com/osa030/playtime/internal/domain/video"
)

func TestTotalDuration(t *testing.T) {
	videos := []video.Video{
		{ID: "a", Duration: time.Hour},
		{ID: "b", Duration: 30 * time.Minute},
		{ID: "c", Duration: 0},
		{ID: "d", Duration: -time.Minute},
	}

	assert.Equal(t, 90*time.Minute, TotalDuration(videos))
	assert.Equal(t, time.Duration(0), TotalDuration(nil))
}

func TestAverageDuration(t *testing.T) {
	videos := []video.Video{
		{ID: "a", Duration: time.Hour},
		{ID: "b", Duration: 30 * time.Minute},
	}

	assert.Equal(t, 45*time.Minute, AverageDuration(videos))
	assert.Equal(t, time.Duration(0), AverageDuration(nil))
}

func TestPlaylist_Unavailable(t *testing.T) {
	tests := []struct {
		name      string
		itemCount mo.Option[int]
		fetched   int
		want      int
	}{
		{name: "some missing", itemCount: mo.Some(100), fetched: 97, want: 3},
		{name: "unknown item count", itemCount: mo.None[int](), fetched: 97, want: 0},
		{name: "more fetched than declared", itemCount: mo.Some(5), fetched: 7, want: 0},
		{name: "all present", itemCount: mo.Some(3), fetched: 3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Playlist{ID: "PL1", ItemCount: tt.itemCount}
			assert.Equal(t, tt.want, p.Unavailable(tt.fetched))
		})
	}
}
