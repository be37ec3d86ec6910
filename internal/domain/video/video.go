// Package video provides the Video domain entity.
package video

import "time"

// Video represents a YouTube video with its playback length.
type Video struct {
	ID       string        // YouTube video ID
	Duration time.Duration // Zero when unknown or unparsable
}
