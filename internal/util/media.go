package util

import (
	"encoding/json"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeMediaDuration returns the duration in seconds of an audio or video
// file, using ffprobe. Non-media files (or files ffprobe cannot parse)
// return 0 without an error so uploads never fail on probing.
func ProbeMediaDuration(path string) float64 {
	jsonOutput, err := ffmpeg.Probe(path)
	if err != nil {
		return 0
	}

	var result struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		return 0
	}

	duration, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		return 0
	}
	return duration
}

// IsMediaContentType reports whether the content type warrants a duration probe.
func IsMediaContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "audio/") || strings.HasPrefix(contentType, "video/")
}
