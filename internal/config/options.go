package config

import (
	"strconv"
	"strings"

	"github.com/tunecatcher/tunecatcher/internal/model"
)

// Available output formats and qualities
var (
	AudioFormats     = []string{"m4a", "mp3", "wav", "flac"}
	VideoFormats     = []string{"mkv", "mp4"}
	VideoResolutions = []string{"720p", "480p", "360p"}
)

// Supported browsers for cookie extraction
var SupportedBrowsers = []string{"none", "chrome", "firefox", "edge", "brave", "opera"}

// FilenamePresetCustom selects the user-supplied template instead of a preset
const FilenamePresetCustom = "Custom..."

// FilenamePresets maps preset names to output filename templates
var FilenamePresets = map[string]string{
	"Title [ID]":            "%(title)s [%(id)s]",
	"Title":                 "%(title)s",
	"Uploader - Title":      "%(uploader)s - %(title)s",
	"Uploader - Title [ID]": "%(uploader)s - %(title)s [%(id)s]",
}

// PlaylistLimitAll disables the playlist fetch bound
const PlaylistLimitAll = "all"

// FilenameTemplate resolves the active output filename template from the
// configured preset, falling back to the custom template.
func (s Settings) FilenameTemplate() string {
	if s.FilenamePreset != FilenamePresetCustom {
		if template, ok := FilenamePresets[s.FilenamePreset]; ok {
			return template
		}
	}
	return s.FilenameTemplateCustom
}

// TargetFormat returns the output format for the current mode
func (s Settings) TargetFormat() string {
	if s.Mode == model.ModeVideo {
		return s.VideoFormat
	}
	return s.AudioFormat
}

// PlaylistLimitValue returns the configured playlist bound as an integer,
// 0 meaning unbounded.
func (s Settings) PlaylistLimitValue() int {
	if strings.EqualFold(s.PlaylistLimit, PlaylistLimitAll) {
		return 0
	}
	n, err := strconv.Atoi(s.PlaylistLimit)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// ValidatePlaylistLimit reports whether a playlist limit value is storable:
// a positive integer or the literal "all".
func ValidatePlaylistLimit(value string) bool {
	if strings.EqualFold(value, PlaylistLimitAll) {
		return true
	}
	n, err := strconv.Atoi(value)
	return err == nil && n > 0 && !strings.HasPrefix(value, "+")
}

// ValidateQualityChoice validates a 1-based menu choice against the given
// quality list. Returns the chosen quality, or "" when the choice is not a
// valid index.
func ValidateQualityChoice(choice string, qualities []string) string {
	index, err := strconv.Atoi(choice)
	if err != nil {
		return ""
	}
	if index < 1 || index > len(qualities) {
		return ""
	}
	return qualities[index-1]
}
