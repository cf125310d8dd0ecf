package model

// Mode represents the download mode
type Mode string

const (
	// ModeAudio downloads the best audio-only stream and transcodes it
	ModeAudio Mode = "audio"

	// ModeVideo downloads video merged with audio into a container
	ModeVideo Mode = "video"
)

// String returns the string representation of Mode
func (m Mode) String() string {
	return string(m)
}

// IsValid returns true if the mode is one of the known values
func (m Mode) IsValid() bool {
	return m == ModeAudio || m == ModeVideo
}

// Toggle switches between audio and video mode. Any value that is not
// audio toggles to audio, so an invalid stored mode recovers to audio.
func (m Mode) Toggle() Mode {
	if m == ModeAudio {
		return ModeVideo
	}
	return ModeAudio
}
