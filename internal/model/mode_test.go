package model

import "testing"

func TestMode_Toggle(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected Mode
	}{
		{ModeAudio, ModeVideo},
		{ModeVideo, ModeAudio},
		{Mode("random"), ModeAudio},
		{Mode(""), ModeAudio},
	}

	for _, test := range tests {
		result := test.mode.Toggle()
		if result != test.expected {
			t.Errorf("Mode(%s).Toggle() = %s, expected %s", test.mode, result, test.expected)
		}
	}
}

func TestMode_Toggle_Involution(t *testing.T) {
	for _, mode := range []Mode{ModeAudio, ModeVideo} {
		if mode.Toggle().Toggle() != mode {
			t.Errorf("Toggle(Toggle(%s)) should return %s", mode, mode)
		}
	}
}

func TestMode_IsValid(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected bool
	}{
		{ModeAudio, true},
		{ModeVideo, true},
		{Mode("both"), false},
		{Mode(""), false},
	}

	for _, test := range tests {
		if test.mode.IsValid() != test.expected {
			t.Errorf("Mode(%s).IsValid() = %v, expected %v", test.mode, test.mode.IsValid(), test.expected)
		}
	}
}
