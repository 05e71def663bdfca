package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpSearch,
			err:      nil,
			expected: "",
		},
		{
			name:     "search operation",
			op:       OpSearch,
			err:      errors.New("network error"),
			expected: "Failed to search the archive: network error",
		},
		{
			name:     "track load operation",
			op:       OpTracksLoad,
			err:      errors.New("timeout"),
			expected: "Failed to load tracks: timeout",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpTracksLoad,
			context:  "gd1977-05-08",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpTracksLoad,
			context:  "gd1977-05-08",
			err:      errors.New("not found"),
			expected: "Failed to load tracks 'gd1977-05-08': not found",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpTracksLoad,
			context:  "",
			err:      errors.New("not found"),
			expected: "Failed to load tracks: not found",
		},
		{
			name:     "playback with track context",
			op:       OpPlaybackStart,
			context:  "Scarlet Begonias",
			err:      errors.New("decode failed"),
			expected: "Failed to start playback 'Scarlet Begonias': decode failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpSearch, OpOnThisDay,
		OpTracksLoad,
		OpPlaybackStart, OpPlaybackSeek,
		OpFavoriteToggle,
		OpStateLoad, OpStateSave,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
