package tracks

import "testing"

func TestParseLength(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"empty", "", 0},
		{"minutes seconds", "4:05", 245},
		{"hours minutes seconds", "1:02:03", 3723},
		{"zero clock", "0:00", 0},
		{"bare integer seconds", "245", 245},
		{"fractional seconds floor", "185.43", 185},
		{"too many components", "1:2:3:4", 0},
		{"single component with colon", ":", 0},
		{"garbage", "four minutes", 0},
		{"negative", "-10", 0},
		{"whitespace", "  3:30 ", 210},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLength(tt.raw); got != tt.want {
				t.Errorf("ParseLength(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
