package tracks

import (
	"math"
	"strconv"
	"strings"
)

// ParseLength converts the heterogeneous duration strings found in file
// manifests into integer seconds. Accepted forms: "M:SS", "H:MM:SS", and bare
// numeric seconds (fractional values truncate toward the floor). Anything
// else, including the empty string, yields 0.
func ParseLength(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	if strings.ContainsRune(raw, ':') {
		return parseClockLength(raw)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(math.Floor(v))
}

func parseClockLength(raw string) int {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0
	}

	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return 0
		}
		values[i] = v
	}

	if len(values) == 2 {
		return values[0]*60 + values[1]
	}
	return values[0]*3600 + values[1]*60 + values[2]
}
