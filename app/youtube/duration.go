package youtube

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedDuration is returned for duration strings that cannot be
// parsed. Callers must not skip such items silently.
var ErrMalformedDuration = errors.New("malformed ISO 8601 duration")

// ParseDuration converts an ISO 8601 duration (the contentDetails.duration
// format, e.g. "PT4M13S" or "P1DT2H") into whole seconds, truncating any
// fractional part. Calendar units (years, months) are rejected: their length
// is ambiguous and the API never emits them.
func ParseDuration(s string) (int64, error) {
	orig := s
	if len(s) < 2 || s[0] != 'P' {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, orig)
	}
	s = s[1:]

	var total float64
	var num string
	inTime := false
	seen := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == 'T':
			if inTime || num != "" {
				return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, orig)
			}
			inTime = true
		case ch >= '0' && ch <= '9' || ch == '.':
			num += string(ch)
		default:
			if num == "" {
				return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, orig)
			}
			value, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, orig)
			}
			var mult float64
			switch {
			case !inTime && ch == 'W':
				mult = 7 * 86400
			case !inTime && ch == 'D':
				mult = 86400
			case inTime && ch == 'H':
				mult = 3600
			case inTime && ch == 'M':
				mult = 60
			case inTime && ch == 'S':
				mult = 1
			default:
				return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, orig)
			}
			total += value * mult
			num = ""
			seen = true
		}
	}

	if num != "" || !seen {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, orig)
	}

	return int64(total), nil
}
