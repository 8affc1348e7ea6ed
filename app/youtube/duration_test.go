package youtube

import (
	"errors"
	"testing"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		input string
		want  int64
	}{
		{"PT60S", 60},
		{"PT1M", 60},
		{"PT59S", 59},
		{"PT1M1S", 61},
		{"PT4M13S", 253},
		{"PT1H2M3S", 3723},
		{"PT2H", 7200},
		{"P1D", 86400},
		{"P1DT1H", 90000},
		{"P1W", 604800},
		{"PT1M3.5S", 63}, // fractional seconds truncate
		{"PT0S", 0},
		{"P0D", 0}, // live streams report a zero duration
	}

	for _, c := range cases {
		got, err := ParseDuration(c.input)
		if err != nil {
			t.Errorf("ParseDuration(%q): unexpected error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestParseDurationMalformed(t *testing.T) {
	cases := []string{
		"",
		"P",
		"PT",
		"T1M",
		"1M",
		"PTM",     // designator without a number
		"PT1X",    // unknown designator
		"PT1M2",   // trailing number without a designator
		"P1H",     // time designator outside the time section
		"PT1D",    // date designator inside the time section
		"P1Y",     // calendar units are rejected
		"PT1MT1S", // duplicate time separator
		"4M13S",
	}

	for _, c := range cases {
		if _, err := ParseDuration(c); !errors.Is(err, ErrMalformedDuration) {
			t.Errorf("ParseDuration(%q): expected ErrMalformedDuration, got %v", c, err)
		}
	}
}
