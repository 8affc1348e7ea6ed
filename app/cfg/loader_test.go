package cfg

import (
	"strings"
	"testing"
)

func validCfg() *Cfg {
	return &Cfg{
		Region:      "US",
		PageSize:    50,
		TargetCount: 200,
		PageDelay:   5,
		MaxRetries:  3,
	}
}

func TestValidate(t *testing.T) {
	if err := validate(validCfg()); err != nil {
		t.Errorf("Expected valid configuration, got: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Cfg)
		wantMsg string
	}{
		{"zero target count", func(c *Cfg) { c.TargetCount = 0 }, "target count"},
		{"negative target count", func(c *Cfg) { c.TargetCount = -1 }, "target count"},
		{"zero page size", func(c *Cfg) { c.PageSize = 0 }, "page size"},
		{"oversized page size", func(c *Cfg) { c.PageSize = 51 }, "page size"},
		{"negative page delay", func(c *Cfg) { c.PageDelay = -1 }, "page delay"},
		{"negative max retries", func(c *Cfg) { c.MaxRetries = -1 }, "max retries"},
		{"empty region", func(c *Cfg) { c.Region = "" }, "region"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := validCfg()
			c.mutate(cfg)

			err := validate(cfg)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), c.wantMsg) {
				t.Errorf("Expected error mentioning %q, got: %v", c.wantMsg, err)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3"
	if got := GetVersion(); got != "1.2.3" {
		t.Errorf("Expected '1.2.3', got: %s", got)
	}

	Version = ""
	if got := GetVersion(); got != "unknown" {
		t.Errorf("Expected 'unknown', got: %s", got)
	}
}
