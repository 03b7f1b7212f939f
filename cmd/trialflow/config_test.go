package main

import (
	"testing"

	"trialflow/pkg/config"
)

func TestSetConfigKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		check   func(cfg config.Config) bool
	}{
		{
			name: "count format", key: "count_format", value: "parenthetical",
			check: func(cfg config.Config) bool { return cfg.CountFormat == "parenthetical" },
		},
		{name: "bad count format", key: "count_format", value: "roman", wantErr: true},
		{
			name: "arrows off", key: "arrows", value: "false",
			check: func(cfg config.Config) bool { return !cfg.Arrows },
		},
		{
			name: "autocalc on", key: "auto_calc", value: "true",
			check: func(cfg config.Config) bool { return cfg.AutoCalc },
		},
		{name: "bad boolean", key: "arrows", value: "maybe", wantErr: true},
		{
			name: "template", key: "template", value: "blank",
			check: func(cfg config.Config) bool { return cfg.Template == "blank" },
		},
		{
			name: "debounce", key: "watch_debounce_ms", value: "500",
			check: func(cfg config.Config) bool { return cfg.WatchDebounceMs == 500 },
		},
		{name: "negative debounce", key: "watch_debounce_ms", value: "-1", wantErr: true},
		{name: "unknown key", key: "theme", value: "dark", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := setConfigKey(&cfg, tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("expected %s=%s to take effect, got %+v", tt.key, tt.value, cfg)
			}
		})
	}
}
