package config

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, FrontendTUI, cfg.Frontend)
	assert.Equal(t, 700, cfg.ClockHz)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "empty object keeps defaults",
			data: `{}`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "overrides",
			data: `{"frontend": "window", "clock_hz": 0, "scale": 4, "debug": true}`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, FrontendWindow, cfg.Frontend)
				assert.Equal(t, 0, cfg.ClockHz)
				assert.Equal(t, 4, cfg.Scale)
				assert.True(t, cfg.Debug)
				assert.Equal(t, 440, cfg.ToneHz)
			},
		},
		{name: "malformed json", data: `{"frontend":`, wantErr: true},
		{name: "unknown frontend", data: `{"frontend": "sdl"}`, wantErr: true},
		{name: "negative clock", data: `{"clock_hz": -1}`, wantErr: true},
		{name: "zero scale", data: `{"scale": 0}`, wantErr: true},
		{name: "loud", data: `{"volume": 1.5}`, wantErr: true},
		{name: "short keymap", data: `{"keymap": "abc"}`, wantErr: true},
		{name: "negative trace depth", data: `{"trace_depth": -2}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
