// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:8080", cfg.Backend.BaseURL)
	assert.Equal(t, 60, cfg.Backend.TimeoutSecs)
	assert.True(t, cfg.UI.TutorialEnabled)
	assert.Equal(t, 24, cfg.UI.TooltipSnoozeHours)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", false},
		{"valid https", "https://knubot.example.com", false},
		{"empty", "", true},
		{"no scheme", "knubot.example.com", true},
		{"garbage", "://nope", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Backend.BaseURL = tc.baseURL
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateClampsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Backend.TimeoutSecs = -5
	cfg.UI.TooltipSnoozeHours = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 60, cfg.Backend.TimeoutSecs)
	assert.Equal(t, 24, cfg.UI.TooltipSnoozeHours)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("KNUBOT_BASE_URL", "https://env.example.com")
	t.Setenv("KNUBOT_TIMEOUT_SECS", "15")
	t.Setenv("HOME", t.TempDir()) // keep any real ~/.knubot out of the test

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 15, cfg.Backend.TimeoutSecs)
}

func TestGlobal(t *testing.T) {
	cfg := Default()
	SetGlobal(cfg)
	assert.Same(t, cfg, Global())
}
