package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PORT", "")

	cfg := Load()
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "gpt-4o", cfg.Vision.Model)
	require.Equal(t, "https://api.openai.com/v1", cfg.Vision.BaseURL)
	require.Error(t, cfg.RequireVision())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("VISION_MODEL", "gpt-4o-mini")
	t.Setenv("MAX_TOKENS", "250")
	t.Setenv("TEMPERATURE", "0.3")

	cfg := Load()
	require.NoError(t, cfg.RequireVision())
	require.Equal(t, "gpt-4o-mini", cfg.Vision.Model)
	require.Equal(t, 250, cfg.Vision.MaxTokens)
	require.InDelta(t, 0.3, cfg.Vision.Temperature, 1e-9)
}

func TestSheetColumnRange(t *testing.T) {
	sc := SheetConfig{}
	require.Nil(t, sc.ColumnRange())

	sc = SheetConfig{StartColumn: "C", EndColumn: "F"}
	rng := sc.ColumnRange()
	require.NotNil(t, rng)
	require.Equal(t, "C", rng.Start)
	require.Equal(t, "F", rng.End)
}
