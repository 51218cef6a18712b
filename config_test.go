package redline_test

import (
	"testing"

	"github.com/fwojciec/redline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, redline.DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*redline.Config)
		errMsg string
	}{
		{"unknown level", func(c *redline.Config) { c.Log.Level = "trace" }, "log.level"},
		{"unknown format", func(c *redline.Config) { c.Log.Format = "xml" }, "log.format"},
		{"unknown theme", func(c *redline.Config) { c.Render.Theme = "neon" }, "render.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := redline.DefaultConfig()
			tt.mutate(&cfg)

			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
