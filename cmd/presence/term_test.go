package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamNorCal/presence"
	"github.com/TeamNorCal/presence/animation"
	"github.com/TeamNorCal/presence/model"
)

func TestKeyRequest(t *testing.T) {
	presets := animation.DefaultPresets()
	clock := presence.NewSystemClock()

	cases := map[rune]model.Mode{
		'b': model.Boot,
		'w': model.WifiConnecting,
		's': model.WifiSuccess,
		'f': model.WifiFailure,
		'p': model.CenterPulse,
		'1': model.CenterPulse,
		'4': model.CenterPulse,
	}
	for r, mode := range cases {
		req, name := keyRequest(r, presets)
		require.NotNil(t, req, string(r))
		assert.NotEmpty(t, name)

		engine := animation.NewEngine(presence.NullStrip{}, nil, clock)
		req(engine)
		assert.Equal(t, mode, engine.Mode(), string(r))
	}

	// Presets are numbered in name order
	req, name := keyRequest('1', presets)
	require.NotNil(t, req)
	assert.Equal(t, animation.FeedbackDouble, name)

	engine := animation.NewEngine(presence.NullStrip{}, nil, clock)
	req(engine)
	assert.Equal(t, []model.Color{model.Magenta}, engine.State().Palette)

	for _, r := range []rune{'5', '0', 'z'} {
		req, _ := keyRequest(r, presets)
		assert.Nil(t, req, string(r))
	}
}

func TestPresetLegend(t *testing.T) {
	legend := presetLegend(animation.DefaultPresets())
	assert.Equal(t, "1 feedback-double  2 feedback-single  3 motion-off  4 motion-on", legend)
}

func TestLoadConfigOverrides(t *testing.T) {
	*backend = "none"
	*probe = "tcp://127.0.0.1:53"
	defer func() {
		*backend = ""
		*probe = ""
	}()

	cfg, err := loadConfig()
	require.Nil(t, err)
	assert.Equal(t, "none", cfg.Strip.Backend)
	assert.Equal(t, "tcp://127.0.0.1:53", cfg.Network.Probe)
	assert.True(t, cfg.Gateway.Boot)

	*backend = "dmx"
	_, err = loadConfig()
	assert.NotNil(t, err)
}

func TestStartRequest(t *testing.T) {
	cfg := presence.DefaultConfig()
	clock := presence.NewSystemClock()

	cases := map[string]model.Mode{
		"":                model.Boot,
		"motion-off":      model.CenterPulse,
		"wifi-failure":    model.WifiFailure,
		"WIFI_CONNECTING": model.WifiConnecting,
		"idle":            model.Idle,
	}
	for name, mode := range cases {
		req, err := startRequest(cfg, name)
		require.Nil(t, err, name)
		require.NotNil(t, req, name)

		engine := animation.NewEngine(presence.NullStrip{}, nil, clock)
		engine.StartWifiSuccess()
		req(engine)
		assert.Equal(t, mode, engine.Mode(), name)
	}

	req, err := startRequest(cfg, "motion-off")
	require.Nil(t, err)
	engine := animation.NewEngine(presence.NullStrip{}, nil, clock)
	req(engine)
	assert.Equal(t, []model.Color{model.Red}, engine.State().Palette)

	cfg.Gateway.Boot = false
	req, err = startRequest(cfg, "")
	assert.Nil(t, err)
	assert.Nil(t, req)

	_, err = startRequest(cfg, "rainbow")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "unknown preset or mode")
}

func TestFileLogger(t *testing.T) {
	name := filepath.Join(t.TempDir(), "presence.log")

	log, f, err := fileLogger(name)
	require.Nil(t, err)
	log.Warn("probe failed", "url", "tcp://10.0.0.1:53")
	require.NoError(t, f.Close())

	content, errGo := os.ReadFile(name)
	require.NoError(t, errGo)
	assert.Contains(t, string(content), "probe failed")

	_, _, err = fileLogger(filepath.Join(t.TempDir(), "missing", "presence.log"))
	assert.NotNil(t, err)
}
