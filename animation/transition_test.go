package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TeamNorCal/presence/model"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		mode      model.Mode
		frame     int
		connected bool
		timedOut  bool
		next      model.Mode
		changed   bool
	}{
		{model.Boot, 39, false, false, model.Boot, false},
		{model.Boot, 40, false, false, model.BootFadeOut, true},
		{model.BootFadeOut, 29, false, false, model.BootFadeOut, false},
		{model.BootFadeOut, 30, false, false, model.WifiConnecting, true},
		{model.WifiConnecting, 500, false, false, model.WifiConnecting, false},
		{model.WifiConnecting, 0, true, false, model.WifiSuccess, true},
		{model.WifiConnecting, 0, false, true, model.WifiFailure, true},
		{model.WifiConnecting, 0, true, true, model.WifiSuccess, true},
		{model.WifiSuccess, 34, false, false, model.WifiSuccess, false},
		{model.WifiSuccess, 35, false, false, model.Idle, true},
		{model.WifiFailure, 47, false, false, model.WifiFailure, false},
		{model.WifiFailure, 48, false, false, model.Idle, true},
		{model.CenterPulse, 79, false, false, model.CenterPulse, false},
		{model.CenterPulse, 80, false, false, model.Idle, true},
		{model.Idle, 10000, true, true, model.Idle, false},
	}

	for _, tc := range cases {
		next, changed := Transition(tc.mode, tc.frame, tc.connected, tc.timedOut)
		assert.Equal(t, tc.next, next, "%s at frame %d", tc.mode, tc.frame)
		assert.Equal(t, tc.changed, changed, "%s at frame %d", tc.mode, tc.frame)
	}
}

func TestConnectivityOnlyMattersWhileConnecting(t *testing.T) {
	for _, mode := range model.Modes() {
		if mode == model.WifiConnecting {
			continue
		}
		next, changed := Transition(mode, 0, true, true)
		assert.False(t, changed, mode.String())
		assert.Equal(t, mode, next)
	}
}
