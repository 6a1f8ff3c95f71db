package animation

import (
	"github.com/TeamNorCal/presence/model"
)

// Transition decides whether the engine leaves mode on this tick.  frame is
// the number of frames already rendered in the mode, connected is the
// network state and timedOut is true once the Wi-Fi connect window has
// elapsed.  A connection wins over a timeout seen on the same tick.
//
// Idle has no automatic exit, it is only left through a start request.
func Transition(mode model.Mode, frame int, connected bool, timedOut bool) (next model.Mode, changed bool) {
	switch mode {
	case model.Boot:
		if frame >= BootFrames {
			return model.BootFadeOut, true
		}
	case model.BootFadeOut:
		if frame >= BootFadeOutFrames {
			return model.WifiConnecting, true
		}
	case model.WifiConnecting:
		if connected {
			return model.WifiSuccess, true
		}
		if timedOut {
			return model.WifiFailure, true
		}
	case model.WifiSuccess, model.WifiFailure, model.CenterPulse:
		if frame >= TotalFrames(mode) {
			return model.Idle, true
		}
	}
	return mode, false
}

// clearsOnEntry lists the modes whose entry blanks the strip straight away
// rather than waiting for the next rendered frame
func clearsOnEntry(mode model.Mode) bool {
	return mode == model.Idle || mode == model.WifiConnecting
}
