package model

import (
	"fmt"
	"strings"
)

// Mode identifies the animation effect that is currently active on the strip
type Mode int

const (
	Idle Mode = iota
	CenterPulse
	Boot
	BootFadeOut
	WifiConnecting
	WifiSuccess
	WifiFailure
)

var modeNames = map[Mode]string{
	Idle:           "idle",
	CenterPulse:    "center-pulse",
	Boot:           "boot",
	BootFadeOut:    "boot-fade-out",
	WifiConnecting: "wifi-connecting",
	WifiSuccess:    "wifi-success",
	WifiFailure:    "wifi-failure",
}

// Modes lists every mode in declaration order
func Modes() []Mode {
	return []Mode{Idle, CenterPulse, Boot, BootFadeOut, WifiConnecting, WifiSuccess, WifiFailure}
}

func (m Mode) String() string {
	if name, isPresent := modeNames[m]; isPresent {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode is the inverse of Mode.String, case and '_' vs '-' insensitive
func ParseMode(name string) (Mode, bool) {
	name = strings.Replace(strings.ToLower(strings.TrimSpace(name)), "_", "-", -1)
	for mode, modeName := range modeNames {
		if modeName == name {
			return mode, true
		}
	}
	return Idle, false
}
