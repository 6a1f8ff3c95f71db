package animation

import (
	"sort"

	"github.com/TeamNorCal/presence/model"
)

// Preset is a named center pulse palette used for user feedback
type Preset struct {
	Name   string
	Colors []model.Color
}

const (
	FeedbackSingle = "feedback-single"
	FeedbackDouble = "feedback-double"
	MotionOn       = "motion-on"
	MotionOff      = "motion-off"
)

// Presets is a catalog of presets addressed by name
type Presets map[string]Preset

// DefaultPresets returns the built in feedback pulses
func DefaultPresets() (presets Presets) {
	presets = Presets{}
	presets.Add(Preset{Name: FeedbackSingle, Colors: []model.Color{model.Blue}})
	presets.Add(Preset{Name: FeedbackDouble, Colors: []model.Color{model.Magenta}})
	presets.Add(Preset{Name: MotionOn, Colors: []model.Color{model.Green}})
	presets.Add(Preset{Name: MotionOff, Colors: []model.Color{model.Red}})
	return presets
}

// Add inserts or replaces a preset, palettes longer than MaxPulseColors are
// truncated
func (presets Presets) Add(preset Preset) {
	if len(preset.Colors) > MaxPulseColors {
		preset.Colors = preset.Colors[:MaxPulseColors]
	}
	presets[preset.Name] = preset
}

// Names lists the presets in sorted order
func (presets Presets) Names() (names []string) {
	names = make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Play starts the center pulse with the preset palette
func (e *Engine) Play(preset Preset) {
	e.StartPulse(preset.Colors, len(preset.Colors))
}
