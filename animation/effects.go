package animation

/*
Contains definitions of the effects in the catalog.  Every effect is a closed
form function of the frame number so any frame can be generated on its own
without history.
*/

import (
	"math"

	"github.com/TeamNorCal/presence/model"
)

const (
	// MaxPulseColors bounds the palette used by the center pulse
	MaxPulseColors = 8

	// PulseFrameIntervalMs is the minimum spacing of center pulse frames
	PulseFrameIntervalMs = 24
	// BootWifiFrameIntervalMs is the minimum spacing of boot and Wi-Fi frames
	BootWifiFrameIntervalMs = 32
	// WifiConnectTimeoutMs is how long the connecting wave waits for the network
	WifiConnectTimeoutMs = 70000

	PulseFrames       = 80
	BootFrames        = 40
	BootFadeOutFrames = 30
	WifiSuccessFrames = 35
	WifiFailureFrames = 48

	centerPixel        = 2
	pulseSpeed         = 0.08
	pulseWidth         = 0.8
	pulseFadeInFrames  = 20
	bootOvershoot      = 0.8
	connectWaveWidth   = 1.2
	connectCycle       = 32
	connectFadeIn      = 12
	connectStep        = 0.25
	successOvershoot   = 1.5
	successSweepFrames = WifiSuccessFrames - 8
	successFadeFrames  = 10
	failureCycle       = 12
	failureFloor       = 0.15
	failureFadeFrames  = 12
)

// Interval returns the throttle interval in milliseconds for the mode, idle
// never renders and has no interval
func Interval(mode model.Mode) int64 {
	switch mode {
	case model.CenterPulse:
		return PulseFrameIntervalMs
	case model.Boot, model.BootFadeOut, model.WifiConnecting, model.WifiSuccess, model.WifiFailure:
		return BootWifiFrameIntervalMs
	}
	return 0
}

// TotalFrames is the length of a timed effect, modes that only end on an
// external condition return 0
func TotalFrames(mode model.Mode) int {
	switch mode {
	case model.CenterPulse:
		return PulseFrames
	case model.Boot:
		return BootFrames
	case model.BootFadeOut:
		return BootFadeOutFrames
	case model.WifiSuccess:
		return WifiSuccessFrames
	case model.WifiFailure:
		return WifiFailureFrames
	}
	return 0
}

// Theme carries the colors of the fixed color effects
type Theme struct {
	Boot        model.Color `yaml:"boot"`
	WifiWave    model.Color `yaml:"wifi_wave"`
	WifiSuccess model.Color `yaml:"wifi_success"`
	WifiFailure model.Color `yaml:"wifi_failure"`
}

// DefaultTheme is the dimmed blue-white boot variant
var DefaultTheme = Theme{
	Boot:        model.Color{R: 60, G: 80, B: 120},
	WifiWave:    model.Blue,
	WifiSuccess: model.Green,
	WifiFailure: model.Color{R: 255, G: 0, B: 30},
}

// Render generates the frame for the mode using the default theme
func Render(mode model.Mode, frame int, palette []model.Color) model.Frame {
	return DefaultTheme.Render(mode, frame, palette)
}

// Render generates the pixel colors for frame number frame of the mode.  The
// palette is only used by the center pulse, an empty palette renders dark.
func (th Theme) Render(mode model.Mode, frame int, palette []model.Color) (buf model.Frame) {
	switch mode {
	case model.CenterPulse:
		if len(palette) == 0 {
			return buf
		}
		base := palette[PaletteIndex(frame, len(palette))]
		for i := range buf {
			buf[i] = base.Scale(PulseIntensity(i, frame))
		}
	case model.Boot:
		progress := float64(frame) * (model.LEDCount + bootOvershoot) / BootFrames
		for i := range buf {
			buf[i] = th.Boot.Scale(Smoothstep(progress - float64(i)))
		}
	case model.BootFadeOut:
		fade := 1.0 - float64(frame)/float64(BootFadeOutFrames-1)
		fill(&buf, th.Boot.Scale(fade*fade))
	case model.WifiConnecting:
		fadeIn := Smoothstep(math.Min(float64(frame)/connectFadeIn, 1.0))
		wavePos := float64(Triangle(frame, connectCycle)) * connectStep
		for i := range buf {
			intensity := model.Clamp01(Gaussian(float64(i), wavePos, connectWaveWidth*connectWaveWidth)) * fadeIn
			buf[i] = th.WifiWave.Scale(intensity)
		}
	case model.WifiSuccess:
		sweep := float64(frame) * (model.LEDCount + successOvershoot) / successSweepFrames
		fadeOut := 1.0
		if frame >= WifiSuccessFrames-successFadeFrames {
			fadeOut = 1.0 - float64(frame-(WifiSuccessFrames-successFadeFrames))/successFadeFrames
		}
		fadeOut *= fadeOut
		for i := range buf {
			buf[i] = th.WifiSuccess.Scale(sweepEdge(sweep-float64(i)) * fadeOut)
		}
	case model.WifiFailure:
		fill(&buf, th.WifiFailure.Scale(FailureBlink(frame)))
	}
	return buf
}

// PaletteIndex spreads the palette evenly over the center pulse so every
// color is shown once
func PaletteIndex(frame int, paletteLen int) int {
	if paletteLen <= 0 {
		return 0
	}
	idx := (frame * paletteLen) / PulseFrames % paletteLen
	if idx < 0 {
		idx += paletteLen
	}
	return idx
}

// PulseIntensity is the center pulse brightness of pixel i including the
// ease-in of the first frames
func PulseIntensity(i int, frame int) float64 {
	return pulseWave(i, frame) * pulseFadeIn(frame)
}

// pulseWave is the gaussian wave moving outward from the center pixel
func pulseWave(i int, frame int) float64 {
	distance := math.Abs(float64(i - centerPixel))
	return model.Clamp01(Gaussian(distance, float64(frame)*pulseSpeed, pulseWidth))
}

func pulseFadeIn(frame int) float64 {
	if frame >= pulseFadeInFrames {
		return 1.0
	}
	return math.Pow(float64(frame)/pulseFadeInFrames, 2.0)
}

// sweepEdge is the soft leading edge of the success sweep, the 1.2 plateau
// branch of the tuned curve lands on the same value as the 1.0 branch
func sweepEdge(t float64) float64 {
	switch {
	case t <= 0.0:
		return 0.0
	case t >= 1.2:
		return 1.0
	case t >= 1.0:
		return 1.0
	}
	return EaseOutQuad(t)
}

// FailureBlink is the uniform brightness of the failure effect, a soft rise
// and fall every cycle above a floor, fading out over the final cycle
func FailureBlink(frame int) float64 {
	phase := float64(frame%failureCycle) / (failureCycle / 2)
	if phase > 1.0 {
		phase = 2.0 - phase
	}
	blink := failureFloor + (1.0-failureFloor)*Smoothstep(phase)
	if frame >= WifiFailureFrames-failureFadeFrames {
		blink *= 1.0 - float64(frame-(WifiFailureFrames-failureFadeFrames))/failureFadeFrames
	}
	return blink
}

func fill(buf *model.Frame, c model.Color) {
	for i := range buf {
		buf[i] = c
	}
}
