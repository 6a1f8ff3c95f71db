package animation

// The engine owns the animation state and walks it forward on every Tick,
// transitions first and then, if the throttle interval for the current
// mode has passed, a freshly rendered frame

import (
	"github.com/TeamNorCal/presence/model"
)

// State is a snapshot of the engine
type State struct {
	Mode       model.Mode
	Frame      int
	LastUpdate int64 // ms of the last rendered frame, or of the mode entry
	ModeEntry  int64 // ms at which the current mode was entered
	Palette    []model.Color
}

type Engine struct {
	mode       model.Mode
	frame      int
	lastUpdate int64
	modeEntry  int64

	palette    [MaxPulseColors]model.Color
	paletteLen int

	theme   Theme
	strip   Strip
	network NetworkStatus
	clock   Clock
}

// Option customizes an Engine at construction
type Option func(e *Engine)

// WithTheme replaces the colors of the fixed color effects
func WithTheme(th Theme) Option {
	return func(e *Engine) {
		e.theme = th
	}
}

// NewEngine creates an idle engine driving strip.  A nil network is treated
// as never connected, so the Wi-Fi connecting wave always ends in a failure
// after the timeout.
func NewEngine(strip Strip, network NetworkStatus, clock Clock, opts ...Option) (e *Engine) {
	e = &Engine{
		mode:       model.Idle,
		paletteLen: 1,
		theme:      DefaultTheme,
		strip:      strip,
		network:    network,
		clock:      clock,
	}
	e.palette[0] = model.Blue
	for _, opt := range opts {
		opt(e)
	}
	e.lastUpdate = clock.NowMs()
	e.modeEntry = e.lastUpdate
	return e
}

// Setup initializes the strip and blanks it
func (e *Engine) Setup() {
	e.strip.Begin(model.LEDCount)
	e.strip.Clear()
	e.strip.Show()
}

// Tick advances the engine by one polling step
func (e *Engine) Tick() {
	now := e.clock.NowMs()

	if next, changed := e.transition(now); changed {
		e.enter(next, now)
		return
	}

	interval := Interval(e.mode)
	if interval == 0 || now-e.lastUpdate < interval {
		return
	}
	e.lastUpdate = now

	buf := e.theme.Render(e.mode, e.frame, e.palette[:e.paletteLen])
	for i, c := range buf {
		e.strip.SetPixel(i, c)
	}
	e.strip.Show()
	e.frame++
}

func (e *Engine) transition(now int64) (next model.Mode, changed bool) {
	connected := false
	timedOut := false
	if e.mode == model.WifiConnecting {
		if e.network != nil {
			connected = e.network.IsConnected()
		}
		timedOut = now-e.modeEntry > WifiConnectTimeoutMs
	}
	return Transition(e.mode, e.frame, connected, timedOut)
}

func (e *Engine) enter(mode model.Mode, now int64) {
	e.mode = mode
	e.frame = 0
	e.lastUpdate = now
	e.modeEntry = now

	if clearsOnEntry(mode) {
		e.strip.Clear()
		e.strip.Show()
	}
}

// StartBoot plays the boot sweep, which continues into the fade out and the
// Wi-Fi connecting wave
func (e *Engine) StartBoot() {
	e.enter(model.Boot, e.clock.NowMs())
}

// StartWifiConnecting starts the connecting wave and its timeout
func (e *Engine) StartWifiConnecting() {
	e.enter(model.WifiConnecting, e.clock.NowMs())
}

func (e *Engine) StartWifiSuccess() {
	e.enter(model.WifiSuccess, e.clock.NowMs())
}

func (e *Engine) StartWifiFailure() {
	e.enter(model.WifiFailure, e.clock.NowMs())
}

// Stop abandons any running effect and blanks the strip
func (e *Engine) Stop() {
	e.enter(model.Idle, e.clock.NowMs())
}

// StartPulse plays the center pulse cycling through the first count colors.
// count is clamped to [1, MaxPulseColors] and to the number of colors
// supplied, with no colors at all the pulse is blue.
func (e *Engine) StartPulse(colors []model.Color, count int) {
	if count < 1 {
		count = 1
	}
	if count > MaxPulseColors {
		count = MaxPulseColors
	}
	if count > len(colors) {
		count = len(colors)
	}

	if count == 0 {
		e.palette[0] = model.Blue
		e.paletteLen = 1
	} else {
		e.paletteLen = copy(e.palette[:count], colors)
	}

	e.enter(model.CenterPulse, e.clock.NowMs())
}

// StartDefaultPulse plays a single blue center pulse
func (e *Engine) StartDefaultPulse() {
	e.StartPulse([]model.Color{model.Blue}, 1)
}

// Mode returns the active mode
func (e *Engine) Mode() model.Mode {
	return e.mode
}

// Frame returns the number of frames rendered in the active mode
func (e *Engine) Frame() int {
	return e.frame
}

// State returns a copy of the engine state
func (e *Engine) State() (state State) {
	state = State{
		Mode:       e.mode,
		Frame:      e.frame,
		LastUpdate: e.lastUpdate,
		ModeEntry:  e.modeEntry,
		Palette:    make([]model.Color, e.paletteLen),
	}
	copy(state.Palette, e.palette[:e.paletteLen])
	return state
}
