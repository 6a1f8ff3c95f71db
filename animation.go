package presence

// This file contains the glue between the host and the animation engine,
// the engine is handed a strip backend, a network status source and a
// clock and is otherwise left alone by everything except the gateway

import (
	"time"

	"github.com/TeamNorCal/presence/animation"
	"github.com/TeamNorCal/presence/model"
)

// SystemClock counts monotonic milliseconds from its creation
type SystemClock struct {
	start time.Time
}

func NewSystemClock() (clock *SystemClock) {
	return &SystemClock{start: time.Now()}
}

func (clock *SystemClock) NowMs() int64 {
	return int64(time.Since(clock.start) / time.Millisecond)
}

// NewEngine creates an engine using the theme from the configuration
func NewEngine(cfg *Config, strip animation.Strip, network animation.NetworkStatus, clock animation.Clock) (engine *animation.Engine) {
	if clock == nil {
		clock = NewSystemClock()
	}
	return animation.NewEngine(strip, network, clock, animation.WithTheme(cfg.Theme))
}

// NullStrip discards everything, used when running without LEDs
type NullStrip struct{}

func (NullStrip) Begin(count int) {}

func (NullStrip) Clear() {}

func (NullStrip) SetPixel(i int, c model.Color) {}

func (NullStrip) Show() {}
