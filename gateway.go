package presence

// The gateway owns the animation engine.  It is the only goroutine that
// touches the engine, ticking it on a short interval and applying start
// requests between ticks, and announces every mode change to subscribers

import (
	"fmt"
	"os"
	"time"

	"github.com/karlmutch/errors"

	"github.com/TeamNorCal/presence/animation"
	"github.com/TeamNorCal/presence/model"
)

// Request is applied to the engine from the gateway goroutine
type Request func(engine *animation.Engine)

func Boot() Request { return func(e *animation.Engine) { e.StartBoot() } }

func WifiConnecting() Request { return func(e *animation.Engine) { e.StartWifiConnecting() } }

func WifiSuccess() Request { return func(e *animation.Engine) { e.StartWifiSuccess() } }

func WifiFailure() Request { return func(e *animation.Engine) { e.StartWifiFailure() } }

func Stop() Request { return func(e *animation.Engine) { e.Stop() } }

// Pulse plays a center pulse cycling through the colors
func Pulse(colors ...model.Color) Request {
	palette := append([]model.Color{}, colors...)
	return func(e *animation.Engine) { e.StartPulse(palette, len(palette)) }
}

// Enter starts the effect of a mode directly.  BootFadeOut only follows a
// boot sweep so it plays the whole boot sequence, CenterPulse plays the
// default blue pulse and Idle blanks the strip
func Enter(mode model.Mode) Request {
	switch mode {
	case model.Boot, model.BootFadeOut:
		return Boot()
	case model.WifiConnecting:
		return WifiConnecting()
	case model.WifiSuccess:
		return WifiSuccess()
	case model.WifiFailure:
		return WifiFailure()
	case model.CenterPulse:
		return func(e *animation.Engine) { e.StartDefaultPulse() }
	}
	return Stop()
}

// Play plays a feedback preset
func Play(preset animation.Preset) Request {
	return func(e *animation.Engine) { e.Play(preset) }
}

type Gateway struct {
	engine *animation.Engine
	poll   time.Duration

	requestC chan Request
	statusC  chan *model.StatusMsg
}

func NewGateway(engine *animation.Engine, poll time.Duration) (gw *Gateway) {
	return &Gateway{
		engine:   engine,
		poll:     poll,
		requestC: make(chan Request, 8),
	}
}

// Start initializes the strip and runs the engine until quitC is closed.  The
// returned channel is used to add listeners for mode changes.
func (gw *Gateway) Start(quitC <-chan struct{}) (subscribeC chan chan *model.StatusMsg) {

	gw.statusC, subscribeC = startFanOut(250*time.Millisecond, quitC)

	gw.engine.Setup()

	go gw.run(quitC)

	return subscribeC
}

// Submit queues a request, false is returned if the gateway did not accept it
// within the timeout
func (gw *Gateway) Submit(req Request, timeout time.Duration) bool {
	select {
	case gw.requestC <- req:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (gw *Gateway) run(quitC <-chan struct{}) {

	poll := time.NewTicker(gw.poll)
	defer poll.Stop()

	for {
		select {
		case req := <-gw.requestC:
			mode, frame := gw.engine.Mode(), gw.engine.Frame()
			req(gw.engine)
			gw.publish(mode, frame, true)

		case <-poll.C:
			mode, frame := gw.engine.Mode(), gw.engine.Frame()
			gw.engine.Tick()
			gw.publish(mode, frame, false)

		case <-quitC:
			return
		}
	}
}

// publish announces a mode change, requests are always announced as they
// restart the effect even when the mode stays the same
func (gw *Gateway) publish(before model.Mode, frame int, force bool) {
	after := gw.engine.Mode()
	if !force && after == before {
		return
	}
	msg := model.NewStatusMsg(before, after, frame, time.Now())
	select {
	case gw.statusC <- msg:
	case <-time.After(50 * time.Millisecond):
	}
}

// reportError sends err to errorC without holding up the caller, if nobody
// takes the error it is printed instead
func reportError(errorC chan<- errors.Error, err errors.Error) {
	if errorC == nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return
	}
	go func(err errors.Error) {
		select {
		case errorC <- err:
		case <-time.After(500 * time.Millisecond):
			fmt.Fprintln(os.Stderr, err.Error())
		}
	}(err)
}
