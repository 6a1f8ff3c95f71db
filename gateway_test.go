package presence

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamNorCal/presence/animation"
	"github.com/TeamNorCal/presence/model"
)

// lockedStrip records shown frames, it is read from the test goroutine while
// the gateway writes to it
type lockedStrip struct {
	pixels model.Frame
	shown  []model.Frame
	sync.Mutex
}

func (s *lockedStrip) Begin(count int) {}

func (s *lockedStrip) Clear() {
	s.Lock()
	defer s.Unlock()
	s.pixels = model.Frame{}
}

func (s *lockedStrip) SetPixel(i int, c model.Color) {
	s.Lock()
	defer s.Unlock()
	s.pixels[i] = c
}

func (s *lockedStrip) Show() {
	s.Lock()
	defer s.Unlock()
	s.shown = append(s.shown, s.pixels)
}

func (s *lockedStrip) count() int {
	s.Lock()
	defer s.Unlock()
	return len(s.shown)
}

func nextStatus(t *testing.T, statusC chan *model.StatusMsg) *model.StatusMsg {
	select {
	case msg := <-statusC:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("no status message received")
	}
	return nil
}

func TestGatewayRunsRequests(t *testing.T) {
	strip := &lockedStrip{}
	engine := NewEngine(DefaultConfig(), strip, StaticNetwork(false), nil)
	gw := NewGateway(engine, time.Millisecond)

	quitC := make(chan struct{})
	defer close(quitC)

	subscribeC := gw.Start(quitC)
	statusC := make(chan *model.StatusMsg, 16)
	subscribeC <- statusC

	// Give the fan out a moment to register the subscriber
	time.Sleep(20 * time.Millisecond)

	require.True(t, gw.Submit(Pulse(model.Red, model.Green), time.Second))

	msg := nextStatus(t, statusC)
	assert.Equal(t, model.Idle, msg.From)
	assert.Equal(t, model.CenterPulse, msg.To)

	// The pulse runs for 80 frames at 24ms before dropping back to idle
	msg = nextStatus(t, statusC)
	assert.Equal(t, model.CenterPulse, msg.From)
	assert.Equal(t, model.Idle, msg.To)
	assert.Equal(t, animation.PulseFrames, msg.Frame)
	assert.True(t, strip.count() > animation.PulseFrames)
}

func TestGatewayPresetAndStop(t *testing.T) {
	strip := &lockedStrip{}
	engine := NewEngine(DefaultConfig(), strip, nil, nil)
	gw := NewGateway(engine, time.Millisecond)

	quitC := make(chan struct{})
	defer close(quitC)

	subscribeC := gw.Start(quitC)
	statusC := make(chan *model.StatusMsg, 16)
	subscribeC <- statusC
	time.Sleep(20 * time.Millisecond)

	require.True(t, gw.Submit(Play(animation.DefaultPresets()[animation.MotionOn]), time.Second))
	assert.Equal(t, model.CenterPulse, nextStatus(t, statusC).To)

	require.True(t, gw.Submit(Boot(), time.Second))
	assert.Equal(t, model.Boot, nextStatus(t, statusC).To)

	require.True(t, gw.Submit(Stop(), time.Second))
	assert.Equal(t, model.Idle, nextStatus(t, statusC).To)
}

func TestEnterRequest(t *testing.T) {
	expected := map[model.Mode]model.Mode{
		model.Idle:           model.Idle,
		model.CenterPulse:    model.CenterPulse,
		model.Boot:           model.Boot,
		model.BootFadeOut:    model.Boot,
		model.WifiConnecting: model.WifiConnecting,
		model.WifiSuccess:    model.WifiSuccess,
		model.WifiFailure:    model.WifiFailure,
	}
	for _, mode := range model.Modes() {
		engine := animation.NewEngine(NullStrip{}, nil, NewSystemClock())
		engine.StartWifiSuccess()
		Enter(mode)(engine)
		assert.Equal(t, expected[mode], engine.Mode(), mode.String())
		assert.Equal(t, 0, engine.Frame(), mode.String())
	}

	engine := animation.NewEngine(NullStrip{}, nil, NewSystemClock())
	Enter(model.CenterPulse)(engine)
	assert.Equal(t, []model.Color{model.Blue}, engine.State().Palette)
}

func TestPulseRequestCopiesColors(t *testing.T) {
	colors := []model.Color{model.Red}
	req := Pulse(colors...)
	colors[0] = model.Blue

	engine := animation.NewEngine(NullStrip{}, nil, NewSystemClock())
	req(engine)
	assert.Equal(t, []model.Color{model.Red}, engine.State().Palette)
}

func TestFanOutDropsSlowSubscribers(t *testing.T) {
	quitC := make(chan struct{})
	defer close(quitC)

	inC, subC := startFanOut(10*time.Millisecond, quitC)

	slow := make(chan *model.StatusMsg)
	fast := make(chan *model.StatusMsg, 4)
	subC <- slow
	subC <- fast
	time.Sleep(20 * time.Millisecond)

	inC <- model.NewStatusMsg(model.Idle, model.Boot, 0, time.Now())
	assert.Equal(t, model.Boot, nextStatus(t, fast).To)

	inC <- model.NewStatusMsg(model.Boot, model.Idle, 3, time.Now())
	assert.Equal(t, model.Idle, nextStatus(t, fast).To)

	select {
	case <-slow:
		t.Fatal("slow subscriber should have been dropped")
	default:
	}
}

func TestSystemClock(t *testing.T) {
	clock := NewSystemClock()
	start := clock.NowMs()
	time.Sleep(5 * time.Millisecond)
	assert.True(t, clock.NowMs() >= start+5)
}
