package animation

import (
	"github.com/TeamNorCal/presence/model"
)

type fakeClock struct {
	now int64
}

func (c *fakeClock) NowMs() int64 { return c.now }

func (c *fakeClock) Advance(ms int64) { c.now += ms }

// recordingStrip keeps the pixel buffer and a copy of every shown frame
type recordingStrip struct {
	begun  int
	pixels model.Frame
	shown  []model.Frame
}

func (s *recordingStrip) Begin(count int) { s.begun = count }

func (s *recordingStrip) Clear() { s.pixels = model.Frame{} }

func (s *recordingStrip) SetPixel(i int, c model.Color) { s.pixels[i] = c }

func (s *recordingStrip) Show() { s.shown = append(s.shown, s.pixels) }

func (s *recordingStrip) last() model.Frame {
	if len(s.shown) == 0 {
		return model.Frame{}
	}
	return s.shown[len(s.shown)-1]
}

type fakeNetwork struct {
	connected bool
	polls     int
}

func (n *fakeNetwork) IsConnected() bool {
	n.polls++
	return n.connected
}
