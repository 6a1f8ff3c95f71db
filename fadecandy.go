package presence

// This file contains a strip backend that pushes the frames generated by the
// animation engine to a fadecandy server using the Open Pixel Control protocol

import (
	"bytes"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/cnf/structhash"

	"github.com/kellydunn/go-opc"

	"github.com/TeamNorCal/presence/model"
)

// opcFrame is the content hashed to detect repeated frames
type opcFrame struct {
	Channel uint8
	Pixels  []model.Color
}

type opcSender interface {
	Send(m *opc.Message) error
}

// OPCStrip implements animation.Strip against a fadecandy (fcserver) OPC
// endpoint.  Identical consecutive frames are only sent once.
type OPCStrip struct {
	server  string
	channel uint8
	retry   time.Duration

	client      opcSender
	lastAttempt time.Time
	dial        func(server string) (opcSender, error)

	pixels []model.Color
	last   []byte

	errorC chan<- errors.Error
}

// NewOPCStrip creates a backend for the server address (host:port).  Transport
// errors are reported on errorC and the connection is retried on later frames.
func NewOPCStrip(server string, channel uint8, errorC chan<- errors.Error) (strip *OPCStrip) {
	return &OPCStrip{
		server:  server,
		channel: channel,
		retry:   time.Duration(2 * time.Second),
		dial:    dialOPC,
		errorC:  errorC,
	}
}

func dialOPC(server string) (opcSender, error) {
	oc := opc.NewClient()
	if errGo := oc.Connect("tcp", server); errGo != nil {
		return nil, errGo
	}
	return oc, nil
}

func (strip *OPCStrip) connect() (err errors.Error) {
	strip.lastAttempt = time.Now()
	client, errGo := strip.dial(strip.server)
	if errGo != nil {
		return errors.Wrap(errGo).With("url", strip.server).With("stack", stack.Trace().TrimRuntime())
	}
	strip.client = client
	return nil
}

func (strip *OPCStrip) Begin(count int) {
	strip.pixels = make([]model.Color, count)
	strip.last = nil
	if err := strip.connect(); err != nil {
		reportError(strip.errorC, err)
	}
}

func (strip *OPCStrip) Clear() {
	for i := range strip.pixels {
		strip.pixels[i] = model.Black
	}
}

func (strip *OPCStrip) SetPixel(i int, c model.Color) {
	if i < 0 || i >= len(strip.pixels) {
		return
	}
	strip.pixels[i] = c
}

// message encodes the current pixels as an OPC set pixel colors message
func (strip *OPCStrip) message() (m *opc.Message) {
	m = opc.NewMessage(strip.channel)
	m.SetLength(uint16(len(strip.pixels) * 3))
	for i, c := range strip.pixels {
		m.SetPixelColor(i, c.R, c.G, c.B)
	}
	return m
}

func (strip *OPCStrip) Show() {
	hash := structhash.Md5(opcFrame{Channel: strip.channel, Pixels: strip.pixels}, 1)
	if bytes.Equal(strip.last, hash) {
		return
	}

	if strip.client == nil {
		if time.Since(strip.lastAttempt) < strip.retry {
			return
		}
		if err := strip.connect(); err != nil {
			reportError(strip.errorC, err)
			return
		}
	}

	if errGo := strip.client.Send(strip.message()); errGo != nil {
		strip.client = nil
		reportError(strip.errorC, errors.Wrap(errGo).With("url", strip.server).With("stack", stack.Trace().TrimRuntime()))
		return
	}
	strip.last = hash
}
