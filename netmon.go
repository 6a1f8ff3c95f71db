package presence

import (
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

// This module implements a network status source for the animation engine.
// It probes a URL on a regular basis from its own goroutine and publishes
// the result through an atomic flag, so that the engine can poll it without
// blocking

type NetMonitor struct {
	url      url.URL
	interval time.Duration
	timeout  time.Duration
	client   *http.Client

	connected int32

	changeC chan<- bool
	errorC  chan<- errors.Error
}

// NewNetMonitor creates a monitor for probe, http and https URLs are fetched
// with a GET and any 2xx or 3xx response counts as connected, tcp://host:port
// URLs count as connected when the address accepts a connection.  changeC is
// optional and receives the new state on every change.
func NewNetMonitor(probe url.URL, interval time.Duration, changeC chan<- bool, errorC chan<- errors.Error) (mon *NetMonitor, err errors.Error) {
	switch probe.Scheme {
	case "http", "https", "tcp":
	default:
		errGo := fmt.Errorf("unknown scheme %s for the network probe URI", probe.Scheme)
		return nil, errors.Wrap(errGo).With("url", probe.String()).With("stack", stack.Trace().TrimRuntime())
	}
	if interval <= 0 {
		interval = time.Second
	}

	timeout := interval
	if timeout <= 0 || timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	return &NetMonitor{
		url:      probe,
		interval: interval,
		timeout:  timeout,
		client:   &http.Client{Timeout: timeout},
		changeC:  changeC,
		errorC:   errorC,
	}, nil
}

// IsConnected returns the result of the latest probe
func (mon *NetMonitor) IsConnected() bool {
	return atomic.LoadInt32(&mon.connected) == 1
}

// checkNetwork performs a single probe
func (mon *NetMonitor) checkNetwork() (connected bool, err errors.Error) {

	switch mon.url.Scheme {
	case "http", "https":
		resp, errGo := mon.client.Get(mon.url.String())
		if errGo != nil {
			return false, errors.Wrap(errGo).With("url", mon.url.String()).With("stack", stack.Trace().TrimRuntime())
		}
		io.Copy(ioutil.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 400 {
			return false, nil
		}
		return true, nil

	case "tcp":
		conn, errGo := net.DialTimeout("tcp", mon.url.Host, mon.timeout)
		if errGo != nil {
			return false, errors.Wrap(errGo).With("url", mon.url.String()).With("stack", stack.Trace().TrimRuntime())
		}
		conn.Close()
		return true, nil

	default:
		errGo := fmt.Errorf("unknown scheme %s for the network probe URI", mon.url.Scheme)
		return false, errors.Wrap(errGo).With("url", mon.url.String()).With("stack", stack.Trace().TrimRuntime())
	}
}

func (mon *NetMonitor) update() {
	connected, err := mon.checkNetwork()

	value := int32(0)
	if connected {
		value = 1
	}
	if atomic.SwapInt32(&mon.connected, value) == value {
		return
	}

	// Failed probes are how an outage shows up, only the first one is reported
	if err != nil {
		reportError(mon.errorC, err)
	}

	if mon.changeC != nil {
		select {
		case mon.changeC <- connected:
		case <-time.After(250 * time.Millisecond):
		}
	}
}

// Run probes the network straight away and then on every interval until quitC
// is closed
func (mon *NetMonitor) Run(quitC <-chan struct{}) {

	mon.update()

	poll := time.NewTicker(mon.interval)
	defer poll.Stop()

	for {
		select {
		case <-poll.C:
			mon.update()

		case <-quitC:
			return
		}
	}
}

// StaticNetwork is a network status that never changes, used when no probe is
// configured
type StaticNetwork bool

func (connected StaticNetwork) IsConnected() bool {
	return bool(connected)
}
