package presence

import (
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/karlmutch/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetMonitorHTTP(t *testing.T) {
	status := int32(http.StatusServiceUnavailable)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(atomic.LoadInt32(&status)))
	}))
	defer server.Close()

	probe, errGo := url.Parse(server.URL)
	require.NoError(t, errGo)

	changeC := make(chan bool, 4)
	errorC := make(chan errors.Error, 4)
	mon, err := NewNetMonitor(*probe, 10*time.Millisecond, changeC, errorC)
	require.Nil(t, err)

	quitC := make(chan struct{})
	defer close(quitC)
	go mon.Run(quitC)

	// Give the first probes a chance to land, the flag must stay down
	time.Sleep(50 * time.Millisecond)
	assert.False(t, mon.IsConnected())

	atomic.StoreInt32(&status, http.StatusNoContent)
	require.Eventually(t, mon.IsConnected, 2*time.Second, 5*time.Millisecond)
	assert.True(t, <-changeC)

	atomic.StoreInt32(&status, http.StatusInternalServerError)
	require.Eventually(t, func() bool { return !mon.IsConnected() }, 2*time.Second, 5*time.Millisecond)
	assert.False(t, <-changeC)
}

func TestNetMonitorTCP(t *testing.T) {
	listener, errGo := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, errGo)
	defer listener.Close()

	go func() {
		for {
			conn, errGo := listener.Accept()
			if errGo != nil {
				return
			}
			conn.Close()
		}
	}()

	mon, err := NewNetMonitor(url.URL{Scheme: "tcp", Host: listener.Addr().String()}, 10*time.Millisecond, nil, nil)
	require.Nil(t, err)

	connected, err := mon.checkNetwork()
	assert.Nil(t, err)
	assert.True(t, connected)

	listener.Close()
	connected, err = mon.checkNetwork()
	assert.NotNil(t, err)
	assert.False(t, connected)
}

func TestNetMonitorRejectsScheme(t *testing.T) {
	_, err := NewNetMonitor(url.URL{Scheme: "serial", Path: "/dev/ttyUSB0"}, time.Second, nil, nil)
	assert.NotNil(t, err)
}

func TestStaticNetwork(t *testing.T) {
	assert.True(t, StaticNetwork(true).IsConnected())
	assert.False(t, StaticNetwork(false).IsConnected())
}
