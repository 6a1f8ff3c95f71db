package main

// The simulator stands in for an access point while testing the presence
// daemon on a bench.  It serves the network probe endpoint and answers it
// according to a schedule of up and down periods, so the Wi-Fi connecting,
// success and failure effects can be watched without touching real network
// equipment.

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/mgutz/logxi"

	"github.com/karlmutch/envflag"
)

var (
	listen   = flag.String("listen", ":8080", "Address to bind to")
	schedule = flag.String("schedule", "0:down,20:up", "Comma separated second:state slots, state is up or down, the last slot holds forever")
	remote   = flag.Bool("remote", false, "Enable remote management of the schedule using /toggle and /restart")
	scale    = flag.Int("scale", 1, "factor by which to accelerate the relative rate of the clock")
	verbose  = flag.Bool("v", false, "When enabled will print internal logging for this tool")
)

type testSlot struct {
	secondSlot int  // The second at which the slot activates
	up         bool // Whether the network is reported as up
}

type testWindow struct {
	startTime time.Time
	slots     []*testSlot
	override  *bool
	sync.Mutex
}

var (
	logW = logxi.NewLogger(logxi.NewConcurrentWriter(os.Stdout), "presence-simulator")

	testSchedule = testWindow{
		startTime: time.Now(),
		slots:     []*testSlot{},
	}
)

func main() {

	if !flag.Parsed() {
		envflag.Parse()
	}

	if *verbose {
		logW.SetLevel(logxi.LevelDebug)
	}

	slots, err := parseSchedule(*schedule)
	if err != nil {
		logW.Fatal(err.Error())
		os.Exit(-1)
	}

	testSchedule.Lock()
	testSchedule.slots = slots
	testSchedule.startTime = time.Now()
	testSchedule.Unlock()

	http.HandleFunc("/", serveHandler)

	if errGo := http.ListenAndServe(*listen, nil); errGo != nil {
		logW.Warn(errGo.Error())
	}
}

// parseSchedule loads the slots from a string such as "0:down,20:up",
// the result is sorted by time
func parseSchedule(sched string) (slots []*testSlot, err errors.Error) {
	slots = []*testSlot{}

	for _, item := range strings.Split(sched, ",") {
		item = strings.TrimSpace(item)
		if len(item) == 0 {
			continue
		}
		parts := strings.SplitN(item, ":", 2)
		if len(parts) != 2 {
			return nil, errors.New("schedule slots must be second:state").With("slot", item).With("stack", stack.Trace().TrimRuntime())
		}
		second, errGo := strconv.Atoi(parts[0])
		if errGo != nil || second < 0 {
			return nil, errors.New("schedule slot has an invalid second").With("slot", item).With("stack", stack.Trace().TrimRuntime())
		}
		slot := &testSlot{secondSlot: second}
		switch strings.ToLower(parts[1]) {
		case "up":
			slot.up = true
		case "down":
		default:
			return nil, errors.New("schedule slot state must be up or down").With("slot", item).With("stack", stack.Trace().TrimRuntime())
		}
		slots = append(slots, slot)
	}

	if len(slots) == 0 {
		return nil, errors.New("schedule is empty").With("stack", stack.Trace().TrimRuntime())
	}

	// Sort our slots  ascending order and we are done
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].secondSlot < slots[j].secondSlot
	})
	return slots, nil
}

// stateAt finds the slot in force at the given second, before the first
// slot the network is down
func stateAt(slots []*testSlot, second int) (up bool) {
	slot := sort.Search(len(slots), func(i int) bool { return slots[i].secondSlot > second })
	if slot == 0 {
		return false
	}
	return slots[slot-1].up
}

func isUp() (up bool) {
	testSchedule.Lock()
	defer testSchedule.Unlock()

	if testSchedule.override != nil {
		return *testSchedule.override
	}
	second := int(time.Since(testSchedule.startTime).Seconds() * float64(*scale))
	return stateAt(testSchedule.slots, second)
}

func serveRemote(w http.ResponseWriter, r *http.Request) {
	testSchedule.Lock()
	defer testSchedule.Unlock()

	switch r.URL.Path {
	case "/toggle":
		second := int(time.Since(testSchedule.startTime).Seconds() * float64(*scale))
		up := !stateAt(testSchedule.slots, second)
		if testSchedule.override != nil {
			up = !*testSchedule.override
		}
		testSchedule.override = &up
		logW.Info("network override", "up", up)
	case "/restart":
		testSchedule.override = nil
		testSchedule.startTime = time.Now()
		logW.Info("schedule restarted")
	}
	w.WriteHeader(http.StatusNoContent)
}

func serveHandler(w http.ResponseWriter, r *http.Request) {

	if *remote && (r.URL.Path == "/toggle" || r.URL.Path == "/restart") {
		serveRemote(w, r)
		return
	}

	if !isUp() {
		logW.Debug(fmt.Sprintf("probe %s answered as down", r.URL.Path))
		http.Error(w, "network down", http.StatusServiceUnavailable)
		return
	}

	logW.Debug(fmt.Sprintf("probe %s answered as up", r.URL.Path))
	w.WriteHeader(http.StatusNoContent)
}
