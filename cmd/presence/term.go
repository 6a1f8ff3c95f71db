package main

// This file implements the terminal preview mode, the strip is drawn using
// tcell and keys on the keyboard stand in for the events that would normally
// come from the host

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/TeamNorCal/presence"
	"github.com/TeamNorCal/presence/animation"
	"github.com/TeamNorCal/presence/model"
)

type terminal struct {
	screen tcell.Screen
	strip  *presence.TermStrip
}

func newTerminal() (term *terminal, err errors.Error) {
	screen, errGo := tcell.NewScreen()
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	if errGo = screen.Init(); errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	screen.Clear()

	return &terminal{
		screen: screen,
		strip:  presence.NewTermStrip(screen, "presence   b boot  w wifi  s success  f failure  p pulse  1-9 presets  x stop  q quit"),
	}, nil
}

func (term *terminal) Fini() {
	term.screen.Fini()
}

func (term *terminal) status(msg *model.StatusMsg) {
	term.strip.SetStatus(fmt.Sprintf("%s → %s", msg.FromName, msg.ToName))
}

// keyRequest maps a key press to an engine request, nil is returned for keys
// that have no meaning
func keyRequest(r rune, presets animation.Presets) (req presence.Request, name string) {
	switch r {
	case 'b':
		return presence.Boot(), "boot"
	case 'w':
		return presence.WifiConnecting(), "wifi-connecting"
	case 's':
		return presence.WifiSuccess(), "wifi-success"
	case 'f':
		return presence.WifiFailure(), "wifi-failure"
	case 'p':
		return presence.Pulse(model.Blue), "pulse"
	case 'x':
		return presence.Stop(), "stop"
	}
	if r >= '1' && r <= '9' {
		names := presets.Names()
		idx := int(r - '1')
		if idx < len(names) {
			return presence.Play(presets[names[idx]]), names[idx]
		}
	}
	return nil, ""
}

func presetLegend(presets animation.Presets) string {
	legend := []string{}
	for i, name := range presets.Names() {
		if i >= 9 {
			break
		}
		legend = append(legend, fmt.Sprintf("%d %s", i+1, name))
	}
	return strings.Join(legend, "  ")
}

// run processes keyboard events until the user quits or quitC is closed
func (term *terminal) run(gw *presence.Gateway, presets animation.Presets, quitC <-chan struct{}, stop func()) {

	term.strip.SetStatus(presetLegend(presets))

	eventC := make(chan tcell.Event, 4)
	go func() {
		for {
			ev := term.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventC <- ev:
			case <-quitC:
				return
			}
		}
	}()

	for {
		select {
		case ev := <-eventC:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					stop()
					return
				}
				if ev.Key() != tcell.KeyRune {
					continue
				}
				if req, name := keyRequest(ev.Rune(), presets); req != nil {
					logger.Debug("key request", "request", name)
					gw.Submit(req, time.Second)
				}
			case *tcell.EventResize:
				term.screen.Sync()
			}
		case <-quitC:
			return
		}
	}
}
