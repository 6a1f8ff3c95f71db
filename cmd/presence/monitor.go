package main

import (
	"github.com/TeamNorCal/presence/model"
)

// This file implements a monitor that subscribes to and displays
// the engine mode changes using event subscription

func runMonitoring(subscribeC chan chan *model.StatusMsg, term *terminal, quitC <-chan struct{}) {

	statusC := make(chan *model.StatusMsg, 1)
	subscribeC <- statusC

	for {
		select {
		case msg := <-statusC:
			logger.Debug("mode", "from", msg.FromName, "to", msg.ToName, "frame", msg.Frame)
			if term != nil {
				term.status(msg)
			}
		case <-quitC:
			return
		}
	}
}
