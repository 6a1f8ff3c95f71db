package presence

import (
	"sync"
	"time"

	"github.com/TeamNorCal/presence/model"
)

type subs struct {
	subs []chan *model.StatusMsg
	sync.Mutex
}

// startFanOut implements a broadcast mechanism for accepting engine status
// messages and relaying them to subscribers.  The function returns a single
// channel to which status messages get sent and, a channel that can be used to
// add listeners.  Subscribers that cannot accept a message within the
// timeout are dropped.
func startFanOut(timeout time.Duration, quitC <-chan struct{}) (inC chan *model.StatusMsg, subC chan chan *model.StatusMsg) {

	inC = make(chan *model.StatusMsg, 1)
	subC = make(chan chan *model.StatusMsg, 1)

	listeners := &subs{
		subs: []chan *model.StatusMsg{},
	}

	go func(quitC <-chan struct{}) {
		for {
			select {
			case <-quitC:
				return
			case sub := <-subC:
				if nil != sub {
					listeners.Lock()
					listeners.subs = append(listeners.subs, sub)
					listeners.Unlock()
				}
			case msg := <-inC:
				// The subscriptions are notified of a message and are groomed out
				// on failures using https://github.com/golang/go/wiki/SliceTricks#filtering-without-allocating
				listeners.Lock()
				newSubs := listeners.subs[:0]
				for _, ch := range listeners.subs {
					select {
					case ch <- msg.DeepCopy():
						newSubs = append(newSubs, ch)
					case <-time.After(timeout):
					case <-quitC:
						listeners.Unlock()
						return
					}
				}
				listeners.subs = newSubs
				listeners.Unlock()
			}
		}
	}(quitC)

	return inC, subC
}
