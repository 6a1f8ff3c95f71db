package model

// This module defines the messages the gateway publishes to its subscribers
// whenever the engine changes mode

import (
	"encoding/json"
	"time"
)

type StatusMsg struct {
	From  Mode      `json:"-"`
	To    Mode      `json:"-"`
	Frame int       `json:"frame"`
	At    time.Time `json:"at"`

	FromName string `json:"from"`
	ToName   string `json:"to"`
}

// NewStatusMsg records a transition between two modes
func NewStatusMsg(from Mode, to Mode, frame int, at time.Time) (msg *StatusMsg) {
	return &StatusMsg{
		From:     from,
		To:       to,
		Frame:    frame,
		At:       at,
		FromName: from.String(),
		ToName:   to.String(),
	}
}

// DeepCopy copies the message so that subscribers cannot see each others changes
func (msg *StatusMsg) DeepCopy() (cpy *StatusMsg) {
	if msg == nil {
		return nil
	}
	c := *msg
	return &c
}

func (msg *StatusMsg) String() string {
	byt, _ := json.Marshal(msg)
	return string(byt)
}
