package player

import "errors"

var (
	ErrAlreadyConnected = errors.New("player already connected")
	ErrSlowConsumer     = errors.New("connection not keeping up with events")
)
