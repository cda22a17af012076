package main

import (
	"encoding/json"
	"sync/atomic"

	"github.com/karstvale/tile-region-engine/internal/protocol"
	"github.com/karstvale/tile-region-engine/internal/ws"
)

// BroadcasterImpl implements Broadcaster over the websocket hub. Every
// event is wrapped in a PatchEnvelope stamped with the next sequence
// number.
type BroadcasterImpl struct {
	hub      *ws.Hub
	sequence SequenceGenerator
	logger   Logger
}

func NewBroadcaster(hub *ws.Hub, sequence SequenceGenerator, logger Logger) *BroadcasterImpl {
	return &BroadcasterImpl{
		hub:      hub,
		sequence: sequence,
		logger:   logger,
	}
}

func (b *BroadcasterImpl) BroadcastEvent(eventType string, payload any) {
	envelope := protocol.PatchEnvelope{
		Sequence: b.sequence.Next(),
		Type:     eventType,
		Payload:  payload,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		b.logger.Errorf("marshal %s event: %v", eventType, err)
		return
	}
	b.hub.Broadcast(data)
}

// SequenceGeneratorImpl implements SequenceGenerator with an atomic
// counter.
type SequenceGeneratorImpl struct {
	counter atomic.Uint64
}

func NewSequenceGenerator() *SequenceGeneratorImpl {
	return &SequenceGeneratorImpl{}
}

func (sg *SequenceGeneratorImpl) Next() uint64 {
	return sg.counter.Add(1)
}

func (sg *SequenceGeneratorImpl) Current() uint64 {
	return sg.counter.Load()
}
