package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/karstvale/tile-region-engine/internal/grid"
	"github.com/karstvale/tile-region-engine/internal/protocol"
)

// IntentHandlers decodes client intent envelopes and applies them
// through the host.
type IntentHandlers struct {
	host   *Host
	logger Logger
}

func NewIntentHandlers(host *Host, logger Logger) *IntentHandlers {
	return &IntentHandlers{host: host, logger: logger}
}

// HandleMessage dispatches one websocket message. Unknown types are
// logged and dropped so a newer client cannot wedge the stream.
func (h *IntentHandlers) HandleMessage(data []byte) error {
	var env protocol.IntentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Type {
	case "editTerrain":
		var req protocol.RequestEditTerrain
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return fmt.Errorf("decode editTerrain: %w", err)
		}
		return h.host.EditTerrain(req.Op, grid.Rect{MinX: req.MinX, MinY: req.MinY, MaxX: req.MaxX, MaxY: req.MaxY})

	case "rebuild":
		h.host.RebuildAll()
		return nil

	case "placeObject":
		var req protocol.RequestPlaceObject
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return fmt.Errorf("decode placeObject: %w", err)
		}
		_, err := h.host.PlaceObject(req.Kind, grid.Point{X: req.X, Y: req.Y})
		return err

	case "removeObject":
		var req protocol.RequestRemoveObject
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return fmt.Errorf("decode removeObject: %w", err)
		}
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return fmt.Errorf("parse object id: %w", err)
		}
		return h.host.RemoveObject(id)

	default:
		h.logger.Warnf("unknown intent type %q", env.Type)
		return nil
	}
}
