package protocol

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIntentEnvelopeDispatch(t *testing.T) {
	wire := `{"type":"editTerrain","payload":{"op":"door","minX":6,"minY":5,"maxX":6,"maxY":5}}`

	var env IntentEnvelope
	if err := json.Unmarshal([]byte(wire), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Type != "editTerrain" {
		t.Fatalf("envelope type = %q, want editTerrain", env.Type)
	}

	var req RequestEditTerrain
	if err := json.Unmarshal(env.Payload, &req); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if req.Op != OpDoor || req.MinX != 6 || req.MinY != 5 {
		t.Errorf("payload decoded as %+v", req)
	}
}

func TestPatchEnvelopeWireFormat(t *testing.T) {
	env := PatchEnvelope{
		Sequence: 7,
		Type:     "regionsRebuilt",
		Payload: RegionsRebuilt{
			Cause: "edit",
			Area:  RectLite{MinX: 0, MinY: 0, MaxX: 19, MaxY: 19},
			Stats: StatsLite{Cols: 40, Rows: 40, Regions: 3},
		},
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}

	// The JS client keys off these exact field names.
	for _, want := range []string{`"seq":7`, `"type":"regionsRebuilt"`, `"cause":"edit"`, `"maxX":19`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("wire form missing %s: %s", want, data)
		}
	}
}
