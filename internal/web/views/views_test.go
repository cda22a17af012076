package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/karstvale/tile-region-engine/internal/protocol"
)

func TestIndexPageRenders(t *testing.T) {
	data := IndexData{
		Stats: protocol.StatsLite{
			Cols: 40, Rows: 40, ChunkSize: 20,
			Regions: 3, DoorRegions: 1, Links: 2, Rooms: 3,
		},
		Objects: map[string]int{"tree": 2, "ore": 1},
		Clients: 1,
	}

	var buf bytes.Buffer
	if err := IndexPage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<canvas id=\"map\">",
		"var stats = {\"cols\":40",
		"/debug/regions",
		"/stream",
		"1 ore, 2 tree",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestObjectSummaryEmpty(t *testing.T) {
	if got := objectSummary(nil); got != "none" {
		t.Errorf("objectSummary(nil) = %q, want none", got)
	}
}
