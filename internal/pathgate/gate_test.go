package pathgate

import (
	"errors"
	"testing"

	"github.com/karstvale/tile-region-engine/internal/grid"
)

type stubChecker struct {
	reachable bool
}

func (c stubChecker) IsReachable(a, b grid.Point) bool { return c.reachable }

type recordingPathfinder struct {
	calls int
	path  []grid.Point
	err   error
}

func (p *recordingPathfinder) FindPath(a, b grid.Point) ([]grid.Point, error) {
	p.calls++
	return p.path, p.err
}

func TestUnreachableSkipsTileSearch(t *testing.T) {
	pf := &recordingPathfinder{}
	g := New(stubChecker{reachable: false}, pf)

	path, err := g.FindPath(grid.Point{X: 0, Y: 0}, grid.Point{X: 9, Y: 9})

	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	if path != nil {
		t.Fatalf("expected nil path, got %v", path)
	}
	if pf.calls != 0 {
		t.Fatalf("expected tile pathfinder untouched, got %d calls", pf.calls)
	}
	if g.Refused() != 1 || g.Passed() != 0 {
		t.Fatalf("expected counters 1/0, got %d/%d", g.Refused(), g.Passed())
	}
}

func TestReachableDelegates(t *testing.T) {
	want := []grid.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	pf := &recordingPathfinder{path: want}
	g := New(stubChecker{reachable: true}, pf)

	path, err := g.FindPath(grid.Point{X: 0, Y: 0}, grid.Point{X: 2, Y: 0})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != len(want) {
		t.Fatalf("expected path of %d tiles, got %d", len(want), len(path))
	}
	if pf.calls != 1 {
		t.Fatalf("expected 1 delegated call, got %d", pf.calls)
	}
	if g.Refused() != 0 || g.Passed() != 1 {
		t.Fatalf("expected counters 0/1, got %d/%d", g.Refused(), g.Passed())
	}
}

func TestDownstreamErrorPassesThrough(t *testing.T) {
	wantErr := errors.New("search aborted")
	pf := &recordingPathfinder{err: wantErr}
	g := New(stubChecker{reachable: true}, pf)

	_, err := g.FindPath(grid.Point{X: 0, Y: 0}, grid.Point{X: 5, Y: 5})

	if !errors.Is(err, wantErr) {
		t.Fatalf("expected downstream error, got %v", err)
	}
}
