package main

import (
	"container/heap"
	"errors"

	"github.com/karstvale/tile-region-engine/internal/grid"
)

// ErrNoPath is returned when the tile search exhausts every reachable
// tile without touching the goal.
var ErrNoPath = errors.New("no tile path between endpoints")

// PathNode is one tile in the A* search.
type PathNode struct {
	X, Y   int
	G      int // cost from start
	H      int // estimated cost to goal
	F      int // G + H
	Parent *PathNode
	Index  int // index in heap
}

// PathHeap implements a priority queue over open nodes.
type PathHeap []*PathNode

func (h PathHeap) Len() int           { return len(h) }
func (h PathHeap) Less(i, j int) bool { return h[i].F < h[j].F }
func (h PathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index = i
	h[j].Index = j
}

func (h *PathHeap) Push(x any) {
	n := len(*h)
	node := x.(*PathNode)
	node.Index = n
	*h = append(*h, node)
}

func (h *PathHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.Index = -1
	*h = old[0 : n-1]
	return node
}

// AStarPathfinder searches tile paths with 4-way movement. It satisfies
// the pathfinding gate's tile-search collaborator; the gate filters out
// cross-component queries before this runs.
type AStarPathfinder struct {
	terrain TerrainSource
}

func NewAStarPathfinder(terrain TerrainSource) *AStarPathfinder {
	return &AStarPathfinder{terrain: terrain}
}

// FindPath returns the tile path from a to b inclusive, or ErrNoPath.
func (pf *AStarPathfinder) FindPath(a, b grid.Point) ([]grid.Point, error) {
	cols, rows := pf.terrain.Size()
	if !pf.terrain.IsPassable(a.X, a.Y) || !pf.terrain.IsPassable(b.X, b.Y) {
		return nil, ErrNoPath
	}
	if a == b {
		return []grid.Point{a}, nil
	}

	key := func(x, y int) int { return y*cols + x }

	openSet := &PathHeap{}
	heap.Init(openSet)
	closedSet := make(map[int]bool)
	nodeMap := make(map[int]*PathNode)

	start := &PathNode{X: a.X, Y: a.Y, H: manhattan(a.X, a.Y, b.X, b.Y)}
	start.F = start.H
	heap.Push(openSet, start)
	nodeMap[key(a.X, a.Y)] = start

	directions := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	maxIterations := cols * rows
	for iterations := 0; openSet.Len() > 0 && iterations < maxIterations; iterations++ {
		current := heap.Pop(openSet).(*PathNode)
		if current.X == b.X && current.Y == b.Y {
			return reconstructPath(current), nil
		}
		closedSet[key(current.X, current.Y)] = true

		for _, dir := range directions {
			nx, ny := current.X+dir[0], current.Y+dir[1]
			if !pf.terrain.IsPassable(nx, ny) {
				continue
			}
			if closedSet[key(nx, ny)] {
				continue
			}

			g := current.G + 1
			neighbor, exists := nodeMap[key(nx, ny)]
			if !exists {
				neighbor = &PathNode{
					X:      nx,
					Y:      ny,
					G:      g,
					H:      manhattan(nx, ny, b.X, b.Y),
					Parent: current,
				}
				neighbor.F = neighbor.G + neighbor.H
				nodeMap[key(nx, ny)] = neighbor
				heap.Push(openSet, neighbor)
			} else if g < neighbor.G {
				neighbor.G = g
				neighbor.F = neighbor.G + neighbor.H
				neighbor.Parent = current
				heap.Fix(openSet, neighbor.Index)
			}
		}
	}

	return nil, ErrNoPath
}

func manhattan(x1, y1, x2, y2 int) int {
	dx := x2 - x1
	if dx < 0 {
		dx = -dx
	}
	dy := y2 - y1
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func reconstructPath(node *PathNode) []grid.Point {
	var path []grid.Point
	for node != nil {
		path = append(path, grid.Point{X: node.X, Y: node.Y})
		node = node.Parent
	}
	// Built goal to start; reverse in place.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
