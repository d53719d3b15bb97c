package planner

import (
	"container/heap"
	"math"

	"github.com/agroscout/fieldsim/pkg/core"
)

// DefaultResolution is the A* grid cell size in meters.
const DefaultResolution = 1.0

type gridCell struct {
	ix, iy int
}

// AStar plans a point-to-point route through the boundary interior around
// the given obstacles. The boundary is rasterized onto a uniform grid of
// resolution meters per cell; cells inside an obstacle are blocked. Search
// is 8-connected with Euclidean step cost and heuristic; ties on equal
// f = g + h break in FIFO insertion order.
//
// Returns an empty path (never an error) when the start cell lies outside
// the boundary or the goal is unreachable.
func AStar(start, goal core.LocalPoint, boundary core.Polygon, obstacles []core.Polygon, resolution float64) core.Path {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	min, max := boundary.Bounds()
	width := int((max.X-min.X)/resolution) + 1
	height := int((max.Y-min.Y)/resolution) + 1
	if width <= 0 || height <= 0 {
		return nil
	}

	toGrid := func(p core.LocalPoint) gridCell {
		return gridCell{
			ix: int((p.X - min.X) / resolution),
			iy: int((p.Y - min.Y) / resolution),
		}
	}
	toWorld := func(c gridCell) core.LocalPoint {
		return core.LocalPoint{
			X: float64(c.ix)*resolution + min.X,
			Y: float64(c.iy)*resolution + min.Y,
		}
	}
	inBounds := func(c gridCell) bool {
		return c.ix >= 0 && c.ix < width && c.iy >= 0 && c.iy < height
	}

	// Rasterize: a cell is walkable when its world point is inside the
	// boundary and outside every obstacle.
	walkable := make([]bool, width*height)
	for iy := 0; iy < height; iy++ {
		for ix := 0; ix < width; ix++ {
			p := toWorld(gridCell{ix: ix, iy: iy})
			if !pointInPolygon(p, boundary) {
				continue
			}
			blocked := false
			for _, obs := range obstacles {
				if pointInPolygon(p, obs) {
					blocked = true
					break
				}
			}
			walkable[iy*width+ix] = !blocked
		}
	}

	startCell := toGrid(start)
	goalCell := toGrid(goal)
	if !inBounds(startCell) || !walkable[startCell.iy*width+startCell.ix] {
		return nil
	}
	if !inBounds(goalCell) {
		return nil
	}
	if startCell == goalCell {
		return core.Path{toWorld(startCell)}
	}

	dist := func(a, b gridCell) float64 {
		return math.Hypot(float64(a.ix-b.ix), float64(a.iy-b.iy))
	}

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, &node{cell: startCell, f: dist(startCell, goalCell)})

	cameFrom := make(map[gridCell]gridCell)
	gScore := map[gridCell]float64{startCell: 0}

	neighbors := [8][2]int{
		{-1, 0}, {1, 0}, {0, -1}, {0, 1},
		{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
	}

	for open.Len() > 0 {
		current := heap.Pop(open).(*node).cell

		if current == goalCell {
			return reconstruct(cameFrom, current, startCell, toWorld)
		}

		for _, d := range neighbors {
			next := gridCell{ix: current.ix + d[0], iy: current.iy + d[1]}
			if !inBounds(next) || !walkable[next.iy*width+next.ix] {
				continue
			}
			step := math.Hypot(float64(d[0]), float64(d[1]))
			tentative := gScore[current] + step
			if g, seen := gScore[next]; !seen || tentative < g {
				cameFrom[next] = current
				gScore[next] = tentative
				heap.Push(open, &node{cell: next, f: tentative + dist(next, goalCell)})
			}
		}
	}
	return nil
}

func reconstruct(cameFrom map[gridCell]gridCell, current, start gridCell, toWorld func(gridCell) core.LocalPoint) core.Path {
	var reversed []core.LocalPoint
	for current != start {
		reversed = append(reversed, toWorld(current))
		current = cameFrom[current]
	}
	reversed = append(reversed, toWorld(start))

	path := make(core.Path, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}

// pointInPolygon is the even-odd ray-casting test against an implicitly
// closed ring.
func pointInPolygon(p core.LocalPoint, poly core.Polygon) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// node is an open-set entry. seq preserves FIFO order among equal f values.
type node struct {
	cell gridCell
	f    float64
	seq  int
}

type nodeHeap struct {
	nodes   []*node
	counter int
}

func (h *nodeHeap) Len() int { return len(h.nodes) }

func (h *nodeHeap) Less(i, j int) bool {
	if h.nodes[i].f != h.nodes[j].f {
		return h.nodes[i].f < h.nodes[j].f
	}
	return h.nodes[i].seq < h.nodes[j].seq
}

func (h *nodeHeap) Swap(i, j int) { h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i] }

func (h *nodeHeap) Push(x any) {
	n := x.(*node)
	n.seq = h.counter
	h.counter++
	h.nodes = append(h.nodes, n)
}

func (h *nodeHeap) Pop() any {
	old := h.nodes
	n := old[len(old)-1]
	h.nodes = old[:len(old)-1]
	return n
}
