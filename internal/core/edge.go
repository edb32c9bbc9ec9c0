package core

// Edge names one side of the playfield.
type Edge uint8

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Edges lists all edges in draw order.
var Edges = [4]Edge{EdgeTop, EdgeRight, EdgeBottom, EdgeLeft}

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Opposite returns the facing edge.
func (e Edge) Opposite() Edge {
	return (e + 2) % 4
}

// Inward returns the unit vector pointing from the edge into the playfield.
func (e Edge) Inward() Vec {
	switch e {
	case EdgeTop:
		return Vec{0, 1}
	case EdgeRight:
		return Vec{-1, 0}
	case EdgeBottom:
		return Vec{0, -1}
	default:
		return Vec{1, 0}
	}
}

// Along returns the unit vector running along the edge.
func (e Edge) Along() Vec {
	if e == EdgeTop || e == EdgeBottom {
		return Vec{1, 0}
	}
	return Vec{0, 1}
}

// Length returns the edge length within b.
func (b Bounds) Length(e Edge) float64 {
	if e == EdgeTop || e == EdgeBottom {
		return b.W
	}
	return b.H
}

// EdgePoint returns the point at fraction t ∈ [0,1] along edge e, pushed
// outward by offset (negative offset moves it inside).
func (b Bounds) EdgePoint(e Edge, t, offset float64) Vec {
	switch e {
	case EdgeTop:
		return Vec{t * b.W, -offset}
	case EdgeRight:
		return Vec{b.W + offset, t * b.H}
	case EdgeBottom:
		return Vec{t * b.W, b.H + offset}
	default:
		return Vec{-offset, t * b.H}
	}
}

// Corners returns the four corners clockwise from top-left.
func (b Bounds) Corners() [4]Vec {
	return [4]Vec{{0, 0}, {b.W, 0}, {b.W, b.H}, {0, b.H}}
}
