package graph

import (
	"math"
	"slices"
)

// timeTolerance absorbs cumulative floating-point drift when the grid
// is generated by repeated subtraction. It decides whether a candidate
// point already counts as at-or-before the window start, so a span
// that is an exact multiple of the step keeps both endpoints instead
// of drifting past one.
const timeTolerance = 1e-6

// TimeGrid is the fixed sequence of evenly spaced timestamps every
// aligned series reports values at. It is immutable once built from
// its three parameters.
type TimeGrid struct {
	StartSec float64
	EndSec   float64
	StepSec  float64
	// Points is ascending and always includes EndSec exactly. The
	// first point is <= StartSec and > StartSec - StepSec.
	Points []float64
}

// NewTimeGrid builds the grid for a [start, end] window at a fixed
// step. Points are generated by walking backward from end until a
// point lands at or before start, then sorted ascending, so end is
// always on the grid exactly and start is always covered.
// Preconditions: step > 0 and end >= start.
func NewTimeGrid(startSec, endSec, stepSec float64) TimeGrid {
	g := TimeGrid{
		StartSec: startSec,
		EndSec:   endSec,
		StepSec:  stepSec,
	}
	for ts := endSec; ; ts -= stepSec {
		g.Points = append(g.Points, ts)
		if ts <= startSec+timeTolerance {
			break
		}
	}
	slices.Reverse(g.Points)
	return g
}

// Len returns the number of grid points.
func (g TimeGrid) Len() int {
	return len(g.Points)
}

// index maps a timestamp to the offset of the grid point that owns it.
// Each grid point owns the half-step interval centered on it;
// timestamps outside the extended domain clamp to the nearest edge
// point. A timestamp equidistant between two points resolves to the
// upper one.
func (g TimeGrid) index(ts float64) int {
	if len(g.Points) == 0 {
		return -1
	}
	first := g.Points[0]
	idx := int(math.Floor((ts-first)/g.StepSec + 0.5))
	if idx < 0 {
		return 0
	}
	if idx >= len(g.Points) {
		return len(g.Points) - 1
	}
	return idx
}

// Quantize snaps an arbitrary timestamp to its nearest grid point.
// The mapping is total and idempotent on grid points themselves.
func (g TimeGrid) Quantize(ts float64) float64 {
	idx := g.index(ts)
	if idx < 0 {
		return ts
	}
	return g.Points[idx]
}
