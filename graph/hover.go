package graph

import (
	"image/color"
	"math"
)

// Point is a cursor position in surface pixels.
type Point struct {
	X, Y float64
}

// HoverPoint is one visible series' contribution to the tooltip at the
// hovered timestamp. GraphPosition is the series' plotted height in
// domain units: its value alone in line mode, offset plus value when
// stacked.
type HoverPoint struct {
	Key           string
	Name          string
	Color         color.NRGBA
	Value         GraphValue
	GraphPosition float64
	Focused       bool
}

// HoverResult is the fully resolved hover state for one cursor
// position. It is recomputed on every pointer move and discarded on
// pointer leave.
type HoverResult struct {
	TimestampSec float64
	Pixel        Point
	Points       []HoverPoint
}

// ResolveHover maps a cursor position back through the scales onto the
// grid and decides which visible series is focused.
//
// In stacked mode the focused series is the innermost band whose top
// edge is at or above the cursor: candidates are series with
// GraphPosition >= the cursor's value, and the smallest such position
// wins. If no band reaches the cursor, nothing is focused. In line
// mode the series numerically closest to the cursor's value wins.
// Gaps still produce HoverPoints but never compete for focus.
//
// When simpleTooltip is set the result is filtered to the focused
// entry alone.
func ResolveHover(cursor Point, visible []AlignedSeries, timeScale, valueScale LinearScale, grid TimeGrid, stacked, simpleTooltip bool) HoverResult {
	result := HoverResult{
		TimestampSec: grid.Quantize(timeScale.Invert(cursor.X)),
		Pixel:        cursor,
	}
	cursorValue := valueScale.Invert(cursor.Y)

	focusIdx := -1
	var focusPos float64
	for _, series := range visible {
		point, ok := series.datapointAt(result.TimestampSec)
		if !ok {
			continue
		}
		hp := HoverPoint{
			Key:   series.Key,
			Name:  series.Name,
			Color: series.Color,
			Value: point.Value,
		}
		if !point.Value.Gap {
			hp.GraphPosition = point.Value.V
			if stacked {
				hp.GraphPosition += point.StackOffset
			}
			if stacked {
				if hp.GraphPosition >= cursorValue && (focusIdx < 0 || hp.GraphPosition < focusPos) {
					focusIdx = len(result.Points)
					focusPos = hp.GraphPosition
				}
			} else {
				dist := math.Abs(hp.GraphPosition - cursorValue)
				if focusIdx < 0 || dist < focusPos {
					focusIdx = len(result.Points)
					focusPos = dist
				}
			}
		}
		result.Points = append(result.Points, hp)
	}
	if focusIdx >= 0 {
		result.Points[focusIdx].Focused = true
	}
	if simpleTooltip {
		if focusIdx >= 0 {
			result.Points = result.Points[focusIdx : focusIdx+1]
		} else {
			result.Points = nil
		}
	}
	return result
}
