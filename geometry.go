package main

import "math"

// Vec is a 2D position in field coordinates
type Vec struct {
	X float64
	Y float64
}

// Circle is a positioned collision disc
type Circle struct {
	Center Vec
	Radius float64
}

// Bounds is the playable rectangle with its origin at (0,0)
type Bounds struct {
	Width  float64
	Height float64
}

// Direction is one of the four axis-aligned movement steps
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// ParseDirection validates a direction string from the wire.
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(s); d {
	case DirUp, DirDown, DirLeft, DirRight:
		return d, true
	}
	return "", false
}

// ClampMove steps pos by speed along dir and clamps the result so the whole
// circle of the given radius stays inside b. Unrecognized directions don't
// move, but the result is still clamped.
func ClampMove(pos Vec, dir Direction, speed float64, b Bounds, radius float64) Vec {
	switch dir {
	case DirUp:
		pos.Y -= speed
	case DirDown:
		pos.Y += speed
	case DirLeft:
		pos.X -= speed
	case DirRight:
		pos.X += speed
	}
	return Vec{
		X: clamp(pos.X, radius, b.Width-radius),
		Y: clamp(pos.Y, radius, b.Height-radius),
	}
}

// CirclesOverlap reports whether the centers are closer than the summed radii.
// Tangent circles do not overlap.
func CirclesOverlap(a, b Circle) bool {
	dx := a.Center.X - b.Center.X
	dy := a.Center.Y - b.Center.Y
	return math.Sqrt(dx*dx+dy*dy) < a.Radius+b.Radius
}

// clamp also maps NaN to min so a bad input can never leave the field.
func clamp(v, min, max float64) float64 {
	if v < min || math.IsNaN(v) {
		return min
	}
	if v > max {
		return max
	}
	return v
}
