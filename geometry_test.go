package main

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

var field = Bounds{Width: FieldWidth, Height: FieldHeight}

func inField(p Vec, radius float64) bool {
	return p.X >= radius && p.X <= FieldWidth-radius && p.Y >= radius && p.Y <= FieldHeight-radius
}

func TestClampMove(t *testing.T) {
	tests := []struct {
		name  string
		pos   Vec
		dir   Direction
		speed float64
		want  Vec
	}{
		{"right", Vec{100, 100}, DirRight, 5, Vec{105, 100}},
		{"left", Vec{100, 100}, DirLeft, 5, Vec{95, 100}},
		{"up", Vec{100, 100}, DirUp, 5, Vec{100, 95}},
		{"down", Vec{100, 100}, DirDown, 5, Vec{100, 105}},
		{"left clamps to radius", Vec{15, 100}, DirLeft, 20, Vec{20, 100}},
		{"right clamps to width", Vec{775, 100}, DirRight, 20, Vec{780, 100}},
		{"down clamps to height", Vec{100, 590}, DirDown, 5, Vec{100, 580}},
		{"up clamps to radius", Vec{100, 21}, DirUp, 50, Vec{100, 20}},
		{"unknown direction is a no-op", Vec{100, 100}, Direction("sideways"), 5, Vec{100, 100}},
		{"zero speed", Vec{300, 300}, DirUp, 0, Vec{300, 300}},
		{"negative speed reverses", Vec{100, 100}, DirRight, -5, Vec{95, 100}},
		{"out of bounds input is pulled in", Vec{-40, 900}, DirRight, 5, Vec{20, 580}},
		{"out of bounds on the other axis", Vec{100, -10}, DirRight, 5, Vec{105, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampMove(tt.pos, tt.dir, tt.speed, field, PlayerRadius)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClampMoveAlwaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	dirs := []Direction{DirUp, DirDown, DirLeft, DirRight, Direction(""), Direction("UP")}

	for i := 0; i < 5000; i++ {
		pos := Vec{X: rng.Float64()*3000 - 1000, Y: rng.Float64()*3000 - 1000}
		speed := rng.Float64()*400 - 200
		radius := 1 + rng.Float64()*50
		dir := dirs[rng.Intn(len(dirs))]

		got := ClampMove(pos, dir, speed, field, radius)
		if !inField(got, radius) {
			t.Fatalf("ClampMove(%v, %q, %v, r=%v) = %v, outside field", pos, dir, speed, radius, got)
		}
	}
}

func TestClampMoveNaNStaysInBounds(t *testing.T) {
	got := ClampMove(Vec{X: math.NaN(), Y: 100}, DirUp, 5, field, PlayerRadius)
	assert.True(t, inField(got, PlayerRadius), "got %v", got)
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"up", "down", "left", "right"} {
		d, ok := ParseDirection(s)
		assert.True(t, ok, s)
		assert.Equal(t, Direction(s), d)
	}
	for _, s := range []string{"", "Up", "north", " up"} {
		_, ok := ParseDirection(s)
		assert.False(t, ok, "%q should not parse", s)
	}
}

func TestCirclesOverlap(t *testing.T) {
	t.Run("pickup scenario", func(t *testing.T) {
		player := Circle{Center: Vec{100, 100}, Radius: 20}
		item := Circle{Center: Vec{105, 100}, Radius: 10}
		assert.True(t, CirclesOverlap(player, item))
	})

	t.Run("tangent circles do not overlap", func(t *testing.T) {
		a := Circle{Center: Vec{0, 0}, Radius: 20}
		b := Circle{Center: Vec{30, 0}, Radius: 10}
		assert.False(t, CirclesOverlap(a, b))

		// 3-4-5 triangle: distance is exactly 5
		c := Circle{Center: Vec{100, 100}, Radius: 2}
		d := Circle{Center: Vec{103, 104}, Radius: 3}
		assert.False(t, CirclesOverlap(c, d))
		assert.False(t, CirclesOverlap(d, c))
	})

	t.Run("just inside tangency overlaps", func(t *testing.T) {
		a := Circle{Center: Vec{0, 0}, Radius: 20}
		b := Circle{Center: Vec{29.999, 0}, Radius: 10}
		assert.True(t, CirclesOverlap(a, b))
	})

	t.Run("far apart", func(t *testing.T) {
		a := Circle{Center: Vec{0, 0}, Radius: 20}
		b := Circle{Center: Vec{400, 300}, Radius: 10}
		assert.False(t, CirclesOverlap(a, b))
	})

	t.Run("symmetric", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 5000; i++ {
			a := Circle{Center: Vec{rng.Float64() * 100, rng.Float64() * 100}, Radius: rng.Float64() * 30}
			b := Circle{Center: Vec{rng.Float64() * 100, rng.Float64() * 100}, Radius: rng.Float64() * 30}
			if CirclesOverlap(a, b) != CirclesOverlap(b, a) {
				t.Fatalf("asymmetric result for %v and %v", a, b)
			}
		}
	})
}
