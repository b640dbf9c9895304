// Package view turns game snapshots into screen-space drawing lists shared by
// the window and terminal front-ends.
package view

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/plus3/laneshift/runner"
)

// Camera is a fixed pinhole behind and above the player looking down the
// corridor.
type Camera struct {
	// Height and Back place the eye relative to the player at the origin.
	Height float64
	Back   float64
	// Focal scales world units to screen units at depth 1.
	Focal float64
	// Horizon is the screen y of the vanishing point, as a fraction of height.
	Horizon float64
	// Far culls anything deeper than this world z.
	Far float64
}

// DefaultCamera suits a portrait window.
func DefaultCamera() Camera {
	return Camera{Height: 4, Back: 8, Focal: 0.9, Horizon: 0.3, Far: -240}
}

// Projector maps world coordinates onto a screen of the given size.
type Projector struct {
	Camera
	Width, Height float64
	// Aspect stretches x, for terminals whose cells are taller than wide.
	Aspect float64
}

// NewProjector returns a projector for a width x height screen.
func NewProjector(cam Camera, width, height float64) Projector {
	return Projector{Camera: cam, Width: width, Height: height, Aspect: 1}
}

// Project returns the screen position of a world point and the number of
// screen units one world unit spans there. ok is false behind the camera or
// past the far plane.
func (p Projector) Project(x, y, z float64) (sx, sy, scale float64, ok bool) {
	depth := p.Back - z
	if depth <= 0.5 || z < p.Far {
		return 0, 0, 0, false
	}
	scale = p.Focal * p.Height / depth
	sx = p.Width/2 + x*scale*p.Aspect
	sy = p.Height*p.Horizon + (p.Camera.Height-y)*scale
	return sx, sy, scale, true
}

// SpriteKind is what a sprite depicts.
type SpriteKind int

const (
	SpritePlayer SpriteKind = iota
	SpriteObstacle
	SpriteCoin
)

// Sprite is one projected thing to draw, centred on X, Y with edge Size.
type Sprite struct {
	Kind  SpriteKind
	X, Y  float64
	Size  float64
	Depth float64
	// Spin is the coin's rotation in radians.
	Spin float64
}

// Scene projects every entity and the player, ordered far to near.
func Scene(snap runner.Snapshot, p Projector) []Sprite {
	sprites := make([]Sprite, 0, len(snap.Entities)+1)

	for _, e := range snap.Entities {
		var s Sprite
		switch e.Kind {
		case runner.KindObstacle:
			s = Sprite{Kind: SpriteObstacle, Size: e.Size}
		case runner.KindCoin:
			s = Sprite{Kind: SpriteCoin, Size: 0.6, Spin: e.Spin}
		}
		sx, sy, scale, ok := p.Project(e.X, e.Y, e.Z)
		if !ok {
			continue
		}
		s.X, s.Y, s.Size, s.Depth = sx, sy, s.Size*scale, e.Z
		sprites = append(sprites, s)
	}

	if sx, sy, scale, ok := p.Project(snap.Player.X, snap.Player.Y, snap.Player.Z); ok {
		sprites = append(sprites, Sprite{Kind: SpritePlayer, X: sx, Y: sy, Size: scale, Depth: snap.Player.Z})
	}

	slices.SortStableFunc(sprites, func(a, b Sprite) int {
		return cmp.Compare(a.Depth, b.Depth)
	})
	return sprites
}

// Segment is a screen-space line.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// LaneLines returns the corridor edges and lane dividers on the ground.
func LaneLines(lanes []float64, p Projector) []Segment {
	if len(lanes) == 0 {
		return nil
	}
	half := 1.1
	if len(lanes) > 1 {
		half = math.Abs(lanes[1]-lanes[0]) / 2
	}

	xs := make([]float64, 0, len(lanes)+1)
	xs = append(xs, lanes[0]-half)
	for _, x := range lanes {
		xs = append(xs, x+half)
	}

	segments := make([]Segment, 0, len(xs))
	for _, x := range xs {
		x0, y0, _, ok0 := p.Project(x, 0, 0)
		x1, y1, _, ok1 := p.Project(x, 0, p.Far)
		if ok0 && ok1 {
			segments = append(segments, Segment{x0, y0, x1, y1})
		}
	}
	return segments
}

// HUD is the one-line status text.
func HUD(board runner.Scoreboard) string {
	return fmt.Sprintf("SCORE %d   WAVE %d   SPEED %.2f   BEST %d",
		board.Score, board.Wave, board.Speed, int(math.Floor(board.Best)))
}

// Banner is the centred overlay for the current phase. Both strings are
// empty while running.
func Banner(s runner.Snapshot) (title, hint string) {
	switch s.Session.Phase {
	case runner.PhaseNotStarted:
		return "LANESHIFT", "press space to run"
	case runner.PhasePaused:
		return "PAUSED", "press p to resume"
	case runner.PhaseEnded:
		if s.Session.Outcome == runner.OutcomeWon {
			return fmt.Sprintf("YOU WIN  %d", s.Scoreboard.Final), "press r to run again"
		}
		return fmt.Sprintf("GAME OVER  %d", s.Scoreboard.Final), "press r to run again"
	}
	return "", ""
}
