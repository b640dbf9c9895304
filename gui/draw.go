package gui

import (
	"image"
	"image/color"
	_ "image/png"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/laneshift/view"
)

var (
	skyColor      = color.RGBA{24, 26, 44, 255}
	groundColor   = color.RGBA{40, 44, 60, 255}
	laneColor     = color.RGBA{120, 130, 170, 255}
	obstacleColor = color.RGBA{230, 80, 90, 255}
	obstacleEdge  = color.RGBA{120, 30, 40, 255}
	coinColor     = color.RGBA{250, 210, 70, 255}
	playerColor   = color.RGBA{110, 220, 160, 255}
)

const glyphWidth = 6

// loadSprite reads the player image. A missing or unreadable file is logged
// and the player is drawn as a triangle instead.
func loadSprite(path string, logger *slog.Logger) *ebiten.Image {
	if path == "" {
		return nil
	}
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		logger.Warn("player sprite unavailable, using fallback shape", "path", path, "error", err)
		return nil
	}
	return img
}

// painter draws projected sprites onto the screen.
type painter struct {
	sprite *ebiten.Image
	white  *ebiten.Image
}

func (p *painter) whiteImage() *ebiten.Image {
	if p.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		p.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return p.white
}

func (p *painter) background(screen *ebiten.Image, proj view.Projector) {
	screen.Fill(skyColor)
	horizon := float32(proj.Height * proj.Horizon)
	vector.DrawFilledRect(screen, 0, horizon, float32(proj.Width), float32(proj.Height)-horizon, groundColor, false)
}

func (p *painter) lanes(screen *ebiten.Image, segments []view.Segment) {
	for _, s := range segments {
		vector.StrokeLine(screen, float32(s.X0), float32(s.Y0), float32(s.X1), float32(s.Y1), 2, laneColor, true)
	}
}

func (p *painter) draw(screen *ebiten.Image, s view.Sprite) {
	switch s.Kind {
	case view.SpriteObstacle:
		x, y, size := float32(s.X-s.Size/2), float32(s.Y-s.Size/2), float32(s.Size)
		vector.DrawFilledRect(screen, x, y, size, size, obstacleColor, false)
		vector.StrokeRect(screen, x, y, size, size, 1, obstacleEdge, false)
	case view.SpriteCoin:
		r := s.Size / 2
		rx := math.Max(r*math.Abs(math.Cos(s.Spin)), 1)
		p.fill(screen, ellipse(s.X, s.Y, rx, r), coinColor)
	case view.SpritePlayer:
		if p.sprite != nil {
			p.image(screen, p.sprite, s)
			return
		}
		p.fill(screen, []point2{
			{s.X, s.Y - s.Size/2},
			{s.X + s.Size/2, s.Y + s.Size/2},
			{s.X - s.Size/2, s.Y + s.Size/2},
		}, playerColor)
	}
}

func (p *painter) image(screen, img *ebiten.Image, s view.Sprite) {
	b := img.Bounds()
	scale := s.Size / float64(b.Dy())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(s.X-float64(b.Dx())*scale/2, s.Y-s.Size/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

type point2 struct{ x, y float64 }

func ellipse(cx, cy, rx, ry float64) []point2 {
	const n = 20
	pts := make([]point2, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / n
		pts[i] = point2{cx + rx*math.Cos(a), cy + ry*math.Sin(a)}
	}
	return pts
}

// fill paints a convex polygon.
func (p *painter) fill(screen *ebiten.Image, pts []point2, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].x), float32(pts[0].y))
	for _, pt := range pts[1:] {
		path.LineTo(float32(pt.x), float32(pt.y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(c.R) / 0xff
		vs[i].ColorG = float32(c.G) / 0xff
		vs[i].ColorB = float32(c.B) / 0xff
		vs[i].ColorA = float32(c.A) / 0xff
	}
	screen.DrawTriangles(vs, is, p.whiteImage(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (p *painter) text(screen *ebiten.Image, proj view.Projector, hud, title, hint string) {
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
	if title == "" {
		return
	}
	mid := int(proj.Height / 2)
	ebitenutil.DebugPrintAt(screen, title, centred(title, proj.Width), mid-20)
	ebitenutil.DebugPrintAt(screen, hint, centred(hint, proj.Width), mid)
}

func centred(s string, width float64) int {
	return int(width)/2 - len(s)*glyphWidth/2
}
