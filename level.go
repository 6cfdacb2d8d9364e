package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/controller"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const segmentRadius = 2

// Segment is one static collision edge, in screen coordinates.
type Segment struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

// Level describes a demo arena: spawn point, static geometry, and the
// height bands where gravity deviates from the tuned constant.
type Level struct {
	Name         string                   `yaml:"name"`
	Spawn        Point                    `yaml:"spawn"`
	Platforms    []Segment                `yaml:"platforms"`
	GravityBands []controller.GravityBand `yaml:"gravity_bands"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	return &lvl, nil
}

func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	return ParseLevel(data)
}

// Build adds the level's geometry to the space as static segments and
// returns the created shapes.
func (l *Level) Build(space *cp.Space) []*cp.Shape {
	shapes := make([]*cp.Shape, 0, len(l.Platforms))
	for _, p := range l.Platforms {
		seg := cp.NewSegment(space.StaticBody, cp.Vector{X: p.X1, Y: p.Y1}, cp.Vector{X: p.X2, Y: p.Y2}, segmentRadius)
		seg.SetFriction(1)
		seg.SetElasticity(0)
		shapes = append(shapes, space.AddShape(seg))
	}
	return shapes
}

// GravityProvider builds the height-dependent gravity lookup for this level.
// fallback applies everywhere outside the declared bands.
func (l *Level) GravityProvider(fallback float64) controller.GravityProvider {
	if len(l.GravityBands) == 0 {
		return controller.ConstantGravity(fallback)
	}
	return controller.PlatformGravity{Bands: l.GravityBands, Fallback: fallback}
}

func (l *Level) Draw(screen *ebiten.Image) {
	for _, p := range l.Platforms {
		ebitenutil.DrawLine(screen, p.X1, p.Y1, p.X2, p.Y2, colornames.Lightslategray)
	}
	for _, b := range l.GravityBands {
		ebitenutil.DrawLine(screen, 0, b.FromY, float64(screen.Bounds().Dx()), b.FromY, colornames.Midnightblue)
		ebitenutil.DrawLine(screen, 0, b.ToY, float64(screen.Bounds().Dx()), b.ToY, colornames.Midnightblue)
	}
}
