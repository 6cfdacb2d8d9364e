package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// debugHUD is a small ebitenui overlay showing the controller and behavior
// machine internals. Built from colored nine-slices and the built-in basic
// font so it needs no loaded assets.
type debugHUD struct {
	ui *ebitenui.UI

	state    *widget.Text
	momentum *widget.Text
	velocity *widget.Text
	behavior *widget.Text
	gravity  *widget.Text
	phase    *widget.Text
}

func newDebugHUD() *debugHUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	h := &debugHUD{}
	label := func() *widget.Text {
		return widget.NewText(
			widget.TextOpts.Text("", &face, white),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})),
		)
	}
	h.state = label()
	h.momentum = label()
	h.velocity = label()
	h.behavior = label()
	h.gravity = label()
	h.phase = label()

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(h.state)
	panel.AddChild(h.momentum)
	panel.AddChild(h.velocity)
	panel.AddChild(h.behavior)
	panel.AddChild(h.gravity)
	panel.AddChild(h.phase)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

func (h *debugHUD) update(g *Game) {
	mom := g.ctrl.Momentum()
	vel := g.ctrl.Velocity()

	h.state.Label = fmt.Sprintf("state: %s  grounded: %v", g.ctrl.State(), g.ctrl.IsGrounded())
	h.momentum.Label = fmt.Sprintf("momentum: %.1f, %.1f", mom.X, mom.Y)
	h.velocity.Label = fmt.Sprintf("velocity: %.1f, %.1f", vel.X, vel.Y)
	h.behavior.Label = fmt.Sprintf("behavior: %s  anim: %s", g.tree.Machine.Leaf().Name(), g.animation)
	h.gravity.Label = fmt.Sprintf("gravity: %.0f", g.gravity.GravityAt(g.body.Position().Y))
	if g.tree.Machine.InFlight() {
		h.phase.Label = fmt.Sprintf("transition -> %s", g.tree.Machine.Sequencer().Target().Name())
	} else {
		h.phase.Label = "transition: idle"
	}

	h.ui.Update()
}

func (h *debugHUD) draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}
