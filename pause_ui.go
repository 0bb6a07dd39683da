package main

import (
	"fmt"
	"image/color"

	"github.com/milk9111/rollerball/common"
	"github.com/milk9111/rollerball/session"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/rs/zerolog/log"

	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func basicFace() ebtext.Face {
	return ebtext.NewGoXFace(basicfont.Face7x13)
}

// NewPauseUI builds a centered pause menu: resume, back to checkpoint, restart
// level.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	face := basicFace()
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	resumeBtn := button("Resume", func() {
		g.paused = false
	})
	restartBtn := button("Back to checkpoint", func() {
		g.scene.Restart()
		g.paused = false
	})
	reloadBtn := button("Restart level", func() {
		if err := g.Reload(); err != nil {
			log.Error().Err(err).Msg("restart level")
			return
		}
		g.paused = false
	})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)
	panel.AddChild(restartBtn)
	panel.AddChild(reloadBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

// HUD shows the current stats in the corner and the finish message.
type HUD struct {
	UI *ebitenui.UI

	stats  *widget.Text
	banner *widget.Text
}

func NewHUD() *HUD {
	face := basicFace()
	h := &HUD{}

	h.stats = widget.NewText(widget.TextOpts.Text("", &face, white))
	h.banner = widget.NewText(widget.TextOpts.Text("", &face, color.NRGBA{R: 0xff, G: 0xd8, B: 0x4a, A: 0xff}))

	column := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 24, Left: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	column.AddChild(h.stats)
	column.AddChild(h.banner)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(column)
	h.UI = &ebitenui.UI{Container: root}
	return h
}

func (h *HUD) Update(stats session.Stats, message string, finished bool) {
	h.stats.Label = fmt.Sprintf("speed %.1f  max %.1f  jump %.1f", stats.GroundForce, stats.MaxSpeed, stats.JumpForce)
	switch {
	case finished && message != "":
		h.banner.Label = message
	case finished:
		h.banner.Label = "Level complete"
	default:
		h.banner.Label = ""
	}
}
