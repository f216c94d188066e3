package starfield

import (
	"context"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run opens a window and drives f from Ebitengine's game loop until the
// window closes or ctx is done. It must be called from the main goroutine.
func Run(ctx context.Context, f *Field, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(f.TPS())

	g := &game{ctx: ctx, field: f, width: w, height: h, showFPS: cfg.ShowFPS}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// game adapts a Field to ebiten.Game.
type game struct {
	ctx           context.Context
	field         *Field
	width, height int
	showFPS       bool

	overlay      strings.Builder
	overlayTimer float64
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.field.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.field.Draw(screen)
	if g.showFPS {
		g.drawOverlay(screen)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// drawOverlay prints FPS, TPS and each star's seed and state. The text is
// rebuilt about twice a second.
func (g *game) drawOverlay(screen *ebiten.Image) {
	g.overlayTimer -= 1 / float64(g.field.TPS())
	if g.overlayTimer <= 0 || g.overlay.Len() == 0 {
		g.overlayTimer = 0.5
		g.overlay.Reset()
		fmt.Fprintf(&g.overlay, "FPS: %.1f\nTPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
		for _, s := range g.field.Stars() {
			fmt.Fprintf(&g.overlay, "star %d seed %d %s\n", s.Index(), s.Seed(), s.State())
		}
	}
	ebitenutil.DebugPrint(screen, g.overlay.String())
}
