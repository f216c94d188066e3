package starfield

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// whiteImage backs every particle quad. The 3×3 source with a 1×1 interior
// keeps linear filtering from sampling past the edge.
var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

func ensureWhiteImage() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(ColorWhite.toRGBA())
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Draw clears screen to ClearColor and draws every star, one DrawTriangles32
// call per star. Must run on the loop goroutine (Ebitengine calls Update and
// Draw from the same goroutine).
func (f *Field) Draw(screen *ebiten.Image) {
	screen.Fill(f.ClearColor.toRGBA())
	src := ensureWhiteImage()
	for _, s := range f.stars {
		f.drawStar(screen, src, s)
	}
}

// drawStar batches the star's alive particles into one DrawTriangles32 call.
func (f *Field) drawStar(target, src *ebiten.Image, s *Star) {
	if f.buildQuads(s) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = f.blend.EbitenBlend()
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(f.verts, f.inds, src, &op)
}

// buildQuads fills f.verts and f.inds with one quad per alive particle,
// rotated by the star's spin and translated to its position. It returns the
// number of quads.
func (f *Field) buildQuads(s *Star) int {
	f.verts = f.verts[:0]
	f.inds = f.inds[:0]

	particles := s.emitter.Live()
	if len(particles) == 0 {
		return 0
	}

	sin, cos := math.Sincos(s.Rotation())
	cx, cy := s.position.X, s.position.Y

	for i := range particles {
		p := &particles[i]
		half := f.particleSize * float64(p.Scale) / 2

		// Rotate the particle center around the star center; quads stay
		// axis-aligned.
		px := cos*p.X - sin*p.Y + cx
		py := sin*p.X + cos*p.Y + cy

		ca := float32(p.Color.A)
		cr := float32(p.Color.R) * ca
		cg := float32(p.Color.G) * ca
		cb := float32(p.Color.B) * ca

		base := uint32(len(f.verts))
		qx := [4]float64{px - half, px + half, px - half, px + half}
		qy := [4]float64{py - half, py - half, py + half, py + half}
		sx := [4]float32{1, 2, 1, 2}
		sy := [4]float32{1, 1, 2, 2}
		for j := 0; j < 4; j++ {
			f.verts = append(f.verts, ebiten.Vertex{
				DstX:   float32(qx[j]),
				DstY:   float32(qy[j]),
				SrcX:   sx[j],
				SrcY:   sy[j],
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: ca,
			})
		}
		f.inds = append(f.inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
	return len(particles)
}
