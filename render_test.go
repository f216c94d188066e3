package starfield

import (
	"math"
	"testing"
)

func renderTestField(t *testing.T, particles []Particle, rotation float64) (*Field, *Star) {
	t.Helper()
	f := &Field{particleSize: 2}
	em := &recordingEmitter{particles: particles}
	s, err := NewStar(0, StarOptions{
		Position:  Vec2{X: 100, Y: 50},
		Emitter:   em,
		Generator: openGenerator,
	})
	if err != nil {
		t.Fatalf("NewStar: %v", err)
	}
	s.spin.angle = rotation
	return f, s
}

func TestBuildQuadsEmpty(t *testing.T) {
	f, s := renderTestField(t, nil, 0)
	if n := f.buildQuads(s); n != 0 {
		t.Errorf("quads = %d, want 0", n)
	}
	if len(f.verts) != 0 || len(f.inds) != 0 {
		t.Error("buffers should be empty")
	}
}

func TestBuildQuadsPositionAndSize(t *testing.T) {
	f, s := renderTestField(t, []Particle{
		{X: 10, Y: -5, Scale: 1, Color: ColorWhite, Life: 1},
	}, 0)

	if n := f.buildQuads(s); n != 1 {
		t.Fatalf("quads = %d, want 1", n)
	}
	if len(f.verts) != 4 || len(f.inds) != 6 {
		t.Fatalf("verts/inds = %d/%d, want 4/6", len(f.verts), len(f.inds))
	}
	// Center (110, 45), half-size 1.
	v0, v3 := f.verts[0], f.verts[3]
	assertNear(t, "v0.DstX", float64(v0.DstX), 109)
	assertNear(t, "v0.DstY", float64(v0.DstY), 44)
	assertNear(t, "v3.DstX", float64(v3.DstX), 111)
	assertNear(t, "v3.DstY", float64(v3.DstY), 46)
	// Source samples the 1×1 interior of the white image.
	if v0.SrcX != 1 || v0.SrcY != 1 || v3.SrcX != 2 || v3.SrcY != 2 {
		t.Errorf("src coords = (%v,%v)-(%v,%v), want (1,1)-(2,2)", v0.SrcX, v0.SrcY, v3.SrcX, v3.SrcY)
	}
}

func TestBuildQuadsRotation(t *testing.T) {
	f, s := renderTestField(t, []Particle{
		{X: 10, Y: 0, Scale: 0, Color: ColorWhite, Life: 1},
	}, math.Pi/2)

	f.buildQuads(s)
	// A quarter turn moves (10, 0) to (0, 10) relative to the center.
	v := f.verts[0]
	if !approxEqual(float64(v.DstX), 100, 1e-4) || !approxEqual(float64(v.DstY), 60, 1e-4) {
		t.Errorf("rotated vertex = (%v, %v), want (100, 60)", v.DstX, v.DstY)
	}
}

func TestBuildQuadsPremultipliedColor(t *testing.T) {
	f, s := renderTestField(t, []Particle{
		{Scale: 1, Color: Color{R: 1, G: 0.5, B: 0, A: 0.5}, Life: 1},
	}, 0)

	f.buildQuads(s)
	v := f.verts[0]
	assertNear(t, "ColorR", float64(v.ColorR), 0.5)
	assertNear(t, "ColorG", float64(v.ColorG), 0.25)
	assertNear(t, "ColorB", float64(v.ColorB), 0)
	assertNear(t, "ColorA", float64(v.ColorA), 0.5)
}

func TestBuildQuadsReusesBuffers(t *testing.T) {
	ps := make([]Particle, 10)
	for i := range ps {
		ps[i] = Particle{X: float64(i), Scale: 1, Color: ColorWhite, Life: 1}
	}
	f, s := renderTestField(t, ps, 0)

	f.buildQuads(s)
	f.buildQuads(s)
	if len(f.verts) != 40 || len(f.inds) != 60 {
		t.Errorf("verts/inds = %d/%d, want 40/60 after a rebuild", len(f.verts), len(f.inds))
	}
	if f.inds[6] != 4 {
		t.Errorf("second quad starts at index %d, want 4", f.inds[6])
	}
}
