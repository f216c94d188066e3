package starfield

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Image renders the mask as a grayscale image: blocked cells white, open
// cells black. Feeding the result back to NewBoundaryMask yields an equal
// mask.
func (m *BoundaryMask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.width, m.height))
	for i, b := range m.blocked {
		if b {
			img.Pix[i] = 0xff
		}
	}
	return img
}

// SetMaskDumpDir enables writing each star's mask as a PNG into dir whenever
// a regeneration is applied. An empty dir disables dumping.
func (f *Field) SetMaskDumpDir(dir string) {
	f.dumpDir = dir
}

// DumpMasks writes the current mask of every star into dir immediately.
func (f *Field) DumpMasks(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	for _, s := range f.stars {
		if err := dumpMask(dir, s); err != nil {
			return err
		}
	}
	return nil
}

// dumpMask writes s's published mask to dir/star<index>_seed<seed>.png.
func dumpMask(dir string, s *Star) error {
	m := s.Mask()
	if m == nil {
		return nil
	}
	path := filepath.Join(dir, maskFileName(s.Index(), s.Seed()))
	return writePNG(path, m.Image())
}

func maskFileName(star int, seed int32) string {
	return fmt.Sprintf("star%d_seed%d.png", star, seed)
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// onApplied dumps the star's new mask when dumping is enabled. Failures are
// logged; they never affect the star.
func (f *Field) onApplied(s *Star) {
	if f.dumpDir == "" {
		return
	}
	if err := os.MkdirAll(f.dumpDir, 0o755); err != nil {
		Logger().Warn("mask dump: mkdir", "dir", f.dumpDir, "error", err)
		return
	}
	if err := dumpMask(f.dumpDir, s); err != nil {
		Logger().Warn("mask dump", "star", s.Index(), "error", err)
		return
	}
	Logger().Debug("mask dumped", "star", s.Index(), "seed", s.Seed(), "dir", f.dumpDir)
}
