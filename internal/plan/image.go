package plan

import (
	"fmt"
	"image"
	"os"

	// Register decoders for the supported plan image formats.
	_ "image/jpeg"
	_ "image/png"
)

// NaturalSize reads the intrinsic pixel dimensions of the plan image at
// path. Only the header is decoded, not the full image.
func NaturalSize(path string) (Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, fmt.Errorf("opening plan image %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, fmt.Errorf("decoding plan image %s: %w", path, err)
	}

	size := Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	if !size.Valid() {
		return Size{}, fmt.Errorf("plan image %s has invalid dimensions %dx%d",
			path, cfg.Width, cfg.Height)
	}
	return size, nil
}
