package terrain

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"math"
	"math/rand/v2"
	"os"

	_ "golang.org/x/image/bmp"
)

// FromImage builds a height field from the luminance of a raster:
// (r+g+b)/3 in 8-bit range, times scale.
func FromImage(img image.Image, scale float64) (*HeightField, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 2 || h < 2 {
		return nil, fmt.Errorf("%w: image %dx%d", ErrBadExtents, w, h)
	}
	samples := make([]float64, w*h)
	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+z)).(color.NRGBA)
			lum := (float64(c.R) + float64(c.G) + float64(c.B)) / 3
			samples[z*w+x] = lum * scale
		}
	}
	return &HeightField{width: w, height: h, samples: samples}, nil
}

// Load decodes a BMP or PNG height raster from disk
func Load(path string, scale float64) (*HeightField, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open heightmap %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode heightmap %s: %w", path, err)
	}
	hf, err := FromImage(img, scale)
	if err != nil {
		return nil, fmt.Errorf("heightmap %s (%s): %w", path, format, err)
	}
	return hf, nil
}

// SynthesizeImage renders a gray rolling-hills raster. The same seed
// always gives the same image; seed 0 uses zero phase.
func SynthesizeImage(width, height int, seed uint64) *image.Gray {
	var px, pz float64
	if seed != 0 {
		rng := rand.New(rand.NewPCG(seed, seed>>32))
		px, pz = rng.Float64()*2*math.Pi, rng.Float64()*2*math.Pi
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			fx := float64(x) / float64(width)
			fz := float64(z) / float64(height)
			v := 0.5 +
				0.25*math.Sin(fx*2*math.Pi*2+px)*math.Cos(fz*2*math.Pi*1.5+pz) +
				0.15*math.Sin((fx+fz)*2*math.Pi*3+px-pz)
			v = math.Max(0, math.Min(1, v))
			img.SetGray(x, z, color.Gray{Y: uint8(v * 255)})
		}
	}
	return img
}

// Synthesize is used when no map file is configured
func Synthesize(width, height int, scale float64, seed uint64) (*HeightField, error) {
	return FromImage(SynthesizeImage(width, height, seed), scale)
}
