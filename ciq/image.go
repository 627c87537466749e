package ciq

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff" // register the TIFF decoder
)

// ReadRaster loads the raster at path into row-major 8-bit RGB pixels.
// ".ppm" files use the P6 codec; anything else goes through the
// registered image decoders (PNG, BMP, TIFF).
func ReadRaster(path string) (width, height int, pixels []Color, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, err
	}
	defer f.Close()

	if strings.ToLower(filepath.Ext(path)) == ".ppm" {
		return ReadPPM(f)
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return 0, 0, nil, &FormatError{Reason: "undecodable image", cause: err}
	}
	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	pixels = make([]Color, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
		}
	}
	return width, height, pixels, nil
}

// WriteRaster writes pixels as a raster to path, dispatching on the
// extension: ".png" produces a PNG at best compression, ".bmp" a BMP,
// and any other extension a binary PPM. PNG and BMP output is paletted
// when the palette fits the format's 256-entry limit.
func WriteRaster(path string, width, height int, pixels, palette []Color) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
		}
		return enc.Encode(f, rasterImage(width, height, pixels, palette))
	case ".bmp":
		return bmp.Encode(f, rasterImage(width, height, pixels, palette))
	default:
		return WritePPM(f, width, height, pixels)
	}
}

// rasterImage builds an image for the stdlib encoders. Pixels are
// expected to be palette colors already (the remap output), so the
// paletted form is an index lookup, not a nearest-color search; a
// palette over 256 entries falls back to NRGBA.
func rasterImage(width, height int, pixels, palette []Color) image.Image {
	bounds := image.Rect(0, 0, width, height)
	if len(palette) > 0 && len(palette) <= 256 {
		pal := make(color.Palette, len(palette))
		index := make(map[Color]uint8, len(palette))
		for i := len(palette) - 1; i >= 0; i-- {
			p := palette[i]
			pal[i] = color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
			index[p] = uint8(i)
		}
		img := image.NewPaletted(bounds, pal)
		for i, p := range pixels {
			img.Pix[i] = index[p]
		}
		return img
	}

	img := image.NewNRGBA(bounds)
	for i, p := range pixels {
		img.Pix[4*i] = p.R
		img.Pix[4*i+1] = p.G
		img.Pix[4*i+2] = p.B
		img.Pix[4*i+3] = 0xff
	}
	return img
}
