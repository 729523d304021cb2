// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/jung-kurt/gofpdf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrDecode is returned when image bytes are not a recognized raster format.
var ErrDecode = errors.New("cannot identify image")

const pageImageName = "page"

// RenderImage decodes a PNG, JPEG, TIFF, BMP or GIF image and embeds it as
// the only page of a new PDF. The page is sized to the pixel dimensions at
// 72 dpi, so one pixel maps to one point.
//
// The image is flattened to opaque 8-bit RGB before embedding. An alpha
// channel is dropped rather than composited over a background, so fully
// transparent pixels keep whatever color they store.
func RenderImage(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", ErrDecode)
	}

	var encoded bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&encoded, flatten(img)); err != nil {
		return nil, fmt.Errorf("encoding flattened image: %w", err)
	}

	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(pageImageName, opts, &encoded)
	pdf.ImageOptions(pageImageName, 0, 0, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing image PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// flatten copies img into an opaque RGBA image with the straight
// (non-premultiplied) color of each pixel and alpha forced to 0xff.
func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst
}
