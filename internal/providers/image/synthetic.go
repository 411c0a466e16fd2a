package image

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// Synthetic renders a deterministic placeholder PNG in-process. It keeps the
// full provisioning path exercisable in local and CI environments where no
// API credentials exist.
type Synthetic struct{}

// NewSynthetic returns the placeholder generator.
func NewSynthetic() *Synthetic {
	return &Synthetic{}
}

// Generate fulfils the Generator interface. The output depends only on the
// prompt and size, so repeated runs produce identical bytes.
func (s *Synthetic) Generate(ctx context.Context, req GenerateRequest) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}
	width, height := ParseSize(req.Size)
	data, err := renderPlaceholder(width, height, req.Prompt)
	if err != nil {
		return Asset{}, err
	}
	return Asset{Data: data, Format: "image/png", Width: width, Height: height}, nil
}

var _ Generator = (*Synthetic)(nil)

func renderPlaceholder(width, height int, prompt string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	base := colorFromPrompt(prompt, 0)
	accent := colorFromPrompt(prompt, 1)
	draw.Draw(img, img.Bounds(), &image.Uniform{base}, image.Point{}, draw.Src)

	stripe := height / 12
	if stripe < 32 {
		stripe = 32
	}
	for y := 0; y < height; y += stripe * 2 {
		end := y + stripe
		if end > height {
			end = height
		}
		draw.Draw(img, image.Rect(0, y, width, end), &image.Uniform{accent}, image.Point{}, draw.Over)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("image: encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

func colorFromPrompt(prompt string, shift int) color.RGBA {
	sum := sha256.Sum256([]byte(prompt))
	i := (shift * 3) % len(sum)
	return color.RGBA{R: sum[i], G: sum[i+1], B: sum[i+2], A: 0xff}
}
