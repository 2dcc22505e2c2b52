// Package ebiten loads portrait images into Ebitengine images.
package ebiten

import (
	"fmt"
	"image"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"chosenoffset.com/questmap/internal/render"
)

// portraitImage is a render.Image held on the GPU by Ebitengine.
type portraitImage struct {
	img *ebiten.Image
}

func (p *portraitImage) Bounds() image.Rectangle {
	return p.img.Bounds()
}

func (p *portraitImage) Size() (width, height int) {
	b := p.img.Bounds()
	return b.Dx(), b.Dy()
}

func (p *portraitImage) Dispose() {
	p.img.Dispose()
}

// Loader reads image files from disk. Any format registered with the
// image package decodes; PNG always is.
type Loader struct{}

// NewResourceLoader returns a Loader as a render.ResourceLoader
func NewResourceLoader() render.ResourceLoader {
	return Loader{}
}

// LoadImage decodes the file at path and uploads it.
func (Loader) LoadImage(path string) (render.Image, error) {
	img, src, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading image %s: %w", path, err)
	}
	if src.Bounds().Empty() {
		img.Dispose()
		return nil, fmt.Errorf("loading image %s: image is empty", path)
	}
	return &portraitImage{img: img}, nil
}
