package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
)

// PortraitSize is the edge length of a placeholder portrait
const PortraitSize = 64

// Rand is the randomness a portrait needs.
type Rand interface {
	Intn(n int) int
}

// ColorPalette defines the colors placeholder portraits are drawn with
var ColorPalette = struct {
	// Creature skins
	Goblin   color.RGBA
	Skeleton color.RGBA
	Slime    color.RGBA
	Cultist  color.RGBA
	Demon    color.RGBA
	Wraith   color.RGBA

	// Frame
	Border     color.RGBA
	Background color.RGBA
	Eyes       color.RGBA
}{
	Goblin:   color.RGBA{90, 160, 70, 255},   // Swamp green
	Skeleton: color.RGBA{220, 215, 200, 255}, // Bone
	Slime:    color.RGBA{80, 200, 190, 255},  // Teal
	Cultist:  color.RGBA{120, 50, 130, 255},  // Robe purple
	Demon:    color.RGBA{200, 40, 40, 255},   // Blood red
	Wraith:   color.RGBA{150, 160, 190, 255}, // Pale blue

	Border:     color.RGBA{200, 200, 200, 255}, // Light gray
	Background: color.RGBA{30, 28, 25, 255},    // Very dark brown
	Eyes:       color.RGBA{255, 215, 0, 255},   // Gold
}

// Skins lists the palette colors portraits cycle through
func Skins() []color.RGBA {
	p := ColorPalette
	return []color.RGBA{p.Goblin, p.Skeleton, p.Slime, p.Cultist, p.Demon, p.Wraith}
}

// CreatePortrait draws a framed head-and-shoulders silhouette in the given
// skin color. rng picks the eye spacing and height.
func CreatePortrait(skin color.RGBA, rng Rand) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PortraitSize, PortraitSize))

	// Fill background
	bg := Lighten(ColorPalette.Background, 0.05)
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	// Shoulders
	shoulders := Darken(skin, 0.6)
	fillCircle(img, PortraitSize/2, PortraitSize+PortraitSize/8, PortraitSize/2-4, shoulders)

	// Head
	center := PortraitSize / 2
	radius := PortraitSize/4 + rng.Intn(PortraitSize/16+1)
	fillCircle(img, center, center-2, radius, skin)

	// Eyes
	spread := radius/3 + rng.Intn(radius/4+1)
	eyeY := center - 2 - rng.Intn(radius/3+1)
	for _, x := range []int{center - spread, center + spread} {
		for dy := 0; dy < 3; dy++ {
			for dx := 0; dx < 3; dx++ {
				img.Set(x+dx-1, eyeY+dy-1, ColorPalette.Eyes)
			}
		}
	}

	drawBorder(img, ColorPalette.Border, 2)
	return img
}

// GeneratePortraits writes count placeholder portraits to dir as
// portrait_NN.png and returns their paths.
func GeneratePortraits(dir string, count int, seed int64) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating portrait dir: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	skins := Skins()
	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		img := CreatePortrait(skins[i%len(skins)], rng)
		path := filepath.Join(dir, fmt.Sprintf("portrait_%02d.png", i))
		if err := SavePNG(img, path); err != nil {
			return paths, fmt.Errorf("saving %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func fillCircle(img *image.RGBA, cx, cy, radius int, col color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := x - cx
			dy := y - cy
			if dx*dx+dy*dy <= radius*radius {
				img.Set(x, y, col)
			}
		}
	}
}

func drawBorder(img *image.RGBA, col color.RGBA, width int) {
	size := img.Bounds().Dx()
	for i := 0; i < width; i++ {
		for x := 0; x < size; x++ {
			img.Set(x, i, col)
			img.Set(x, size-1-i, col)
		}
		for y := 0; y < size; y++ {
			img.Set(i, y, col)
			img.Set(size-1-i, y, col)
		}
	}
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
