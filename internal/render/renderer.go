// Package render holds the backend-neutral image types the quest map hands
// to whatever draws it. Map generation never draws; it only needs to load
// portrait images and pass the handles along.
package render

import (
	"image"
)

// Image represents a loaded image surface.
// It abstracts the underlying image implementation.
type Image interface {
	// Bounds returns the image rectangle.
	Bounds() image.Rectangle

	// Size returns width and height in pixels.
	Size() (width, height int)

	// Dispose releases the image resources.
	Dispose()
}

// ResourceLoader handles loading resources like images from disk.
type ResourceLoader interface {
	LoadImage(path string) (Image, error)
}

// ResourceLoaderFunc adapts a function to ResourceLoader.
type ResourceLoaderFunc func(path string) (Image, error)

// LoadImage calls f(path).
func (f ResourceLoaderFunc) LoadImage(path string) (Image, error) {
	return f(path)
}
