// Package portrait hands out encounter portraits for quest map nodes.
//
// Portraits are picked uniformly from a fixed catalog of image files. Each
// catalog entry is loaded at most once, in the background, and every
// request for the same entry shares one Handle. Callers get the Handle
// immediately and can wait on it when they actually need pixels.
package portrait

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"chosenoffset.com/questmap/internal/render"
)

// DefaultPattern matches the portrait files written by the placeholder
// generator and any hand-drawn replacements.
const DefaultPattern = "**/*.png"

// ErrEmptyCatalog means a portrait directory holds no matching files.
var ErrEmptyCatalog = errors.New("no portraits found")

// Rand picks catalog entries. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Catalog is the ordered list of portrait image paths.
type Catalog []string

// LoadCatalog collects the files under dir matching pattern.
// Paths are returned sorted so a seeded provider picks the same files on
// every machine. dir must exist; matching nothing returns ErrEmptyCatalog.
func LoadCatalog(dir, pattern string) (Catalog, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening portrait dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("portrait dir %s is not a directory", dir)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern,
		doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("globbing portraits in %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: nothing matches %q in %s", ErrEmptyCatalog, pattern, dir)
	}
	sort.Strings(matches)

	catalog := make(Catalog, len(matches))
	for i, m := range matches {
		catalog[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return catalog, nil
}

// Handle is a portrait that may still be loading.
type Handle struct {
	Index int
	Path  string

	done chan struct{}
	img  render.Image
	err  error
}

func newHandle(index int, path string) *Handle {
	return &Handle{Index: index, Path: path, done: make(chan struct{})}
}

// Ready is closed once loading has finished, successfully or not.
func (h *Handle) Ready() <-chan struct{} {
	return h.done
}

// Wait blocks until the image is loaded.
func (h *Handle) Wait() (render.Image, error) {
	<-h.done
	return h.img, h.err
}

// Image returns the loaded image, or nil while loading or after a failure.
func (h *Handle) Image() render.Image {
	select {
	case <-h.done:
		return h.img
	default:
		return nil
	}
}

func (h *Handle) finish(img render.Image, err error) {
	h.img, h.err = img, err
	close(h.done)
}

// Provider selects and caches portraits. It is safe for concurrent use.
type Provider struct {
	catalog Catalog
	loader  render.ResourceLoader
	rng     Rand

	mu    sync.Mutex
	cache map[int]*Handle
}

// NewProvider creates a provider over catalog.
func NewProvider(catalog Catalog, loader render.ResourceLoader, rng Rand) *Provider {
	return &Provider{
		catalog: catalog,
		loader:  loader,
		rng:     rng,
		cache:   make(map[int]*Handle),
	}
}

// Len returns the catalog size
func (p *Provider) Len() int {
	return len(p.catalog)
}

// Portrait returns a uniformly chosen portrait. Returns nil when the
// catalog is empty.
func (p *Provider) Portrait() *Handle {
	if len(p.catalog) == 0 {
		return nil
	}
	p.mu.Lock()
	index := p.rng.Intn(len(p.catalog))
	p.mu.Unlock()
	return p.At(index)
}

// At returns the portrait for a catalog index, starting its load on first use.
func (p *Provider) At(index int) *Handle {
	if index < 0 || index >= len(p.catalog) {
		return nil
	}

	p.mu.Lock()
	h, ok := p.cache[index]
	if !ok {
		h = newHandle(index, p.catalog[index])
		p.cache[index] = h
	}
	p.mu.Unlock()

	if !ok {
		go func() {
			h.finish(p.loader.LoadImage(h.Path))
		}()
	}
	return h
}

// Close waits for outstanding loads and disposes every loaded image. It
// returns the load errors of every handle that failed.
func (p *Provider) Close() error {
	p.mu.Lock()
	handles := make([]*Handle, 0, len(p.cache))
	for _, h := range p.cache {
		handles = append(handles, h)
	}
	p.cache = make(map[int]*Handle)
	p.mu.Unlock()

	var errs []error
	for _, h := range handles {
		img, err := h.Wait()
		if err != nil {
			errs = append(errs, fmt.Errorf("portrait %d (%s): %w", h.Index, h.Path, err))
			continue
		}
		if img != nil {
			img.Dispose()
		}
	}
	return errors.Join(errs...)
}
