package ebiten

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadImageMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portrait_00.png")
	img, err := NewResourceLoader().LoadImage(path)
	require.Error(t, err)
	assert.Nil(t, img)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}

func TestLoadImageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portrait_01.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

	img, err := NewResourceLoader().LoadImage(path)
	require.Error(t, err)
	assert.Nil(t, img)
	assert.NotErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}
