package importer

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPartialConvention(t *testing.T) {
	fsys := fstest.MapFS{
		"_colors.scss": &fstest.MapFile{Data: []byte("$brand: blue;")},
	}
	imp := New(fsys)

	content, resolved, err := imp.Load("colors", nil)
	require.NoError(t, err)
	assert.Equal(t, "_colors.scss", resolved)
	assert.Contains(t, content, "$brand: blue;")
}

func TestLoadNonPartialFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"reset.scss": &fstest.MapFile{Data: []byte("* { margin: 0; }")},
	}
	imp := New(fsys)

	_, resolved, err := imp.Load("reset", nil)
	require.NoError(t, err)
	assert.Equal(t, "reset.scss", resolved)
}

func TestLoadSearchesLoadPaths(t *testing.T) {
	fsys := fstest.MapFS{
		"vendor/_grid.scss": &fstest.MapFile{Data: []byte(".grid {}")},
	}
	imp := New(fsys)

	_, resolved, err := imp.Load("grid", []string{"vendor"})
	require.NoError(t, err)
	assert.Equal(t, "vendor/_grid.scss", resolved)
}

func TestLoadMissing(t *testing.T) {
	imp := New(fstest.MapFS{})
	_, _, err := imp.Load("nope", nil)
	require.Error(t, err)
}
