package scssgo

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileString(t *testing.T) {
	c := New(fstest.MapFS{})
	css, err := c.CompileString(`
$width: 2px;
.box {
  border: $width solid red;
}
`, "inline.scss")
	require.NoError(t, err)
	assert.Contains(t, css, "border: 2px solid red;")
}

func TestCompileWithImport(t *testing.T) {
	fsys := fstest.MapFS{
		"_colors.scss": &fstest.MapFile{Data: []byte(`$brand: #336699;`)},
		"main.scss":    &fstest.MapFile{Data: []byte("@import \"colors\";\n.logo { color: $brand; }")},
	}
	c := New(fsys)
	css, err := c.Compile("main.scss")
	require.NoError(t, err)
	assert.Contains(t, css, "color: #336699;")
}

func TestCompileCompressed(t *testing.T) {
	c := New(fstest.MapFS{}, WithCompressed(true))
	css, err := c.CompileString(".a { color: red; }", "inline.scss")
	require.NoError(t, err)
	assert.Equal(t, ".a{color:red}", css)
}

func TestCompileTolerantByDefault(t *testing.T) {
	c := New(fstest.MapFS{})
	css, err := c.CompileString(`
.card {
  @include undefined-mixin(2px);
  color: red;
}
`, "inline.scss")
	require.NoError(t, err)
	assert.Contains(t, css, "color: red;")
}

func TestCompileDebugEscalates(t *testing.T) {
	c := New(fstest.MapFS{}, WithDebug(true))
	_, err := c.CompileString(`
.card {
  @include undefined-mixin(2px);
}
`, "inline.scss")
	require.Error(t, err)
}
