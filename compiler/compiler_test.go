package compiler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titpetric/scssgo/compiler"
	"github.com/titpetric/scssgo/emit"
	"github.com/titpetric/scssgo/lexer"
	"github.com/titpetric/scssgo/scsslog"
)

func render(t *testing.T, src string) string {
	t.Helper()
	sess := compiler.NewSession(nil, nil, scsslog.Silent(), false)
	idx := sess.Index
	fileID := idx.Add("test.scss", 0)
	pre := lexer.Preprocess(src, "test.scss", idx)
	root := sess.Root(fileID, "test.scss")
	require.NoError(t, sess.Compile(pre, root))
	return emit.Render(sess.Output(), sess.Extend, emit.Options{})
}

func TestVariablesAndNesting(t *testing.T) {
	css := render(t, `
$base: 10px;
.box {
  width: $base * 2;
  .inner {
    height: $base;
  }
}
`)
	assert.Contains(t, css, ".box {")
	assert.Contains(t, css, "width: 20px;")
	assert.Contains(t, css, ".box .inner {")
	assert.Contains(t, css, "height: 10px;")
}

func TestMixinInclude(t *testing.T) {
	css := render(t, `
@mixin border($width: 1px) {
  border: $width solid black;
}
.card {
  @include border(2px);
}
`)
	assert.Contains(t, css, "border: 2px solid black;")
}

func TestIfElse(t *testing.T) {
	css := render(t, `
$flag: true;
.a {
  @if $flag {
    color: red;
  } @else {
    color: blue;
  }
}
`)
	assert.Contains(t, css, "color: red;")
	assert.False(t, strings.Contains(css, "color: blue;"))
}

func TestEachLoop(t *testing.T) {
	css := render(t, `
@each $name in a, b, c {
  .icon-#{$name} {
    content: $name;
  }
}
`)
	assert.Contains(t, css, ".icon-a {")
	assert.Contains(t, css, ".icon-b {")
	assert.Contains(t, css, ".icon-c {")
}

func TestExtend(t *testing.T) {
	css := render(t, `
.message {
  color: black;
}
.error {
  @extend .message;
  color: red;
}
`)
	assert.Contains(t, css, ".message, .error {")
}
