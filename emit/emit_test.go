package emit_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/titpetric/scssgo/compiler"
	"github.com/titpetric/scssgo/emit"
	"github.com/titpetric/scssgo/extend"
)

func TestRenderPretty(t *testing.T) {
	val := "red"
	rules := []*compiler.Rule{
		{
			Selectors: ".box",
			Properties: []compiler.Property{
				{Property: "color", Value: &val},
			},
		},
	}
	got := emit.Render(rules, extend.NewGraph(), emit.Options{})
	want := ".box {\n  color: red;\n}\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCompressed(t *testing.T) {
	val := "0px"
	rules := []*compiler.Rule{
		{
			Selectors: ".a",
			Properties: []compiler.Property{
				{Property: "margin", Value: &val},
			},
		},
	}
	got := emit.Render(rules, extend.NewGraph(), emit.Options{Compressed: true})
	require.Equal(t, ".a{margin:0}", got)
}

func TestRenderPrettyLeavesZerosAndHexAlone(t *testing.T) {
	val := "0.5px solid #ffcc00"
	rules := []*compiler.Rule{
		{
			Selectors:  ".a",
			Properties: []compiler.Property{{Property: "border", Value: &val}},
		},
	}
	got := emit.Render(rules, extend.NewGraph(), emit.Options{})
	require.Equal(t, ".a {\n  border: 0.5px solid #ffcc00;\n}\n", got)
}

func TestRenderShortColors(t *testing.T) {
	val := "#ffcc00"
	rules := []*compiler.Rule{
		{
			Selectors:  ".a",
			Properties: []compiler.Property{{Property: "color", Value: &val}},
		},
	}
	got := emit.Render(rules, extend.NewGraph(), emit.Options{ShortColors: true})
	require.Equal(t, ".a {\n  color: #fc0;\n}\n", got)
}

func TestRenderCompressReverseColors(t *testing.T) {
	val := "#ff0000"
	rules := []*compiler.Rule{
		{
			Selectors:  ".a",
			Properties: []compiler.Property{{Property: "color", Value: &val}},
		},
	}
	got := emit.Render(rules, extend.NewGraph(), emit.Options{Compressed: true, CompressReverseColors: true})
	require.Equal(t, ".a{color:red}", got)
}
