package strings_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	intstrings "github.com/titpetric/scssgo/internal/strings"
)

func TestAliases(t *testing.T) {
	require.True(t, intstrings.HasPrefix("/assets/css/app.scss", "/assets/css"))
	require.True(t, intstrings.HasSuffix("/assets/css/app.scss", ".scss"))
	require.Equal(t, "/app.scss", intstrings.TrimPrefix("/assets/css/app.scss", "/assets/css"))
}
