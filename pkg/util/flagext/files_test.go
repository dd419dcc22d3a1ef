package flagext

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	var files Files
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&files, "file", "")

	require.NoError(t, fs.Parse([]string{"-file=a.yaml", "-file", "b.yaml, c.yaml", "-file="}))
	require.Equal(t, Files{"a.yaml", "b.yaml", "c.yaml"}, files)
	require.Equal(t, "a.yaml,b.yaml,c.yaml", files.String())
}
