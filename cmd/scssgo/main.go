// Command scssgo compiles a single SCSS file to CSS, adapted from the
// teacher's cmd/lessgo compile subcommand.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/titpetric/scssgo"
	"github.com/titpetric/scssgo/scsslog"
)

func main() {
	fs := flag.NewFlagSet("scssgo", flag.ExitOnError)
	compressed := fs.Bool("compress", false, "emit compressed CSS")
	debugInfo := fs.Bool("debug-info", false, "set the DebugInfo option (no -sass-debug-info blocks are emitted)")
	debug := fs.Bool("debug", false, "escalate directive errors to fatal instead of warn-and-continue")
	quiet := fs.Bool("quiet", false, "silence @warn/@debug diagnostics")
	shortColors := fs.Bool("short-colors", false, "shorten #RRGGBB to #RGB when safe")
	reverseColors := fs.Bool("reverse-colors", false, "rewrite hex colors to the shortest matching named color")
	loadPath := fs.String("load-path", "", "comma-separated @import search directories")
	fs.Parse(os.Args[1:])

	args := fs.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: scssgo [flags] <file.scss>\n")
		fs.PrintDefaults()
		os.Exit(1)
	}

	if err := run(args[0], *compressed, *debugInfo, *debug, *quiet, *shortColors, *reverseColors, *loadPath); err != nil {
		fmt.Fprintf(os.Stderr, "scssgo: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, compressed, debugInfo, debug, quiet, shortColors, reverseColors bool, loadPath string) error {
	root := filepath.Dir(path)
	logger := scsslog.New(os.Stderr)
	if quiet {
		logger = scsslog.Silent()
	}

	var loadPaths []string
	if loadPath != "" {
		loadPaths = strings.Split(loadPath, ",")
	}

	c := scssgo.New(os.DirFS(root),
		scssgo.WithCompressed(compressed),
		scssgo.WithDebugInfo(debugInfo),
		scssgo.WithDebug(debug),
		scssgo.WithShortColors(compressed, shortColors),
		scssgo.WithReverseColors(compressed, reverseColors),
		scssgo.WithLoadPaths(loadPaths...),
		scssgo.WithLogger(logger),
	)

	// Tolerant by default (spec.md §7): a broken stylesheet still produces
	// output, so print whatever compiled even when err != nil.
	css, err := c.Compile(filepath.Base(path))
	if css != "" {
		fmt.Println(css)
	}
	return err
}
