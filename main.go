package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/danielnaab/graft/internal/tui"
	"github.com/danielnaab/graft/internal/workspace"
)

// version is set via -ldflags at build time
var version = "dev"

const helpText = `
graft - multi-repository workspace terminal UI

Usage:
  graft [options]

Runs the interactive workspace view for the nearest graft.yaml, found by
walking up from the current directory.

Options:
  --workspace <dir>  Use <dir> as the workspace root instead of searching
  --help, -h         Show this help message
  --version, -v      Show version

Keys:
  j/k        move        enter      open / run
  /          filter      :          command line
  esc        dashboard   q          back / quit
  ?          full key reference inside the app
`

func main() {
	args := os.Args[1:]

	var root string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			fmt.Print(helpText)
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("graft %s\n", version)
			os.Exit(0)
		case "--workspace":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: --workspace requires a directory")
				os.Exit(1)
			}
			i++
			root = args[i]
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown argument %q\n", args[i])
			fmt.Print(helpText)
			os.Exit(1)
		}
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: graft requires an interactive terminal")
		os.Exit(1)
	}

	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		root = workspace.Find(cwd)
		if root == "" {
			fmt.Fprintf(os.Stderr, "Error: no %s found in %s or any parent\n", workspace.ConfigFile, cwd)
			os.Exit(1)
		}
	}

	ws, err := workspace.Load(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(ws, version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
