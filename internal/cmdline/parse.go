// Package cmdline parses the `:` command-line grammar and drives the
// palette of built-in actions. It is independent of UI state; the TUI layer
// decides what each parsed command means in context.
package cmdline

import (
	"fmt"
	"strings"

	"github.com/danielnaab/graft/internal/shellwords"
)

// Kind discriminates parsed command-line commands.
type Kind int

const (
	KindUnknown Kind = iota
	KindHelp
	KindQuit
	KindRefresh // re-scan all repository statuses
	KindJump    // jump to a repository by index or substring
	KindRun     // run a named repository command
	KindState   // refresh state-query summaries via the external tool
)

// Command is the parsed form of a command-line input.
type Command struct {
	Kind   Kind
	Target string   // KindJump: repository index or substring
	Name   string   // KindRun: command name
	Args   []string // KindRun: tokenized arguments
	Raw    string   // KindUnknown: the original input
}

// Parse interprets a command-line buffer. A leading ':' is accepted and
// stripped. Tokenization errors (e.g. an unterminated quote) are returned
// as errors, never guessed around.
func Parse(raw string) (Command, error) {
	input := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), ":"))
	if input == "" {
		return Command{Kind: KindUnknown, Raw: raw}, fmt.Errorf("empty command")
	}

	words, err := shellwords.Split(input)
	if err != nil {
		return Command{Kind: KindUnknown, Raw: raw}, fmt.Errorf("parsing command line: %w", err)
	}

	verb, rest := words[0], words[1:]
	switch verb {
	case "help":
		return Command{Kind: KindHelp}, nil
	case "quit", "q":
		return Command{Kind: KindQuit}, nil
	case "refresh":
		return Command{Kind: KindRefresh}, nil
	case "state":
		return Command{Kind: KindState}, nil
	case "repo":
		if len(rest) != 1 {
			return Command{Kind: KindUnknown, Raw: raw}, fmt.Errorf("usage: repo <index|substring>")
		}
		return Command{Kind: KindJump, Target: rest[0]}, nil
	case "run":
		if len(rest) == 0 {
			return Command{Kind: KindUnknown, Raw: raw}, fmt.Errorf("usage: run <command> [args...]")
		}
		return Command{Kind: KindRun, Name: rest[0], Args: rest[1:]}, nil
	default:
		return Command{Kind: KindUnknown, Raw: raw}, fmt.Errorf("unknown command: %s", verb)
	}
}
