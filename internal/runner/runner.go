// Package runner is the command execution engine: it spawns the external
// tool for one repository command, streams its output line-by-line over a
// bounded event channel, and kills the process group on request. The worker
// goroutines own the child process and its pipes; the UI only ever drains
// events.
package runner

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// eventQueueSize bounds the event channel. A full queue blocks the worker,
// never the UI.
const eventQueueSize = 256

// scanBufSize is the maximum output line length before a stream error is
// reported instead.
const scanBufSize = 1024 * 1024

// Event is a message from the engine worker, drained by the UI loop.
type Event interface{ isEvent() }

// StartedEvent reports a successful spawn.
type StartedEvent struct{}

// LineEvent carries one output line. Lines from the same stream arrive in
// order; interleaving between stdout and stderr is best-effort.
type LineEvent struct {
	Stderr bool
	Text   string
}

// ExitEvent is the final event of a process that ran: the authoritative
// exit code.
type ExitEvent struct {
	Code int
}

// FailEvent reports a spawn failure or an unrecoverable wait error.
type FailEvent struct {
	Msg string
}

func (StartedEvent) isEvent() {}
func (LineEvent) isEvent()    {}
func (ExitEvent) isEvent()    {}
func (FailEvent) isEvent()    {}

// Handle is the caller's grip on one in-flight execution.
type Handle struct {
	events   chan Event
	cmd      *exec.Cmd
	stopOnce sync.Once
}

// Start spawns prog with args in dir, capturing stdout and stderr. The
// returned handle always delivers a terminal event (ExitEvent or FailEvent)
// and then closes its channel; spawn failures arrive as a FailEvent rather
// than an error return so the caller has one code path.
func Start(dir, prog string, args ...string) *Handle {
	h := &Handle{events: make(chan Event, eventQueueSize)}

	cmd := exec.Command(prog, args...)
	cmd.Dir = dir
	setProcGroup(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		h.fail(fmt.Sprintf("capturing stdout: %v", err))
		return h
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		h.fail(fmt.Sprintf("capturing stderr: %v", err))
		return h
	}

	if err := cmd.Start(); err != nil {
		h.fail(fmt.Sprintf("starting %s: %v", prog, err))
		return h
	}

	h.cmd = cmd
	h.events <- StartedEvent{}

	var wg sync.WaitGroup
	wg.Add(2)
	go h.stream(stdout, false, &wg)
	go h.stream(stderr, true, &wg)

	go func() {
		wg.Wait()
		err := cmd.Wait()
		switch err := err.(type) {
		case nil:
			h.events <- ExitEvent{Code: 0}
		case *exec.ExitError:
			h.events <- ExitEvent{Code: err.ExitCode()}
		default:
			h.events <- FailEvent{Msg: fmt.Sprintf("waiting for %s: %v", prog, err)}
		}
		close(h.events)
	}()

	return h
}

// Events is the bounded event stream. It is closed after the terminal
// event.
func (h *Handle) Events() <-chan Event {
	return h.events
}

// Stop kills the child's process group. It is safe to call more than once
// and after the process has already exited; a failure to kill is returned
// for reporting but the execution's terminal event still arrives via Wait.
func (h *Handle) Stop() error {
	if h.cmd == nil {
		return nil
	}
	var err error
	h.stopOnce.Do(func() {
		err = killProcGroup(h.cmd)
	})
	return err
}

// stream reads one pipe line-by-line, posting each line as an event.
func (h *Handle) stream(r io.Reader, stderr bool, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), scanBufSize)
	for scanner.Scan() {
		h.events <- LineEvent{Stderr: stderr, Text: scanner.Text()}
	}
	if err := scanner.Err(); err != nil {
		h.events <- LineEvent{Stderr: stderr, Text: fmt.Sprintf("[stream error: %v]", err)}
		// Keep consuming so the child never blocks on a full pipe and the
		// exit event still arrives.
		io.Copy(io.Discard, r) //nolint:errcheck
	}
}

// fail delivers a spawn failure and closes the stream.
func (h *Handle) fail(msg string) {
	h.events <- FailEvent{Msg: msg}
	close(h.events)
}
