// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browser opens web pages in the user's default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener launches URLs in a browser.
type Opener interface {
	// Name returns the launcher binary name (e.g. "xdg-open").
	Name() string

	// Available reports whether the launcher binary exists on PATH.
	Available() bool

	// Open opens the URL in the default browser.
	Open(url string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// launcher implements Opener for a specific launcher binary. Platforms
// differ only in binary name and fixed leading arguments.
type launcher struct {
	bin  string
	args []string // e.g. ["/c", "start", ""] for cmd on Windows
	exec executor
}

func (l *launcher) Name() string { return l.bin }

func (l *launcher) Available() bool {
	_, err := l.exec.LookPath(l.bin)
	return err == nil
}

func (l *launcher) Open(url string) error {
	args := make([]string, 0, len(l.args)+1)
	args = append(args, l.args...)
	args = append(args, url)

	if err := l.exec.RunSilent(l.bin, args...); err != nil {
		return fmt.Errorf("opening %s with %s: %w", url, l.bin, err)
	}
	return nil
}

// candidates returns the launchers to try for the given platform, in
// preference order.
func candidates(goos string, exec executor) []*launcher {
	switch goos {
	case "darwin":
		return []*launcher{{bin: "open", exec: exec}}
	case "windows":
		return []*launcher{{bin: "cmd", args: []string{"/c", "start", ""}, exec: exec}}
	default:
		return []*launcher{
			{bin: "xdg-open", exec: exec},
			{bin: "sensible-browser", exec: exec},
		}
	}
}

var defaultExec = &osExecutor{}

// Detect returns a launcher for the current platform. Returns an error
// if no launcher binary is available; callers treat that as a warning
// and print the URL instead.
func Detect() (Opener, error) {
	return detect(runtime.GOOS, defaultExec)
}

func detect(goos string, exec executor) (Opener, error) {
	for _, l := range candidates(goos, exec) {
		if l.Available() {
			return l, nil
		}
	}
	return nil, fmt.Errorf("no browser launcher available on %s", goos)
}
