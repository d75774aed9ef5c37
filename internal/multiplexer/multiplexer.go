// Package multiplexer places commands into terminal multiplexer panes,
// windows or splits. tmux and kitty are supported; both are driven
// through their own CLIs, so this package only builds argument vectors
// and spawns a single child per request.
package multiplexer

import (
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/shuymn/phantom/internal/model"
)

// Direction selects where a spawned command is placed.
type Direction string

const (
	// DirectionNew opens a new window (tmux window, kitty OS window).
	DirectionNew Direction = "new"

	// DirectionVertical splits the current pane top/bottom.
	DirectionVertical Direction = "vertical"

	// DirectionHorizontal splits the current pane left/right.
	DirectionHorizontal Direction = "horizontal"
)

// Spec describes a command to place into a multiplexer pane or window.
type Spec struct {
	Direction Direction

	// Command and Args form the argument vector to run in the new pane.
	Command string
	Args    []string

	// Dir is the working directory for the new pane.
	Dir string

	// Env holds extra environment variables for the new pane, on top of
	// whatever the multiplexer inherits.
	Env map[string]string

	// Title names the new window. Ignored for splits.
	Title string
}

// InsideTmux reports whether the given environment indicates a process
// running inside a tmux session.
func InsideTmux(env []string) bool {
	return envValue(env, "TMUX") != ""
}

// InsideKitty reports whether the given environment indicates a kitty
// terminal with remote control available.
func InsideKitty(env []string) bool {
	return envValue(env, "KITTY_LISTEN_ON") != "" || envValue(env, "TERM") == "xterm-kitty"
}

// SpawnTmux opens a tmux window or split running the given command.
// The caller is expected to have checked InsideTmux first.
func SpawnTmux(spec Spec) error {
	cmd := exec.Command("tmux", TmuxArgs(spec)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create tmux pane: %s", strings.TrimSpace(string(output))), err)
	}
	return nil
}

// TmuxArgs builds the tmux argument vector for a spec. Split out from
// SpawnTmux so the construction is testable without a tmux server.
func TmuxArgs(spec Spec) []string {
	var args []string
	switch spec.Direction {
	case DirectionVertical:
		args = []string{"split-window", "-v"}
	case DirectionHorizontal:
		args = []string{"split-window", "-h"}
	default:
		args = []string{"new-window"}
		if spec.Title != "" {
			args = append(args, "-n", spec.Title)
		}
	}

	if spec.Dir != "" {
		args = append(args, "-c", spec.Dir)
	}
	for _, k := range sortedKeys(spec.Env) {
		args = append(args, "-e", k+"="+spec.Env[k])
	}

	args = append(args, spec.Command)
	return append(args, spec.Args...)
}

// SpawnKitty opens a kitty window or split running the given command,
// via the `kitten @ launch` remote-control interface.
func SpawnKitty(spec Spec) error {
	cmd := exec.Command("kitten", KittyArgs(spec)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create kitty window: %s", strings.TrimSpace(string(output))), err)
	}
	return nil
}

// KittyArgs builds the kitten argument vector for a spec.
func KittyArgs(spec Spec) []string {
	args := []string{"@", "launch"}
	switch spec.Direction {
	case DirectionVertical:
		args = append(args, "--location", "hsplit")
	case DirectionHorizontal:
		args = append(args, "--location", "vsplit")
	default:
		args = append(args, "--type", "os-window")
	}

	if spec.Title != "" {
		args = append(args, "--title", spec.Title)
	}
	if spec.Dir != "" {
		args = append(args, "--cwd", spec.Dir)
	}
	for _, k := range sortedKeys(spec.Env) {
		args = append(args, "--env", k+"="+spec.Env[k])
	}

	args = append(args, spec.Command)
	return append(args, spec.Args...)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func envValue(env []string, key string) string {
	for _, kv := range env {
		if v, ok := strings.CutPrefix(kv, key+"="); ok {
			return v
		}
	}
	return ""
}
