package definition

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ActionQuit is the only recognised value of Entry.Action.
const ActionQuit = "quit"

// ActionKind says what activating a command entry does.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionRun
	ActionTmux
	ActionInfo
	ActionExit
)

func (k ActionKind) String() string {
	switch k {
	case ActionRun:
		return "run"
	case ActionTmux:
		return "tmux"
	case ActionInfo:
		return "info"
	case ActionExit:
		return "quit"
	default:
		return "none"
	}
}

// Action is the work requested by activating a command entry.
type Action struct {
	ID    string
	Label string
	Kind  ActionKind
	Run   string
	Tmux  []string
	Info  string
}

// ActionOf describes what activating e does. id is the entry's full ID path.
func ActionOf(id string, e Entry) Action {
	a := Action{ID: id, Label: e.Label}
	switch {
	case e.Run != "":
		a.Kind, a.Run = ActionRun, e.Run
	case len(e.Tmux) > 0:
		a.Kind, a.Tmux = ActionTmux, append([]string(nil), e.Tmux...)
	case e.Info != "":
		a.Kind, a.Info = ActionInfo, e.Info
	case e.Action == ActionQuit:
		a.Kind = ActionExit
	}
	return a
}

// Exec performs run, tmux and info actions and returns the status text to
// show. Quit actions are left to the caller.
func (a Action) Exec(socket string) (string, error) {
	switch a.Kind {
	case ActionRun:
		out, err := exec.Command("sh", "-c", a.Run).CombinedOutput()
		if err != nil {
			return "", fmt.Errorf("%s: %w%s", a.Label, err, detail(out))
		}
		return summary(a.Label, out), nil
	case ActionTmux:
		out, err := tmuxCmd(socket, a.Tmux...).CombinedOutput()
		if err != nil {
			return "", fmt.Errorf("%s: tmux %s: %w%s", a.Label, strings.Join(a.Tmux, " "), err, detail(out))
		}
		return summary(a.Label, out), nil
	case ActionInfo:
		return a.Info, nil
	default:
		return "", nil
	}
}

func summary(label string, out []byte) string {
	first, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	if first == "" {
		return label + ": done"
	}
	return first
}

func detail(out []byte) string {
	if msg := strings.TrimSpace(string(out)); msg != "" {
		return " (" + msg + ")"
	}
	return ""
}

func tmuxArgs(socket string, extra ...string) []string {
	args := make([]string, 0, len(extra)+2)
	if trimmed := strings.TrimSpace(socket); trimmed != "" {
		args = append(args, "-S", trimmed)
	}
	args = append(args, extra...)
	return args
}

func tmuxCmd(socket string, extra ...string) *exec.Cmd {
	cmd := exec.Command("tmux", tmuxArgs(socket, extra...)...)
	if dir := socketDir(socket); dir != "" {
		cmd.Env = append(os.Environ(), "TMUX_TMPDIR="+dir)
	}
	return cmd
}

func socketDir(socket string) string {
	trimmed := strings.TrimSpace(socket)
	if trimmed == "" {
		return ""
	}
	return filepath.Dir(trimmed)
}
