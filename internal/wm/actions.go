package wm

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/jaimet/lanta/internal/config"
	"github.com/jaimet/lanta/internal/group"
)

// Handler is the code behind a key binding or an IPC action. It runs on
// the event loop goroutine.
type Handler func(*Manager) error

// NewHandler resolves an action name to a handler. groupName is used by
// switch-group and move-to-group, command by spawn.
func NewHandler(action, groupName string, command []string) (Handler, error) {
	switch action {
	case config.ActionCloseWindow:
		return (*Manager).CloseFocused, nil
	case config.ActionFocusNext:
		return onActive((*group.Group).FocusNext), nil
	case config.ActionFocusPrevious:
		return onActive((*group.Group).FocusPrevious), nil
	case config.ActionShuffleNext:
		return onActive((*group.Group).ShuffleNext), nil
	case config.ActionShufflePrevious:
		return onActive((*group.Group).ShufflePrevious), nil
	case config.ActionLayoutNext:
		return onActive((*group.Group).LayoutNext), nil
	case config.ActionLayoutPrevious:
		return onActive((*group.Group).LayoutPrevious), nil
	case config.ActionSwitchGroup:
		if groupName == "" {
			return nil, fmt.Errorf("%s requires a group", action)
		}
		return func(m *Manager) error { return m.SwitchGroup(groupName) }, nil
	case config.ActionMoveToGroup:
		if groupName == "" {
			return nil, fmt.Errorf("%s requires a group", action)
		}
		return func(m *Manager) error { return m.MoveFocusedToGroup(groupName) }, nil
	case config.ActionSpawn:
		if len(command) == 0 {
			return nil, fmt.Errorf("%s requires a command", action)
		}
		argv := append([]string(nil), command...)
		return func(m *Manager) error { return m.Spawn(argv) }, nil
	case config.ActionQuit:
		return func(m *Manager) error {
			m.Quit()
			return nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}
}

// RunAction resolves and runs an action by name. arg is the group name for
// group actions and a command line for spawn.
func (m *Manager) RunAction(action, arg string) error {
	var command []string
	if action == config.ActionSpawn && arg != "" {
		argv, err := config.ParseCommand(arg)
		if err != nil {
			return err
		}
		command = argv
	}
	handler, err := NewHandler(action, arg, command)
	if err != nil {
		return err
	}
	return handler(m)
}

func onActive(op func(*group.Group)) Handler {
	return func(m *Manager) error {
		op(m.ActiveGroup())
		return nil
	}
}

func (m *Manager) startProcess(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to spawn %q: %w", argv[0], err)
	}
	m.logger.Info("spawned process", "command", argv, "pid", cmd.Process.Pid)

	// Reap the child so it does not linger as a zombie.
	go func() {
		if err := cmd.Wait(); err != nil {
			m.logger.Debug("process exited", "command", argv[0], "error", err)
		}
	}()
	return nil
}
