package simulation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCommandNotSupported is returned when a command does not apply to the node's system
var ErrCommandNotSupported = errors.New("command not supported by this system")

// Command is an input event applied to a simulation node through Node.Handle
type Command interface {
	fmt.Stringer
	apply(n *Node) error
}

// windSystem is implemented by systems with a wind toggle
type windSystem interface {
	EnableWind()
	DisableWind()
	WindEnabled() bool
}

// ToggleWind switches wind on or off
type ToggleWind struct{}

func (ToggleWind) String() string { return "toggle-wind" }

func (ToggleWind) apply(n *Node) error {
	ws, ok := n.system.(windSystem)
	if !ok {
		return ErrCommandNotSupported
	}
	if ws.WindEnabled() {
		ws.DisableWind()
	} else {
		ws.EnableWind()
	}
	return nil
}

// Reset returns the system to its initial state and time zero
type Reset struct{}

func (Reset) String() string { return "reset" }

func (Reset) apply(n *Node) error {
	n.reset()
	return nil
}

// ParseCommand converts "wind" or "reset" to a Command
func ParseCommand(name string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "wind", "toggle-wind":
		return ToggleWind{}, nil
	case "reset":
		return Reset{}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", name)
	}
}
