package server

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// ConsoleMessage is a log line forwarded to the browser console
type ConsoleMessage struct {
	Source    string    `json:"source"` // Render or simulation id
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by forwarding messages to a console channel
type WebLogger struct {
	source      string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger for one render or simulation
func NewWebLogger(source string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		source:      source,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger. Messages also go to the server log.
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", wl.source, strings.TrimRight(message, "\n"))

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		Source:    wl.source,
		Message:   message,
		Timestamp: time.Now(),
		Level:     messageLevel(message),
	}:
	default:
		// Console full, drop rather than stall the render
	}
}

func messageLevel(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.HasPrefix(lower, "error"):
		return "error"
	case strings.HasPrefix(lower, "warning"):
		return "warning"
	default:
		return "info"
	}
}
