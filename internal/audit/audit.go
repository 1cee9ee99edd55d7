// Package audit provides structured event logging for the Edge node.
// Events are stored as JSON Lines (JSONL) in the launcher data directory.
package audit

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/segmentio/encoding/json"
)

// EventFile is the name of the event log in the data directory.
const EventFile = "events.jsonl"

// EventType classifies a node event.
type EventType string

const (
	EventAdd      EventType = "add"
	EventStart    EventType = "start"
	EventStop     EventType = "stop"
	EventInstall  EventType = "install"
	EventCheck    EventType = "check"
	EventEarnings EventType = "earnings"
	EventError    EventType = "error"
)

// Event represents a single audit log entry.
type Event struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Type      EventType `json:"type" yaml:"type"`
	Node      string    `json:"node,omitempty" yaml:"node,omitempty"`
	Details   string    `json:"details,omitempty" yaml:"details,omitempty"`
}

// Logger writes and reads node events.
// Events are stored in {dataDir}/events.jsonl.
type Logger struct {
	dataDir string
}

// NewLogger creates a new audit logger rooted at dataDir.
func NewLogger(dataDir string) *Logger {
	return &Logger{dataDir: dataDir}
}

// Path returns the path of the event log.
func (l *Logger) Path() string {
	return filepath.Join(l.dataDir, EventFile)
}

// Log appends an event to the log.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := os.MkdirAll(l.dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	f, err := os.OpenFile(l.Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, node, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Node:      node,
		Details:   details,
	})
}

// Events reads all events in chronological order. A limit above zero keeps
// only the newest limit events.
func (l *Logger) Events(limit int) ([]Event, error) {
	f, err := os.Open(l.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading audit log: %w", err)
	}

	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}

// Clear deletes the event log.
func (l *Logger) Clear() error {
	if err := os.Remove(l.Path()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
