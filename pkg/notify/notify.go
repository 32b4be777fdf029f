// Package notify reports user visible events of a camera session.
package notify

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// EventKind is the kind of Event.
type EventKind int

// Event kinds
const (
	// EventConnected is emitted when the first row is received.
	EventConnected EventKind = iota + 1
	// EventSnapshotSaved is emitted when a snapshot file is written.
	EventSnapshotSaved
	// EventSnapshotFailed is emitted when a snapshot can't be written.
	EventSnapshotFailed
)

// String implements fmt.Stringer.
func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventSnapshotSaved:
		return "snapshot-saved"
	case EventSnapshotFailed:
		return "snapshot-failed"
	}
	return "unknown"
}

// Event describes what happened.
type Event struct {
	Kind EventKind
	Time time.Time
	// Path is the snapshot file.
	Path string
	// Err is set for failures.
	Err error
}

// Success tells if the event reports a success.
func (e Event) Success() bool {
	return e.Err == nil && e.Kind != EventSnapshotFailed
}

// Notifier receives events.
type Notifier interface {
	Notify(context.Context, Event)
}

// NotifyFunc is func form of Notifier.
type NotifyFunc func(context.Context, Event)

// Notify implements Notifier.
func (f NotifyFunc) Notify(ctx context.Context, ev Event) {
	f(ctx, ev)
}

// Mux dispatches events to multiple notifiers.
type Mux struct {
	Notifiers []Notifier
}

// Add adds notifiers. nil is skipped.
func (m *Mux) Add(notifiers ...Notifier) *Mux {
	for _, n := range notifiers {
		if n != nil {
			m.Notifiers = append(m.Notifiers, n)
		}
	}
	return m
}

// Notify implements Notifier.
func (m *Mux) Notify(ctx context.Context, ev Event) {
	for _, n := range m.Notifiers {
		n.Notify(ctx, ev)
	}
}

// Log writes events to the log.
var Log Notifier = NotifyFunc(func(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventConnected:
		glog.Info("camera connected")
	case EventSnapshotSaved:
		glog.Infof("snapshot saved: %s", ev.Path)
	case EventSnapshotFailed:
		glog.Errorf("snapshot %s failed: %v", ev.Path, ev.Err)
	default:
		glog.Warningf("unknown event %d", ev.Kind)
	}
})
