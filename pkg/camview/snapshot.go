package camview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robotalks/camview/pkg/camera"
	"github.com/robotalks/camview/pkg/notify"
)

// SnapshotDir is the directory under the storage root holding snapshots.
const SnapshotDir = "DCIM"

// SnapshotName returns the file name of a snapshot taken at t.
func SnapshotName(t time.Time) string {
	return t.Format("20060102-150405") + ".bmp"
}

// Snapshotter saves the current frame into a bitmap file.
type Snapshotter struct {
	Root     string
	Model    *camera.Model
	Notifier notify.Notifier
	Now      func() time.Time
}

// Save writes a snapshot and returns the file path.
// The result is also reported to the Notifier.
func (s *Snapshotter) Save(ctx context.Context) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	t := now()
	fn := filepath.Join(s.Root, SnapshotDir, SnapshotName(t))
	err := s.save(fn)
	if s.Notifier != nil {
		ev := notify.Event{Kind: notify.EventSnapshotSaved, Time: t, Path: fn}
		if err != nil {
			ev.Kind, ev.Err = notify.EventSnapshotFailed, err
		}
		s.Notifier.Notify(ctx, ev)
	}
	return fn, err
}

func (s *Snapshotter) save(fn string) error {
	if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
		return fmt.Errorf("create snapshot directory error: %v", err)
	}
	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create snapshot error: %v", err)
	}
	frame := s.Model.Frame()
	err = camera.EncodeSnapshot(f, &frame)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write snapshot error: %v", err)
	}
	return nil
}
