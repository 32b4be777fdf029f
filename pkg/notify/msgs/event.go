// Package msgs defines the wire format of published events.
package msgs

import (
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/camview/pkg/notify"
)

// Event is the protobuf form of notify.Event.
type Event struct {
	CameraId  string `protobuf:"bytes,1,opt,name=camera_id,json=cameraId,proto3" json:"camera_id,omitempty"`
	Kind      string `protobuf:"bytes,2,opt,name=kind,proto3" json:"kind,omitempty"`
	Timestamp int64  `protobuf:"varint,3,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	Success   bool   `protobuf:"varint,4,opt,name=success,proto3" json:"success,omitempty"`
	Path      string `protobuf:"bytes,5,opt,name=path,proto3" json:"path,omitempty"`
	Error     string `protobuf:"bytes,6,opt,name=error,proto3" json:"error,omitempty"`
}

// Reset implements proto.Message.
func (m *Event) Reset() { *m = Event{} }

// String implements proto.Message.
func (m *Event) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*Event) ProtoMessage() {}

// EventFrom converts a notify.Event. Timestamp is in milliseconds.
func EventFrom(cameraID string, ev notify.Event) *Event {
	m := &Event{
		CameraId: cameraID,
		Kind:     ev.Kind.String(),
		Success:  ev.Success(),
		Path:     ev.Path,
	}
	if !ev.Time.IsZero() {
		m.Timestamp = ev.Time.UnixNano() / 1e6
	}
	if ev.Err != nil {
		m.Error = ev.Err.Error()
	}
	return m
}

// Encode encodes the Event to bytes.
func (m *Event) Encode() ([]byte, error) {
	return proto.Marshal(m)
}

// DecodeEvent decodes bytes into Event.
func DecodeEvent(data []byte) (*Event, error) {
	var m Event
	if err := proto.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
