package mqtt

import (
	"context"

	"github.com/golang/glog"

	"github.com/robotalks/camview/pkg/notify"
	"github.com/robotalks/camview/pkg/notify/msgs"
)

// Notifier publishes events as protobuf encoded msgs.Event.
type Notifier struct {
	Publisher Publisher
	CameraID  string
	Topic     string
}

// NewNotifier creates a Notifier publishing to camview/<cameraID>/event.
func NewNotifier(pub Publisher, cameraID string) *Notifier {
	return &Notifier{
		Publisher: pub,
		CameraID:  cameraID,
		Topic:     "camview/" + cameraID + "/event",
	}
}

// Notify implements notify.Notifier.
func (n *Notifier) Notify(ctx context.Context, ev notify.Event) {
	payload, err := msgs.EventFrom(n.CameraID, ev).Encode()
	if err != nil {
		glog.Errorf("encode event error: %v", err)
		return
	}
	if err = n.Publisher.Publish(n.Topic, payload); err != nil {
		glog.Warningf("publish event %s error: %v", ev.Kind, err)
	}
}

// EventTopics is the topic filter matching events of all cameras.
const EventTopics = "camview/+/event"

// Subscriber subscribes to topics.
type Subscriber interface {
	Subscribe(topic string, handler func(topic string, payload []byte)) error
}

// WatchEvents subscribes to events of all cameras.
func WatchEvents(sub Subscriber, handler func(topic string, ev *msgs.Event)) error {
	return sub.Subscribe(EventTopics, func(topic string, payload []byte) {
		ev, err := msgs.DecodeEvent(payload)
		if err != nil {
			glog.Warningf("%s: bad event: %v", topic, err)
			return
		}
		handler(topic, ev)
	})
}
