package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/robotalks/camview/pkg/notify/mqtt"
	"github.com/robotalks/camview/pkg/notify/msgs"
)

var (
	mqttURL = "mqtt://localhost:1883/"
)

func init() {
	if val := os.Getenv("CAMVIEW_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	client, err := mqtt.NewClientFromURL(mqttURL, "camview-mon")
	if err != nil {
		log.Fatalln(err)
	}
	if err = client.Connect(); err != nil {
		log.Fatalln(err)
	}
	err = mqtt.WatchEvents(client, func(topic string, ev *msgs.Event) {
		ts := time.Unix(0, ev.Timestamp*int64(time.Millisecond)).Format(time.RFC3339)
		switch {
		case ev.Path != "" && ev.Success:
			log.Printf("%s: [%s] %s %s", topic, ts, ev.Kind, ev.Path)
		case !ev.Success:
			log.Printf("%s: [%s] %s %s: %s", topic, ts, ev.Kind, ev.Path, ev.Error)
		default:
			log.Printf("%s: [%s] %s", topic, ts, ev.Kind)
		}
	})
	if err != nil {
		log.Fatalln(err)
	}
	<-(chan struct{})(nil)
}
