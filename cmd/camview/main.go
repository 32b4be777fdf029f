package main

import (
	"context"
	"flag"
	"io"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/camview/pkg/camview"
	"github.com/robotalks/camview/pkg/cli/sh"
	fx "github.com/robotalks/camview/pkg/framework"
	"github.com/robotalks/camview/pkg/joystick"
	"github.com/robotalks/camview/pkg/notify"
	"github.com/robotalks/camview/pkg/notify/mqtt"
	"github.com/robotalks/camview/pkg/serial"
	"github.com/robotalks/camview/pkg/sim"
	"github.com/robotalks/camview/pkg/viewer"
)

var (
	headless bool
)

func init() {
	camview.SetupFlags()
	sh.SetupFlags()
	joystick.SetupFlags()
	flag.BoolVar(&headless, "headless", headless, "Run without shell until interrupted.")
}

func openPort(conf *camview.Config) (io.ReadWriteCloser, error) {
	if conf.Port == sim.PortName {
		return sim.NewCamera(), nil
	}
	p, err := serial.Open(conf.Port, conf.Baud)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf, err := camview.LoadConfig()
	if err != nil {
		log.Fatalln(err)
	}
	port, err := openPort(conf)
	if err != nil {
		log.Fatalln(err)
	}
	defer port.Close()

	loop := conf.NewLoop()
	notifier := (&notify.Mux{}).Add(notify.Log)
	if conf.MQTTURL != "" {
		client, err := mqtt.NewClientFromURL(conf.MQTTURL, "camview-"+conf.CameraID)
		if err != nil {
			log.Fatalln(err)
		}
		notifier.Add(mqtt.NewNotifier(client, conf.CameraID))
		loop.Add(client)
	}

	ctl := conf.NewController(port, notifier)
	loop.Add(ctl)
	if conf.Viewer != "" {
		v := viewer.NewServer(conf.Viewer)
		ctl.AddSink(v)
		loop.Add(v)
	}
	if js := joystick.Default(); js.Enabled {
		loop.Add(js.NewInput(ctl))
	}

	runner := fx.NewRunner().HandleSignals()
	ctx, cancel := context.WithCancel(runner.Context)
	runner.GoWith(ctx, fx.NamedRun("loop", loop))

	if headless {
		select {
		case <-ctx.Done():
		case <-runner.Failed():
		}
	} else {
		shell := sh.New(ctl)
		go func() {
			select {
			case <-ctx.Done():
			case <-runner.Failed():
			}
			shell.Close()
		}()
		shell.Run(flag.Args()...)
	}

	if err := ctl.Stop(); err != nil {
		glog.Warningf("stop camera error: %v", err)
	}
	cancel()
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}
