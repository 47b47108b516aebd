package segment

import (
	"runtime"

	"github.com/nacternals/roboshop/analytics"
	"github.com/nacternals/roboshop/version"

	segment "github.com/segmentio/analytics-go"
	log "github.com/sirupsen/logrus"
)

// WriteKey for the segment source, set during the release build
var WriteKey = ""

// Verbose enables verbose logging in the segment client
var Verbose bool

var ctx = &segment.Context{
	App: segment.AppInfo{
		Name:      "roboshop",
		Version:   version.Version,
		Build:     version.GitCommit,
		Namespace: "roboshop",
	},
	OS: segment.OSInfo{
		Name: runtime.GOOS + " " + runtime.GOARCH,
	},
}

type Client struct {
	client    segment.Client
	machineID string
}

func NewClient() (*Client, error) {
	client, err := segment.NewWithConfig(WriteKey, segment.Config{Verbose: Verbose})
	if err != nil {
		return nil, err
	}
	id, err := analytics.MachineID()
	if err != nil {
		return nil, err
	}
	return &Client{
		client:    client,
		machineID: id,
	}, nil
}

func (c Client) Publish(event string, props map[string]interface{}) error {
	log.Debugf("segment event %s - properties: %+v", event, props)
	c.client.Enqueue(segment.Track{
		Context:     ctx,
		AnonymousId: c.machineID,
		Event:       event,
		Properties:  props,
	})
	return nil
}

func (c Client) Close() {
	c.client.Close()
}
