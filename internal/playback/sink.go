package playback

import (
	"bytes"
	"context"
	"image"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rm-hull/frame-interpolator/internal/png"
	log "github.com/sirupsen/logrus"
)

// LogSink only reports which frame is showing.
type LogSink struct{}

func (LogSink) Show(_ context.Context, index int, img image.Image) error {
	log.WithFields(log.Fields{
		"frame": index,
		"size":  img.Bounds().Size().String(),
	}).Info("Showing frame")
	return nil
}

// Publisher is the part of an MQTT client used to stream frames.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTSink publishes every frame as PNG bytes on a topic.
type MQTTSink struct {
	client Publisher
	topic  string
	qos    byte
}

func NewMQTTSink(client Publisher, topic string, qos byte) *MQTTSink {
	return &MQTTSink{
		client: client,
		topic:  topic,
		qos:    qos,
	}
}

func (s *MQTTSink) Show(ctx context.Context, index int, img image.Image) error {
	var buf bytes.Buffer
	if err := png.NewFrame(img).Write(&buf); err != nil {
		return err
	}

	token := s.client.Publish(s.topic, s.qos, false, buf.Bytes())
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := token.Error(); err != nil {
		return err
	}
	log.Debugf("Published frame %d (%d bytes) to %s", index, buf.Len(), s.topic)
	return nil
}
