package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rm-hull/frame-interpolator/internal/config"
	"github.com/rm-hull/frame-interpolator/internal/playback"
	log "github.com/sirupsen/logrus"
)

// Play expands srcDir and steps through the result at the configured frame
// rate, sending frames to the log or, when an MQTT broker is configured, to
// the MQTT topic.
func Play(cfg config.Config, srcDir string, start int) error {
	var sink playback.Sink = playback.LogSink{}
	if cfg.Mqtt.URL != "" {
		client, err := connectMQTT(cfg.Mqtt)
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
		sink = playback.NewMQTTSink(client, cfg.Mqtt.Topic, 0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return play(ctx, cfg, srcDir, start, sink)
}

func play(ctx context.Context, cfg config.Config, srcDir string, start int, sink playback.Sink) error {
	expanded, err := expand(srcDir, cfg)
	if err != nil {
		return err
	}

	player, err := playback.NewPlayer(playback.NewSequence(expanded), sink, cfg.FPS)
	if err != nil {
		return err
	}
	if err := player.Seek(start); err != nil {
		return err
	}

	err = player.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Infof("Playback interrupted at frame %d", player.Index())
		return nil
	}
	return err
}

func connectMQTT(cfg config.Mqtt) (mqtt.Client, error) {
	options := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(mqtt.Client) {
			log.Infof("Connected to MQTT broker %s", cfg.URL)
		})
	client := mqtt.NewClient(options)

	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("timed out connecting to MQTT broker %s", cfg.URL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", cfg.URL, err)
	}
	return client, nil
}
