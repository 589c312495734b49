// Command lift-controller drives a three-position motorized lift from GPIO
// inputs, persists calibrated stop points, and publishes state changes to
// MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/sweeney/lift-controller/internal/config"
	"github.com/sweeney/lift-controller/internal/gpio"
	"github.com/sweeney/lift-controller/internal/lift"
	"github.com/sweeney/lift-controller/internal/mqtt"
	"github.com/sweeney/lift-controller/internal/status"
	"github.com/sweeney/lift-controller/internal/store"
	"github.com/sweeney/lift-controller/internal/web"
)

func main() {
	configPath := flag.String("config", "/etc/lift-controller.yaml", "Configuration file")
	broker := flag.String("broker", "", "MQTT broker address (overrides config)")
	httpAddr := flag.String("http", "", "HTTP status address (overrides config, \"off\" disables)")
	storePath := flag.String("store", "", "Threshold store path (overrides config)")
	printStatus := flag.Bool("print-status", false, "Print persisted thresholds and exit")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if *broker != "" {
		cfg.Broker = *broker
	}
	if *httpAddr != "" {
		cfg.HTTP = *httpAddr
	}
	if cfg.HTTP == "off" {
		cfg.HTTP = ""
	}
	if *storePath != "" {
		cfg.Store = *storePath
	}

	if err := run(cfg, *printStatus); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg *config.Config, printStatus bool) error {
	// Initialize persistence
	words, err := store.OpenFile(cfg.Store)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer words.Close()
	thresholds := store.NewThresholds(words)

	// Print status mode
	if printStatus {
		middle, top, err := thresholds.LoadThresholds()
		if err != nil {
			return fmt.Errorf("load thresholds: %w", err)
		}
		fmt.Printf("thresholds: bottom=0 middle=%d top=%d\n", middle, top)
		return nil
	}

	// Initialize GPIO. The hall-sensor edge handler runs on the gpiocdev
	// event goroutine; the controller pointer is published atomically so
	// an edge arriving before wiring completes is dropped, not raced.
	var ctrl atomic.Pointer[lift.Controller]
	dev, err := gpio.NewReal(cfg.Pins, func() {
		if c := ctrl.Load(); c != nil {
			c.Pulse()
		}
	})
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer dev.Close()

	startupSweep(dev)

	c, err := lift.New(lift.Config{
		LockoutDuration: cfg.Timing.Lockout,
		SettleDuration:  cfg.Settle.Duration,
		BlinkFastTicks:  cfg.Blink.FastTicks,
		BlinkSlowTicks:  cfg.Blink.SlowTicks,
		SettleWindow:    cfg.Settle.Window,
		DebounceWidth:   cfg.Debounce.Width,
	}, dev, &lift.OneShotTimer{}, thresholds)
	if err != nil {
		return fmt.Errorf("init controller: %w", err)
	}
	ctrl.Store(c)

	// Initialize MQTT
	publisher, err := mqtt.NewRealPublisher(cfg.Broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:    cfg.Timing.Poll.Milliseconds(),
		LockoutMs: cfg.Timing.Lockout.Milliseconds(),
		SettleMs:  cfg.Settle.Duration.Milliseconds(),
		Broker:    cfg.Broker,
		HTTPPort:  cfg.HTTP,
		StorePath: cfg.Store,
	})
	tracker.Update(c.Snapshot(), status.Counts{})

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if cfg.HTTP != "" {
		srv := web.New(cfg.HTTP, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP)
	}

	log.Printf("started: poll=%v lockout=%v settle=%v broker=%s",
		cfg.Timing.Poll, cfg.Timing.Lockout, cfg.Settle.Duration, cfg.Broker)

	ticker := time.NewTicker(cfg.Timing.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(dev, c, publisher, publisher, tracker, cfg.Timing.Heartbeat, time.Now, ticker.C, sigCh)
}

// sampler is the input surface runLoop needs from the GPIO device.
type sampler interface {
	Sample() (lift.Sample, error)
}

func runLoop(dev sampler, ctrl *lift.Controller, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	var counts status.Counts
	lastHeartbeat := now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			sample, err := dev.Sample()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				continue
			}

			ctrl.Tick(sample)
			ctrl.Step()

			for _, event := range ctrl.DrainEvents() {
				counts.Count(event)
				logEvent(event)
				if err := publisher.Publish(event, t); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			if tracker != nil {
				tracker.Update(ctrl.Snapshot(), counts)
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			// Check for heartbeat
			if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				hbEvent := mqtt.SystemEvent{
					Timestamp: t,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
					log.Printf("heartbeat: uptime=%v mode=%s position=%s clicks=%d",
						snap.Uptime().Truncate(time.Second), snap.Lift.Mode, snap.Lift.Current, snap.Lift.Clicks)
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

func logEvent(e lift.Event) {
	switch e.Type {
	case lift.EventPositionReached:
		log.Printf("event: %s position=%s clicks=%d", e.Type, e.Position, e.Clicks)
	case lift.EventModeChanged:
		log.Printf("event: %s mode=%s", e.Type, e.Mode)
	case lift.EventThresholdSaved:
		log.Printf("event: %s position=%s threshold=%d", e.Type, e.Position, e.Threshold)
	case lift.EventThresholdSaveFailed:
		log.Printf("event: %s position=%s threshold=%d err=%s", e.Type, e.Position, e.Threshold, e.Err)
	case lift.EventMovementStarted, lift.EventMovementStopped:
		log.Printf("event: %s direction=%s clicks=%d", e.Type, e.Direction, e.Clicks)
	default:
		log.Printf("event: %s", e.Type)
	}
}

// startupSweep runs the power-on LED animation: top to bottom, one LED at
// a time.
func startupSweep(out lift.Outputs) {
	for _, p := range []lift.Position{lift.PositionTop, lift.PositionMiddle, lift.PositionBottom} {
		out.LEDOn(p)
		time.Sleep(200 * time.Millisecond)
		out.LEDOff(p)
	}
}
