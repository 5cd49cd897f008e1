package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const streamSetupTimeout = 2 * time.Second

// Client publishes supplier lifecycle events. A nil Client disables events.
type Client interface {
	Publish(subject string, data interface{}) error
	Close()
}

// NATSClient publishes JSON events on subjects captured by the
// SUPPLYRANK_EVENTS JetStream stream.
type NATSClient struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// NewNATSClient connects without waiting for the server. When it is not
// reachable yet, stream setup runs once the connection comes up.
func NewNATSClient(ctx context.Context, url string, logger *slog.Logger) (*NATSClient, error) {
	onConnect := func(nc *nats.Conn) {
		logger.Info("hermes connected", "url", nc.ConnectedUrl())
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), streamSetupTimeout)
			defer cancel()
			if err := ensureStream(ctx, nc); err != nil {
				logger.Warn("failed to ensure stream", "error", err)
			}
		}()
	}

	nc, err := nats.Connect(url,
		nats.Name("supplyrank"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2*time.Second),
		nats.ConnectHandler(onConnect),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("hermes disconnected", "error", err)
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	if nc.IsConnected() {
		setupCtx, cancel := context.WithTimeout(ctx, streamSetupTimeout)
		defer cancel()
		if err := ensureStream(setupCtx, nc); err != nil {
			logger.Warn("failed to ensure stream", "error", err)
		}
	} else {
		logger.Warn("hermes not reachable yet, stream setup deferred", "url", url)
	}
	return &NATSClient{conn: nc, logger: logger}, nil
}

func ensureStream(ctx context.Context, nc *nats.Conn) error {
	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("jetstream: %w", err)
	}
	maxAge, _ := time.ParseDuration(StreamMaxAge)
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{"supply.supplier.>", "supply.ranking.>"},
		MaxAge:   maxAge,
	})
	return err
}

// Publish marshals data to JSON and hands it to the connection without
// waiting for an acknowledgement. While disconnected, messages go to the
// reconnect buffer.
func (c *NATSClient) Publish(subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", subject, err)
	}
	if err := c.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

func (c *NATSClient) Close() {
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}
