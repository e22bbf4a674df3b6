package linkverify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/webdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/webdoc/internal/logfields"
)

// NATSOptions configures a NATSPublisher.
type NATSOptions struct {
	URL     string
	Subject string // Generation events; broken links go to Subject + ".broken_link"
	// JetStream publishes through JetStream and waits for the stream ack.
	// The subjects must then be bound to a stream on the server.
	JetStream bool
	Timeout   time.Duration
	Logger    *slog.Logger
}

// NATSPublisher publishes generation and broken link events as JSON.
type NATSPublisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
	timeout time.Duration
	logger  *slog.Logger
}

// NewNATSPublisher connects to opts.URL.
func NewNATSPublisher(opts NATSOptions) (*NATSPublisher, error) {
	if opts.URL == "" || opts.Subject == "" {
		return nil, errors.ConfigError("nats url and subject are required").Build()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	conn, err := nats.Connect(opts.URL, nats.Name("webdoc"), nats.Timeout(timeout))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNotify, "failed to connect to NATS").
			WithContext("url", opts.URL).
			Build()
	}

	p := &NATSPublisher{conn: conn, subject: opts.Subject, timeout: timeout, logger: logger}
	if opts.JetStream {
		js, err := jetstream.New(conn)
		if err != nil {
			conn.Close()
			return nil, errors.WrapError(err, errors.CategoryNotify, "failed to create JetStream context").Build()
		}
		p.js = js
	}

	logger.Info("NATS publisher initialized",
		logfields.URL(opts.URL),
		slog.String("subject", opts.Subject),
		slog.Bool("jetstream", opts.JetStream))
	return p, nil
}

func (p *NATSPublisher) publish(ctx context.Context, subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal event").Build()
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if p.js != nil {
		_, err = p.js.Publish(ctx, subject, data)
	} else if err = p.conn.Publish(subject, data); err == nil {
		err = p.conn.FlushWithContext(ctx)
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryNotify, "failed to publish event").
			WithContext("subject", subject).
			Build()
	}
	return nil
}

// PublishGeneration publishes ev on the generation subject.
func (p *NATSPublisher) PublishGeneration(ctx context.Context, ev GenerationEvent) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	return p.publish(ctx, p.subject, ev)
}

// PublishBrokenLink publishes ev on the broken link subject.
func (p *NATSPublisher) PublishBrokenLink(ctx context.Context, ev BrokenLinkEvent) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	if err := p.publish(ctx, p.subject+".broken_link", ev); err != nil {
		return err
	}
	p.logger.Debug("Published broken link event",
		logfields.RunID(ev.RunID),
		logfields.Path(ev.Source),
		logfields.URL(ev.Target))
	return nil
}

// GenerationStarted publishes a started event.
func (p *NATSPublisher) GenerationStarted(ctx context.Context, runID, template string, pageCount int) error {
	return p.PublishGeneration(ctx, GenerationEvent{RunID: runID, Status: StatusStarted, Template: template, PageCount: pageCount})
}

// StageCompleted is not published; stage timings stay in the run history.
func (p *NATSPublisher) StageCompleted(context.Context, string, string, string, time.Duration) error {
	return nil
}

// LinksVerified publishes one event per broken link.
func (p *NATSPublisher) LinksVerified(ctx context.Context, runID string, broken []BrokenLink) error {
	for _, b := range broken {
		if err := p.PublishBrokenLink(ctx, BrokenLinkEvent{RunID: runID, Source: b.Source, Target: b.Target, Resolved: b.Resolved}); err != nil {
			return err
		}
	}
	return nil
}

// GenerationCompleted publishes a completed event.
func (p *NATSPublisher) GenerationCompleted(ctx context.Context, runID string, filesGenerated, brokenLinks int, d time.Duration) error {
	return p.PublishGeneration(ctx, GenerationEvent{
		RunID:          runID,
		Status:         StatusCompleted,
		FilesGenerated: filesGenerated,
		BrokenLinks:    brokenLinks,
		DurationMS:     d.Milliseconds(),
	})
}

// GenerationFailed publishes a failed event.
func (p *NATSPublisher) GenerationFailed(ctx context.Context, runID, stage, message string) error {
	return p.PublishGeneration(ctx, GenerationEvent{RunID: runID, Status: StatusFailed, Stage: stage, Error: message})
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
