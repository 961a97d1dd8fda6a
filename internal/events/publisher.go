package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/justsurfingit/job-catalog/internal/config"
	apperrors "github.com/justsurfingit/job-catalog/internal/errors"
	"github.com/justsurfingit/job-catalog/internal/models"
	"github.com/justsurfingit/job-catalog/internal/telemetry"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("job-catalog/events")

type EventType string

const (
	PostingCreated EventType = "created"
	PostingUpdated EventType = "updated"
	PostingDeleted EventType = "deleted"

	subjectPrefix = "postings."
)

// PostingEvent announces a change to the catalog. Posting is nil for deletions.
type PostingEvent struct {
	ID         uuid.UUID       `json:"id"`
	Type       EventType       `json:"type"`
	PostingID  int64           `json:"postingId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Posting    *models.Posting `json:"posting,omitempty"`
}

func NewPostingEvent(t EventType, postingID int64, posting *models.Posting, now time.Time) PostingEvent {
	return PostingEvent{
		ID:         uuid.New(),
		Type:       t,
		PostingID:  postingID,
		OccurredAt: now.UTC(),
		Posting:    posting,
	}
}

func (e PostingEvent) Subject() string {
	return subjectPrefix + string(e.Type)
}

type Publisher interface {
	PublishPostingEvent(ctx context.Context, event PostingEvent) error
	Close()
}

// NewPublisher connects to NATS, or returns a publisher that drops events when
// no NATS URL is configured.
func NewPublisher(logger *zap.Logger, cfg *config.Config) (Publisher, error) {
	if cfg.NATSURL == "" {
		logger.Info("NATS_URL not set, posting events disabled")
		return NoopPublisher{}, nil
	}

	opts := []nats.Option{
		nats.Name("job-catalog"),
		nats.Timeout(cfg.NATSConnTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
		nats.RetryOnFailedConnect(true),
	}

	conn, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, apperrors.Unavailable("connecting to NATS", err)
	}

	logger.Info("connected to NATS", zap.String("url", cfg.NATSURL))

	return &natsPublisher{conn: conn, logger: logger}, nil
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func (p *natsPublisher) PublishPostingEvent(ctx context.Context, event PostingEvent) error {
	_, span := tracer.Start(ctx, "PublishPostingEvent")
	defer span.End()

	data, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return apperrors.Internal("marshaling posting event", err)
	}

	subject := event.Subject()
	span.SetAttributes(
		telemetry.String("nats.subject", subject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(subject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish posting event",
			zap.Int64("posting_id", event.PostingID),
			zap.String("subject", subject),
			zap.Error(err))
		return apperrors.Unavailable("publishing to NATS", err)
	}

	p.logger.Debug("published posting event",
		zap.Int64("posting_id", event.PostingID),
		zap.String("subject", subject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

type NoopPublisher struct{}

func (NoopPublisher) PublishPostingEvent(context.Context, PostingEvent) error { return nil }

func (NoopPublisher) Close() {}
