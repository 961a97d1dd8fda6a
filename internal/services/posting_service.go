package services

import (
	"context"
	"time"

	"github.com/justsurfingit/job-catalog/internal/dtos"
	apperrors "github.com/justsurfingit/job-catalog/internal/errors"
	"github.com/justsurfingit/job-catalog/internal/events"
	"github.com/justsurfingit/job-catalog/internal/models"
	"github.com/justsurfingit/job-catalog/internal/telemetry"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("job-catalog/services")

const duplicateTitleSuffix = " (Copy)"

// PostingStore is the persistence side of the catalog.
type PostingStore interface {
	FetchAll(ctx context.Context) ([]models.Posting, error)
	FetchByID(ctx context.Context, id int64) (*models.Posting, error)
	Insert(ctx context.Context, p models.Posting) (int64, error)
	Replace(ctx context.Context, id int64, p models.Posting) error
	Delete(ctx context.Context, id int64) error
	FetchByFieldMatch(ctx context.Context, field, pattern string) ([]models.Posting, error)
}

type PostingService struct {
	store     PostingStore
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewPostingService(store PostingStore, publisher events.Publisher, logger *zap.Logger) *PostingService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &PostingService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *PostingService) List(ctx context.Context) ([]models.Posting, error) {
	postings, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, s.storeError("fetch postings", err)
	}
	return postings, nil
}

func (s *PostingService) Get(ctx context.Context, id int64) (*models.Posting, error) {
	p, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return nil, s.storeError("fetch posting", err, zap.Int64("posting_id", id))
	}
	return p, nil
}

func (s *PostingService) Create(ctx context.Context, p models.Posting) (int64, error) {
	ctx, span := tracer.Start(ctx, "PostingService.Create")
	defer span.End()

	id, err := s.store.Insert(ctx, p)
	if err != nil {
		span.RecordError(err)
		return 0, s.storeError("insert posting", err)
	}
	span.SetAttributes(telemetry.Int64("posting.id", id))

	p.ID = id
	s.publish(ctx, events.NewPostingEvent(events.PostingCreated, id, &p, s.now()))
	return id, nil
}

func (s *PostingService) Replace(ctx context.Context, id int64, p models.Posting) error {
	ctx, span := tracer.Start(ctx, "PostingService.Replace")
	defer span.End()
	span.SetAttributes(telemetry.Int64("posting.id", id))

	if err := s.store.Replace(ctx, id, p); err != nil {
		span.RecordError(err)
		return s.storeError("replace posting", err, zap.Int64("posting_id", id))
	}

	p.ID = id
	s.publish(ctx, events.NewPostingEvent(events.PostingUpdated, id, &p, s.now()))
	return nil
}

func (s *PostingService) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "PostingService.Delete")
	defer span.End()
	span.SetAttributes(telemetry.Int64("posting.id", id))

	if err := s.store.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return s.storeError("delete posting", err, zap.Int64("posting_id", id))
	}

	s.publish(ctx, events.NewPostingEvent(events.PostingDeleted, id, nil, s.now()))
	return nil
}

// Duplicate stores a copy of posting id under a new id with a marked title.
func (s *PostingService) Duplicate(ctx context.Context, id int64) (int64, error) {
	original, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	copied := original.Clone()
	copied.ID = 0
	copied.Title += duplicateTitleSuffix
	return s.Create(ctx, copied)
}

func (s *PostingService) SearchByField(ctx context.Context, field, pattern string) ([]models.Posting, error) {
	postings, err := s.store.FetchByFieldMatch(ctx, field, pattern)
	if err != nil {
		return nil, s.storeError("search postings", err, zap.String("field", field))
	}
	return postings, nil
}

// SearchBySkill validates term before touching the store.
func (s *PostingService) SearchBySkill(ctx context.Context, term string) (dtos.SkillSearchResult, error) {
	ctx, span := tracer.Start(ctx, "PostingService.SearchBySkill")
	defer span.End()

	term, err := NormalizeSkillTerm(term)
	if err != nil {
		return dtos.SkillSearchResult{}, err
	}
	span.SetAttributes(telemetry.String("search.term", term))

	postings, err := s.store.FetchAll(ctx)
	if err != nil {
		span.RecordError(err)
		return dtos.SkillSearchResult{}, s.storeError("fetch postings", err, zap.String("term", term))
	}

	result, err := SearchBySkill(postings, term)
	if err != nil {
		return dtos.SkillSearchResult{}, err
	}
	span.SetAttributes(telemetry.Int("search.results", result.TotalResults))
	return result, nil
}

func (s *PostingService) Statistics(ctx context.Context) (dtos.StatisticsSnapshot, error) {
	ctx, span := tracer.Start(ctx, "PostingService.Statistics")
	defer span.End()

	postings, err := s.store.FetchAll(ctx)
	if err != nil {
		span.RecordError(err)
		return dtos.StatisticsSnapshot{}, s.storeError("fetch postings", err)
	}
	span.SetAttributes(telemetry.Int("postings.count", len(postings)))

	return ComputeStatistics(postings), nil
}

// storeError passes domain errors through and reports anything else as the
// store being unavailable.
func (s *PostingService) storeError(op string, err error, fields ...zap.Field) error {
	if apperrors.Classified(err) {
		return err
	}
	s.logger.Error(op+" failed", append(fields, zap.Error(err))...)
	return apperrors.Unavailable(op, err)
}

func (s *PostingService) publish(ctx context.Context, ev events.PostingEvent) {
	if err := s.publisher.PublishPostingEvent(ctx, ev); err != nil {
		s.logger.Warn("posting event not published",
			zap.Int64("posting_id", ev.PostingID),
			zap.String("type", string(ev.Type)),
			zap.Error(err))
	}
}
