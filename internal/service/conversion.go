package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"marcapi/internal/marc"
	"marcapi/internal/model"
	"marcapi/internal/pergamum"
	"marcapi/internal/repository"
)

const tracerName = "marcapi/internal/service"

// ConversionRequest identifies a catalogue entry and the wanted output format.
type ConversionRequest struct {
	BaseURL string
	ID      int64
	Format  marc.Format
}

// ConversionResult is a fully encoded record ready to be sent.
type ConversionResult struct {
	Body        []byte
	ContentType string
	// Filename is {id}.{ext}, used when Attachment is set.
	Filename   string
	Attachment bool
}

// ConversionListResult is the service-level DTO for a page of the conversion log.
type ConversionListResult struct {
	Items []model.Conversion `json:"data"`
	Total int                `json:"total"`
}

// ConversionService defines the use cases for turning Pergamum records into MARC.
type ConversionService interface {
	// Convert fetches the record, builds it and encodes it. Either the whole encoded record
	// is returned or an error; partial output is never produced.
	Convert(ctx context.Context, req ConversionRequest) (*ConversionResult, error)

	// ListConversions returns the conversion log using limit/offset and a total count.
	ListConversions(ctx context.Context, limit, offset int) (*ConversionListResult, error)
}

type conversionService struct {
	clients pergamum.ClientProvider
	repo    repository.ConversionRepository
	metrics *Metrics
	log     *zap.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

// NewConversionService constructs a new ConversionService. metrics may be nil.
func NewConversionService(clients pergamum.ClientProvider, repo repository.ConversionRepository, metrics *Metrics, log *zap.Logger) ConversionService {
	if repo == nil {
		repo = repository.NopConversionRepository{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &conversionService{
		clients: clients,
		repo:    repo,
		metrics: metrics,
		log:     log.Named("service"),
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
}

func (s *conversionService) Convert(ctx context.Context, req ConversionRequest) (*ConversionResult, error) {
	ctx, span := s.tracer.Start(ctx, "ConversionService.Convert", trace.WithAttributes(
		attribute.String("marc.format", string(req.Format)),
		attribute.Int64("pergamum.record_id", req.ID),
	))
	defer span.End()

	start := s.now()
	res, err := s.convert(ctx, req)
	elapsed := s.now().Sub(start)

	code := ErrorCode(err)
	outcome := "success"
	if err != nil {
		outcome = code
		span.RecordError(err)
		span.SetStatus(codes.Error, code)
	}
	s.metrics.observeConversion(string(req.Format), outcome)
	s.record(ctx, req, res, code, elapsed)

	if err != nil {
		s.log.Warn("conversion_failed",
			zap.String("base_url", req.BaseURL),
			zap.Int64("record_id", req.ID),
			zap.String("format", string(req.Format)),
			zap.String("error_code", code),
			zap.Error(err),
			zap.Duration("duration_ms", elapsed),
		)
		return nil, err
	}
	s.log.Debug("conversion_succeeded",
		zap.String("base_url", req.BaseURL),
		zap.Int64("record_id", req.ID),
		zap.String("format", string(req.Format)),
		zap.Int("bytes", len(res.Body)),
		zap.Duration("duration_ms", elapsed),
	)
	return res, nil
}

func (s *conversionService) convert(ctx context.Context, req ConversionRequest) (*ConversionResult, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidID
	}
	enc, err := marc.EncoderFor(req.Format)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.Client(req.BaseURL)
	if err != nil {
		return nil, err
	}

	fetchStart := s.now()
	payload, err := client.FetchRecord(ctx, req.ID)
	s.metrics.observeUpstream(s.now().Sub(fetchStart).Seconds())
	if err != nil {
		return nil, err
	}

	body, err := Render(payload, enc)
	if err != nil {
		return nil, err
	}
	return &ConversionResult{
		Body:        body,
		ContentType: enc.ContentType(),
		Filename:    strconv.FormatInt(req.ID, 10) + "." + enc.Extension(),
		Attachment:  req.Format != marc.FormatMARCXML,
	}, nil
}

// Render turns a Dados_marc payload into the bytes produced by enc.
func Render(payload string, enc marc.Encoder) ([]byte, error) {
	batch, err := pergamum.ParseDadosMarc(payload)
	if err != nil {
		return nil, err
	}
	rec, err := marc.Assemble(batch)
	if err != nil {
		return nil, fmt.Errorf("assemble record: %w", err)
	}
	body, err := marc.EncodeToBytes(enc, rec)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc.Extension(), err)
	}
	return body, nil
}

// record appends a conversion log entry. Log failures never fail the conversion.
func (s *conversionService) record(ctx context.Context, req ConversionRequest, res *ConversionResult, code string, elapsed time.Duration) {
	entry := &model.Conversion{
		ID:         uuid.NewString(),
		BaseURL:    req.BaseURL,
		RecordID:   req.ID,
		Format:     string(req.Format),
		Status:     model.ConversionSucceeded,
		ErrorCode:  code,
		DurationMS: elapsed.Milliseconds(),
		CreatedAt:  s.now().UTC(),
	}
	if code != "" {
		entry.Status = model.ConversionFailed
	}
	if res != nil {
		entry.Bytes = int64(len(res.Body))
	}
	if _, err := s.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.log.Error("conversion_log_write_failed", zap.String("conversion_id", entry.ID), zap.Error(err))
	}
}

func (s *conversionService) ListConversions(ctx context.Context, limit, offset int) (*ConversionListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ConversionListResult{Items: res.Items, Total: res.Total}, nil
}
