package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/polycoder/tenants/internal/platform/errors"
	"github.com/polycoder/tenants/internal/platform/logging"
	"github.com/polycoder/tenants/internal/services/tenants/domain/descriptor"
	"github.com/polycoder/tenants/internal/services/tenants/domain/replay"
	"github.com/polycoder/tenants/internal/services/tenants/storage"
	eventfilter "github.com/polycoder/tenants/internal/services/tenants/storage/filter"
)

const tracerName = "github.com/polycoder/tenants/internal/services/tenants/app"

// Result is the outcome of an accepted command.
type Result struct {
	TenantID string
	Seq      uint64
	Event    descriptor.Event
	State    descriptor.State
}

// Snapshot is a tenant's current state at a sequence.
type Snapshot struct {
	TenantID string
	Seq      uint64
	State    descriptor.State
}

// HistoryEntry is one decoded event in a tenant's history.
type HistoryEntry struct {
	Seq       uint64
	Timestamp time.Time
	Event     descriptor.Event
}

// Service handles tenant descriptor commands.
type Service struct {
	events   storage.EventLog
	strings  descriptor.MessageTemplates
	logger   *logging.Logger
	tracer   trace.Tracer
	now      func() time.Time
	pageSize int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTracerProvider sets the provider spans are started from. The global
// provider is used otherwise.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(s *Service) {
		if provider != nil {
			s.tracer = provider.Tracer(tracerName)
		}
	}
}

// WithReplayPageSize sets how many events are read per replay page.
func WithReplayPageSize(size int) Option {
	return func(s *Service) {
		s.pageSize = size
	}
}

// NewService builds a Service over an event log and localized strings.
func NewService(events storage.EventLog, templates descriptor.MessageTemplates, opts ...Option) (*Service, error) {
	if events == nil {
		return nil, fmt.Errorf("event log is required")
	}
	if templates == nil {
		return nil, fmt.Errorf("message templates are required")
	}
	s := &Service{
		events:  events,
		strings: templates,
		logger:  logging.Nop(),
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// NewTenantID returns a fresh tenant identifier.
func NewTenantID() string {
	return uuid.NewString()
}

// Handle decides cmd against the tenant's current state and appends the
// resulting event.
func (s *Service) Handle(ctx context.Context, tenantID string, cmd descriptor.Command) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "tenants.Handle", trace.WithAttributes(
		attribute.String("tenant.id", tenantID),
		attribute.String("tenant.command", fmt.Sprintf("%T", cmd)),
	))
	defer span.End()

	result, err := s.handle(ctx, tenantID, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.GetCode(err)))
		return Result{}, err
	}
	span.SetAttributes(attribute.Int64("tenant.seq", int64(result.Seq)))
	return result, nil
}

func (s *Service) handle(ctx context.Context, tenantID string, cmd descriptor.Command) (Result, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return Result{}, apperrors.New(apperrors.CodeTenantIDRequired, "tenant id is required")
	}
	if cmd == nil {
		return Result{}, fmt.Errorf("command is required")
	}
	logger := s.logger.With("tenant_id", tenantID, "command", cmd.String())

	current, err := s.Load(ctx, tenantID)
	if err != nil {
		return Result{}, err
	}
	if err := checkLifecycle(tenantID, current.State, cmd); err != nil {
		logger.Info("command rejected", "code", apperrors.GetCode(err))
		return Result{}, err
	}

	decision := descriptor.Decide(cmd, s.strings)
	if !decision.Accepted() {
		logger.Info("command failed validation", "fields", decision.Failures.Fields())
		return Result{}, apperrors.WrapWithMetadata(
			apperrors.CodeTenantValidationFailed,
			"tenant command failed validation",
			map[string]string{"TenantID": tenantID, "Failures": decision.Failures.Error()},
			decision.Failures,
		)
	}

	eventType, payloadJSON, err := descriptor.EncodeEvent(decision.Event)
	if err != nil {
		return Result{}, fmt.Errorf("encode event: %w", err)
	}
	appended, err := s.events.AppendEvents(ctx, tenantID, current.Seq, []storage.EventRecord{{
		Type:        string(eventType),
		PayloadJSON: payloadJSON,
		Timestamp:   s.now().UTC(),
	}})
	if err != nil {
		if stderrors.Is(err, storage.ErrVersionConflict) {
			logger.Warn("append conflicted", "expected_seq", current.Seq)
			return Result{}, apperrors.WrapWithMetadata(
				apperrors.CodeTenantVersionConflict,
				"tenant changed during command",
				map[string]string{"TenantID": tenantID},
				err,
			)
		}
		return Result{}, fmt.Errorf("append event: %w", err)
	}
	if len(appended) != 1 {
		return Result{}, fmt.Errorf("append event: expected 1 stored record, got %d", len(appended))
	}

	next := descriptor.Reduce(current.State, decision.Event)
	logger.Info("command accepted", "event", decision.Event.String(), "seq", appended[0].Seq)
	return Result{
		TenantID: tenantID,
		Seq:      appended[0].Seq,
		Event:    decision.Event,
		State:    next,
	}, nil
}

// Load replays the tenant's events into its current state.
func (s *Service) Load(ctx context.Context, tenantID string) (Snapshot, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return Snapshot{}, apperrors.New(apperrors.CodeTenantIDRequired, "tenant id is required")
	}
	result, err := replay.Replay(ctx, s.events, tenantID, descriptor.Empty, applyRecord, replay.Options{PageSize: s.pageSize})
	if err != nil {
		return Snapshot{}, fmt.Errorf("replay tenant %s: %w", tenantID, err)
	}
	return Snapshot{TenantID: tenantID, Seq: result.LastSeq, State: result.State}, nil
}

// History returns the tenant's decoded events matching an AIP-160 filter over
// type, seq and ts. An empty filter returns every event.
func (s *Service) History(ctx context.Context, tenantID string, filter string) ([]HistoryEntry, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, apperrors.New(apperrors.CodeTenantIDRequired, "tenant id is required")
	}
	if _, err := eventfilter.ParseEventFilter(filter); err != nil {
		return nil, apperrors.WrapWithMetadata(
			apperrors.CodeEventFilterInvalid,
			"invalid event filter",
			map[string]string{"Filter": filter},
			err,
		)
	}
	records, err := s.events.ListEventsFiltered(ctx, tenantID, filter, 0)
	if err != nil {
		return nil, fmt.Errorf("list tenant %s events: %w", tenantID, err)
	}
	entries := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		evt, err := descriptor.DecodeEvent(descriptor.Type(rec.Type), rec.PayloadJSON)
		if err != nil {
			return nil, fmt.Errorf("decode seq %d: %w", rec.Seq, err)
		}
		entries = append(entries, HistoryEntry{Seq: rec.Seq, Timestamp: rec.Timestamp, Event: evt})
	}
	return entries, nil
}

// checkLifecycle enforces that create targets a missing tenant and that
// update and delete target an existing one.
func checkLifecycle(tenantID string, state descriptor.State, cmd descriptor.Command) error {
	metadata := map[string]string{"TenantID": tenantID}
	switch cmd.(type) {
	case descriptor.CreateCommand:
		if state.Exists() {
			return apperrors.WithMetadata(apperrors.CodeTenantAlreadyExists, "tenant already exists", metadata)
		}
	case descriptor.UpdateCommand, descriptor.DeleteCommand:
		if !state.Exists() {
			return apperrors.WithMetadata(apperrors.CodeTenantNotFound, "tenant not found", metadata)
		}
	default:
		return fmt.Errorf("unhandled command %T", cmd)
	}
	return nil
}

func applyRecord(state descriptor.State, rec storage.EventRecord) (descriptor.State, error) {
	evt, err := descriptor.DecodeEvent(descriptor.Type(rec.Type), rec.PayloadJSON)
	if err != nil {
		return state, err
	}
	return descriptor.Reduce(state, evt), nil
}
