package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
	"github.com/ksiegowo/ksiegowo_backend/internal/middleware"
)

// BaseService provides common functionality for all services: request-scoped
// logging, a replaceable clock, and best-effort audit trail writes.
type BaseService struct {
	auditRepo portsrepo.AuditRepositoryFacade
	now       func() time.Time
}

func newBaseService(auditRepo portsrepo.AuditRepositoryFacade) BaseService {
	return BaseService{
		auditRepo: auditRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Now returns the current time from the service clock. Tests override the
// clock through the WithClock option.
func (s *BaseService) Now() time.Time {
	return s.now()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RecordAudit appends an audit trail record. Failures are logged and
// swallowed: the trail never blocks the primary operation.
func (s *BaseService) RecordAudit(ctx context.Context, organizationID, actorID, action, entityType, entityID string, details map[string]any) {
	if s.auditRepo == nil {
		return
	}
	record := domain.AuditRecord{
		AuditID:        uuid.NewString(),
		OrganizationID: organizationID,
		ActorID:        actorID,
		Action:         action,
		EntityType:     entityType,
		EntityID:       entityID,
		Details:        details,
		OccurredAt:     s.Now(),
	}
	if err := s.auditRepo.SaveAuditRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to write audit record",
			slog.String("action", action),
			slog.String("entity_id", entityID))
	}
}

func (s *BaseService) newAuditFields(userID string) domain.AuditFields {
	now := s.Now()
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

func (s *BaseService) touchAuditFields(f *domain.AuditFields, userID string) {
	f.LastUpdatedAt = s.Now()
	f.LastUpdatedBy = userID
}
