package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/placement_ledger/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock func() time.Time
	newID func() string
}

// ServiceOption is a functional option shared by the services that embed BaseService.
type ServiceOption func(*BaseService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(b *BaseService) {
		b.clock = clock
	}
}

// WithIDGenerator replaces uuid.NewString, mainly for tests.
func WithIDGenerator(newID func() string) ServiceOption {
	return func(b *BaseService) {
		b.newID = newID
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	b := BaseService{clock: time.Now, newID: uuid.NewString}
	for _, option := range options {
		option(&b)
	}
	return b
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

// NewID returns a fresh entity id.
func (s *BaseService) NewID() string {
	if s.newID == nil {
		return uuid.NewString()
	}
	return s.newID()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
