package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events to repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit event.
func (s *auditService) Process(ctx context.Context, in ports.AuditEventInput) error {
	entry := &domain.AuditEntry{
		Actor:     in.Actor,
		Action:    in.Action,
		Detail:    in.Detail,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("persist audit entry: %w", err)
	}
	s.log.Debug().Str("actor", in.Actor).Str("action", in.Action).Msg("audit entry recorded")
	return nil
}
