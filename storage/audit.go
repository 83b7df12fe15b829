package storage

import (
	"context"

	"github.com/Startup925/realestate/models"
)

func (s *Store) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}

func (s *Store) RecentAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error) {
	logs := []models.AuditLog{}
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// AuditLogsByActor lists the latest actions taken by one admin.
func (s *Store) AuditLogsByActor(ctx context.Context, actorID string, limit int) ([]models.AuditLog, error) {
	logs := []models.AuditLog{}
	err := s.db.WithContext(ctx).Where("actor_id = ?", actorID).Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
