package events

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leafline/leafline-backend/internal/pkg/logger"
	"github.com/leafline/leafline-backend/internal/types"
)

type UserEventRepo interface {
	// ListRecent returns the user's latest events, newest first. The limit is
	// clamped to 500; events are immutable once recorded.
	ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.UserEvent, error)

	Create(ctx context.Context, tx *gorm.DB, events []*types.UserEvent) ([]*types.UserEvent, error)
}

type userEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserEventRepo(db *gorm.DB, baseLog *logger.Logger) UserEventRepo {
	return &userEventRepo{db: db, log: baseLog.With("repo", "UserEventRepo")}
}

func (r *userEventRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.UserEvent, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return []*types.UserEvent{}, nil
	}
	if limit <= 0 {
		limit = 500
	}
	if limit > 500 {
		limit = 500
	}
	var out []*types.UserEvent
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *userEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.UserEvent) ([]*types.UserEvent, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(events) == 0 {
		return []*types.UserEvent{}, nil
	}
	if err := t.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
