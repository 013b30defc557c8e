package repository

import (
	"context"
	"errors"
	"time"

	"uni-meet/internal/model"
	"uni-meet/pkg/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventFilter narrows FindEvents. Zero value lists every non-cancelled event.
type EventFilter struct {
	// OnlyClubs restricts the result to ClubIDs; an empty ClubIDs then yields nothing.
	OnlyClubs        bool
	ClubIDs          []uint
	IncludeCancelled bool
	StartAfter       *time.Time // exclusive
	StartFrom        *time.Time // inclusive
	StartUntil       *time.Time // inclusive
}

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository() *EventRepository {
	return &EventRepository{db: db.DB}
}

// 保存新活动
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

// 根据ID查找活动, 预加载所属俱乐部
func (r *EventRepository) FindByID(ctx context.Context, eventID uint) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).Preload("Club").First(&event, eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// 更新活动的全部可编辑字段
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Model(event).
		Omit(clause.Associations).
		Select("title", "location", "start_at", "end_at", "quota", "club_id", "description", "is_cancelled").
		Updates(event).Error
}

// 取消活动 (软删除)
func (r *EventRepository) Cancel(ctx context.Context, eventID uint) error {
	return r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", eventID).
		Update("is_cancelled", true).Error
}

// FindEvents returns events matching f ordered by start time, club preloaded.
func (r *EventRepository) FindEvents(ctx context.Context, f EventFilter) ([]model.Event, error) {
	events := []model.Event{}
	if f.OnlyClubs && len(f.ClubIDs) == 0 {
		return events, nil
	}

	q := r.db.WithContext(ctx).Model(&model.Event{}).Preload("Club")
	if f.OnlyClubs {
		q = q.Where("club_id IN ?", f.ClubIDs)
	}
	if !f.IncludeCancelled {
		q = q.Where("is_cancelled = ?", false)
	}
	if f.StartAfter != nil {
		q = q.Where("start_at > ?", f.StartAfter.UTC())
	}
	if f.StartFrom != nil {
		q = q.Where("start_at >= ?", f.StartFrom.UTC())
	}
	if f.StartUntil != nil {
		q = q.Where("start_at <= ?", f.StartUntil.UTC())
	}

	err := q.Order("start_at ASC").Order("id ASC").Find(&events).Error
	return events, err
}
