package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"uni-meet/internal/authz"
	"uni-meet/internal/interfaces"
	"uni-meet/internal/model"
	"uni-meet/internal/repository"
	"uni-meet/pkg/logger"
	"uni-meet/pkg/utils"
	"uni-meet/pkg/validator"

	"go.uber.org/zap"
)

// upcomingWindow 是 Upcoming 查询的时间窗口
const upcomingWindow = 24 * time.Hour

// EventDTO is an event as returned to clients, with the club's current name.
type EventDTO struct {
	EventID     uint           `json:"eventId"`
	Title       string         `json:"title"`
	Location    string         `json:"location"`
	StartAt     utils.UTCTime  `json:"startAt"`
	EndAt       *utils.UTCTime `json:"endAt"`
	Quota       int            `json:"quota"`
	ClubID      uint           `json:"clubId"`
	ClubName    string         `json:"clubName"`
	Description *string        `json:"description"`
	IsCancelled bool           `json:"isCancelled"`
}

func NewEventDTO(e *model.Event) EventDTO {
	dto := EventDTO{
		EventID:     e.ID,
		Title:       e.Title,
		Location:    e.Location,
		StartAt:     utils.UTCTime{Time: e.StartAt.UTC()},
		Quota:       e.Quota,
		ClubID:      e.ClubID,
		ClubName:    e.Club.Name,
		Description: e.Description,
		IsCancelled: e.IsCancelled,
	}
	if e.EndAt != nil {
		dto.EndAt = &utils.UTCTime{Time: e.EndAt.UTC()}
	}
	return dto
}

func newEventDTOs(events []model.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for i := range events {
		out = append(out, NewEventDTO(&events[i]))
	}
	return out
}

// EventInput is the payload of create and update.
type EventInput struct {
	Title       string         `json:"title" validate:"notblank,max=200"`
	Location    string         `json:"location" validate:"notblank,max=200"`
	StartAt     utils.UTCTime  `json:"startAt"`
	EndAt       *utils.UTCTime `json:"endAt"`
	Quota       int            `json:"quota" validate:"gte=1"`
	ClubID      uint           `json:"clubId" validate:"required"`
	Description *string        `json:"description"`
	// 仅更新时使用, nil 表示保持不变
	IsCancelled *bool `json:"isCancelled"`
}

// normalize trims text fields; a blank description becomes nil.
func (in *EventInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			in.Description = nil
		} else {
			in.Description = &d
		}
	}
}

func (in *EventInput) validate(ctx context.Context) error {
	if err := validator.Validate(ctx, in); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if in.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt %s", ErrValidation, validator.ErrFieldRequired)
	}
	if in.EndAt != nil && !in.EndAt.IsZero() && in.EndAt.Before(in.StartAt.Time) {
		return fmt.Errorf("%w: endAt must not be before startAt", ErrValidation)
	}
	return nil
}

func (in *EventInput) endAt() *time.Time {
	if in.EndAt == nil || in.EndAt.IsZero() {
		return nil
	}
	t := in.EndAt.UTC()
	return &t
}

// EventService 处理活动的查询与修改
type EventService struct {
	events  interfaces.EventStore
	clubs   interfaces.ClubStore
	follows interfaces.FollowStore
	users   interfaces.UserStore
	now     func() time.Time
}

func NewEventService(events interfaces.EventStore, clubs interfaces.ClubStore, follows interfaces.FollowStore, users interfaces.UserStore) *EventService {
	return &EventService{
		events:  events,
		clubs:   clubs,
		follows: follows,
		users:   users,
		now:     time.Now,
	}
}

// SetClock replaces the time source used for upcoming and feed windows.
func (s *EventService) SetClock(now func() time.Time) {
	s.now = now
}

// 公开的活动列表
func (s *EventService) ListEvents(ctx context.Context, includeCancelled bool) ([]EventDTO, error) {
	events, err := s.events.FindEvents(ctx, repository.EventFilter{IncludeCancelled: includeCancelled})
	if err != nil {
		return nil, err
	}
	return newEventDTOs(events), nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID uint) (*EventDTO, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %d does not exist", ErrNotFound, eventID)
	}
	dto := NewEventDTO(event)
	return &dto, nil
}

// Upcoming lists events of followed clubs starting within the next 24 hours.
func (s *EventService) Upcoming(ctx context.Context, userID uint, includeCancelled bool) ([]EventDTO, error) {
	clubIDs, err := s.follows.FindFollowedClubIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	until := now.Add(upcomingWindow)
	events, err := s.events.FindEvents(ctx, repository.EventFilter{
		OnlyClubs:        true,
		ClubIDs:          clubIDs,
		IncludeCancelled: includeCancelled,
		StartAfter:       &now,
		StartUntil:       &until,
	})
	if err != nil {
		return nil, err
	}
	return newEventDTOs(events), nil
}

// Feed lists events of followed clubs; upcomingOnly drops events already started.
func (s *EventService) Feed(ctx context.Context, userID uint, upcomingOnly, includeCancelled bool) ([]EventDTO, error) {
	clubIDs, err := s.follows.FindFollowedClubIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	filter := repository.EventFilter{
		OnlyClubs:        true,
		ClubIDs:          clubIDs,
		IncludeCancelled: includeCancelled,
	}
	if upcomingOnly {
		now := s.now().UTC()
		filter.StartFrom = &now
	}
	events, err := s.events.FindEvents(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newEventDTOs(events), nil
}

// 检查调用者能否管理指定俱乐部
func forbidUnlessManages(perm authz.Permission, clubIDs ...uint) error {
	for _, clubID := range clubIDs {
		if !perm.CanManage(clubID) {
			return fmt.Errorf("%w: cannot manage events of club %d (managed club: %s)", ErrForbidden, clubID, perm.ManagedClubs())
		}
	}
	return nil
}

func (s *EventService) requireClub(ctx context.Context, clubID uint) error {
	club, err := s.clubs.FindByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club == nil {
		return fmt.Errorf("%w: club %d does not exist", ErrValidation, clubID)
	}
	return nil
}

func (s *EventService) reload(ctx context.Context, eventID uint) (*EventDTO, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %d does not exist", ErrNotFound, eventID)
	}
	dto := NewEventDTO(event)
	return &dto, nil
}

// CreateEvent validates the input, checks the caller may manage the club and stores the event.
func (s *EventService) CreateEvent(ctx context.Context, userID uint, in EventInput) (*EventDTO, error) {
	in.normalize()
	if err := in.validate(ctx); err != nil {
		return nil, err
	}
	user, err := resolveActiveUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	if err := forbidUnlessManages(authz.For(user), in.ClubID); err != nil {
		return nil, err
	}
	if err := s.requireClub(ctx, in.ClubID); err != nil {
		return nil, err
	}

	event := &model.Event{
		Title:           in.Title,
		Location:        in.Location,
		StartAt:         in.StartAt.UTC(),
		EndAt:           in.endAt(),
		Quota:           in.Quota,
		ClubID:          in.ClubID,
		Description:     in.Description,
		IsCancelled:     false,
		CreatedByUserID: user.ID,
	}
	if err := s.events.Create(ctx, event); err != nil {
		logger.L.Error("Failed to create event", zap.Uint("userID", userID), zap.Uint("clubID", in.ClubID), zap.Error(err))
		return nil, err
	}
	logger.L.Info("Event created", zap.Uint("eventID", event.ID), zap.Uint("clubID", event.ClubID), zap.Uint("userID", userID))
	return s.reload(ctx, event.ID)
}

// UpdateEvent replaces the editable fields. A manager must manage both the
// event's current club and the club in the payload.
func (s *EventService) UpdateEvent(ctx context.Context, userID, eventID uint, in EventInput) (*EventDTO, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %d does not exist", ErrNotFound, eventID)
	}

	in.normalize()
	if err := in.validate(ctx); err != nil {
		return nil, err
	}
	user, err := resolveActiveUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	if err := forbidUnlessManages(authz.For(user), event.ClubID, in.ClubID); err != nil {
		return nil, err
	}
	if err := s.requireClub(ctx, in.ClubID); err != nil {
		return nil, err
	}

	event.Title = in.Title
	event.Location = in.Location
	event.StartAt = in.StartAt.UTC()
	event.EndAt = in.endAt()
	event.Quota = in.Quota
	event.ClubID = in.ClubID
	event.Description = in.Description
	if in.IsCancelled != nil {
		event.IsCancelled = *in.IsCancelled
	}
	if err := s.events.Update(ctx, event); err != nil {
		logger.L.Error("Failed to update event", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	logger.L.Info("Event updated", zap.Uint("eventID", eventID), zap.Uint("userID", userID))
	return s.reload(ctx, eventID)
}

// CancelEvent marks the event cancelled. The row is kept.
func (s *EventService) CancelEvent(ctx context.Context, userID, eventID uint) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return fmt.Errorf("%w: event %d does not exist", ErrNotFound, eventID)
	}
	user, err := resolveActiveUser(ctx, s.users, userID)
	if err != nil {
		return err
	}
	if err := forbidUnlessManages(authz.For(user), event.ClubID); err != nil {
		return err
	}
	if err := s.events.Cancel(ctx, eventID); err != nil {
		logger.L.Error("Failed to cancel event", zap.Uint("eventID", eventID), zap.Error(err))
		return err
	}
	logger.L.Info("Event cancelled", zap.Uint("eventID", eventID), zap.Uint("userID", userID))
	return nil
}
