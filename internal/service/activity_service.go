package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	dom "taskboard/internal/domain"
	"taskboard/internal/pgerr"
	"taskboard/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ActivityService records comments, time entries and dependencies on visible tasks.
type ActivityService struct {
	tasks    repo.TaskRepo
	activity repo.ActivityRepo
}

func NewActivityService(tasks repo.TaskRepo, activity repo.ActivityRepo) *ActivityService {
	return &ActivityService{tasks: tasks, activity: activity}
}

func (s *ActivityService) AddComment(ctx context.Context, userID, taskID, content string) (dom.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return dom.Comment{}, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if err := s.requireVisible(ctx, userID, taskID); err != nil {
		return dom.Comment{}, err
	}
	return s.activity.AddComment(ctx, dom.Comment{
		ID:      uuid.NewString(),
		TaskID:  taskID,
		Content: content,
		Author:  dom.UserBrief{ID: userID},
	})
}

// AddTimeEntry logs time on a task. When duration is nil and the entry has ended,
// it is derived from start and end.
func (s *ActivityService) AddTimeEntry(ctx context.Context, userID, taskID, description string, start time.Time, end *time.Time, duration *int64) (dom.TimeEntry, error) {
	if start.IsZero() {
		return dom.TimeEntry{}, fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if end != nil {
		if end.Before(start) {
			return dom.TimeEntry{}, fmt.Errorf("%w: endTime is before startTime", ErrInvalidInput)
		}
		if duration == nil {
			secs := int64(end.Sub(start) / time.Second)
			duration = &secs
		}
	}
	if duration != nil && *duration < 0 {
		return dom.TimeEntry{}, fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}
	if err := s.requireVisible(ctx, userID, taskID); err != nil {
		return dom.TimeEntry{}, err
	}
	return s.activity.AddTimeEntry(ctx, dom.TimeEntry{
		ID:          uuid.NewString(),
		TaskID:      taskID,
		Description: strings.TrimSpace(description),
		StartTime:   start,
		EndTime:     end,
		Duration:    duration,
		User:        dom.UserBrief{ID: userID},
	})
}

// AddDependency records that blockingID blocks dependentID. Both tasks must be visible.
func (s *ActivityService) AddDependency(ctx context.Context, userID, dependentID, blockingID string) (dom.Dependency, error) {
	if dependentID == blockingID {
		return dom.Dependency{}, ErrSelfDependency
	}
	if err := s.requireVisible(ctx, userID, dependentID); err != nil {
		return dom.Dependency{}, err
	}
	if err := s.requireVisible(ctx, userID, blockingID); err != nil {
		return dom.Dependency{}, err
	}
	d, err := s.activity.AddDependency(ctx, uuid.NewString(), blockingID, dependentID)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return dom.Dependency{}, ErrAlreadyExists
		}
		return dom.Dependency{}, err
	}
	return d, nil
}

func (s *ActivityService) requireVisible(ctx context.Context, userID, taskID string) error {
	if _, err := s.tasks.GetVisible(ctx, userID, taskID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
