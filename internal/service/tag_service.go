package service

import (
	"context"
	"fmt"
	"strings"

	dom "taskboard/internal/domain"
	"taskboard/internal/pgerr"
	"taskboard/internal/repo"

	"github.com/google/uuid"
)

const defaultTagColor = "#6B7280"

type TagService struct {
	repo repo.TagRepo
}

func NewTagService(repo repo.TagRepo) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) Create(ctx context.Context, name, color string) (dom.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dom.Tag{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if color == "" {
		color = defaultTagColor
	}
	t, err := s.repo.Create(ctx, dom.Tag{ID: uuid.NewString(), Name: name, Color: color})
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return dom.Tag{}, ErrAlreadyExists
		}
		return dom.Tag{}, err
	}
	return t, nil
}

func (s *TagService) List(ctx context.Context) ([]dom.Tag, error) {
	return s.repo.List(ctx)
}
