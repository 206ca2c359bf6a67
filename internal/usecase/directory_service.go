package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/V4T54L/cloudburst/internal/domain"
)

// DirectoryService serves person lookups on the on-premise side.
type DirectoryService struct {
	repo   domain.PersonRepository
	logger *slog.Logger
}

func NewDirectoryService(repo domain.PersonRepository, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{
		repo:   repo,
		logger: logger.With("component", "directory_service"),
	}
}

// Search returns people whose first name contains match. An empty match
// matches everyone, capped at one page by the repository.
func (s *DirectoryService) Search(ctx context.Context, match string) ([]domain.Person, error) {
	people, err := s.repo.SearchByFirstName(ctx, match)
	if err != nil {
		s.logger.Error("person search failed", "first_name", match, "error", err)
		return nil, fmt.Errorf("search people: %w", err)
	}
	s.logger.Debug("person search", "first_name", match, "results", len(people))
	return nonNil(people), nil
}

// All returns the first page of people.
func (s *DirectoryService) All(ctx context.Context) ([]domain.Person, error) {
	people, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("person listing failed", "error", err)
		return nil, fmt.Errorf("list people: %w", err)
	}
	s.logger.Debug("person listing", "results", len(people))
	return nonNil(people), nil
}

// nonNil keeps JSON responses as [] rather than null.
func nonNil(people []domain.Person) []domain.Person {
	if people == nil {
		return []domain.Person{}
	}
	return people
}
