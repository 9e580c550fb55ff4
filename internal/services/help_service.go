package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/epeers/wealthboard/internal/models"
)

var ErrFAQCategoryNotFound = errors.New("faq category not found")

// HelpService serves the help page content
type HelpService struct {
	source AccountSource
}

// NewHelpService creates a new HelpService
func NewHelpService(source AccountSource) *HelpService {
	return &HelpService{source: source}
}

// FAQ returns the help questions, optionally only those of one category.
// Categories match case-insensitively.
func (s *HelpService) FAQ(ctx context.Context, category string) (*models.FAQResponse, error) {
	fixtures, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load help content: %w", err)
	}

	if category == "" {
		sections := fixtures.FAQ
		if sections == nil {
			sections = []models.FAQSection{}
		}
		return &models.FAQResponse{Sections: sections}, nil
	}
	for _, section := range fixtures.FAQ {
		if strings.EqualFold(section.Category, category) {
			return &models.FAQResponse{Sections: []models.FAQSection{section}}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrFAQCategoryNotFound, category)
}
