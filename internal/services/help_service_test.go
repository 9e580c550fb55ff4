package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/epeers/wealthboard/internal/models"
	"github.com/epeers/wealthboard/internal/repository"
	"github.com/epeers/wealthboard/internal/services"
)

func TestFAQ_All(t *testing.T) {
	svc := services.NewHelpService(repository.NewFixtureRepository(repository.DefaultFixtures()))

	resp, err := svc.FAQ(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"General", "Current Account", "Stocks & Shares ISA", "SIPP"}
	if len(resp.Sections) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(resp.Sections))
	}
	for i, c := range want {
		if resp.Sections[i].Category != c {
			t.Errorf("section %d: expected %q, got %q", i, c, resp.Sections[i].Category)
		}
		if len(resp.Sections[i].Questions) != 3 {
			t.Errorf("section %q: expected 3 questions, got %d", c, len(resp.Sections[i].Questions))
		}
	}
}

func TestFAQ_Category(t *testing.T) {
	svc := services.NewHelpService(repository.NewFixtureRepository(repository.DefaultFixtures()))

	resp, err := svc.FAQ(context.Background(), "stocks & shares isa")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.Sections) != 1 || resp.Sections[0].Category != "Stocks & Shares ISA" {
		t.Errorf("expected only the ISA section, got %+v", resp.Sections)
	}

	if _, err := svc.FAQ(context.Background(), "Mortgages"); !errors.Is(err, services.ErrFAQCategoryNotFound) {
		t.Errorf("expected ErrFAQCategoryNotFound, got %v", err)
	}
}

func TestFAQ_EmptyIsArray(t *testing.T) {
	svc := services.NewHelpService(repository.NewFixtureRepository(models.Fixtures{BaseCurrency: "GBP"}))

	resp, err := svc.FAQ(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Sections == nil || len(resp.Sections) != 0 {
		t.Errorf("expected an empty, non-nil section list, got %#v", resp.Sections)
	}
}

func TestFAQ_SourceError(t *testing.T) {
	svc := services.NewHelpService(failingSource{err: errors.New("db down")})
	if _, err := svc.FAQ(context.Background(), ""); err == nil {
		t.Error("expected error from failing source")
	}
}
