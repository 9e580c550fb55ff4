package services

import (
	"context"

	"github.com/epeers/wealthboard/internal/models"
)

// AccountSource supplies the account data set. Implemented by the fixture
// and PostgreSQL repositories.
type AccountSource interface {
	Load(ctx context.Context) (models.Fixtures, error)
}
