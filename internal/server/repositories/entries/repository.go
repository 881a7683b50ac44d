package entries

import (
	"context"

	"github.com/dmitrijs2005/zkvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	List(ctx context.Context, userID string) ([]*models.Entry, error)
	ListWithEnvelopes(ctx context.Context, userID string) ([]*models.Entry, error)
	Get(ctx context.Context, userID, label string) (*models.Entry, error)
	Update(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	Delete(ctx context.Context, userID, label string) error
}
