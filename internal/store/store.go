package store

import (
	"context"

	"github.com/jiwoolab/naver-top-news/internal/models"
)

// Store is the document-store surface the crawler writes to. One call
// persists a whole run: every record lands under the same day key, and
// either the entire batch is durably written or none of it is.
type Store interface {
	SaveDaily(ctx context.Context, records []models.NewsRecord) error
}
