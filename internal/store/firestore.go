package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/jiwoolab/naver-top-news/internal/config"
	"github.com/jiwoolab/naver-top-news/internal/logger"
	"github.com/jiwoolab/naver-top-news/internal/models"
	"github.com/jiwoolab/naver-top-news/internal/processing"
)

// Firestore persists daily batches into a Firestore collection.
type Firestore struct {
	client     *firestore.Client
	collection string
	log        *slog.Logger
	now        func() time.Time
}

// NewFirestore authenticates against Firestore. Credentials come from
// the FIREBASE_SERVICE_ACCOUNT JSON blob when present, else from the
// service-account key file. With neither, nothing can ever be written,
// so the error is fatal for the caller.
func NewFirestore(ctx context.Context, cfg config.Firestore, log *slog.Logger) (*Firestore, error) {
	opt, err := credentialOption(cfg)
	if err != nil {
		return nil, err
	}

	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	client, err := firestore.NewClient(ctx, projectID, opt)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Firestore{
		client:     client,
		collection: cfg.Collection,
		log:        log,
		now:        time.Now,
	}, nil
}

func credentialOption(cfg config.Firestore) (option.ClientOption, error) {
	if cfg.CredentialsJSON != "" {
		return option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)), nil
	}
	if cfg.CredentialsFile != "" {
		if _, err := os.Stat(cfg.CredentialsFile); err == nil {
			return option.WithCredentialsFile(cfg.CredentialsFile), nil
		}
	}
	return nil, fmt.Errorf("no firestore credentials: set FIREBASE_SERVICE_ACCOUNT or GOOGLE_APPLICATION_CREDENTIALS")
}

// Close releases the underlying client.
func (f *Firestore) Close() error {
	return f.client.Close()
}

// SaveDaily stages the whole batch under a day key computed once, so a
// run spanning midnight still lands on one day, and commits it in a
// single atomic write. Set replaces existing documents in full: a
// re-run on the same day overwrites, never merges.
func (f *Firestore) SaveDaily(ctx context.Context, records []models.NewsRecord) error {
	if len(records) == 0 {
		return nil
	}

	day := processing.DayKey(f.now())
	batch := f.client.Batch()

	for _, rec := range records {
		id := processing.DocumentID(day, rec.Category)
		batch.Set(f.client.Collection(f.collection).Doc(id), rec)
		f.log.Debug("staged record", slog.String("id", id), slog.String("title", rec.Title))
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch of %d records: %w", len(records), err)
	}

	f.log.Info("saved daily batch", slog.String("day", day), slog.Int("count", len(records)))
	return nil
}

// DeleteOlderThan removes documents whose createdAt predates maxAge,
// deleting at most batchSize per commit until none remain.
func (f *Firestore) DeleteOlderThan(ctx context.Context, maxAge time.Duration, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	cutoff := f.now().Add(-maxAge)
	var total int64

	for {
		iter := f.client.Collection(f.collection).
			Where("createdAt", "<", cutoff).
			Limit(batchSize).
			Documents(ctx)

		batch := f.client.Batch()
		n := 0
		for {
			doc, err := iter.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				return total, fmt.Errorf("list expired documents: %w", err)
			}
			batch.Delete(doc.Ref)
			n++
		}

		if n == 0 {
			return total, nil
		}

		if _, err := batch.Commit(ctx); err != nil {
			return total, fmt.Errorf("delete %d expired documents: %w", n, err)
		}
		total += int64(n)
		f.log.Debug("deleted expired documents", slog.Int("count", n))

		if n < batchSize {
			return total, nil
		}
	}
}
