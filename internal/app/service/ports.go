package service

import (
	"context"
	"time"

	"github.com/jose-valero/clan-afk-bot/internal/infra/storage"
)

// Lo implementa internal/infra/storage.AFKRepo
type AFKStore interface {
	Create(ctx context.Context, e storage.AfkInterval, now time.Time) (storage.AfkInterval, error)
	Deactivate(ctx context.Context, userID int64, now time.Time) (bool, error)
	ListActive(ctx context.Context, groupID *int64, now time.Time) ([]storage.AfkInterval, error)
	ListUserCurrentAndFuture(ctx context.Context, userID int64, now time.Time) ([]storage.AfkInterval, error)
	History(ctx context.Context, userID int64, limit int) ([]storage.AfkInterval, error)
	Stats(ctx context.Context, groupID *int64, now time.Time) (storage.AfkStats, error)
	Purge(ctx context.Context, userID int64, all bool) (int64, error)
}

// Lo implementa internal/adapters/signups.Client
type SignupsAPI interface {
	Fetch(ctx context.Context, url string) ([]string, error)
}
