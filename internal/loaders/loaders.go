package loaders

import (
	"context"

	"grove/internal/models"
	"grove/internal/store"

	"github.com/graph-gophers/dataloader/v7"
)

// UserBatcher and VoteBatcher are the two store queries the loaders
// batch over. Tests swap in counting fakes.
type UserBatcher interface {
	ByIDs(ctx context.Context, ids []uint) ([]models.User, error)
}

type VoteBatcher interface {
	FindBatch(ctx context.Context, keys []store.VoteKey) (map[store.VoteKey]*models.Updoot, error)
}

// Loaders holds the request-scoped batching caches. A fresh set is
// built for every inbound request and dropped with it; nothing here may
// ever be shared across requests.
type Loaders struct {
	Users *dataloader.Loader[uint, *models.User]
	Votes *dataloader.Loader[store.VoteKey, *models.Updoot]
}

func New(users UserBatcher, votes VoteBatcher) *Loaders {
	return &Loaders{
		Users: dataloader.NewBatchedLoader(userBatch(users)),
		Votes: dataloader.NewBatchedLoader(voteBatch(votes)),
	}
}

// LoadUser resolves one user through the batch cache.
func (l *Loaders) LoadUser(ctx context.Context, id uint) (*models.User, error) {
	return l.Users.Load(ctx, id)()
}

// LoadVote resolves one (post,user) vote through the batch cache.
// A nil result means the user has not voted on the post.
func (l *Loaders) LoadVote(ctx context.Context, key store.VoteKey) (*models.Updoot, error) {
	return l.Votes.Load(ctx, key)()
}

func userBatch(users UserBatcher) dataloader.BatchFunc[uint, *models.User] {
	return func(ctx context.Context, ids []uint) []*dataloader.Result[*models.User] {
		results := make([]*dataloader.Result[*models.User], len(ids))

		rows, err := users.ByIDs(ctx, ids)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[*models.User]{Error: err}
			}
			return results
		}

		byID := make(map[uint]*models.User, len(rows))
		for i := range rows {
			byID[rows[i].ID] = &rows[i]
		}

		// Results must line up with the requested key order.
		for i, id := range ids {
			results[i] = &dataloader.Result[*models.User]{Data: byID[id]}
		}
		return results
	}
}

func voteBatch(votes VoteBatcher) dataloader.BatchFunc[store.VoteKey, *models.Updoot] {
	return func(ctx context.Context, keys []store.VoteKey) []*dataloader.Result[*models.Updoot] {
		results := make([]*dataloader.Result[*models.Updoot], len(keys))

		found, err := votes.FindBatch(ctx, keys)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[*models.Updoot]{Error: err}
			}
			return results
		}

		for i, key := range keys {
			results[i] = &dataloader.Result[*models.Updoot]{Data: found[key]}
		}
		return results
	}
}

type ctxKey struct{}

// NewContext attaches a loader set to the request context.
func NewContext(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// For returns the request's loaders, or nil outside a request.
func For(ctx context.Context) *Loaders {
	l, _ := ctx.Value(ctxKey{}).(*Loaders)
	return l
}
