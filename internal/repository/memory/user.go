package memory

import (
	"context"
	"fmt"

	"github.com/jwalitptl/baseline-api/internal/model"
	"github.com/jwalitptl/baseline-api/internal/repository"
	apperrors "github.com/jwalitptl/baseline-api/pkg/errors"
	"github.com/jwalitptl/baseline-api/pkg/metrics"
)

const userEntity = "user"

type userRepository struct {
	store   *Store[model.User]
	metrics *metrics.Metrics
}

func NewUserRepository(store *Store[model.User], m *metrics.Metrics) repository.UserRepository {
	m.SetRecords(userEntity, store.Len())
	return &userRepository{store: store, metrics: m}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (_ *model.User, err error) {
	defer func() { r.metrics.ObserveStoreOp(userEntity, "get_by_username", err) }()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	for _, user := range r.store.List() {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, apperrors.NotFound("User")
}
