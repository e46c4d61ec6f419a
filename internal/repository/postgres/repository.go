package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zain-cs/Social-Network-API/internal/model"
)

type User interface {
	Create(ctx context.Context, id int64) error
	ListIDs(ctx context.Context) ([]int64, error)
}

type Follower interface {
	Create(ctx context.Context, follower model.Follower) error
	Delete(ctx context.Context, follower model.Follower) (bool, error)
	ListAll(ctx context.Context) ([]model.Follower, error)
}

type PostgresRepository struct {
	User
	Follower
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		User:     newUserRepo(db),
		Follower: newFollowerRepo(db),
	}
}
