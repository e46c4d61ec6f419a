package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zain-cs/Social-Network-API/internal/model"
)

type followerRepo struct {
	db *pgxpool.Pool
}

func newFollowerRepo(db *pgxpool.Pool) Follower {
	return &followerRepo{
		db: db,
	}
}

func (r *followerRepo) Create(ctx context.Context, follower model.Follower) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO followers(user_id, follower_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
		follower.UserID,
		follower.FollowerID,
	)
	return err
}

// Delete removes the follow edge and reports whether a row actually existed,
// so the caller can distinguish unfollowing a non-followed user.
func (r *followerRepo) Delete(ctx context.Context, follower model.Follower) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		"DELETE FROM followers WHERE user_id = $1 AND follower_id = $2",
		follower.UserID,
		follower.FollowerID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListAll streams the whole followers table. It backs the startup bulk load
// of the in-memory graph, so it is a single query over the full edge set.
func (r *followerRepo) ListAll(ctx context.Context) ([]model.Follower, error) {
	rows, err := r.db.Query(ctx, "SELECT user_id, follower_id FROM followers")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []model.Follower
	for rows.Next() {
		var edge model.Follower
		if err := rows.Scan(&edge.UserID, &edge.FollowerID); err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}
