package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func newUserRepo(db *pgxpool.Pool) User {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) Create(ctx context.Context, id int64) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO users(id) VALUES($1) ON CONFLICT (id) DO NOTHING",
		id,
	)
	return err
}

// ListIDs returns every registered user id. It runs once at startup so that
// users without any follow edge still get a node in the graph.
func (r *userRepo) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, "SELECT id FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
