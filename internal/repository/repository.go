package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/zain-cs/Social-Network-API/internal/repository/postgres"
	"github.com/zain-cs/Social-Network-API/internal/repository/redisrepo"
)

type Repository struct {
	Postgres *postgres.PostgresRepository
	Redis    *redisrepo.RedisRepository
}

func New(db *pgxpool.Pool, rdb *redis.Client) *Repository {
	return &Repository{
		Postgres: postgres.New(db),
		Redis:    redisrepo.New(rdb),
	}
}
