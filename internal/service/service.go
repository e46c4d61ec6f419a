package service

import (
	"context"

	"github.com/zain-cs/Social-Network-API/internal/dto"
	"github.com/zain-cs/Social-Network-API/internal/graph"
	"github.com/zain-cs/Social-Network-API/internal/rabbitmq"
	"github.com/zain-cs/Social-Network-API/internal/repository"
	"go.uber.org/zap"
)

type Graph interface {
	LoadGraph(ctx context.Context) (graph.Stats, error)
	RegisterUser(ctx context.Context, id int64) error
	Follow(ctx context.Context, followerID int64, userID int64) error
	Unfollow(ctx context.Context, followerID int64, userID int64) error
	Following(ctx context.Context, id int64) []int64
	Followers(ctx context.Context, id int64) []int64
	Relation(ctx context.Context, a int64, b int64) dto.IsFollowingResponse
	MutualFollowing(ctx context.Context, a int64, b int64) []int64
	MutualFollowers(ctx context.Context, a int64, b int64) []int64
	ShortestPath(ctx context.Context, start int64, end int64) dto.PathResponse
	CommunitySize(ctx context.Context, id int64, maxDepth int) dto.CommunityResponse
	Suggestions(ctx context.Context, id int64, limit int) []graph.Suggestion
	Influencers(ctx context.Context, minFollowers int64, limit int) []graph.RankedUser
	PopularInNetwork(ctx context.Context, id int64, limit int) []graph.RankedUser
	NetworkStats(ctx context.Context) graph.Stats
}

type Service struct {
	Graph
}

func New(logger *zap.Logger, repo *repository.Repository, g *graph.FollowGraph, mq rabbitmq.Publisher) *Service {
	return &Service{
		Graph: newGraphService(logger, repo, g, mq),
	}
}
