package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/zain-cs/Social-Network-API/internal/dto"
	"github.com/zain-cs/Social-Network-API/internal/graph"
	"github.com/zain-cs/Social-Network-API/internal/model"
	"github.com/zain-cs/Social-Network-API/internal/rabbitmq"
	"github.com/zain-cs/Social-Network-API/internal/repository"
	"github.com/zain-cs/Social-Network-API/internal/repository/redisrepo"
	"go.uber.org/zap"
)

type graphService struct {
	logger *zap.Logger
	repo   *repository.Repository
	graph  *graph.FollowGraph
	mq     rabbitmq.Publisher
}

func newGraphService(logger *zap.Logger, repo *repository.Repository, g *graph.FollowGraph, mq rabbitmq.Publisher) Graph {
	return &graphService{
		logger: logger,
		repo:   repo,
		graph:  g,
		mq:     mq,
	}
}

func analyticsTTL() time.Duration {
	ttl := viper.GetDuration("cache.analytics_ttl")
	if ttl <= 0 {
		ttl = time.Minute * 5
	}
	return ttl
}

// LoadGraph rebuilds the in-memory graph from the followers table. It runs
// once at startup, before the HTTP server starts accepting traffic.
func (s *graphService) LoadGraph(ctx context.Context) (graph.Stats, error) {
	userIDs, err := s.repo.Postgres.User.ListIDs(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list user ids from postgres: %s", err.Error())
		return graph.Stats{}, ErrInternal
	}

	edges, err := s.repo.Postgres.Follower.ListAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list follow edges from postgres: %s", err.Error())
		return graph.Stats{}, ErrInternal
	}

	s.graph.RegisterUsers(userIDs)
	s.graph.LoadEdges(edges)

	return s.graph.NetworkStats(), nil
}

// RegisterUser mirrors a user-service registration into the graph. The store
// write happens first; the graph is only touched once the row exists.
func (s *graphService) RegisterUser(ctx context.Context, id int64) error {
	if err := s.repo.Postgres.User.Create(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to create user(%d) in postgres: %s", id, err.Error())
		return ErrInternal
	}

	s.graph.RegisterUser(id)
	return nil
}

// Follow validates the edge, writes it through to postgres, and only then
// applies it to the in-memory graph, so a failed durable write never leaves a
// phantom edge in memory. Cache invalidation and the follow event are
// best-effort afterwards.
func (s *graphService) Follow(ctx context.Context, followerID int64, userID int64) error {
	if followerID == userID {
		return ErrSelfFollow
	}
	if !s.graph.HasUser(followerID) || !s.graph.HasUser(userID) {
		return ErrUserNotFound
	}
	if s.graph.IsFollowing(followerID, userID) {
		return ErrAlreadyFollowing
	}

	edge := model.Follower{UserID: userID, FollowerID: followerID}
	if err := s.repo.Postgres.Follower.Create(ctx, edge); err != nil {
		s.logger.Sugar().Errorf("failed to create follow edge(%d->%d) in postgres: %s", followerID, userID, err.Error())
		return ErrInternal
	}

	s.graph.Follow(followerID, userID)

	s.invalidateAnalytics(ctx, followerID)
	s.publishFollowEvent(rabbitmq.FOLLOW_EVENT, edge)
	return nil
}

// Unfollow mirrors Follow: postgres first, graph second. The delete reports
// whether a row existed so a race between the check and the delete still
// resolves consistently.
func (s *graphService) Unfollow(ctx context.Context, followerID int64, userID int64) error {
	if followerID == userID {
		return ErrSelfFollow
	}
	if !s.graph.HasUser(followerID) || !s.graph.HasUser(userID) {
		return ErrUserNotFound
	}
	if !s.graph.IsFollowing(followerID, userID) {
		return ErrNotFollowing
	}

	edge := model.Follower{UserID: userID, FollowerID: followerID}
	existed, err := s.repo.Postgres.Follower.Delete(ctx, edge)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete follow edge(%d->%d) in postgres: %s", followerID, userID, err.Error())
		return ErrInternal
	}

	s.graph.Unfollow(followerID, userID)

	if !existed {
		return ErrNotFollowing
	}

	s.invalidateAnalytics(ctx, followerID)
	s.publishFollowEvent(rabbitmq.UNFOLLOW_EVENT, edge)
	return nil
}

func (s *graphService) Following(ctx context.Context, id int64) []int64 {
	return s.graph.Following(id)
}

func (s *graphService) Followers(ctx context.Context, id int64) []int64 {
	return s.graph.Followers(id)
}

func (s *graphService) Relation(ctx context.Context, a int64, b int64) dto.IsFollowingResponse {
	return dto.IsFollowingResponse{
		IsFollowing: s.graph.IsFollowing(a, b),
		IsMutual:    s.graph.IsMutualFollow(a, b),
	}
}

func (s *graphService) MutualFollowing(ctx context.Context, a int64, b int64) []int64 {
	return s.graph.MutualFollowing(a, b)
}

func (s *graphService) MutualFollowers(ctx context.Context, a int64, b int64) []int64 {
	return s.graph.MutualFollowers(a, b)
}

func (s *graphService) ShortestPath(ctx context.Context, start int64, end int64) dto.PathResponse {
	path, complete := s.graph.ShortestPath(start, end)
	if !complete {
		s.logger.Sugar().Warnf("shortest path search from %d to %d hit the traversal budget", start, end)
	}
	return dto.NewPathResponse(path, complete)
}

func (s *graphService) CommunitySize(ctx context.Context, id int64, maxDepth int) dto.CommunityResponse {
	size, complete := s.graph.CommunitySize(id, maxDepth)
	if !complete {
		s.logger.Sugar().Warnf("community search for %d (depth %d) hit the traversal budget", id, maxDepth)
	}
	return dto.CommunityResponse{
		Size:     size,
		MaxDepth: maxDepth,
		Complete: complete,
	}
}

// Suggestions serves from the cache when possible; scoring a large following
// set touches two hops of the graph, so results are kept for a short TTL.
func (s *graphService) Suggestions(ctx context.Context, id int64, limit int) []graph.Suggestion {
	key := redisrepo.SuggestionsKey(id, limit)
	cached, err := redisrepo.GetMany[graph.Suggestion](s.repo.Redis.Default, ctx, key)
	if err == nil && cached != nil {
		return cached
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get suggestions from redis: %s", err.Error())
	}

	suggestions := s.graph.SuggestFollows(id, limit)
	if err := s.repo.Redis.Default.SetJSON(ctx, key, suggestions, analyticsTTL()); err != nil {
		s.logger.Sugar().Errorf("failed to cache suggestions in redis: %s", err.Error())
	}
	return suggestions
}

func (s *graphService) Influencers(ctx context.Context, minFollowers int64, limit int) []graph.RankedUser {
	key := redisrepo.InfluencersKey(minFollowers, limit)
	cached, err := redisrepo.GetMany[graph.RankedUser](s.repo.Redis.Default, ctx, key)
	if err == nil && cached != nil {
		return cached
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get influencers from redis: %s", err.Error())
	}

	ranked := s.graph.Influencers(minFollowers, limit)
	if err := s.repo.Redis.Default.SetJSON(ctx, key, ranked, analyticsTTL()); err != nil {
		s.logger.Sugar().Errorf("failed to cache influencers in redis: %s", err.Error())
	}
	return ranked
}

func (s *graphService) PopularInNetwork(ctx context.Context, id int64, limit int) []graph.RankedUser {
	key := redisrepo.PopularKey(id, limit)
	cached, err := redisrepo.GetMany[graph.RankedUser](s.repo.Redis.Default, ctx, key)
	if err == nil && cached != nil {
		return cached
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get popular users from redis: %s", err.Error())
	}

	ranked := s.graph.PopularInNetwork(id, limit)
	if err := s.repo.Redis.Default.SetJSON(ctx, key, ranked, analyticsTTL()); err != nil {
		s.logger.Sugar().Errorf("failed to cache popular users in redis: %s", err.Error())
	}
	return ranked
}

func (s *graphService) NetworkStats(ctx context.Context) graph.Stats {
	cached, err := redisrepo.Get[graph.Stats](s.repo.Redis.Default, ctx, redisrepo.NETWORK_STATS_KEY)
	if err == nil && cached != nil {
		return *cached
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get network stats from redis: %s", err.Error())
	}

	stats := s.graph.NetworkStats()
	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.NETWORK_STATS_KEY, stats, analyticsTTL()); err != nil {
		s.logger.Sugar().Errorf("failed to cache network stats in redis: %s", err.Error())
	}
	return stats
}

// invalidateAnalytics drops the cache entries a mutation can name. Entries it
// cannot (other users' suggestion lists) expire via the TTL.
func (s *graphService) invalidateAnalytics(ctx context.Context, followerID int64) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.NETWORK_STATS_KEY).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate network stats cache: %s", err.Error())
	}
	patterns := []string{
		redisrepo.SuggestionsUserPattern(followerID),
		redisrepo.PopularUserPattern(followerID),
		redisrepo.INFLUENCERS_PATTERN,
	}
	for _, pattern := range patterns {
		if err := s.repo.Redis.Default.DelByPattern(ctx, pattern); err != nil {
			s.logger.Sugar().Errorf("failed to invalidate cache pattern(%s): %s", pattern, err.Error())
		}
	}
}

// publishFollowEvent notifies the follows queue. Publishing is best-effort: a
// lost event only delays a notification, so failures are logged, not returned.
func (s *graphService) publishFollowEvent(eventType string, edge model.Follower) {
	if s.mq == nil {
		return
	}

	queueData, err := json.Marshal(&dto.FollowEventDto{
		EventID:    uuid.NewString(),
		Type:       eventType,
		UserID:     edge.UserID,
		FollowerID: edge.FollowerID,
		Timestamp:  time.Now(),
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal json: %s", err.Error())
		return
	}

	if err := s.mq.Publish(rabbitmq.FOLLOWS_QUEUE, queueData); err != nil {
		s.logger.Sugar().Errorf("failed to publish to rabbitmq queue(%s): %s", rabbitmq.FOLLOWS_QUEUE, err.Error())
	}
}
