package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zain-cs/Social-Network-API/internal/dto"
	"github.com/zain-cs/Social-Network-API/internal/graph"
	"github.com/zain-cs/Social-Network-API/internal/handler"
	"github.com/zain-cs/Social-Network-API/internal/service"
)

type stubGraphService struct {
	followErr   error
	unfollowErr error
	followCalls [][2]int64
}

func (s *stubGraphService) LoadGraph(ctx context.Context) (graph.Stats, error) {
	return graph.Stats{}, nil
}

func (s *stubGraphService) RegisterUser(ctx context.Context, id int64) error {
	return nil
}

func (s *stubGraphService) Follow(ctx context.Context, followerID int64, userID int64) error {
	s.followCalls = append(s.followCalls, [2]int64{followerID, userID})
	return s.followErr
}

func (s *stubGraphService) Unfollow(ctx context.Context, followerID int64, userID int64) error {
	return s.unfollowErr
}

func (s *stubGraphService) Following(ctx context.Context, id int64) []int64 {
	return []int64{2, 3}
}

func (s *stubGraphService) Followers(ctx context.Context, id int64) []int64 {
	return nil
}

func (s *stubGraphService) Relation(ctx context.Context, a int64, b int64) dto.IsFollowingResponse {
	return dto.IsFollowingResponse{IsFollowing: true}
}

func (s *stubGraphService) MutualFollowing(ctx context.Context, a int64, b int64) []int64 {
	return []int64{4}
}

func (s *stubGraphService) MutualFollowers(ctx context.Context, a int64, b int64) []int64 {
	return nil
}

func (s *stubGraphService) ShortestPath(ctx context.Context, start int64, end int64) dto.PathResponse {
	return dto.NewPathResponse([]int64{start, 2, end}, true)
}

func (s *stubGraphService) CommunitySize(ctx context.Context, id int64, maxDepth int) dto.CommunityResponse {
	return dto.CommunityResponse{Size: 7, MaxDepth: maxDepth, Complete: true}
}

func (s *stubGraphService) Suggestions(ctx context.Context, id int64, limit int) []graph.Suggestion {
	return []graph.Suggestion{{UserID: 9, Score: 2.2}}
}

func (s *stubGraphService) Influencers(ctx context.Context, minFollowers int64, limit int) []graph.RankedUser {
	return []graph.RankedUser{{UserID: 5, FollowerCount: 100}}
}

func (s *stubGraphService) PopularInNetwork(ctx context.Context, id int64, limit int) []graph.RankedUser {
	return nil
}

func (s *stubGraphService) NetworkStats(ctx context.Context) graph.Stats {
	return graph.Stats{TotalUsers: 3, TotalConnections: 2, AverageFollowing: 0.67}
}

func setupRouter(stub *stubGraphService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	viper.Set("client.origin", "http://localhost:3000")
	h := handler.New(&service.Service{Graph: stub})
	return h.InitRoutes()
}

func perform(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestFollowEndpoint(t *testing.T) {
	t.Run("maps path params onto the service call", func(t *testing.T) {
		stub := &stubGraphService{}
		r := setupRouter(stub)

		w := perform(r, http.MethodPost, "/api/v1/users/1/following/2")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, [][2]int64{{1, 2}}, stub.followCalls)
	})

	t.Run("maps service errors onto status codes", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{service.ErrSelfFollow, http.StatusBadRequest},
			{service.ErrAlreadyFollowing, http.StatusConflict},
			{service.ErrUserNotFound, http.StatusNotFound},
			{service.ErrInternal, http.StatusInternalServerError},
		}
		for _, tc := range cases {
			r := setupRouter(&stubGraphService{followErr: tc.err})
			w := perform(r, http.MethodPost, "/api/v1/users/1/following/2")
			assert.Equal(t, tc.code, w.Code, tc.err.Error())
		}
	})

	t.Run("rejects malformed ids", func(t *testing.T) {
		stub := &stubGraphService{}
		r := setupRouter(stub)

		assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPost, "/api/v1/users/abc/following/2").Code)
		assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPost, "/api/v1/users/1/following/xyz").Code)
		assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPost, "/api/v1/users/-1/following/2").Code)
		assert.Empty(t, stub.followCalls)
	})
}

func TestUnfollowEndpoint(t *testing.T) {
	r := setupRouter(&stubGraphService{unfollowErr: service.ErrNotFollowing})
	w := perform(r, http.MethodDelete, "/api/v1/users/1/following/2")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFollowingEndpoint(t *testing.T) {
	r := setupRouter(&stubGraphService{})
	w := perform(r, http.MethodGet, "/api/v1/users/1/following")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.UserListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []int64{2, 3}, resp.UserIDs)
	assert.Equal(t, 2, resp.Count)
}

func TestFollowersEndpointEmpty(t *testing.T) {
	r := setupRouter(&stubGraphService{})
	w := perform(r, http.MethodGet, "/api/v1/users/1/followers")
	require.Equal(t, http.StatusOK, w.Code)

	// nil slices must serialize as [], not null
	assert.JSONEq(t, `{"user_ids":[],"count":0}`, w.Body.String())
}

func TestShortestPathEndpoint(t *testing.T) {
	r := setupRouter(&stubGraphService{})
	w := perform(r, http.MethodGet, "/api/v1/users/1/path/3")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.PathResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []int64{1, 2, 3}, resp.Path)
	assert.Equal(t, 2, resp.DegreesOfSeparation)
	assert.True(t, resp.Complete)
}

func TestCommunityEndpoint(t *testing.T) {
	r := setupRouter(&stubGraphService{})

	w := perform(r, http.MethodGet, "/api/v1/users/1/community?depth=2")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.CommunityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Size)
	assert.Equal(t, 2, resp.MaxDepth)

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/api/v1/users/1/community?depth=-1").Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/api/v1/users/1/community?depth=abc").Code)
}

func TestSuggestionsEndpoint(t *testing.T) {
	r := setupRouter(&stubGraphService{})

	w := perform(r, http.MethodGet, "/api/v1/users/1/suggestions")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SuggestionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, int64(9), resp.Suggestions[0].UserID)

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/api/v1/users/1/suggestions?limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/api/v1/users/1/suggestions?limit=9999").Code)
}

func TestInfluencersEndpoint(t *testing.T) {
	r := setupRouter(&stubGraphService{})

	w := perform(r, http.MethodGet, "/api/v1/graph/influencers?min_followers=10&limit=5")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.RankingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 1)
	assert.Equal(t, int64(5), resp.Users[0].UserID)

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/api/v1/graph/influencers?min_followers=-1").Code)
}

func TestNetworkStatsEndpoint(t *testing.T) {
	r := setupRouter(&stubGraphService{})

	w := perform(r, http.MethodGet, "/api/v1/graph/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var resp graph.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.TotalUsers)
	assert.Equal(t, 0.67, resp.AverageFollowing)
}
