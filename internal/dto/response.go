package dto

import (
	"time"

	"github.com/zain-cs/Social-Network-API/internal/graph"
)

type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

type UserListResponse struct {
	UserIDs []int64 `json:"user_ids"`
	Count   int     `json:"count"`
}

func NewUserListResponse(ids []int64) UserListResponse {
	if ids == nil {
		ids = []int64{}
	}
	return UserListResponse{
		UserIDs: ids,
		Count:   len(ids),
	}
}

type IsFollowingResponse struct {
	IsFollowing bool `json:"is_following"`
	IsMutual    bool `json:"is_mutual"`
}

type PathResponse struct {
	Path                []int64 `json:"path"`
	DegreesOfSeparation int     `json:"degrees_of_separation"`
	Complete            bool    `json:"complete"`
}

func NewPathResponse(path []int64, complete bool) PathResponse {
	degrees := -1
	if len(path) > 0 {
		degrees = len(path) - 1
	}
	if path == nil {
		path = []int64{}
	}
	return PathResponse{
		Path:                path,
		DegreesOfSeparation: degrees,
		Complete:            complete,
	}
}

type CommunityResponse struct {
	Size     int  `json:"size"`
	MaxDepth int  `json:"max_depth"`
	Complete bool `json:"complete"`
}

type SuggestionsResponse struct {
	Suggestions []graph.Suggestion `json:"suggestions"`
}

type RankingResponse struct {
	Users []graph.RankedUser `json:"users"`
}
