package redisrepo

import "fmt"

const (
	SUGGESTIONS_KEY          = "suggestions:%d:%d" // <userID>:<limit>
	SUGGESTIONS_USER_PATTERN = "suggestions:%d:*"  // <userID>
	INFLUENCERS_KEY          = "influencers:%d:%d" // <minFollowers>:<limit>
	INFLUENCERS_PATTERN      = "influencers:*"
	POPULAR_KEY              = "popular:%d:%d" // <userID>:<limit>
	POPULAR_USER_PATTERN     = "popular:%d:*"  // <userID>
	NETWORK_STATS_KEY        = "network-stats"
)

func SuggestionsKey(userID int64, limit int) string {
	return fmt.Sprintf(SUGGESTIONS_KEY, userID, limit)
}

func SuggestionsUserPattern(userID int64) string {
	return fmt.Sprintf(SUGGESTIONS_USER_PATTERN, userID)
}

func InfluencersKey(minFollowers int64, limit int) string {
	return fmt.Sprintf(INFLUENCERS_KEY, minFollowers, limit)
}

func PopularKey(userID int64, limit int) string {
	return fmt.Sprintf(POPULAR_KEY, userID, limit)
}

func PopularUserPattern(userID int64) string {
	return fmt.Sprintf(POPULAR_USER_PATTERN, userID)
}
