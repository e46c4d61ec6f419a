package graph

import (
	"math"
	"sort"
	"sync"

	"github.com/zain-cs/Social-Network-API/internal/model"
)

// FollowGraph is the in-memory directed follow graph. It keeps two adjacency
// maps (who a user follows, and who follows them) that are always consistent
// duals of the same edge set. The durable followers table remains the source
// of truth: the graph is rebuilt from it at startup and written through on
// every mutation by the service layer.
//
// A single RWMutex guards the whole structure. Mutations take the write lock,
// queries the read lock; no operation blocks, so there is no context plumbing.
type FollowGraph struct {
	mu        sync.RWMutex
	following map[int64]map[int64]struct{}
	followers map[int64]map[int64]struct{}
	edges     int64

	// traversalBudget bounds BFS queries (max visited nodes, 0 = unbounded).
	traversalBudget int
}

// Suggestion is a follow recommendation with its accumulated score.
type Suggestion struct {
	UserID int64   `json:"user_id"`
	Score  float64 `json:"score"`
}

// RankedUser pairs a user with their follower count.
type RankedUser struct {
	UserID        int64 `json:"user_id"`
	FollowerCount int64 `json:"follower_count"`
}

// Stats summarizes the whole graph.
type Stats struct {
	TotalUsers       int64   `json:"total_users"`
	TotalConnections int64   `json:"total_connections"`
	AverageFollowing float64 `json:"average_following"`
}

type Option func(*FollowGraph)

// WithTraversalBudget caps the number of nodes a BFS query may visit.
// Queries that hit the cap return a partial result with complete=false.
func WithTraversalBudget(n int) Option {
	return func(g *FollowGraph) {
		g.traversalBudget = n
	}
}

func New(opts ...Option) *FollowGraph {
	g := &FollowGraph{
		following: make(map[int64]map[int64]struct{}),
		followers: make(map[int64]map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// register must be called with the write lock held.
func (g *FollowGraph) register(id int64) {
	if _, ok := g.following[id]; !ok {
		g.following[id] = make(map[int64]struct{})
		g.followers[id] = make(map[int64]struct{})
	}
}

// RegisterUser idempotently ensures id has an entry in both adjacency maps.
func (g *FollowGraph) RegisterUser(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.register(id)
}

// RegisterUsers is the bulk form of RegisterUser, taking the lock once.
func (g *FollowGraph) RegisterUsers(ids []int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range ids {
		g.register(id)
	}
}

// HasUser reports whether id is registered in the graph.
func (g *FollowGraph) HasUser(id int64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.following[id]
	return ok
}

// Follow inserts the edge follower->followed, registering both ids if needed.
// Following an already-followed user is a no-op; self-follow and duplicate
// validation is the service layer's job, not the graph's.
func (g *FollowGraph) Follow(followerID, followedID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.register(followerID)
	g.register(followedID)
	if _, ok := g.following[followerID][followedID]; ok {
		return
	}
	g.following[followerID][followedID] = struct{}{}
	g.followers[followedID][followerID] = struct{}{}
	g.edges++
}

// Unfollow removes the edge from both maps; no-op when the edge is absent.
func (g *FollowGraph) Unfollow(followerID, followedID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.following[followerID][followedID]; !ok {
		return
	}
	delete(g.following[followerID], followedID)
	delete(g.followers[followedID], followerID)
	g.edges--
}

// LoadEdges replays a bulk edge set under a single lock acquisition. It is
// the startup path that rebuilds the graph from the durable followers table.
func (g *FollowGraph) LoadEdges(edges []model.Follower) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range edges {
		g.register(e.FollowerID)
		g.register(e.UserID)
		if _, ok := g.following[e.FollowerID][e.UserID]; ok {
			continue
		}
		g.following[e.FollowerID][e.UserID] = struct{}{}
		g.followers[e.UserID][e.FollowerID] = struct{}{}
		g.edges++
	}
}

// Following returns the ids the user follows, sorted ascending.
// Unknown ids yield an empty slice, never an error.
func (g *FollowGraph) Following(id int64) []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedKeys(g.following[id])
}

// Followers returns the ids following the user, sorted ascending.
func (g *FollowGraph) Followers(id int64) []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedKeys(g.followers[id])
}

// FollowerCount returns len(Followers(id)) without copying the set.
func (g *FollowGraph) FollowerCount(id int64) int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return int64(len(g.followers[id]))
}

// IsFollowing reports whether a follows b.
func (g *FollowGraph) IsFollowing(a, b int64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.following[a][b]
	return ok
}

// IsMutualFollow reports whether a follows b and b follows a.
func (g *FollowGraph) IsMutualFollow(a, b int64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.following[a][b]; !ok {
		return false
	}
	_, ok := g.following[b][a]
	return ok
}

// MutualFollowing returns the users both a and b follow, sorted ascending.
func (g *FollowGraph) MutualFollowing(a, b int64) []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return intersect(g.following[a], g.following[b])
}

// MutualFollowers returns the users who follow both a and b, sorted ascending.
func (g *FollowGraph) MutualFollowers(a, b int64) []int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return intersect(g.followers[a], g.followers[b])
}

// ShortestPath runs a BFS over following edges only, every edge unit weight,
// and returns the id sequence from start to end inclusive. It returns nil
// when either endpoint is unregistered or no directed path exists.
// start == end returns [start] without traversal. Neighbors are expanded in
// ascending id order, so among equal-length paths the lexicographically
// smallest is returned and results are reproducible.
//
// complete is false only when the traversal budget was exhausted before the
// search finished; a nil path with complete=true means "no path exists".
func (g *FollowGraph) ShortestPath(start, end int64) (path []int64, complete bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.following[start]; !ok {
		return nil, true
	}
	if _, ok := g.following[end]; !ok {
		return nil, true
	}
	if start == end {
		return []int64{start}, true
	}

	parent := map[int64]int64{start: start}
	queue := []int64{start}
	visited := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		visited++
		if g.traversalBudget > 0 && visited > g.traversalBudget {
			return nil, false
		}
		for _, neighbor := range sortedKeys(g.following[current]) {
			if _, seen := parent[neighbor]; seen {
				continue
			}
			parent[neighbor] = current
			if neighbor == end {
				return buildPath(parent, start, end), true
			}
			queue = append(queue, neighbor)
		}
	}
	return nil, true
}

// DegreesOfSeparation is len(ShortestPath)-1, or -1 when no path exists.
func (g *FollowGraph) DegreesOfSeparation(a, b int64) int {
	path, _ := g.ShortestPath(a, b)
	if len(path) == 0 {
		return -1
	}
	return len(path) - 1
}

// CommunitySize counts the distinct users reachable from id within maxDepth
// hops, traversing edges in either direction and counting id itself. Nodes at
// exactly maxDepth are included. An unregistered id yields 0.
func (g *FollowGraph) CommunitySize(id int64, maxDepth int) (size int, complete bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.following[id]; !ok {
		return 0, true
	}
	if maxDepth < 0 {
		return 0, true
	}

	type item struct {
		id    int64
		depth int
	}
	visited := map[int64]struct{}{id: {}}
	queue := []item{{id: id, depth: 0}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if g.traversalBudget > 0 && len(visited) > g.traversalBudget {
			return len(visited), false
		}
		if current.depth == maxDepth {
			continue
		}
		for _, neighbor := range sortedKeys(g.following[current.id]) {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			visited[neighbor] = struct{}{}
			queue = append(queue, item{id: neighbor, depth: current.depth + 1})
		}
		for _, neighbor := range sortedKeys(g.followers[current.id]) {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			visited[neighbor] = struct{}{}
			queue = append(queue, item{id: neighbor, depth: current.depth + 1})
		}
	}
	return len(visited), true
}

// SuggestFollows recommends users two hops away: +1 for every distinct
// followee of id who follows the candidate, plus 0.1 * the candidate's
// follower count as a popularity boost. The querying user and anyone they
// already follow are never suggested. Results are sorted by descending score,
// ties by ascending user id, truncated to limit.
func (g *FollowGraph) SuggestFollows(id int64, limit int) []Suggestion {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if limit <= 0 {
		return []Suggestion{}
	}

	following := g.following[id]
	scores := make(map[int64]float64)
	for followee := range following {
		for candidate := range g.following[followee] {
			if candidate == id {
				continue
			}
			if _, already := following[candidate]; already {
				continue
			}
			scores[candidate]++
		}
	}
	suggestions := make([]Suggestion, 0, len(scores))
	for candidate, score := range scores {
		score += 0.1 * float64(len(g.followers[candidate]))
		suggestions = append(suggestions, Suggestion{UserID: candidate, Score: score})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].UserID < suggestions[j].UserID
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// Influencers returns every user with at least minFollowers followers, sorted
// by descending follower count, ties by ascending user id, truncated to limit.
func (g *FollowGraph) Influencers(minFollowers int64, limit int) []RankedUser {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if limit <= 0 {
		return []RankedUser{}
	}

	ranked := make([]RankedUser, 0)
	for id, followers := range g.followers {
		count := int64(len(followers))
		if count >= minFollowers {
			ranked = append(ranked, RankedUser{UserID: id, FollowerCount: count})
		}
	}
	sortRanked(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// PopularInNetwork ranks the users id follows by their follower counts,
// descending, ties by ascending user id, truncated to limit.
func (g *FollowGraph) PopularInNetwork(id int64, limit int) []RankedUser {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if limit <= 0 {
		return []RankedUser{}
	}

	ranked := make([]RankedUser, 0, len(g.following[id]))
	for followee := range g.following[id] {
		ranked = append(ranked, RankedUser{
			UserID:        followee,
			FollowerCount: int64(len(g.followers[followee])),
		})
	}
	sortRanked(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// NetworkStats returns user count, total edge count, and the average
// following-set size rounded to 2 decimal places (0 for an empty graph).
func (g *FollowGraph) NetworkStats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	users := int64(len(g.following))
	var avg float64
	if users > 0 {
		avg = math.Round(float64(g.edges)/float64(users)*100) / 100
	}
	return Stats{
		TotalUsers:       users,
		TotalConnections: g.edges,
		AverageFollowing: avg,
	}
}

func sortedKeys(set map[int64]struct{}) []int64 {
	keys := make([]int64, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func intersect(a, b map[int64]struct{}) []int64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make([]int64, 0)
	for k := range a {
		if _, ok := b[k]; ok {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func buildPath(parent map[int64]int64, start, end int64) []int64 {
	path := []int64{end}
	for current := end; current != start; {
		current = parent[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func sortRanked(ranked []RankedUser) {
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FollowerCount != ranked[j].FollowerCount {
			return ranked[i].FollowerCount > ranked[j].FollowerCount
		}
		return ranked[i].UserID < ranked[j].UserID
	})
}
