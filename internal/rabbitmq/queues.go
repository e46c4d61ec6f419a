package rabbitmq

const (
	FOLLOWS_QUEUE = "follows"
)

const (
	FOLLOW_EVENT   = "follow"
	UNFOLLOW_EVENT = "unfollow"
)
