package service

import "errors"

var (
	ErrInternal         = errors.New("internal server error")
	ErrUserNotFound     = errors.New("user not found")
	ErrSelfFollow       = errors.New("users cannot follow themselves")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
)
