package handler

import "errors"

var (
	errInvalidID           = errors.New("provided an invalid ID")
	errInvalidDepth        = errors.New("depth must be a non-negative integer")
	errInvalidLimit        = errors.New("limit must be a positive integer")
	errInvalidMinFollowers = errors.New("min_followers must be a non-negative integer")
)
