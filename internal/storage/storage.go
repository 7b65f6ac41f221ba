package storage

import "errors"

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrAlreadySubscribed = errors.New("email already subscribed")
)
