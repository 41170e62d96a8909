package services

import "errors"

// Task errors
var (
	ErrTaskNotFound     = errors.New("task: not found")
	ErrTaskInvalidInput = errors.New("task: invalid input")
)

// Agent errors
var (
	ErrNoAgentsAvailable = errors.New("agents: no eligible agents for task")
)

// Aggregator errors
var (
	ErrNoResults = errors.New("aggregate: no results to merge")
)

// Queue errors
var (
	ErrQueueClosed = errors.New("queue: closed")
)

// Auth errors
var (
	ErrUserAlreadyExists  = errors.New("auth: user already exists")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidToken       = errors.New("auth: invalid token")
	ErrTokenExpired       = errors.New("auth: token expired")
	ErrWeakPassword       = errors.New("auth: password must be at least 8 characters")
)
