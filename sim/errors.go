package sim

import "errors"

var (
	// ErrEmptyQueue is returned when popping from an empty EventQueue.
	// The event loop checks Empty before popping, so seeing it means a bug.
	ErrEmptyQueue = errors.New("event queue is empty")

	// ErrInvalidWorker reports a worker profile that cannot be scheduled:
	// non-positive cycle length, unknown role, or unknown resource type.
	ErrInvalidWorker = errors.New("invalid worker")

	// ErrUnknownResource reports a resource name outside food/wood/gold/stone.
	ErrUnknownResource = errors.New("unknown resource type")

	// ErrMissingGoal is returned by goal-seeking runs started without a goal.
	ErrMissingGoal = errors.New("resource goal not configured")

	// ErrInvalidConfig reports a configuration value rejected at load time.
	ErrInvalidConfig = errors.New("invalid configuration")
)
