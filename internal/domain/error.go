package domain

import "errors"

var (
	// ErrChainNotFound means the requested chain is not part of the current snapshot.
	ErrChainNotFound = errors.New("chain not found")

	// ErrPoolNotFound means the requested pool is not part of the current pool registry.
	ErrPoolNotFound = errors.New("pool not found")

	// ErrUpstreamSourceFailure means an error occurred while fetching data from the bridge core API.
	ErrUpstreamSourceFailure = errors.New("upstream source failure")

	// ErrCacheFailure means an internal error occurred while interacting with the cache (not a cache miss).
	ErrCacheFailure = errors.New("cache operation failed")
)
