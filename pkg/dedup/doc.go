// Package dedup maintains the mapping from content fingerprints to stored
// artifacts that makes re-uploads of identical bytes idempotent.
//
// The Index interface exposes an atomic check-then-insert (Add) so that two
// identical files arriving concurrently, in one batch or across requests,
// resolve to exactly one stored artifact with every other upload reported
// as a duplicate of it.
//
// Two backends are provided: MemoryIndex for single-process deployments
// (the orchestrator rebuilds it from the storage directory at startup) and
// RedisIndex for instances sharing one storage root, which gets the same
// atomicity from HSETNX.
package dedup
