// Package ingest is the core ingestion pipeline: the sequence of checks
// and transformations an uploaded file passes through between bytes
// received over the network and artifact durably stored and indexed.
//
// For each candidate in a batch the Service runs, in order: format
// classification (three-signal type checking), identity derivation,
// content fingerprinting, integrity verification (images only), the
// atomic dedup-index reservation, durable persistence of the original,
// and thumbnail derivation (images only). Any stage failure short-circuits
// that one candidate with a typed reason; the rest of the batch is
// unaffected. Only the batch file-count limit fails a whole request, and
// it does so before any file is touched.
//
//	svc, err := ingest.New(cfg, originals, thumbs, dedup.NewMemoryIndex())
//	if err != nil { ... }
//	if _, err := svc.RebuildIndex(ctx); err != nil { ... }
//	batch, err := svc.Ingest(ctx, candidates)
//
// The dedup index is the only shared mutable state; its check-then-insert
// is atomic, and hashing, decoding and disk writes all happen outside any
// lock. Two identical files arriving concurrently always yield exactly one
// stored artifact and one duplicate result referencing it.
package ingest
