// Package fingerprint computes deterministic content digests used as
// deduplication keys for stored artifacts.
//
// The digest algorithm is fixed: SHA-256 over the exact byte sequence of
// the original file, hex-encoded. Two uploads with identical bytes always
// produce the same Fingerprint regardless of filename or metadata.
package fingerprint
