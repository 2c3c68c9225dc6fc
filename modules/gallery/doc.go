// Package gallery mounts the media ingestion pipeline and the stored
// artifacts behind an HTTP router: multipart upload, a JSON gallery
// listing, and traversal-safe serving of originals and thumbnails.
package gallery
