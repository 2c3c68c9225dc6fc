// Package integrity validates that image payloads decode completely before
// they are accepted for storage, guaranteeing no corrupt image is ever
// persisted as an accepted original. It applies to image candidates only;
// video content is not deep-verified.
package integrity
