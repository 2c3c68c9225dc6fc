// Package thumbnail derives bounded-size JPEG previews from accepted image
// originals for gallery display.
//
// Every thumbnail fits a fixed 300x300 box with the source aspect ratio
// preserved and is centered on a white canvas, matching what the gallery
// grid expects. Derivation always runs after the original is durably
// stored, so a failure here never loses an upload.
package thumbnail
