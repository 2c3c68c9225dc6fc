package mediatype

import (
	"net/http"
	"path/filepath"
	"strings"
)

// Kind is the accepted media family of a classified candidate.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// SniffLen is the number of leading bytes content sniffing needs.
// http.DetectContentType never reads more than 512 bytes.
const SniffLen = 512

// octetStream is what the sniffer returns when it cannot recognize the
// byte layout. Treated as "sniff inconclusive", not as a detected type.
const octetStream = "application/octet-stream"

var (
	imageExtensions = map[string]bool{
		".png":  true,
		".jpg":  true,
		".jpeg": true,
		".gif":  true,
	}

	videoExtensions = map[string]bool{
		".mp4":  true,
		".mov":  true,
		".avi":  true,
		".mkv":  true,
		".webm": true,
	}

	imageMIMETypes = map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/jpg":  true,
		"image/gif":  true,
	}

	videoMIMETypes = map[string]bool{
		"video/mp4":        true,
		"video/quicktime":  true,
		"video/x-msvideo":  true,
		"video/x-matroska": true,
		"video/webm":       true,
	}

	// Sniffers label some containers differently than clients declare them.
	sniffAliases = map[string]string{
		"video/avi": "video/x-msvideo",
	}
)

// Classification is the reconciled type decision for an upload candidate.
type Classification struct {
	Kind Kind
	// MIME is the best known media type: the sniffed type when available,
	// otherwise the client-declared type if acceptable, otherwise a
	// canonical type guessed from the extension.
	MIME string
	// Sniffed reports whether MIME came from content inspection rather
	// than client-supplied metadata.
	Sniffed bool
}

// Classify decides whether a candidate is an acceptable image or video using
// three independent signals: the filename extension, the client-declared
// MIME type, and the content-sniffed type of the leading bytes.
//
// The sniffed type is authoritative because renaming a file cannot change
// it; the declared type is advisory only and never overrides a sniffed
// mismatch. When sniffing is inconclusive an image candidate is rejected
// (its integrity cannot otherwise be established), while a video candidate
// is accepted on extension alone. Deep content verification of video is out
// of scope, so that acceptance is a documented weaker guarantee.
func Classify(filename, declaredMIME string, head []byte) (Classification, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var kind Kind
	switch {
	case imageExtensions[ext]:
		kind = KindImage
	case videoExtensions[ext]:
		kind = KindVideo
	default:
		return Classification{}, ErrExtensionNotAllowed
	}

	sniffed := sniff(head)
	if sniffed == "" {
		// Inconclusive sniff: images must be verifiable, video may pass
		// on extension.
		if kind == KindImage {
			return Classification{}, ErrUndetectableContent
		}
		return Classification{
			Kind: KindVideo,
			MIME: declaredOrCanonical(declaredMIME, ext),
		}, nil
	}

	switch kind {
	case KindImage:
		if !imageMIMETypes[sniffed] {
			return Classification{}, ErrContentTypeMismatch
		}
	case KindVideo:
		// Sniffers recognize fewer video containers than we accept, so a
		// family-level check is enough; a sniffed image or text payload
		// behind a video extension still fails here.
		if !videoMIMETypes[sniffed] && !strings.HasPrefix(sniffed, "video/") {
			return Classification{}, ErrContentTypeMismatch
		}
	}

	return Classification{Kind: kind, MIME: sniffed, Sniffed: true}, nil
}

// AllowedExtension reports whether the filename carries an extension from
// the accepted set. Used by gallery listing to skip foreign files in the
// storage root.
func AllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return imageExtensions[ext] || videoExtensions[ext]
}

// KindForFilename derives the media family from the extension alone.
// Returns false for extensions outside the accepted set.
func KindForFilename(filename string) (Kind, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case imageExtensions[ext]:
		return KindImage, true
	case videoExtensions[ext]:
		return KindVideo, true
	default:
		return "", false
	}
}

// sniff inspects leading bytes and returns the detected MIME type without
// parameters, or "" when detection is inconclusive.
func sniff(head []byte) string {
	if len(head) == 0 {
		return ""
	}
	detected := http.DetectContentType(head)
	detected, _, _ = strings.Cut(detected, ";")
	detected = strings.TrimSpace(detected)
	if alias, ok := sniffAliases[detected]; ok {
		detected = alias
	}
	if detected == octetStream {
		return ""
	}
	return detected
}

// declaredOrCanonical prefers an acceptable client-declared type, falling
// back to the canonical MIME for the extension.
func declaredOrCanonical(declaredMIME, ext string) string {
	declaredMIME, _, _ = strings.Cut(strings.ToLower(declaredMIME), ";")
	declaredMIME = strings.TrimSpace(declaredMIME)
	if videoMIMETypes[declaredMIME] {
		return declaredMIME
	}
	switch ext {
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".avi":
		return "video/x-msvideo"
	case ".mkv":
		return "video/x-matroska"
	case ".webm":
		return "video/webm"
	default:
		return octetStream
	}
}
