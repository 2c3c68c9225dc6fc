// Package mediatype classifies upload candidates as accepted images or
// videos by reconciling three independent trust signals: filename extension,
// client-declared MIME type, and a content sniff of the leading bytes.
//
// No single signal is trusted on its own. The extension gates which media
// family a candidate may claim, the sniffed type is authoritative because
// file renaming cannot spoof it, and the declared type is advisory only.
// A text file renamed to photo.jpg is therefore rejected no matter what
// Content-Type the client sends:
//
//	c, err := mediatype.Classify("photo.jpg", "image/jpeg", head)
//	if errors.Is(err, mediatype.ErrContentTypeMismatch) {
//	    // sniffed content is not an accepted image
//	}
//
// Videos whose content the sniffer cannot identify are accepted on
// extension alone; this weaker guarantee is deliberate since deep video
// verification is out of scope.
package mediatype
