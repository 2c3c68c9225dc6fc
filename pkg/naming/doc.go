// Package naming derives collision-resistant, traversal-safe storage names
// for uploaded files.
//
// Every accepted upload gets an Identity composed of a random UUID-derived
// token and a sanitized copy of the client's base name, keeping the original
// extension for downstream type handling:
//
//	id := naming.New("../../etc/My Photo.JPG")
//	// id.Name  => "9f86d081884c7d65_etcMyPhoto.jpg" (token abbreviated)
//	// id.Ext   => ".jpg"
//
// Sanitization is allow-list based (alphanumerics, dot, dash, underscore);
// path separators and parent-directory sequences never survive it. A name
// that sanitizes to nothing falls back to "file" rather than failing the
// upload.
package naming
