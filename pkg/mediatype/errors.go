package mediatype

import "errors"

var (
	// ErrExtensionNotAllowed rejects candidates whose filename extension is
	// outside the accepted image/video sets.
	ErrExtensionNotAllowed = errors.New("file extension is not allowed")

	// ErrContentTypeMismatch rejects candidates whose sniffed content does
	// not belong to the accepted media family for their extension.
	ErrContentTypeMismatch = errors.New("content type does not match an accepted media type")

	// ErrUndetectableContent rejects image candidates whose content cannot
	// be identified by sniffing.
	ErrUndetectableContent = errors.New("content type could not be detected")
)
