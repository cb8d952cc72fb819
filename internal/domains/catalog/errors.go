package catalog

import "errors"

var (
	// ErrNotConfigured means the catalog API key is missing; no
	// outbound call is attempted.
	ErrNotConfigured = errors.New("catalog API key not configured")

	// ErrRemoteUnavailable covers transport errors and non-2xx
	// responses from the catalog API.
	ErrRemoteUnavailable = errors.New("catalog API unavailable")

	// ErrMalformedResponse means the catalog responded with an
	// unexpected shape.
	ErrMalformedResponse = errors.New("malformed catalog response")

	// ErrVolumeNotFound means the requested id or ISBN has no
	// corresponding catalog entry.
	ErrVolumeNotFound = errors.New("book details not found")
)
