package featured

import "errors"

var (
	ErrNotConfigured     = errors.New("bestsellers API key not configured")
	ErrRemoteUnavailable = errors.New("bestsellers API unavailable")
	ErrMalformedResponse = errors.New("malformed bestsellers response")
)
