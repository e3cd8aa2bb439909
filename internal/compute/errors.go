package compute

import "errors"

// Sentinel errors for client construction and replies
var (
	// ErrInvalidEndpoint indicates the endpoint is not an absolute URL
	ErrInvalidEndpoint = errors.New("invalid compute endpoint")

	// ErrMissingProject indicates no project id was given
	ErrMissingProject = errors.New("project id is required")

	// ErrInvalidVersion indicates an unparseable or unsupported API version
	ErrInvalidVersion = errors.New("unsupported API version")

	// ErrEmptyReply indicates a reply lacked the expected resource
	ErrEmptyReply = errors.New("reply did not contain the expected resource")
)
