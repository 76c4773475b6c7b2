package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrChannelClosed    = errors.New("assistant channel is not connected")
	ErrUnknownFrame     = errors.New("unknown assistant frame type")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrSubmitInProgress = errors.New("draft submission already in progress")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidFormat    = errors.New("invalid format")

	// Reference image errors
	ErrNotAnImage    = errors.New("file is not an image")
	ErrImageTooLarge = errors.New("image exceeds the size limit")
	ErrImageNotFound = errors.New("reference image not found")

	// Collaborator errors
	ErrUpstreamFailure = errors.New("upstream service request failed")
)
