package errors

import "net/http"

const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidCoordinates = "INVALID_COORDINATES"
	CodeInvalidDatasetKind = "INVALID_DATASET_KIND"
	CodeInvalidViewMode    = "INVALID_VIEW_MODE"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeUpstreamError      = "UPSTREAM_ERROR"
	CodeCacheError         = "CACHE_ERROR"
	CodeInternalServer     = "INTERNAL_SERVER_ERROR"
)

var (
	ErrInvalidRequest = New(
		CodeInvalidRequest,
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		CodeInvalidCoordinates,
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidDatasetKind = New(
		CodeInvalidDatasetKind,
		"Dataset kind must be one of: trail, traffic",
		http.StatusBadRequest,
	)

	ErrInvalidViewMode = New(
		CodeInvalidViewMode,
		"View mode must be one of: list, map",
		http.StatusBadRequest,
	)

	ErrSessionNotFound = New(
		CodeSessionNotFound,
		"Session not found",
		http.StatusNotFound,
	)

	ErrUpstream = New(
		CodeUpstreamError,
		"Open data portal request failed",
		http.StatusBadGateway,
	)

	ErrCacheError = New(
		CodeCacheError,
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		CodeInternalServer,
		"Internal server error",
		http.StatusInternalServerError,
	)
)
