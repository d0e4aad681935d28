package api

// ErrorCode defines error types for API operations
type ErrorCode string

const (
	// ErrFetchFailed represents network level failures, including timeouts
	ErrFetchFailed ErrorCode = "FetchFailed"
	// ErrUnexpectedStatus represents a non-2xx response from the documentation site
	ErrUnexpectedStatus ErrorCode = "UnexpectedStatus"
	// ErrExtractFailed represents failures while parsing or converting a page
	ErrExtractFailed ErrorCode = "ExtractFailed"
	// ErrDiscoveryFailed represents a failure to build the catalog from the site index
	ErrDiscoveryFailed ErrorCode = "DiscoveryFailed"
	// ErrInvalidLimit represents a negative search limit
	ErrInvalidLimit ErrorCode = "InvalidLimit"
	// ErrInvalidSite represents an unusable site definition
	ErrInvalidSite ErrorCode = "InvalidSite"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
