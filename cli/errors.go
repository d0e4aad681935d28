package cli

// ErrorCode defines error types for CLI operations
type ErrorCode string

const (
	InvalidArguments    ErrorCode = "InvalidArguments"
	InvalidMaxResources ErrorCode = "InvalidMaxResources"
	InvalidOutputFormat ErrorCode = "InvalidOutputFormat"
	InvalidLimit        ErrorCode = "InvalidLimit"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
