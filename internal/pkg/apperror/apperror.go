package apperror

// AppError is an error that knows which HTTP status it should surface as.
// Domain packages declare their sentinel errors with New and the response
// layer maps them at the transport edge.
type AppError struct {
	Code    int    // HTTP status
	Message string // user-facing message
	Err     error  // wrapped cause, never exposed to the client
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}
