package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status: "error",
		Error:  "authentication_failed",
	}

	ErrAlreadySubscribed = ErrorResponse{
		Status:  "error",
		Error:   "already_subscribed",
		Details: "This email is already subscribed",
	}
)
