package apiclient

// Every API failure is normalized into one of the error types below so callers
// can dispatch on which action failed while still showing the carried message.
// A single attempt is made per call; nothing here is retried.

// FetchError reports a failed inventory list fetch.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "Failed to fetch inventory" }
func (e *FetchError) Unwrap() error { return e.Err }

// CreateError reports a failed item creation.
type CreateError struct {
	Err error
}

func (e *CreateError) Error() string { return "Failed to add item" }
func (e *CreateError) Unwrap() error { return e.Err }

// UpdateError reports a failed item update.
type UpdateError struct {
	Err error
}

func (e *UpdateError) Error() string { return "Failed to update item" }
func (e *UpdateError) Unwrap() error { return e.Err }

// DeleteError reports a failed item deletion.
type DeleteError struct {
	Err error
}

func (e *DeleteError) Error() string { return "Failed to delete item" }
func (e *DeleteError) Unwrap() error { return e.Err }

// InvalidCredentialsError is returned when the auth service answers 401.
type InvalidCredentialsError struct{}

func (e *InvalidCredentialsError) Error() string {
	return "Invalid username or password. Please check your credentials."
}

// LoginError covers login failures other than bad credentials. Message holds
// the service-provided message when the response carried one.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Login failed, please try again."
}

func (e *LoginError) Unwrap() error { return e.Err }

// RegistrationError covers registration failures. Message holds the
// service-provided message when the response carried one.
type RegistrationError struct {
	Message string
	Err     error
}

func (e *RegistrationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Registration failed, please try again."
}

func (e *RegistrationError) Unwrap() error { return e.Err }
