package commands

// UserError is a validation failure reported back to the player who sent
// the command. These are not system failures, just invalid requests.
type UserError struct {
	Event   string
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error replied on event.
func NewUserError(event, msg string) *UserError {
	return &UserError{Event: event, Message: msg}
}
