// File: internal/services/chat/errors.go
package chat

import "fmt"

type ErrorType string

const (
	ErrTypeConfig       ErrorType = "CONFIG"
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypePayloadSize  ErrorType = "PAYLOAD_SIZE"
	ErrTypeGeneration   ErrorType = "GENERATION"
	ErrTypeStorage      ErrorType = "STORAGE"
	ErrTypeUnauthorized ErrorType = "UNAUTHORIZED"
)

type ChatError struct {
	Type      ErrorType
	Operation string
	Message   string
	ThreadID  uint
	UserID    uint
	Cause     error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Chat %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewPayloadSizeError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypePayloadSize, Operation: operation, Message: msg}
}

func NewGenerationError(operation, msg string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeGeneration, Operation: operation, Message: msg, Cause: cause}
}

func NewStorageError(operation, msg string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeStorage, Operation: operation, Message: msg, Cause: cause}
}

func NewUnauthorizedError(userID, threadID uint) *ChatError {
	return &ChatError{
		Type:      ErrTypeUnauthorized,
		Operation: "authorization",
		Message:   "thread not found or unauthorized",
		UserID:    userID,
		ThreadID:  threadID,
	}
}

// IsType reports whether err is a *ChatError of the given type.
func IsType(err error, t ErrorType) bool {
	ce, ok := err.(*ChatError)
	return ok && ce.Type == t
}
