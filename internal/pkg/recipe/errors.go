package recipe

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAIGenerationFailed is wrapped by every failure of recipe generation.
var ErrAIGenerationFailed = errors.New("AI generation failed")

// ErrNotConfigured means no API key is set. Retrying cannot help.
var ErrNotConfigured = fmt.Errorf("%w: GEMINI_API_KEY is not configured", ErrAIGenerationFailed)

// TransportError covers network failures and non-2xx responses from the
// completion service.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%v: completion service returned status %d: %v", ErrAIGenerationFailed, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrAIGenerationFailed, e.Err)
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAIGenerationFailed}
	}
	return []error{ErrAIGenerationFailed, e.Err}
}

// ContractViolationError means the service answered but the body does not
// satisfy the response contract.
type ContractViolationError struct {
	Reason string
	Err    error
}

func (e *ContractViolationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: contract violation: %s: %v", ErrAIGenerationFailed, e.Reason, e.Err)
	}
	return fmt.Sprintf("%v: contract violation: %s", ErrAIGenerationFailed, e.Reason)
}

func (e *ContractViolationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAIGenerationFailed}
	}
	return []error{ErrAIGenerationFailed, e.Err}
}

func violation(reason string, err error) error {
	return &ContractViolationError{Reason: reason, Err: err}
}

// Retryable reports whether resubmitting the same request may succeed.
// Client errors such as a rejected API key are not retryable.
func Retryable(err error) bool {
	var cv *ContractViolationError
	if errors.As(err, &cv) {
		return true
	}
	var te *TransportError
	if errors.As(err, &te) {
		if te.StatusCode == 0 || te.StatusCode == http.StatusTooManyRequests {
			return true
		}
		return te.StatusCode >= http.StatusInternalServerError
	}
	return false
}
