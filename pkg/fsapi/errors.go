package fsapi

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeConnectivity indicates a network-level error (connection refused, timeout, etc.)
	ErrTypeConnectivity ErrorType = iota
	// ErrTypeHTTP indicates an HTTP-level error (non-200 status code)
	ErrTypeHTTP
	// ErrTypeParse indicates a parsing error (malformed XML, unexpected response shape)
	ErrTypeParse
	// ErrTypeValidation indicates a caller error (writing a read-only property, bad value)
	ErrTypeValidation
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the device refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeConnectivity:
		return "Connectivity Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeviceError represents an error that occurred during device communication
type DeviceError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Node       string    // API node being accessed (for context, may be empty)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// classifyNetworkError analyzes a transport error and returns a more specific error type
func classifyNetworkError(err error, node string) *DeviceError {
	if err == nil {
		return nil
	}

	// Check for timeout errors
	if os.IsTimeout(err) {
		return &DeviceError{
			Type:    ErrTypeTimeout,
			Message: "Request timed out",
			Node:    node,
			Err:     err,
		}
	}

	// Check for DNS errors
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &DeviceError{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Node:    node,
			Err:     err,
		}
	}

	// Check for connection refused and unreachable hosts
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &DeviceError{
				Type:    ErrTypeConnectionRefused,
				Message: "Device refused connection",
				Node:    node,
				Err:     err,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
			return &DeviceError{
				Type:    ErrTypeConnectivity,
				Message: "Host unreachable",
				Node:    node,
				Err:     err,
			}
		}
		if errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return &DeviceError{
				Type:    ErrTypeConnectivity,
				Message: "Network unreachable",
				Node:    node,
				Err:     err,
			}
		}
	}

	// Check for URL errors
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// Recursively classify the underlying error
		classified := classifyNetworkError(urlErr.Err, node)
		if classified != nil {
			classified.Err = err
			return classified
		}
	}

	// Generic connectivity error
	return &DeviceError{
		Type:    ErrTypeConnectivity,
		Message: "Network error occurred",
		Node:    node,
		Err:     err,
	}
}

// newConnectivityError creates a transport-level error with automatic classification
func newConnectivityError(message, node string, err error) *DeviceError {
	classified := classifyNetworkError(err, node)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &DeviceError{
		Type:    ErrTypeConnectivity,
		Message: message,
		Node:    node,
		Err:     err,
	}
}

// newHTTPError creates an HTTP-level error
func newHTTPError(statusCode int, message, node string) *DeviceError {
	return &DeviceError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Node:       node,
	}
}

// newParseError creates a parsing error
func newParseError(message, node string, err error) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeParse,
		Message: message,
		Node:    node,
		Err:     err,
	}
}

// newValidationError creates a caller-input error
func newValidationError(message string) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeValidation,
		Message: message,
	}
}

// IsConnectivityError checks if an error is a transport error (including timeout,
// connection refused and DNS failures)
func IsConnectivityError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeConnectivity ||
			devErr.Type == ErrTypeTimeout ||
			devErr.Type == ErrTypeConnectionRefused ||
			devErr.Type == ErrTypeDNS
	}
	return false
}

// IsTimeoutError checks if an error is a request timeout
func IsTimeoutError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeTimeout
	}
	return false
}

// IsHTTPError checks if an error is an HTTP status error
func IsHTTPError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeHTTP
	}
	return false
}

// IsParseError checks if an error is a response parse error
func IsParseError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeParse
	}
	return false
}

// IsValidationError checks if an error is a caller-input error
func IsValidationError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeValidation
	}
	return false
}
