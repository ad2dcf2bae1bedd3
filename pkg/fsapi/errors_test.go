package fsapi

import (
	"errors"
	"net"
	"net/url"
	"syscall"
	"testing"
)

// timeoutError is a synthetic net timeout for classification tests
type timeoutError struct{}

func (e *timeoutError) Error() string   { return "i/o timeout" }
func (e *timeoutError) Timeout() bool   { return true }
func (e *timeoutError) Temporary() bool { return true }

func TestClassifyNetworkError_Timeout(t *testing.T) {
	err := &url.Error{
		Op:  "Get",
		URL: "http://192.168.1.14/fsapi/GET/netRemote.sys.power",
		Err: &net.OpError{
			Op:  "dial",
			Net: "tcp",
			Err: &timeoutError{},
		},
	}

	devErr := classifyNetworkError(err, "netRemote.sys.power")

	if devErr == nil {
		t.Fatal("Expected DeviceError, got nil")
	}

	if devErr.Type != ErrTypeTimeout {
		t.Errorf("Expected error type %v, got %v", ErrTypeTimeout, devErr.Type)
	}

	if !IsConnectivityError(devErr) {
		t.Error("Expected timeout to classify as connectivity error")
	}

	if !IsTimeoutError(devErr) {
		t.Error("Expected IsTimeoutError to report true")
	}
}

func TestClassifyNetworkError_ConnectionRefused(t *testing.T) {
	err := &url.Error{
		Op:  "Get",
		URL: "http://192.168.1.14/fsapi",
		Err: &net.OpError{
			Op:  "dial",
			Net: "tcp",
			Err: syscall.ECONNREFUSED,
		},
	}

	devErr := classifyNetworkError(err, "")

	if devErr == nil {
		t.Fatal("Expected DeviceError, got nil")
	}

	if devErr.Type != ErrTypeConnectionRefused {
		t.Errorf("Expected error type %v, got %v", ErrTypeConnectionRefused, devErr.Type)
	}

	if !IsConnectivityError(devErr) {
		t.Error("Expected connection refused to classify as connectivity error")
	}
}

func TestClassifyNetworkError_DNS(t *testing.T) {
	err := &net.DNSError{
		Err:        "no such host",
		Name:       "radio.invalid",
		IsNotFound: true,
	}

	devErr := classifyNetworkError(err, "")

	if devErr == nil {
		t.Fatal("Expected DeviceError, got nil")
	}

	if devErr.Type != ErrTypeDNS {
		t.Errorf("Expected error type %v, got %v", ErrTypeDNS, devErr.Type)
	}
}

func TestClassifyNetworkError_HostUnreachable(t *testing.T) {
	err := &url.Error{
		Op:  "Get",
		URL: "http://192.168.1.14/fsapi",
		Err: &net.OpError{
			Op:  "dial",
			Net: "tcp",
			Err: syscall.EHOSTUNREACH,
		},
	}

	devErr := classifyNetworkError(err, "")

	if devErr == nil {
		t.Fatal("Expected DeviceError, got nil")
	}

	if devErr.Type != ErrTypeConnectivity {
		t.Errorf("Expected error type %v, got %v", ErrTypeConnectivity, devErr.Type)
	}
}

func TestDeviceError_Unwrap(t *testing.T) {
	underlying := errors.New("socket closed")
	devErr := newConnectivityError("request failed", "netRemote.sys.power", underlying)

	if !errors.Is(devErr, underlying) {
		t.Error("Expected errors.Is to find the underlying error")
	}
}

func TestDeviceError_Error(t *testing.T) {
	devErr := newHTTPError(500, "unexpected status code: 500", "netRemote.sys.power")

	msg := devErr.Error()
	if msg != "HTTP Error: unexpected status code: 500" {
		t.Errorf("Error() = %q", msg)
	}
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"parse error", newParseError("bad xml", "", nil), IsParseError, true},
		{"http error", newHTTPError(500, "boom", ""), IsHTTPError, true},
		{"validation error", newValidationError("read-only"), IsValidationError, true},
		{"plain error is not classified", errors.New("nope"), IsConnectivityError, false},
		{"parse error is not connectivity", newParseError("bad xml", "", nil), IsConnectivityError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		et   ErrorType
		want string
	}{
		{ErrTypeConnectivity, "Connectivity Error"},
		{ErrTypeHTTP, "HTTP Error"},
		{ErrTypeParse, "Parse Error"},
		{ErrTypeValidation, "Validation Error"},
		{ErrTypeTimeout, "Timeout"},
		{ErrTypeConnectionRefused, "Connection Refused"},
		{ErrTypeDNS, "DNS Error"},
		{ErrTypeUnknown, "Unknown Error"},
	}

	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", tt.et, got, tt.want)
		}
	}
}
