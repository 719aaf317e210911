package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// Predefined errors
var (
	// ErrNoAddress is returned for an announcement that carries no address
	ErrNoAddress = errors.New("discovery: missing address")

	// ErrConsumed is returned by a Discoverer whose handles were moved by Extend
	ErrConsumed = errors.New("discovery: discoverer was consumed by Extend")

	// ErrStreamClosed is returned by Stream.Next once the stream is closed
	ErrStreamClosed = errors.New("discovery: stream closed")
)

// ErrorKind represents the category of a discovery failure
type ErrorKind int

const (
	// KindProtocolUnavailable means the mDNS session could not start or browse
	KindProtocolUnavailable ErrorKind = iota
	// KindClientBuild means the HTTP client could not be constructed
	KindClientBuild
	// KindTransport means the HTTP exchange failed (connection, status, body read)
	KindTransport
	// KindNoAddress means the announcement carried zero usable addresses
	KindNoAddress
	// KindDeserialization means the response body is not a valid Thing Description
	KindDeserialization
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindProtocolUnavailable:
		return "mdns unavailable"
	case KindClientBuild:
		return "http client"
	case KindTransport:
		return "transport"
	case KindNoAddress:
		return "no address"
	case KindDeserialization:
		return "deserialization"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// TransportSubtype narrows down a KindTransport error
type TransportSubtype int

const (
	TransportGeneral TransportSubtype = iota
	TransportTimeout
	TransportConnectionRefused
	TransportDNS
	TransportHostUnreachable
	TransportNetworkUnreachable
	TransportCanceled
	TransportStatus
)

// Error is the error type returned by discovery operations
type Error struct {
	Kind       ErrorKind        // Category of error
	Op         string           // Operation that failed (e.g., "browse", "get")
	URL        string           // Target URL (fetch errors only)
	StatusCode int              // HTTP status code (if applicable)
	Subtype    TransportSubtype // Transport classification (KindTransport only)
	Err        error            // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("discovery: %s: %s", e.Op, e.Kind)
	if e.URL != "" {
		msg += " " + e.URL
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

func newProtocolError(op string, err error) *Error {
	return &Error{Kind: KindProtocolUnavailable, Op: op, Err: err}
}

func newClientBuildError(err error) *Error {
	return &Error{Kind: KindClientBuild, Op: "new client", Err: err}
}

func newNoAddressError(instance string) *Error {
	return &Error{Kind: KindNoAddress, Op: "resolve " + instance, Err: ErrNoAddress}
}

func newTransportError(op, target string, err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Op:      op,
		URL:     target,
		Subtype: ClassifyTransportError(err),
		Err:     err,
	}
}

func newStatusError(target string, statusCode int) *Error {
	return &Error{
		Kind:       KindTransport,
		Op:         "get",
		URL:        target,
		StatusCode: statusCode,
		Subtype:    TransportStatus,
	}
}

func newDeserializationError(target string, err error) *Error {
	return &Error{Kind: KindDeserialization, Op: "decode", URL: target, Err: err}
}

// ClassifyTransportError analyzes an HTTP client error and returns a more
// specific subtype
func ClassifyTransportError(err error) TransportSubtype {
	if err == nil {
		return TransportGeneral
	}

	if errors.Is(err, context.Canceled) {
		return TransportCanceled
	}

	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return TransportTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return TransportDNS
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			return TransportConnectionRefused
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			return TransportHostUnreachable
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			return TransportNetworkUnreachable
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != err {
		return ClassifyTransportError(urlErr.Err)
	}

	return TransportGeneral
}

func kindOf(err error) (ErrorKind, bool) {
	var discErr *Error
	if errors.As(err, &discErr) {
		return discErr.Kind, true
	}
	return 0, false
}

// IsProtocolUnavailable checks if err reports an mDNS session failure
func IsProtocolUnavailable(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindProtocolUnavailable
}

// IsTransportError checks if err is an HTTP-layer failure
func IsTransportError(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindTransport
}

// IsNoAddress checks if err reports an announcement without addresses
func IsNoAddress(err error) bool {
	return errors.Is(err, ErrNoAddress)
}

// IsDeserializationError checks if err reports an undecodable Thing Description
func IsDeserializationError(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindDeserialization
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	var discErr *Error
	if !errors.As(err, &discErr) {
		return err.Error()
	}

	switch discErr.Kind {
	case KindProtocolUnavailable:
		return "mDNS unavailable - check multicast support on this host"
	case KindClientBuild:
		return "Could not build HTTP client"
	case KindNoAddress:
		return "Announcement has no address"
	case KindDeserialization:
		return "Invalid Thing Description at " + discErr.URL
	case KindTransport:
		switch discErr.Subtype {
		case TransportTimeout:
			return "Thing not responding (timeout)"
		case TransportConnectionRefused:
			return "Thing refused connection"
		case TransportDNS:
			return "Cannot resolve Thing hostname"
		case TransportHostUnreachable:
			return "Thing unreachable - check network connection"
		case TransportNetworkUnreachable:
			return "Network unreachable"
		case TransportCanceled:
			return "Request canceled"
		case TransportStatus:
			return fmt.Sprintf("Thing returned HTTP %d", discErr.StatusCode)
		default:
			return "Network error - check connection"
		}
	default:
		return discErr.Error()
	}
}
