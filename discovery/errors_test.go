package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
	"testing"
)

func TestClassifyTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want TransportSubtype
	}{
		{"nil", nil, TransportGeneral},
		{"canceled", context.Canceled, TransportCanceled},
		{"deadline", context.DeadlineExceeded, TransportTimeout},
		{"os timeout", os.ErrDeadlineExceeded, TransportTimeout},
		{"dns", &net.DNSError{Err: "no such host", Name: "lamp.local"}, TransportDNS},
		{
			"refused",
			&net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			TransportConnectionRefused,
		},
		{
			"host unreachable",
			&net.OpError{Op: "dial", Net: "tcp", Err: syscall.EHOSTUNREACH},
			TransportHostUnreachable,
		},
		{
			"network unreachable",
			&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ENETUNREACH},
			TransportNetworkUnreachable,
		},
		{
			"wrapped in url error",
			&url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}},
			TransportConnectionRefused,
		},
		{"other", errors.New("tls: bad certificate"), TransportGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTransportError(tt.err); got != tt.want {
				t.Errorf("ClassifyTransportError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	wrapped := func(err error) error { return fmt.Errorf("outer: %w", err) }

	protocol := wrapped(newProtocolError("browse", errors.New("no multicast")))
	transport := wrapped(newStatusError("http://x", 500))
	noAddr := wrapped(newNoAddressError("lamp"))
	decode := wrapped(newDeserializationError("http://x", errors.New("eof")))

	if !IsProtocolUnavailable(protocol) || IsProtocolUnavailable(transport) {
		t.Error("IsProtocolUnavailable misclassified")
	}
	if !IsTransportError(transport) || IsTransportError(decode) {
		t.Error("IsTransportError misclassified")
	}
	if !IsNoAddress(noAddr) || IsNoAddress(transport) {
		t.Error("IsNoAddress misclassified")
	}
	if !IsDeserializationError(decode) || IsDeserializationError(noAddr) {
		t.Error("IsDeserializationError misclassified")
	}
	if IsTransportError(errors.New("plain")) {
		t.Error("plain errors are not discovery errors")
	}
}

func TestError_Message(t *testing.T) {
	err := newStatusError("http://10.0.0.2:8080/.well-known/wot", 404)
	msg := err.Error()

	for _, part := range []string{"get", "transport", "http://10.0.0.2:8080/.well-known/wot", "status 404"} {
		if !strings.Contains(msg, part) {
			t.Errorf("Error() = %q, missing %q", msg, part)
		}
	}
}

func TestShortMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{newStatusError("http://x", 503), "Thing returned HTTP 503"},
		{newNoAddressError("lamp"), "Announcement has no address"},
		{newDeserializationError("http://x", errors.New("eof")), "Invalid Thing Description at http://x"},
		{newTransportError("get", "http://x", context.DeadlineExceeded), "Thing not responding (timeout)"},
		{errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ShortMessage(tt.err); got != tt.want {
				t.Errorf("ShortMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
