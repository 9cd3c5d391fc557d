package uncheck

import (
	"context"
	"crypto/aes"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net"
	"os"
	"reflect"
	"syscall"
)

// ErrSecurity may be wrapped by callers to classify a failure as KindSecurity.
var ErrSecurity = errors.New("security violation")

type classifier struct {
	kind  Kind
	match func(err error) bool
	wrap  func(ctx context.Context, err error) *Error
}

// classifiers is evaluated top to bottom and never mutated. Interrupt comes
// first so the flag is relayed whatever else the chain carries.
var classifiers = [...]classifier{
	{kind: KindInterrupt, match: IsInterrupt, wrap: NewInterrupt},
	{kind: KindSecurity, match: isSecurity, wrap: func(_ context.Context, err error) *Error { return NewSecurity(err) }},
	{kind: KindReflective, match: isReflective, wrap: func(_ context.Context, err error) *Error { return NewReflective(err) }},
	{kind: KindIO, match: isIO, wrap: func(_ context.Context, err error) *Error { return NewIO(err) }},
}

// Classify reports the kind the normalizer would assign to err.
func Classify(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.kind
	}
	for _, c := range classifiers {
		if c.match(err) {
			return c.kind
		}
	}
	return KindGeneric
}

// Uncheck normalizes err into an unchecked failure.
//
// Behavior:
//   - nil input => nil output
//   - fatal input => panics with err unchanged
//   - already unchecked input => returned as-is (same value)
//   - otherwise the first matching canonical kind wraps err, defaulting to KindGeneric
//
// A cancellation signal anywhere in err's chain sets the interrupt flag carried by ctx.
func Uncheck(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if IsFatal(err) {
		panic(err)
	}

	InterruptIf(ctx, err)

	if isUnchecked(err) {
		return err
	}

	for _, c := range classifiers {
		if c.match(err) {
			return c.wrap(ctx, err)
		}
	}
	return Wrap(err)
}

func isSecurity(err error) bool {
	return errors.Is(err, ErrSecurity) ||
		errors.Is(err, rsa.ErrVerification) ||
		errors.Is(err, rsa.ErrDecryption) ||
		errors.Is(err, rsa.ErrMessageTooLong) ||
		errors.Is(err, x509.ErrUnsupportedAlgorithm) ||
		as[x509.CertificateInvalidError](err) ||
		as[x509.UnknownAuthorityError](err) ||
		as[x509.HostnameError](err) ||
		as[x509.ConstraintViolationError](err) ||
		as[x509.InsecureAlgorithmError](err) ||
		as[*tls.CertificateVerificationError](err) ||
		as[tls.AlertError](err) ||
		as[aes.KeySizeError](err)
}

func isReflective(err error) bool {
	return errors.Is(err, ErrNotInvocable) ||
		as[*InvocationError](err) ||
		as[*reflect.ValueError](err) ||
		as[*json.InvalidUnmarshalError](err) ||
		as[*json.UnsupportedTypeError](err)
}

func isIO(err error) bool {
	for _, target := range ioSentinels {
		if errors.Is(err, target) {
			return true
		}
	}
	return as[*fs.PathError](err) ||
		as[*os.LinkError](err) ||
		as[*os.SyscallError](err) ||
		as[syscall.Errno](err) ||
		as[net.Error](err)
}

var ioSentinels = [...]error{
	io.EOF,
	io.ErrUnexpectedEOF,
	io.ErrShortWrite,
	io.ErrShortBuffer,
	io.ErrClosedPipe,
	io.ErrNoProgress,
	fs.ErrClosed,
	fs.ErrNotExist,
	fs.ErrExist,
	fs.ErrPermission,
	os.ErrDeadlineExceeded,
	net.ErrClosed,
}

func as[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
