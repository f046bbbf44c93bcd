package bind

import (
	"context"
	"errors"
	"fmt"
	"net"
)

const (
	minPort = 1
	maxPort = 65535
)

var ErrBindFailed = errors.New("bind failed")

// Binder binds a stream socket to (address, 0) and reports the port the
// operating system assigned. The socket must be released before Bind returns.
type Binder interface {
	Bind(ctx context.Context, address string) (int, error)
}

// Resolver is the subset of *net.Resolver used to turn host names into IPv4
// addresses.
type Resolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
}

// Result is the outcome of one bind attempt. Port is set only when Err is nil.
type Result struct {
	Address string
	Port    int
	Err     error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Error is returned in Result.Err for every failed attempt. It matches
// ErrBindFailed with errors.Is and unwraps to the platform error.
type Error struct {
	Address string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ErrBindFailed.Error()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrBindFailed
}

// Attempt runs a single bind attempt against address and folds any error into
// the returned Result.
func Attempt(ctx context.Context, binder Binder, address string) Result {
	res := Result{Address: address}
	if binder == nil {
		res.Err = &Error{Address: address, Err: errors.New("no binder configured")}
		return res
	}
	port, err := binder.Bind(ctx, address)
	if err != nil {
		res.Err = &Error{Address: address, Err: err}
		return res
	}
	if port < minPort || port > maxPort {
		res.Err = &Error{Address: address, Err: fmt.Errorf("assigned port %d out of range", port)}
		return res
	}
	res.Port = port
	return res
}

func resolveIPv4(ctx context.Context, resolver Resolver, address string) (net.IP, error) {
	if ip := net.ParseIP(address); ip != nil {
		ip4 := ip.To4()
		if ip4 == nil {
			return nil, fmt.Errorf("%s is not an IPv4 address", address)
		}
		return ip4, nil
	}
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	ips, err := resolver.LookupIP(ctx, "ip4", address)
	if err != nil {
		return nil, err
	}
	for _, ip := range ips {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4, nil
		}
	}
	return nil, fmt.Errorf("no IPv4 address found for %s", address)
}
