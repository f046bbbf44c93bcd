package bind

import (
	"context"
	"fmt"
	"net"
)

// ListenBinder uses the net package instead of raw system calls. The socket
// is put into the listening state before its port is read.
type ListenBinder struct {
	Resolver Resolver
}

func (b ListenBinder) Bind(ctx context.Context, address string) (int, error) {
	ip, err := resolveIPv4(ctx, b.Resolver, address)
	if err != nil {
		return 0, err
	}
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp4", net.JoinHostPort(ip.String(), "0"))
	if err != nil {
		return 0, err
	}
	defer listener.Close()
	addr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("unexpected listener address type %T", listener.Addr())
	}
	return addr.Port, nil
}
