package bind

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// SocketBinder binds AF_INET stream sockets directly through the socket,
// bind and getsockname system calls. It never calls listen.
type SocketBinder struct {
	Resolver Resolver
}

func (b SocketBinder) Bind(ctx context.Context, address string) (int, error) {
	ip, err := resolveIPv4(ctx, b.Resolver, address)
	if err != nil {
		return 0, err
	}
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return 0, os.NewSyscallError("socket", err)
	}
	defer unix.Close(fd)
	unix.CloseOnExec(fd)

	sa := &unix.SockaddrInet4{Port: 0}
	copy(sa.Addr[:], ip)
	if err := unix.Bind(fd, sa); err != nil {
		return 0, os.NewSyscallError("bind", err)
	}
	bound, err := unix.Getsockname(fd)
	if err != nil {
		return 0, os.NewSyscallError("getsockname", err)
	}
	in4, ok := bound.(*unix.SockaddrInet4)
	if !ok {
		return 0, fmt.Errorf("unexpected socket address type %T", bound)
	}
	return in4.Port, nil
}
