//go:build unix

package conn

import (
	stderrors "errors"
	"log/slog"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// peekAlive probes the socket with a non-blocking MSG_PEEK read, without
// consuming data:
//
//   - EAGAIN: nothing waiting, socket presumed alive
//   - zero bytes: the peer performed an orderly close
//   - readable bytes: leftover data from a previous cycle means the framing
//     is desynchronized, so the socket is not safe to reuse
//   - any other error: unhealthy
//
// A peer closing immediately after a healthy verdict is tolerated; the
// subsequent request's retry loop recovers.
func peekAlive(sock net.Conn, log *slog.Logger) bool {
	sc, ok := sock.(syscall.Conn)
	if !ok {
		// Non-syscall sockets (in-memory pipes in tests) cannot be peeked.
		return true
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return false
	}

	alive := false

	ctrlErr := raw.Control(func(fd uintptr) {
		buf := make([]byte, 1)

		n, _, err := unix.Recvfrom(int(fd), buf, unix.MSG_PEEK|unix.MSG_DONTWAIT)
		switch {
		case stderrors.Is(err, unix.EAGAIN):
			alive = true
		case err != nil:
			log.Debug("Health probe failed", "error", err)
		case n == 0:
			log.Debug("Peer closed idle connection")
		default:
			log.Debug("Unread data on idle connection, discarding socket", "bytes", n)
		}
	})

	return ctrlErr == nil && alive
}
