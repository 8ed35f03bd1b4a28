package link

import (
	"context"
	"net"
	"time"
)

// TCPProber treats "a TCP connection to the collector's address can be
// opened" as the link being up. The host network stack owns interface
// association, so Connect has nothing extra to do; the manager's poll loop
// supplies the retry cadence.
type TCPProber struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer
}

// NewTCPProber creates a prober that dials addr (host:port) with the given
// per-probe timeout.
func NewTCPProber(addr string, timeout time.Duration) *TCPProber {
	return &TCPProber{addr: addr, timeout: timeout}
}

// Status dials the probe address and reports success. The connection is
// closed immediately; only reachability matters.
func (p *TCPProber) Status(ctx context.Context) bool {
	dialCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dialer.DialContext(dialCtx, "tcp", p.addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Connect is a no-op; see the type comment.
func (p *TCPProber) Connect(_ context.Context) error {
	return nil
}
