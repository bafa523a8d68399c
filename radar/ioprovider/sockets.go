// Package ioprovider supplies the two concrete radar.IOProvider
// implementations: Real, a host-socket provider for a long-lived network
// service (grounded on the teacher's radiod.go/radiod_status.go
// multicast plumbing), and Mock, an in-memory provider for
// the sandboxed/embedded runtime and for controller unit tests.
package ioprovider

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"syscall"
	"time"

	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"

	"github.com/mayara-radar/mayara/radar"
)

// Real is a radar.IOProvider backed by real OS sockets. Every "try" call
// uses a near-zero read deadline rather than blocking, which is the
// standard Go idiom for adapting net.Conn to a non-blocking poll loop.
type Real struct {
	mu   sync.Mutex
	next radar.Handle
	udp  map[radar.Handle]*net.UDPConn
	tcp  map[radar.Handle]*tcpState
}

type tcpState struct {
	mu   sync.Mutex
	conn *net.TCPConn
	err  error
}

func NewReal() *Real {
	return &Real{
		udp: make(map[radar.Handle]*net.UDPConn),
		tcp: make(map[radar.Handle]*tcpState),
	}
}

func (p *Real) newHandle() radar.Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next++
	return p.next
}

func toUDPAddr(a radar.Addr) *net.UDPAddr {
	return &net.UDPAddr{IP: net.ParseIP(a.IP), Port: a.Port}
}

// UDPBind opens a UDP socket bound to local, with SO_REUSEADDR/SO_REUSEPORT
// set so multiple controllers (e.g. dual-range A/B listeners) can share a
// multicast port on the same NIC, matching radiod_status.go's
// StartStatusListener. IP_MULTICAST_ALL is cleared so the socket receives
// only the multicast groups joined on it.
func (p *Real) UDPBind(local radar.Addr) (radar.Handle, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var opErr error
			cerr := c.Control(func(fd uintptr) {
				if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
					opErr = err
					return
				}
				if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
					opErr = err
					return
				}
				if err := unix.SetsockoptInt(int(fd), unix.IPPROTO_IP, unix.IP_MULTICAST_ALL, 0); err != nil {
					opErr = err
					return
				}
			})
			if cerr != nil {
				return cerr
			}
			return opErr
		},
	}
	pc, err := lc.ListenPacket(context.Background(), "udp4", local.String())
	if err != nil {
		return radar.NoHandle, radar.NewIOError("bind", err)
	}
	conn := pc.(*net.UDPConn)
	h := p.newHandle()
	p.mu.Lock()
	p.udp[h] = conn
	p.mu.Unlock()
	return h, nil
}

// UDPJoinMulticast joins group on h's socket, scoped to nicAddr's
// interface. Because UDPBind clears IP_MULTICAST_ALL, the socket receives
// only the groups joined here, not every group joined elsewhere on the
// host. IP_MULTICAST_LOOP is left at the OS default.
func (p *Real) UDPJoinMulticast(h radar.Handle, group radar.Addr, nicAddr radar.Addr) error {
	conn, ok := p.getUDP(h)
	if !ok {
		return radar.NewIOError("join", fmt.Errorf("unknown handle"))
	}
	iface, err := interfaceForAddr(nicAddr)
	if err != nil {
		return radar.NewIOError("join", err)
	}
	pc := ipv4.NewPacketConn(conn)
	if err := pc.JoinGroup(iface, toUDPAddr(group)); err != nil {
		return radar.NewIOError("join", err)
	}
	return nil
}

// UDPSendTo sends b to dst. The sending socket must be bound to the NIC
// that received the beacon; since UDPBind already bound the local
// address, WriteTo here never crosses interfaces.
func (p *Real) UDPSendTo(h radar.Handle, b []byte, dst radar.Addr) error {
	conn, ok := p.getUDP(h)
	if !ok {
		return radar.NewIOError("send", fmt.Errorf("unknown handle"))
	}
	conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	n, err := conn.WriteTo(b, toUDPAddr(dst))
	if err != nil {
		return radar.NewIOError("send", err)
	}
	if n != len(b) {
		return radar.NewIOError("send", fmt.Errorf("short write: %d of %d bytes", n, len(b)))
	}
	return nil
}

func (p *Real) UDPTryRecv(h radar.Handle, buf []byte) (int, radar.Addr, bool, error) {
	conn, ok := p.getUDP(h)
	if !ok {
		return 0, radar.Addr{}, false, radar.NewIOError("recv", fmt.Errorf("unknown handle"))
	}
	conn.SetReadDeadline(time.Now().Add(time.Millisecond))
	n, src, err := conn.ReadFromUDP(buf)
	if err != nil {
		if ne, ok2 := err.(net.Error); ok2 && ne.Timeout() {
			return 0, radar.Addr{}, false, nil
		}
		return 0, radar.Addr{}, false, radar.NewIOError("recv", err)
	}
	return n, radar.Addr{IP: src.IP.String(), Port: src.Port}, true, nil
}

// TCPConnect dials dst in the background; the controller observes success
// via TCPSend/TCPTryRecv, which report a connection error once the dial
// finishes, or NotConnected-shaped pending state until then.
func (p *Real) TCPConnect(dst radar.Addr) (radar.Handle, error) {
	h := p.newHandle()
	st := &tcpState{}
	p.mu.Lock()
	p.tcp[h] = st
	p.mu.Unlock()

	go func() {
		conn, err := net.DialTimeout("tcp", dst.String(), 5*time.Second)
		st.mu.Lock()
		defer st.mu.Unlock()
		if err != nil {
			st.err = err
			return
		}
		tc := conn.(*net.TCPConn)
		tc.SetNoDelay(true)
		st.conn = tc
	}()

	return h, nil
}

func (p *Real) TCPSend(h radar.Handle, b []byte) error {
	st, ok := p.getTCP(h)
	if !ok {
		return radar.NewIOError("send", fmt.Errorf("unknown handle"))
	}
	st.mu.Lock()
	conn, err := st.conn, st.err
	st.mu.Unlock()
	if err != nil {
		return radar.NewIOError("connect", err)
	}
	if conn == nil {
		return radar.NewIOError("send", fmt.Errorf("connection pending"))
	}
	conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	if _, err := conn.Write(b); err != nil {
		return radar.NewIOError("send", err)
	}
	return nil
}

func (p *Real) TCPTryRecv(h radar.Handle, buf []byte) (int, bool, error) {
	st, ok := p.getTCP(h)
	if !ok {
		return 0, false, radar.NewIOError("recv", fmt.Errorf("unknown handle"))
	}
	st.mu.Lock()
	conn, err := st.conn, st.err
	st.mu.Unlock()
	if err != nil {
		return 0, false, radar.NewIOError("connect", err)
	}
	if conn == nil {
		return 0, false, nil // still connecting
	}
	conn.SetReadDeadline(time.Now().Add(time.Millisecond))
	n, rerr := conn.Read(buf)
	if rerr != nil {
		if ne, ok2 := rerr.(net.Error); ok2 && ne.Timeout() {
			return 0, false, nil
		}
		if rerr == io.EOF {
			return 0, false, radar.NewIOError("recv", rerr)
		}
		return 0, false, radar.NewIOError("recv", rerr)
	}
	return n, true, nil
}

func (p *Real) Close(h radar.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if conn, ok := p.udp[h]; ok {
		delete(p.udp, h)
		return conn.Close()
	}
	if st, ok := p.tcp[h]; ok {
		delete(p.tcp, h)
		st.mu.Lock()
		defer st.mu.Unlock()
		if st.conn != nil {
			return st.conn.Close()
		}
		return nil
	}
	return nil
}

func (p *Real) NowMillis() int64 { return time.Now().UnixMilli() }

func (p *Real) getUDP(h radar.Handle) (*net.UDPConn, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.udp[h]
	return c, ok
}

func (p *Real) getTCP(h radar.Handle) (*tcpState, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.tcp[h]
	return st, ok
}

// interfaceForAddr resolves the *net.Interface that owns nicAddr's IP, so
// multicast joins are scoped to the NIC the beacon arrived on.
func interfaceForAddr(nicAddr radar.Addr) (*net.Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	target := net.ParseIP(nicAddr.IP)
	for i := range ifaces {
		iface := &ifaces[i]
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipNet, ok := a.(*net.IPNet)
			if ok && ipNet.IP.Equal(target) {
				return iface, nil
			}
		}
	}
	return nil, fmt.Errorf("no interface owns address %s", nicAddr.IP)
}
