package ioprovider

import (
	"fmt"
	"sync"

	"github.com/mayara-radar/mayara/radar"
)

// Mock is an in-memory radar.IOProvider: no OS sockets at all, suitable for
// the sandboxed/WASM host and for controller unit tests — the same
// network I/O surface emulated over message-passing instead of real
// sockets. Inbound bytes for a handle are queued
// with Deliver; outbound bytes sent via UDPSendTo/TCPSend are captured in
// Sent for assertions.
type Mock struct {
	mu      sync.Mutex
	next    radar.Handle
	kinds   map[radar.Handle]string // "udp" | "tcp"
	closed  map[radar.Handle]bool
	tcpUp   map[radar.Handle]bool // connected yet?
	inbound map[radar.Handle][]mockDatagram
	Sent    []MockSend
	now     int64
}

type mockDatagram struct {
	data []byte
	src  radar.Addr
}

// MockSend records one outbound write, for test assertions.
type MockSend struct {
	Handle radar.Handle
	Dst    radar.Addr
	Data   []byte
}

func NewMock() *Mock {
	return &Mock{
		kinds:   make(map[radar.Handle]string),
		closed:  make(map[radar.Handle]bool),
		tcpUp:   make(map[radar.Handle]bool),
		inbound: make(map[radar.Handle][]mockDatagram),
	}
}

func (m *Mock) newHandle(kind string) radar.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.kinds[m.next] = kind
	return m.next
}

func (m *Mock) UDPBind(local radar.Addr) (radar.Handle, error) {
	return m.newHandle("udp"), nil
}

func (m *Mock) UDPJoinMulticast(h radar.Handle, group, nicAddr radar.Addr) error {
	return nil
}

func (m *Mock) UDPSendTo(h radar.Handle, b []byte, dst radar.Addr) error {
	if m.isClosed(h) {
		return radar.NewIOError("send", fmt.Errorf("handle closed"))
	}
	cp := append([]byte(nil), b...)
	m.mu.Lock()
	m.Sent = append(m.Sent, MockSend{Handle: h, Dst: dst, Data: cp})
	m.mu.Unlock()
	return nil
}

func (m *Mock) UDPTryRecv(h radar.Handle, buf []byte) (int, radar.Addr, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := m.inbound[h]
	if len(q) == 0 {
		return 0, radar.Addr{}, false, nil
	}
	d := q[0]
	m.inbound[h] = q[1:]
	n := copy(buf, d.data)
	return n, d.src, true, nil
}

func (m *Mock) TCPConnect(dst radar.Addr) (radar.Handle, error) {
	h := m.newHandle("tcp")
	m.mu.Lock()
	m.tcpUp[h] = true // mock connects instantly; tests can flip it with SetTCPConnected
	m.mu.Unlock()
	return h, nil
}

func (m *Mock) TCPSend(h radar.Handle, b []byte) error {
	if m.isClosed(h) {
		return radar.NewIOError("send", fmt.Errorf("handle closed"))
	}
	m.mu.Lock()
	up := m.tcpUp[h]
	m.mu.Unlock()
	if !up {
		return radar.NewIOError("send", fmt.Errorf("connection pending"))
	}
	cp := append([]byte(nil), b...)
	m.mu.Lock()
	m.Sent = append(m.Sent, MockSend{Handle: h, Data: cp})
	m.mu.Unlock()
	return nil
}

func (m *Mock) TCPTryRecv(h radar.Handle, buf []byte) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.tcpUp[h] {
		return 0, false, nil
	}
	q := m.inbound[h]
	if len(q) == 0 {
		return 0, false, nil
	}
	d := q[0]
	m.inbound[h] = q[1:]
	n := copy(buf, d.data)
	return n, true, nil
}

func (m *Mock) Close(h radar.Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed[h] = true
	return nil
}

func (m *Mock) NowMillis() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AdvanceMillis moves the mock clock forward, for keep-alive/backoff tests.
func (m *Mock) AdvanceMillis(d int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
}

// Deliver queues an inbound datagram/stream-chunk as if it arrived from
// src on h.
func (m *Mock) Deliver(h radar.Handle, data []byte, src radar.Addr) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inbound[h] = append(m.inbound[h], mockDatagram{data: append([]byte(nil), data...), src: src})
}

// SetTCPConnected forces the connected state of a TCP handle, letting
// tests exercise the "connection pending" / login-failure paths.
func (m *Mock) SetTCPConnected(h radar.Handle, up bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tcpUp[h] = up
}

func (m *Mock) isClosed(h radar.Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed[h]
}
