package radar

// Handle identifies an open socket owned by an IOProvider. It is opaque to
// the core; a provider is free to make it an index into its own table.
type Handle uint64

// NoHandle is the zero value, never returned by a successful bind/connect.
const NoHandle Handle = 0

// IOProvider is the abstract, synchronous, non-blocking socket surface
// every controller uses for all network I/O. The core never assumes a
// provider can schedule or block; every wait becomes polling.
//
// Two concrete providers are expected: radar/ioprovider's real-socket
// implementation for a long-lived network service, and a host-supplied
// message-passing emulation for a sandboxed (e.g. WASM) runtime.
type IOProvider interface {
	// UDPBind opens a UDP socket bound to local. Fails with an ErrIO
	// (stage "bind") ControllerError on conflict/permission.
	UDPBind(local Addr) (Handle, error)

	// UDPJoinMulticast joins group on the socket h, scoped to the NIC at
	// nicAddr. Implementations must disable any "receive all multicast
	// traffic" socket behavior so packets are scoped to joined groups only.
	// Fails with ErrIO (stage "join") if nicAddr is unreachable.
	UDPJoinMulticast(h Handle, group Addr, nicAddr Addr) error

	// UDPSendTo sends b to dst on h. Implementations must bind the sending
	// socket to the NIC that originally received the beacon; unbound sends
	// are forbidden at this contract level. Fails with ErrIO (stage "send").
	UDPSendTo(h Handle, b []byte, dst Addr) error

	// UDPTryRecv is a non-blocking receive. ok is false if nothing was
	// pending.
	UDPTryRecv(h Handle, buf []byte) (n int, src Addr, ok bool, err error)

	// TCPConnect starts a non-blocking connection attempt to dst. The
	// caller observes success/failure via later TCPTryRecv/TCPSend calls or
	// a provider-specific readiness signal; the core treats the controller
	// as Connecting until then.
	TCPConnect(dst Addr) (Handle, error)

	// TCPSend writes b on the stream h.
	TCPSend(h Handle, b []byte) error

	// TCPTryRecv is a non-blocking receive on the stream h. ok is false if
	// nothing was pending. A short read is valid; callers are responsible
	// for their own stream reassembly.
	TCPTryRecv(h Handle, buf []byte) (n int, ok bool, err error)

	// Close releases h. Idempotent.
	Close(h Handle) error

	// NowMillis is the monotonic time source used for keep-alive timers and
	// backoff — the only clock the core is allowed to read.
	NowMillis() int64
}
