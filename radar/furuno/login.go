package furuno

import "encoding/binary"

// loginCopyrightString is the required copyright string radiod-class
// Furuno radars expect inside the 56-byte LOGIN_MESSAGE.
const loginCopyrightString = "Copyright (C) FURUNO ELECTRIC CO.,LTD."

const loginMessageSize = 56

// loginMessage builds the 56-byte login frame sent to the login port:
// the copyright string, NUL-padded to the fixed size.
func loginMessage() []byte {
	msg := make([]byte, loginMessageSize)
	copy(msg, loginCopyrightString)
	return msg
}

const loginResponseSize = 12

// parseLoginResponse extracts the little-endian port offset from bytes
// 10-11 of the 12-byte login response. Command port is 10000+offset
// (commonly 10100).
func parseLoginResponse(resp []byte) (offset uint16, ok bool) {
	if len(resp) < loginResponseSize {
		return 0, false
	}
	return binary.LittleEndian.Uint16(resp[10:12]), true
}

// Login ports tried in order, and the direct command-port fallback used
// when neither login port ever responds.
var loginPortOrder = []int{10010, 10000}
var fallbackCommandPorts = []int{10100, 10001, 10002}
