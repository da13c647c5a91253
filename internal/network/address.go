package network

import (
	"fmt"
	"net"
)

const (
	MulticastAddress = "239.192.0.4:9192"
	MulticastPort    = 9192

	// MaxPayload is the largest UDP payload over IPv4.
	MaxPayload = 65507
)

func AddrKey(addr *net.UDPAddr) string {
	return fmt.Sprintf("%s:%d", addr.IP.String(), addr.Port)
}
