package network

import (
	"fmt"
	"log"
	"net"
	"strings"
	"sync"
	"time"

	"powersnake/internal/domain"
)

var (
	virtualInterfaceNames = []string{"wsl", "hyper-v", "virtual", "vethernet", "vmware", "virtualbox", "docker"}
	wirelessNames         = []string{"wifi", "wireless", "wlan", "беспроводн"}
)

// Listener receives snapshots from the spectator multicast group.
type Listener struct {
	recvConn *net.UDPConn
	addr     *net.UDPAddr

	mu      sync.Mutex
	lastSeq map[string]int64
}

func NewListener(group string) (*Listener, error) {
	groupAddr, err := net.ResolveUDPAddr("udp4", group)
	if err != nil {
		return nil, fmt.Errorf("resolve multicast addr: %w", err)
	}

	var recvConn *net.UDPConn

	ifi, err := findBestInterface()
	if err == nil && ifi != nil {
		recvConn, err = net.ListenMulticastUDP("udp4", ifi, groupAddr)
		if err == nil {
			log.Printf("Listener: joined %s on interface %s", groupAddr, ifi.Name)
		}
	}

	if recvConn == nil {
		log.Println("Listener: trying without specific interface")

		recvConn, err = net.ListenMulticastUDP("udp4", nil, groupAddr)
		if err != nil {
			log.Println("Listener: fallback to regular UDP")
			recvConn, err = net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: groupAddr.Port})
			if err != nil {
				return nil, fmt.Errorf("all multicast methods failed: %w", err)
			}
		}
	}

	recvConn.SetReadBuffer(MaxPayload)

	return newListener(recvConn, groupAddr), nil
}

func newListener(conn *net.UDPConn, addr *net.UDPAddr) *Listener {
	return &Listener{
		recvConn: conn,
		addr:     addr,
		lastSeq:  make(map[string]int64),
	}
}

func findBestInterface() (*net.Interface, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var best *net.Interface
	var fallback *net.Interface

	for i := range interfaces {
		ifi := &interfaces[i]

		if ifi.Flags&net.FlagUp == 0 || ifi.Flags&net.FlagLoopback != 0 || ifi.Flags&net.FlagMulticast == 0 {
			continue
		}

		addrs, err := ifi.Addrs()
		if err != nil {
			continue
		}

		name := strings.ToLower(ifi.Name)
		if containsAny(name, virtualInterfaceNames) {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipnet.IP.To4()
			if ip == nil || ip.IsLoopback() {
				continue
			}
			// VirtualBox host-only network
			if ip[0] == 192 && ip[1] == 168 && ip[2] == 56 {
				continue
			}

			if containsAny(name, wirelessNames) {
				best = ifi
				break
			}
			if fallback == nil {
				fallback = ifi
			}
		}

		if best != nil {
			break
		}
	}

	if best == nil {
		best = fallback
	}
	if best != nil {
		log.Printf("Selected interface: %s", best.Name)
	}

	return best, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Receive blocks until a snapshot newer than the last one from the same sender
// arrives. Stale and malformed datagrams are skipped.
func (l *Listener) Receive() (*domain.Snapshot, *net.UDPAddr, error) {
	buf := make([]byte, MaxPayload)

	for {
		n, addr, err := l.recvConn.ReadFromUDP(buf)
		if err != nil {
			return nil, nil, err
		}

		seq, snap, err := DecodeSnapshot(buf[:n])
		if err != nil {
			log.Printf("Listener: dropping datagram from %s: %v", addr, err)
			continue
		}

		if !l.accept(AddrKey(addr), seq) {
			continue
		}
		return snap, addr, nil
	}
}

func (l *Listener) ReceiveWithTimeout(timeout time.Duration) (*domain.Snapshot, *net.UDPAddr, error) {
	l.recvConn.SetReadDeadline(time.Now().Add(timeout))
	defer l.recvConn.SetReadDeadline(time.Time{})

	return l.Receive()
}

// accept reports whether seq is newer than anything seen from sender.
func (l *Listener) accept(sender string, seq int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if last, ok := l.lastSeq[sender]; ok && seq <= last {
		return false
	}
	l.lastSeq[sender] = seq
	return true
}

func (l *Listener) Close() error {
	return l.recvConn.Close()
}

func (l *Listener) Address() *net.UDPAddr {
	return l.addr
}
