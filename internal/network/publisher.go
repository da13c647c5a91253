package network

import (
	"fmt"
	"log"
	"net"
	"sync/atomic"

	"powersnake/internal/domain"
)

// Publisher sends snapshots to the spectator multicast group.
type Publisher struct {
	conn      *net.UDPConn
	localAddr *net.UDPAddr
	groupAddr *net.UDPAddr
	seq       int64
}

func NewPublisher(group string) (*Publisher, error) {
	groupAddr, err := net.ResolveUDPAddr("udp4", group)
	if err != nil {
		return nil, fmt.Errorf("resolve group addr: %w", err)
	}

	bindIP := findBestBindIP()

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: bindIP, Port: 0})
	if err != nil {
		return nil, fmt.Errorf("listen udp: %w", err)
	}

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	log.Printf("Publisher: sending from %s to %s", localAddr, groupAddr)

	return &Publisher{
		conn:      conn,
		localAddr: localAddr,
		groupAddr: groupAddr,
	}, nil
}

// findBestBindIP returns the first IPv4 address of the interface picked for
// multicast, or 0.0.0.0.
func findBestBindIP() net.IP {
	ifi, err := findBestInterface()
	if err != nil || ifi == nil {
		log.Printf("Publisher: no good interface found, using 0.0.0.0")
		return net.IPv4zero
	}

	addrs, err := ifi.Addrs()
	if err != nil {
		return net.IPv4zero
	}

	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok {
			if ip := ipnet.IP.To4(); ip != nil && !ip.IsLoopback() {
				return ip
			}
		}
	}
	return net.IPv4zero
}

func (p *Publisher) Publish(snap *domain.Snapshot) error {
	data, err := EncodeSnapshot(p.NextSeq(), snap)
	if err != nil {
		return err
	}

	if _, err := p.conn.WriteToUDP(data, p.groupAddr); err != nil {
		return fmt.Errorf("publish to %s: %w", p.groupAddr, err)
	}
	return nil
}

func (p *Publisher) NextSeq() int64 {
	return atomic.AddInt64(&p.seq, 1)
}

func (p *Publisher) LocalPort() int {
	return p.localAddr.Port
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}
