package app

import (
	"context"
	"log"
	"net"
	"sync"
	"time"

	"powersnake/internal/domain"
	"powersnake/internal/network"
)

const feedTimeout = 3 * time.Second

// SnapshotSource is the receiving side of the spectator broadcast.
type SnapshotSource interface {
	ReceiveWithTimeout(timeout time.Duration) (*domain.Snapshot, *net.UDPAddr, error)
}

// FeedInfo describes one broadcasting session.
type FeedInfo struct {
	Addr     *net.UDPAddr
	Snapshot *domain.Snapshot
	LastSeen time.Time
}

type SpectatorEvent struct {
	Type    SpectatorEventType
	Payload interface{}
}

type SpectatorEventType int

const (
	SpectatorSnapshot SpectatorEventType = iota
	SpectatorFeedsUpdated
)

// SpectatorService follows broadcast sessions and keeps the latest snapshot
// of each.
type SpectatorService struct {
	source  SnapshotSource
	feeds   map[string]*FeedInfo
	current string
	mu      sync.RWMutex
	eventCh chan SpectatorEvent
	cancel  context.CancelFunc
	clock   func() time.Time
}

func NewSpectatorService(source SnapshotSource) *SpectatorService {
	return &SpectatorService{
		source:  source,
		feeds:   make(map[string]*FeedInfo),
		eventCh: make(chan SpectatorEvent, 10),
		clock:   time.Now,
	}
}

func (ss *SpectatorService) Start(ctx context.Context) {
	ctx, ss.cancel = context.WithCancel(ctx)

	go ss.receiveLoop(ctx)
	go ss.cleanupLoop(ctx)
}

func (ss *SpectatorService) Stop() {
	if ss.cancel != nil {
		ss.cancel()
	}
}

func (ss *SpectatorService) Events() <-chan SpectatorEvent {
	return ss.eventCh
}

func (ss *SpectatorService) GetFeeds() []FeedInfo {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	result := make([]FeedInfo, 0, len(ss.feeds))
	for _, feed := range ss.feeds {
		result = append(result, *feed)
	}
	return result
}

// Latest returns the newest snapshot of the followed feed, or nil when no
// session is broadcasting.
func (ss *SpectatorService) Latest() *domain.Snapshot {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	if feed, ok := ss.feeds[ss.current]; ok {
		return feed.Snapshot
	}
	return nil
}

func (ss *SpectatorService) receiveLoop(ctx context.Context) {
	log.Println("Spectator: receive loop started")

	for {
		select {
		case <-ctx.Done():
			log.Println("Spectator: receive loop stopped")
			return
		default:
		}

		snap, addr, err := ss.source.ReceiveWithTimeout(500 * time.Millisecond)
		if err != nil {
			continue
		}

		ss.handleSnapshot(snap, addr)
	}
}

// handleSnapshot stores snap. The first feed seen is followed until it
// disappears.
func (ss *SpectatorService) handleSnapshot(snap *domain.Snapshot, addr *net.UDPAddr) {
	key := network.AddrKey(addr)

	ss.mu.Lock()
	_, known := ss.feeds[key]
	ss.feeds[key] = &FeedInfo{
		Addr:     addr,
		Snapshot: snap,
		LastSeen: ss.clock(),
	}
	if ss.current == "" {
		ss.current = key
	}
	followed := ss.current == key
	ss.mu.Unlock()

	if !known {
		log.Printf("Spectator: found session at %s", addr)
		ss.notify(SpectatorEvent{Type: SpectatorFeedsUpdated})
	}
	if followed {
		ss.notify(SpectatorEvent{Type: SpectatorSnapshot, Payload: snap})
	}
}

func (ss *SpectatorService) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(feedTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ss.cleanup()
		}
	}
}

func (ss *SpectatorService) cleanup() {
	ss.mu.Lock()

	now := ss.clock()
	updated := false

	for key, feed := range ss.feeds {
		if now.Sub(feed.LastSeen) > feedTimeout {
			delete(ss.feeds, key)
			updated = true
			log.Printf("Spectator: session at %s disappeared", key)
		}
	}

	if _, ok := ss.feeds[ss.current]; !ok {
		ss.current = ""
		for key := range ss.feeds {
			ss.current = key
			break
		}
	}

	ss.mu.Unlock()

	if updated {
		ss.notify(SpectatorEvent{Type: SpectatorFeedsUpdated})
	}
}

func (ss *SpectatorService) notify(event SpectatorEvent) {
	select {
	case ss.eventCh <- event:
	default:
	}
}
