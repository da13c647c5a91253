package network

import (
	"net"
	"testing"
	"time"

	"powersnake/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Tick:             42,
		Width:            40,
		Height:           30,
		State:            domain.SessionPlaying,
		Snake:            []domain.Coord{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 0, Y: 0}},
		Direction:        domain.DirectionRight,
		PowerUp:          true,
		PowerUpRemaining: 2500 * time.Millisecond,
		Food:             &domain.FoodView{Pos: domain.Coord{X: 10, Y: 3}, Size: 1, Remaining: 1},
		BigFood:          &domain.FoodView{Pos: domain.Coord{X: 20, Y: 7}, IsBig: true, Size: 2, Remaining: 0.25},
		Obstacles: [][]domain.Coord{
			{{X: 1, Y: 1}, {X: 1, Y: 2}},
			{{X: 30, Y: 20}},
		},
		Score:      7,
		HighScore:  12,
		Level:      2,
		Speed:      12.5,
		FinalScore: 3,
		FinalLevel: 1,
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	data, err := EncodeSnapshot(9, snap)
	require.NoError(t, err)

	seq, got, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, int64(9), seq)
	assert.Equal(t, snap, got)
}

func TestSnapshotWithoutFood(t *testing.T) {
	snap := &domain.Snapshot{Width: 10, Height: 10, State: domain.SessionGameOver, FinalScore: 4}

	data, err := EncodeSnapshot(1, snap)
	require.NoError(t, err)

	_, got, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Nil(t, got.Food)
	assert.Nil(t, got.BigFood)
	assert.Equal(t, domain.SessionGameOver, got.State)
	assert.Equal(t, 4, got.FinalScore)
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	data, err := EncodeSnapshot(3, sampleSnapshot())
	require.NoError(t, err)

	data = protowire.AppendTag(data, 99, protowire.BytesType)
	data = protowire.AppendBytes(data, []byte("future"))
	data = protowire.AppendTag(data, 100, protowire.Fixed32Type)
	data = protowire.AppendFixed32(data, 7)

	seq, got, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, int64(3), seq)
	assert.Equal(t, sampleSnapshot(), got)
}

func TestDecodeRejectsTruncatedData(t *testing.T) {
	data, err := EncodeSnapshot(3, sampleSnapshot())
	require.NoError(t, err)

	_, _, err = DecodeSnapshot(data[:len(data)-1])
	assert.Error(t, err)
}

func TestDecodeRejectsIncompleteFrames(t *testing.T) {
	noBoard, err := EncodeSnapshot(4, &domain.Snapshot{Tick: 1, Score: 2})
	require.NoError(t, err)

	noSeq := protowire.AppendTag(nil, fieldWidth, protowire.VarintType)
	noSeq = protowire.AppendVarint(noSeq, 20)
	noSeq = protowire.AppendTag(noSeq, fieldHeight, protowire.VarintType)
	noSeq = protowire.AppendVarint(noSeq, 20)

	negative := protowire.AppendTag(nil, fieldSeq, protowire.VarintType)
	negative = protowire.AppendVarint(negative, 1)
	negative = protowire.AppendTag(negative, fieldWidth, protowire.VarintType)
	negative = protowire.AppendVarint(negative, uint64(1)<<32-5)
	negative = protowire.AppendTag(negative, fieldHeight, protowire.VarintType)
	negative = protowire.AppendVarint(negative, 20)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty datagram", []byte{}},
		{"no board size", noBoard},
		{"no sequence", noSeq},
		{"negative width", negative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, snap, err := DecodeSnapshot(tt.data)
			assert.ErrorIs(t, err, ErrIncompleteFrame)
			assert.Nil(t, snap)
		})
	}
}

func TestEncodeRejectsOversizedSnapshot(t *testing.T) {
	snap := &domain.Snapshot{Width: 100, Height: 100}
	for i := 0; i < 20000; i++ {
		snap.Snake = append(snap.Snake, domain.Coord{X: int32(i % 100), Y: int32(i / 100 % 100)})
	}

	_, err := EncodeSnapshot(1, snap)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestEncodeNilSnapshot(t *testing.T) {
	_, err := EncodeSnapshot(1, nil)
	assert.Error(t, err)
}

func TestListenerDropsStaleSequence(t *testing.T) {
	l := newListener(nil, nil)

	assert.True(t, l.accept("a", 5))
	assert.False(t, l.accept("a", 5))
	assert.False(t, l.accept("a", 4))
	assert.True(t, l.accept("b", 1))
	assert.True(t, l.accept("a", 6))
}

func TestPublishToListenerOverLoopback(t *testing.T) {
	recvConn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	require.NoError(t, err)
	listener := newListener(recvConn, recvConn.LocalAddr().(*net.UDPAddr))
	defer listener.Close()

	sendConn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	require.NoError(t, err)
	pub := &Publisher{
		conn:      sendConn,
		localAddr: sendConn.LocalAddr().(*net.UDPAddr),
		groupAddr: listener.Address(),
	}
	defer pub.Close()

	require.NoError(t, pub.Publish(sampleSnapshot()))

	got, from, err := listener.ReceiveWithTimeout(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, pub.LocalPort(), from.Port)
	assert.Equal(t, sampleSnapshot(), got)
}
