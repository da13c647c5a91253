package network

import (
	"errors"
	"fmt"
	"math"
	"time"

	"powersnake/internal/domain"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrPayloadTooLarge = errors.New("payload exceeds one datagram")
	ErrIncompleteFrame = errors.New("frame is missing required fields")
)

// Field numbers of the snapshot frame.
const (
	fieldSeq              protowire.Number = 1
	fieldTick             protowire.Number = 2
	fieldWidth            protowire.Number = 3
	fieldHeight           protowire.Number = 4
	fieldState            protowire.Number = 5
	fieldSnake            protowire.Number = 6
	fieldDirection        protowire.Number = 7
	fieldPowerUp          protowire.Number = 8
	fieldPowerUpRemaining protowire.Number = 9
	fieldFood             protowire.Number = 10
	fieldBigFood          protowire.Number = 11
	fieldObstacle         protowire.Number = 12
	fieldScore            protowire.Number = 13
	fieldHighScore        protowire.Number = 14
	fieldLevel            protowire.Number = 15
	fieldSpeed            protowire.Number = 16
	fieldFinalScore       protowire.Number = 17
	fieldFinalLevel       protowire.Number = 18
)

// Nested messages.
const (
	fieldCoordX protowire.Number = 1
	fieldCoordY protowire.Number = 2

	fieldFoodPos       protowire.Number = 1
	fieldFoodIsBig     protowire.Number = 2
	fieldFoodSize      protowire.Number = 3
	fieldFoodRemaining protowire.Number = 4

	fieldClusterCell protowire.Number = 1
)

// EncodeSnapshot serializes snap in protobuf wire format. seq lets receivers
// drop reordered datagrams.
func EncodeSnapshot(seq int64, snap *domain.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, errors.New("encode snapshot: nil snapshot")
	}

	var b []byte
	b = appendInt(b, fieldSeq, seq)
	b = appendInt(b, fieldTick, snap.Tick)
	b = appendInt(b, fieldWidth, int64(snap.Width))
	b = appendInt(b, fieldHeight, int64(snap.Height))
	b = appendInt(b, fieldState, int64(snap.State))

	for _, c := range snap.Snake {
		b = appendMessage(b, fieldSnake, appendCoord(nil, c))
	}

	b = appendInt(b, fieldDirection, int64(snap.Direction))
	if snap.PowerUp {
		b = protowire.AppendTag(b, fieldPowerUp, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	b = appendInt(b, fieldPowerUpRemaining, snap.PowerUpRemaining.Milliseconds())

	if snap.Food != nil {
		b = appendMessage(b, fieldFood, appendFood(nil, snap.Food))
	}
	if snap.BigFood != nil {
		b = appendMessage(b, fieldBigFood, appendFood(nil, snap.BigFood))
	}

	for _, cluster := range snap.Obstacles {
		var cb []byte
		for _, c := range cluster {
			cb = appendMessage(cb, fieldClusterCell, appendCoord(nil, c))
		}
		b = appendMessage(b, fieldObstacle, cb)
	}

	b = appendInt(b, fieldScore, int64(snap.Score))
	b = appendInt(b, fieldHighScore, int64(snap.HighScore))
	b = appendInt(b, fieldLevel, int64(snap.Level))
	b = appendDouble(b, fieldSpeed, snap.Speed)
	b = appendInt(b, fieldFinalScore, int64(snap.FinalScore))
	b = appendInt(b, fieldFinalLevel, int64(snap.FinalLevel))

	if len(b) > MaxPayload {
		return nil, fmt.Errorf("encode snapshot (%d bytes): %w", len(b), ErrPayloadTooLarge)
	}
	return b, nil
}

// DecodeSnapshot parses a frame written by EncodeSnapshot. Unknown fields are
// skipped.
func DecodeSnapshot(data []byte) (int64, *domain.Snapshot, error) {
	if len(data) > MaxPayload {
		return 0, nil, fmt.Errorf("decode snapshot (%d bytes): %w", len(data), ErrPayloadTooLarge)
	}

	var seq int64
	snap := &domain.Snapshot{}

	err := walk(data, func(num protowire.Number, typ protowire.Type, v uint64, raw []byte) error {
		switch num {
		case fieldSeq:
			seq = int64(v)
		case fieldTick:
			snap.Tick = int64(v)
		case fieldWidth:
			snap.Width = int32(v)
		case fieldHeight:
			snap.Height = int32(v)
		case fieldState:
			snap.State = domain.SessionState(v)
		case fieldSnake:
			c, err := decodeCoord(raw)
			if err != nil {
				return fmt.Errorf("snake: %w", err)
			}
			snap.Snake = append(snap.Snake, c)
		case fieldDirection:
			snap.Direction = domain.Direction(v)
		case fieldPowerUp:
			snap.PowerUp = protowire.DecodeBool(v)
		case fieldPowerUpRemaining:
			snap.PowerUpRemaining = time.Duration(int64(v)) * time.Millisecond
		case fieldFood:
			f, err := decodeFood(raw)
			if err != nil {
				return fmt.Errorf("food: %w", err)
			}
			snap.Food = f
		case fieldBigFood:
			f, err := decodeFood(raw)
			if err != nil {
				return fmt.Errorf("big food: %w", err)
			}
			snap.BigFood = f
		case fieldObstacle:
			cluster, err := decodeCluster(raw)
			if err != nil {
				return fmt.Errorf("obstacle: %w", err)
			}
			snap.Obstacles = append(snap.Obstacles, cluster)
		case fieldScore:
			snap.Score = int(int64(v))
		case fieldHighScore:
			snap.HighScore = int(int64(v))
		case fieldLevel:
			snap.Level = int(int64(v))
		case fieldSpeed:
			snap.Speed = math.Float64frombits(v)
		case fieldFinalScore:
			snap.FinalScore = int(int64(v))
		case fieldFinalLevel:
			snap.FinalLevel = int(int64(v))
		}
		return nil
	})
	if err != nil {
		return 0, nil, fmt.Errorf("decode snapshot: %w", err)
	}

	// Sequence numbers start at 1 and a rendered board needs both sides.
	if seq <= 0 {
		return 0, nil, fmt.Errorf("decode snapshot: no sequence number: %w", ErrIncompleteFrame)
	}
	if snap.Width <= 0 || snap.Height <= 0 {
		return 0, nil, fmt.Errorf("decode snapshot: board %dx%d: %w", snap.Width, snap.Height, ErrIncompleteFrame)
	}

	return seq, snap, nil
}

func appendInt(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendCoord(b []byte, c domain.Coord) []byte {
	b = appendInt(b, fieldCoordX, int64(c.X))
	return appendInt(b, fieldCoordY, int64(c.Y))
}

func appendFood(b []byte, f *domain.FoodView) []byte {
	b = appendMessage(b, fieldFoodPos, appendCoord(nil, f.Pos))
	if f.IsBig {
		b = protowire.AppendTag(b, fieldFoodIsBig, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	b = appendInt(b, fieldFoodSize, int64(f.Size))
	return appendDouble(b, fieldFoodRemaining, f.Remaining)
}

// walk calls fn for every field of a message. Varint and fixed64 values come
// in v, length-delimited payloads in raw.
func walk(data []byte, fn func(num protowire.Number, typ protowire.Type, v uint64, raw []byte) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		var (
			v   uint64
			raw []byte
		)

		switch typ {
		case protowire.VarintType:
			v, n = protowire.ConsumeVarint(data)
		case protowire.Fixed64Type:
			v, n = protowire.ConsumeFixed64(data)
		case protowire.BytesType:
			raw, n = protowire.ConsumeBytes(data)
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
			continue
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		if err := fn(num, typ, v, raw); err != nil {
			return err
		}
	}
	return nil
}

func decodeCoord(data []byte) (domain.Coord, error) {
	var c domain.Coord
	err := walk(data, func(num protowire.Number, _ protowire.Type, v uint64, _ []byte) error {
		switch num {
		case fieldCoordX:
			c.X = int32(v)
		case fieldCoordY:
			c.Y = int32(v)
		}
		return nil
	})
	return c, err
}

func decodeFood(data []byte) (*domain.FoodView, error) {
	f := &domain.FoodView{}
	err := walk(data, func(num protowire.Number, _ protowire.Type, v uint64, raw []byte) error {
		switch num {
		case fieldFoodPos:
			pos, err := decodeCoord(raw)
			if err != nil {
				return err
			}
			f.Pos = pos
		case fieldFoodIsBig:
			f.IsBig = protowire.DecodeBool(v)
		case fieldFoodSize:
			f.Size = int32(v)
		case fieldFoodRemaining:
			f.Remaining = math.Float64frombits(v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func decodeCluster(data []byte) ([]domain.Coord, error) {
	var cells []domain.Coord
	err := walk(data, func(num protowire.Number, _ protowire.Type, _ uint64, raw []byte) error {
		if num != fieldClusterCell {
			return nil
		}
		c, err := decodeCoord(raw)
		if err != nil {
			return err
		}
		cells = append(cells, c)
		return nil
	})
	return cells, err
}
