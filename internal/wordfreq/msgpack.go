package wordfreq

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	maxMsgpackDepth = 8
	maxMsgpackLen   = 1 << 26
)

// decodeMsgpack decodes a single msgpack value. Maps decode to map[any]any,
// arrays to []any, integers to int64 (uint64 above MaxInt64), floats to
// float64. Extension types are not supported.
func decodeMsgpack(r io.Reader) (any, error) {
	d := decoder{r: bufio.NewReader(r)}
	return d.value(0)
}

type decoder struct {
	r *bufio.Reader
}

func (d *decoder) value(depth int) (any, error) {
	if depth > maxMsgpackDepth {
		return nil, fmt.Errorf("msgpack nesting deeper than %d", maxMsgpackDepth)
	}
	b, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}

	switch {
	case b <= 0x7f:
		return int64(b), nil
	case b >= 0xe0:
		return int64(int8(b)), nil
	case b >= 0xa0 && b <= 0xbf:
		return d.str(int(b & 0x1f))
	case b >= 0x90 && b <= 0x9f:
		return d.array(int(b&0x0f), depth)
	case b >= 0x80 && b <= 0x8f:
		return d.dict(int(b&0x0f), depth)
	}

	switch b {
	case 0xc0:
		return nil, nil
	case 0xc2:
		return false, nil
	case 0xc3:
		return true, nil
	case 0xc4, 0xc5, 0xc6:
		n, err := d.length(b - 0xc4)
		if err != nil {
			return nil, err
		}
		return d.bytes(n)
	case 0xca:
		v, err := d.readUint(4)
		if err != nil {
			return nil, err
		}
		return float64(math.Float32frombits(uint32(v))), nil
	case 0xcb:
		v, err := d.readUint(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(v), nil
	case 0xcc, 0xcd, 0xce, 0xcf:
		v, err := d.readUint(1 << (b - 0xcc))
		if err != nil {
			return nil, err
		}
		if v > math.MaxInt64 {
			return v, nil
		}
		return int64(v), nil
	case 0xd0:
		v, err := d.readUint(1)
		return int64(int8(v)), err
	case 0xd1:
		v, err := d.readUint(2)
		return int64(int16(v)), err
	case 0xd2:
		v, err := d.readUint(4)
		return int64(int32(v)), err
	case 0xd3:
		v, err := d.readUint(8)
		return int64(v), err
	case 0xd9, 0xda, 0xdb:
		n, err := d.length(b - 0xd9)
		if err != nil {
			return nil, err
		}
		return d.str(n)
	case 0xdc, 0xdd:
		n, err := d.length(b - 0xdc + 1)
		if err != nil {
			return nil, err
		}
		return d.array(n, depth)
	case 0xde, 0xdf:
		n, err := d.length(b - 0xde + 1)
		if err != nil {
			return nil, err
		}
		return d.dict(n, depth)
	default:
		return nil, fmt.Errorf("unsupported msgpack prefix 0x%x", b)
	}
}

// length reads a big-endian length of 1, 2 or 4 bytes (width 0, 1, 2).
func (d *decoder) length(width byte) (int, error) {
	v, err := d.readUint(1 << width)
	if err != nil {
		return 0, err
	}
	if v > maxMsgpackLen {
		return 0, fmt.Errorf("msgpack length %d too large", v)
	}
	return int(v), nil
}

func (d *decoder) readUint(size int) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(d.r, buf[8-size:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func (d *decoder) array(n, depth int) ([]any, error) {
	out := make([]any, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		v, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (d *decoder) dict(n, depth int) (map[any]any, error) {
	out := make(map[any]any, min(n, 1024))
	for i := 0; i < n; i++ {
		k, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		if _, ok := k.([]byte); ok {
			k = string(k.([]byte))
		}
		if _, ok := k.([]any); ok {
			return nil, fmt.Errorf("msgpack map key of type array")
		}
		if _, ok := k.(map[any]any); ok {
			return nil, fmt.Errorf("msgpack map key of type map")
		}
		v, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (d *decoder) str(n int) (string, error) {
	b, err := d.bytes(n)
	return string(b), err
}

func (d *decoder) bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
