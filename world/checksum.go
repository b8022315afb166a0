package world

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Checksum digests the physical state of every entity. Two worlds built and
// stepped the same way produce the same value.
func (w *World) Checksum() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)
	for _, e := range w.entities {
		buf = buf[:0]
		for _, f := range [...]float64{
			e.Position.X, e.Position.Y,
			e.Velocity.X, e.Velocity.Y,
			e.Width, e.Height,
		} {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
		}
		var flags byte
		if e.Fixed {
			flags |= 1
		}
		if e.Colliding {
			flags |= 1 << 1
		}
		if e.TouchingGround {
			flags |= 1 << 2
		}
		buf = append(buf, flags)
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}
