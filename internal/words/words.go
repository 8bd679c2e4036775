// Package words provides the storage substrate for mesh buffers: byte
// slices whose backing arrays are 32-bit aligned, typed views over them,
// and the word-level interleave primitive.
//
// All views returned by this package alias the input slice; writing
// through a view writes the underlying bytes. Views are only valid for
// slices allocated by Alloc (or sliced from one at 4-byte offsets).
package words

import "unsafe"

// Alloc returns a zeroed byte slice of n bytes whose backing array is
// 4-byte aligned, so 32-bit typed views over it are always valid.
func Alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	backing := make([]uint32, (n+3)/4)
	return unsafe.Slice((*byte)(unsafe.Pointer(&backing[0])), n) //nolint:gosec // aligned backing allocated above
}

// Clone returns an aligned copy of b.
func Clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	c := Alloc(len(b))
	copy(c, b)
	return c
}

// FromFloat32 returns an aligned byte slice holding a copy of v.
func FromFloat32(v []float32) []byte {
	b := Alloc(4 * len(v))
	copy(AsFloat32(b), v)
	return b
}

// FromUint32 returns an aligned byte slice holding a copy of v.
func FromUint32(v []uint32) []byte {
	b := Alloc(4 * len(v))
	copy(AsUint32(b), v)
	return b
}

// FromUint16 returns an aligned byte slice holding a copy of v.
func FromUint16(v []uint16) []byte {
	b := Alloc(2 * len(v))
	copy(AsUint16(b), v)
	return b
}

// AsFloat32 reinterprets b as a float32 slice. Trailing bytes that do
// not fill a whole element are dropped.
func AsFloat32(b []byte) []float32 {
	if len(b) < 4 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), len(b)/4) //nolint:gosec // alignment guaranteed by Alloc
}

// AsUint32 reinterprets b as a uint32 slice.
func AsUint32(b []byte) []uint32 {
	if len(b) < 4 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), len(b)/4) //nolint:gosec // alignment guaranteed by Alloc
}

// AsInt32 reinterprets b as an int32 slice.
func AsInt32(b []byte) []int32 {
	if len(b) < 4 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&b[0])), len(b)/4) //nolint:gosec // alignment guaranteed by Alloc
}

// AsUint16 reinterprets b as a uint16 slice.
func AsUint16(b []byte) []uint16 {
	if len(b) < 2 {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(&b[0])), len(b)/2) //nolint:gosec // alignment guaranteed by Alloc
}

// AsInt16 reinterprets b as an int16 slice.
func AsInt16(b []byte) []int16 {
	if len(b) < 2 {
		return nil
	}
	return unsafe.Slice((*int16)(unsafe.Pointer(&b[0])), len(b)/2) //nolint:gosec // alignment guaranteed by Alloc
}

// AsInt8 reinterprets b as an int8 slice.
func AsInt8(b []byte) []int8 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*int8)(unsafe.Pointer(&b[0])), len(b)) //nolint:gosec // same layout as []byte
}

// Interleave packs parallel word arrays into one array. footprints[i]
// holds the number of words array i contributes per vertex; the combined
// stride is their sum. Word w of vertex v of array i lands at
// v*stride + offset(i) + w, where offset(i) is the sum of the footprints
// before i.
//
// Every array must hold a whole number of vertices and all arrays must
// describe the same vertex count; Interleave does not validate either,
// the caller (Geometry.Interleave) does.
func Interleave(arrays [][]uint32, footprints []int) (packed []uint32, stride int) {
	total := 0
	for i, a := range arrays {
		total += len(a)
		stride += footprints[i]
	}
	packed = make([]uint32, total)

	offset := 0
	for i, a := range arrays {
		size := footprints[i]
		for j, w := range a {
			packed[(j/size)*stride+offset+(j%size)] = w
		}
		offset += size
	}
	return packed, stride
}
