// Package wire implements a best-effort binary encoding for dictz
// containers: a big-endian uint32-length-prefixed sequence of (key, value)
// pairs in iteration order. For the multi-valued containers each value is
// itself a length-prefixed sequence representing a set. Decoding
// reconstructs containers through their list constructors.
//
// The encoding is an external facility, not part of the containers'
// correctness contract, and makes no cross-toolchain interoperability
// promises.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/ccoveille/go-safecast/v2"
	"github.com/jackc/pgio"

	"github.com/authzed/dictz"
	"github.com/authzed/dictz/orderedmap"
	"github.com/authzed/dictz/orderedset"
)

// Codec describes how a single element of type T is framed on the wire.
type Codec[T any] struct {
	// Append appends the encoded element to dst and returns the extended
	// buffer.
	Append func(dst []byte, value T) []byte

	// Decode reads one element from the front of src, returning the element
	// and the number of bytes consumed.
	Decode func(src []byte) (value T, n int, err error)
}

// String returns a codec framing a string as a uint32 length prefix
// followed by its bytes.
func String() Codec[string] {
	return Codec[string]{
		Append: func(dst []byte, value string) []byte {
			length, _ := safecast.Convert[uint32](len(value))
			dst = pgio.AppendUint32(dst, length)
			return append(dst, value...)
		},
		Decode: func(src []byte) (string, int, error) {
			length, off, err := readUint32(src)
			if err != nil {
				return "", 0, err
			}
			end := off + int(length)
			if len(src) < end {
				return "", 0, fmt.Errorf("short buffer: string body wants %d bytes, have %d", length, len(src)-off)
			}
			return string(src[off:end]), end, nil
		},
	}
}

// Uint64 returns a codec framing a uint64 as 8 big-endian bytes.
func Uint64() Codec[uint64] {
	return Codec[uint64]{
		Append: pgio.AppendUint64,
		Decode: func(src []byte) (uint64, int, error) {
			if len(src) < 8 {
				return 0, 0, fmt.Errorf("short buffer: uint64 wants 8 bytes, have %d", len(src))
			}
			return binary.BigEndian.Uint64(src), 8, nil
		},
	}
}

func readUint32(src []byte) (uint32, int, error) {
	if len(src) < 4 {
		return 0, 0, fmt.Errorf("short buffer: length prefix wants 4 bytes, have %d", len(src))
	}
	return binary.BigEndian.Uint32(src), 4, nil
}

func appendPairs[K, V comparable](dst []byte, pairs []orderedmap.Pair[K, V], key Codec[K], value Codec[V]) ([]byte, error) {
	count, err := safecast.Convert[uint32](len(pairs))
	if err != nil {
		return nil, fmt.Errorf("container too large to encode: %w", err)
	}
	dst = pgio.AppendUint32(dst, count)
	for _, p := range pairs {
		dst = key.Append(dst, p.Key)
		dst = value.Append(dst, p.Value)
	}
	return dst, nil
}

func decodePairs[K, V comparable](src []byte, key Codec[K], value Codec[V]) ([]orderedmap.Pair[K, V], int, error) {
	count, off, err := readUint32(src)
	if err != nil {
		return nil, 0, err
	}
	// The count is untrusted input; cap the preallocation.
	pairs := make([]orderedmap.Pair[K, V], 0, min(count, 1024))
	for i := uint32(0); i < count; i++ {
		k, n, err := key.Decode(src[off:])
		if err != nil {
			return nil, 0, fmt.Errorf("pair %d key: %w", i, err)
		}
		off += n
		v, n, err := value.Decode(src[off:])
		if err != nil {
			return nil, 0, fmt.Errorf("pair %d value: %w", i, err)
		}
		off += n
		pairs = append(pairs, orderedmap.Pair[K, V]{Key: k, Value: v})
	}
	return pairs, off, nil
}

// AppendBiDict appends the encoded forward entries of a BiDict to dst.
func AppendBiDict[K, V comparable](dst []byte, d *dictz.BiDict[K, V], key Codec[K], value Codec[V]) ([]byte, error) {
	return appendPairs(dst, d.Pairs(), key, value)
}

// DecodeBiDict decodes a BiDict encoded by AppendBiDict, consuming the
// entire buffer.
func DecodeBiDict[K, V comparable](src []byte, key Codec[K], value Codec[V]) (*dictz.BiDict[K, V], error) {
	pairs, n, err := decodePairs(src, key, value)
	if err != nil {
		return nil, err
	}
	if n != len(src) {
		return nil, fmt.Errorf("trailing data: %d bytes after container", len(src)-n)
	}
	return dictz.BiDictFromPairs(pairs), nil
}

// AppendMultiDict appends the encoded entries of a MultiDict to dst: a
// uint32 key count, then each key followed by its length-prefixed value set.
func AppendMultiDict[K, V comparable](dst []byte, d *dictz.MultiDict[K, V], key Codec[K], value Codec[V]) ([]byte, error) {
	return appendSetValued(dst, d.Sets(), key, value)
}

// DecodeMultiDict decodes a MultiDict encoded by AppendMultiDict, consuming
// the entire buffer.
func DecodeMultiDict[K, V comparable](src []byte, key Codec[K], value Codec[V]) (*dictz.MultiDict[K, V], error) {
	pairs, n, err := decodeSetValued(src, key, value)
	if err != nil {
		return nil, err
	}
	if n != len(src) {
		return nil, fmt.Errorf("trailing data: %d bytes after container", len(src)-n)
	}
	return dictz.MultiDictFromPairs(pairs), nil
}

// AppendMultiBiDict appends the encoded forward entries of a MultiBiDict to
// dst, in the same format as AppendMultiDict. The reverse index is derived
// state and is not encoded.
func AppendMultiBiDict[K, V comparable](dst []byte, d *dictz.MultiBiDict[K, V], key Codec[K], value Codec[V]) ([]byte, error) {
	return appendSetValued(dst, d.Sets(), key, value)
}

// DecodeMultiBiDict decodes a MultiBiDict encoded by AppendMultiBiDict,
// consuming the entire buffer and rederiving the reverse index.
func DecodeMultiBiDict[K, V comparable](src []byte, key Codec[K], value Codec[V]) (*dictz.MultiBiDict[K, V], error) {
	pairs, n, err := decodeSetValued(src, key, value)
	if err != nil {
		return nil, err
	}
	if n != len(src) {
		return nil, fmt.Errorf("trailing data: %d bytes after container", len(src)-n)
	}
	return dictz.MultiBiDictFromPairs(pairs), nil
}

func appendSetValued[K, V comparable](dst []byte, sets *orderedmap.Map[K, *orderedset.Set[V]], key Codec[K], value Codec[V]) ([]byte, error) {
	count, err := safecast.Convert[uint32](sets.Len())
	if err != nil {
		return nil, fmt.Errorf("container too large to encode: %w", err)
	}
	dst = pgio.AppendUint32(dst, count)
	for k, set := range sets.All() {
		dst = key.Append(dst, k)
		setLen, err := safecast.Convert[uint32](set.Len())
		if err != nil {
			return nil, fmt.Errorf("value set too large to encode: %w", err)
		}
		dst = pgio.AppendUint32(dst, setLen)
		for v := range set.All() {
			dst = value.Append(dst, v)
		}
	}
	return dst, nil
}

func decodeSetValued[K, V comparable](src []byte, key Codec[K], value Codec[V]) ([]orderedmap.Pair[K, V], int, error) {
	count, off, err := readUint32(src)
	if err != nil {
		return nil, 0, err
	}
	var pairs []orderedmap.Pair[K, V]
	for i := uint32(0); i < count; i++ {
		k, n, err := key.Decode(src[off:])
		if err != nil {
			return nil, 0, fmt.Errorf("entry %d key: %w", i, err)
		}
		off += n
		setLen, n, err := readUint32(src[off:])
		if err != nil {
			return nil, 0, fmt.Errorf("entry %d set length: %w", i, err)
		}
		off += n
		for j := uint32(0); j < setLen; j++ {
			v, n, err := value.Decode(src[off:])
			if err != nil {
				return nil, 0, fmt.Errorf("entry %d value %d: %w", i, j, err)
			}
			off += n
			pairs = append(pairs, orderedmap.Pair[K, V]{Key: k, Value: v})
		}
	}
	return pairs, off, nil
}
