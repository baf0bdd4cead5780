package object

import (
	"encoding/binary"
	"strings"

	"github.com/zeebo/xxh3"
)

// HashKey is the lookup key of a hashable value. The variant is part of the
// key, so 1 and true never collide.
type HashKey struct {
	Type   Type
	Digest uint64
}

// KeyOf computes the hash key of o. Only null, booleans, integers and strings
// are hashable; ok is false for every other variant.
func KeyOf(o Object) (key HashKey, ok bool) {
	switch o := o.(type) {
	case *Null:
		return HashKey{Type: NullType, Digest: xxh3.Hash(nil)}, true

	case *Boolean:
		var b [1]byte
		if o.Value {
			b[0] = 1
		}

		return HashKey{Type: BooleanType, Digest: xxh3.Hash(b[:])}, true

	case *Integer:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(o.Value))

		return HashKey{Type: IntegerType, Digest: xxh3.Hash(b[:])}, true

	case *String:
		return HashKey{Type: StringType, Digest: xxh3.HashString(o.Value)}, true

	default:
		return HashKey{}, false
	}
}

// HashPair is an entry of a [Hash]: the original key value and its mapped
// value.
type HashPair struct {
	Key   Object
	Value Object
}

// Hash maps hashable keys to values. Lookup ignores order; iteration and
// display follow the order in which each key first appeared.
type Hash struct {
	pairs map[HashKey]HashPair
	order []HashKey
}

// NewHash returns an empty hash with room for n entries.
func NewHash(n int) *Hash {
	return &Hash{
		pairs: make(map[HashKey]HashPair, n),
		order: make([]HashKey, 0, n),
	}
}

// Put binds value to key, replacing any entry with an equal key. It must only
// be called while the hash is being built.
func (h *Hash) Put(k HashKey, key, value Object) {
	if _, ok := h.pairs[k]; !ok {
		h.order = append(h.order, k)
	}

	h.pairs[k] = HashPair{Key: key, Value: value}
}

// Lookup returns the value bound to k.
func (h *Hash) Lookup(k HashKey) (Object, bool) {
	p, ok := h.pairs[k]

	return p.Value, ok
}

// Len returns the number of entries.
func (h *Hash) Len() int { return len(h.order) }

// Pairs returns the entries in first-insertion order.
func (h *Hash) Pairs() []HashPair {
	pairs := make([]HashPair, len(h.order))
	for i, k := range h.order {
		pairs[i] = h.pairs[k]
	}

	return pairs
}

func (*Hash) Type() Type       { return HashType }
func (h *Hash) String() string { return h.Inspect() }

func (h *Hash) Inspect() string {
	parts := make([]string, 0, len(h.order))
	for _, p := range h.Pairs() {
		parts = append(parts, p.Key.Inspect()+": "+p.Value.Inspect())
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
