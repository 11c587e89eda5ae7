package object

import (
	"math/rand/v2"

	"github.com/tomz197/catcher/internal/physics"
)

// ID identifies a pickup. The lower 32 bits are a slot index and the upper
// 32 bits a generation that bumps on destroy, so an ID held past its
// pickup's lifetime never resolves to a newer pickup in the same slot.
type ID uint64

func newID(index, generation uint32) ID {
	return ID(uint64(generation)<<32 | uint64(index))
}

func (id ID) index() uint32      { return uint32(id) }
func (id ID) generation() uint32 { return uint32(id >> 32) }

// Kind is the pickup variant.
type Kind uint8

const (
	KindCommon Kind = iota // Regular dopamine
	KindRare               // The "THC" variant
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCommon:
		return "dopamine"
	case KindRare:
		return "thc"
	default:
		return "unknown"
	}
}

// KindSelector picks the kind for a new pickup.
type KindSelector interface {
	Select(r *rand.Rand) Kind
}

// RareOdds selects KindRare with the given probability and KindCommon otherwise.
type RareOdds float64

// Select implements KindSelector.
func (o RareOdds) Select(r *rand.Rand) Kind {
	if r.Float64() < float64(o) {
		return KindRare
	}
	return KindCommon
}

// Pickup is one live collectible.
type Pickup struct {
	ID   ID
	Pos  physics.Vec
	Kind Kind
}

// noSlot marks a slot index with no live pickup.
const noSlot = -1

// maxPrealloc bounds the storage NewRegistry reserves up front.
const maxPrealloc = 256

// Registry owns the live pickup set. Records are stored densely; Count is
// the length of that storage, so it cannot drift from the set it describes.
type Registry struct {
	live        []Pickup
	dense       []int32  // slot index -> position in live, or noSlot
	generations []uint32 // slot index -> current generation
	freeList    []uint32
}

// NewRegistry creates an empty registry with room for capacity pickups.
// Storage beyond maxPrealloc grows on demand.
func NewRegistry(capacity int) *Registry {
	capacity = min(max(capacity, 0), maxPrealloc)
	return &Registry{
		live:        make([]Pickup, 0, capacity),
		dense:       make([]int32, 0, capacity),
		generations: make([]uint32, 0, capacity),
	}
}

// Spawn places a new pickup at an independent uniform draw per axis in
// [-halfExtent, halfExtent) and returns its ID.
func (r *Registry) Spawn(rng *rand.Rand, sel KindSelector, halfExtent float64) ID {
	pos := physics.Vec{
		X: (rng.Float64()*2 - 1) * halfExtent,
		Y: (rng.Float64()*2 - 1) * halfExtent,
	}
	return r.Insert(pos, sel.Select(rng))
}

// Insert adds a pickup at an explicit position.
func (r *Registry) Insert(pos physics.Vec, kind Kind) ID {
	var idx uint32
	if n := len(r.freeList); n > 0 {
		idx = r.freeList[n-1]
		r.freeList = r.freeList[:n-1]
	} else {
		idx = uint32(len(r.generations))
		r.generations = append(r.generations, 0)
		r.dense = append(r.dense, noSlot)
	}

	id := newID(idx, r.generations[idx])
	r.dense[idx] = int32(len(r.live))
	r.live = append(r.live, Pickup{ID: id, Pos: pos, Kind: kind})
	return id
}

// Destroy removes the pickup with the given ID. It reports whether a pickup
// was removed; destroying an unknown or already destroyed ID is a no-op.
func (r *Registry) Destroy(id ID) bool {
	pos, ok := r.lookup(id)
	if !ok {
		return false
	}

	// Swap-remove keeps live dense
	last := len(r.live) - 1
	if pos != last {
		moved := r.live[last]
		r.live[pos] = moved
		r.dense[moved.ID.index()] = int32(pos)
	}
	r.live = r.live[:last]

	idx := id.index()
	r.dense[idx] = noSlot
	r.generations[idx]++
	r.freeList = append(r.freeList, idx)
	return true
}

// Clear destroys every live pickup, appending their IDs to dst.
func (r *Registry) Clear(dst []ID) []ID {
	start := len(dst)
	dst = r.IDs(dst)
	for _, id := range dst[start:] {
		r.Destroy(id)
	}
	return dst
}

// Alive reports whether id refers to a live pickup.
func (r *Registry) Alive(id ID) bool {
	_, ok := r.lookup(id)
	return ok
}

// Get returns the pickup for id.
func (r *Registry) Get(id ID) (Pickup, bool) {
	pos, ok := r.lookup(id)
	if !ok {
		return Pickup{}, false
	}
	return r.live[pos], true
}

// Count returns the number of live pickups.
func (r *Registry) Count() int {
	return len(r.live)
}

// IDs appends the IDs of all live pickups to dst.
func (r *Registry) IDs(dst []ID) []ID {
	for i := range r.live {
		dst = append(dst, r.live[i].ID)
	}
	return dst
}

// Each calls fn for every live pickup. fn must not mutate the registry.
func (r *Registry) Each(fn func(p Pickup)) {
	for i := range r.live {
		fn(r.live[i])
	}
}

func (r *Registry) lookup(id ID) (int, bool) {
	idx := id.index()
	if int(idx) >= len(r.generations) || r.generations[idx] != id.generation() {
		return 0, false
	}
	pos := r.dense[idx]
	if pos == noSlot {
		return 0, false
	}
	return int(pos), true
}
