package taxbook

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
)

// Kind is the first component of a bucket key. Buckets are listed Detail
// first, then Summary, then Total, then Static.
type Kind int

const (
	Detail Kind = iota
	Summary
	Total
	Static // presentation values that are not aggregated
)

func (k Kind) String() string {
	switch k {
	case Detail:
		return "detail"
	case Summary:
		return "summary"
	case Total:
		return "total"
	case Static:
		return "static"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Key identifies a bucket in a store. Keys order by kind, then order, then name.
type Key struct {
	Kind  Kind
	Order int
	Name  string
}

// Compare returns -1, 0, +1 when k sorts before, equal or after o.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.Kind, o.Kind); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Order, o.Order); c != 0 {
		return c
	}
	return cmp.Compare(k.Name, o.Name)
}

func (k Key) String() string { return fmt.Sprintf("%s/%d/%s", k.Kind, k.Order, k.Name) }

// Bucket is an aggregation cell of a BucketStore.
type Bucket interface {
	Key() Key
	// ID is stable for the life of the store, it is used for cross references.
	ID() int
	// IsIdle reports whether both current and prior values are zero.
	IsIdle() bool
	// IsPriced reports whether the bucket holds units of a priced asset.
	IsPriced() bool
}

// bucketKey is embedded by every bucket type.
type bucketKey struct {
	id  int
	key Key
}

func (b bucketKey) Key() Key     { return b.key }
func (b bucketKey) ID() int      { return b.id }
func (b bucketKey) Name() string { return b.key.Name }
func (b bucketKey) Kind() Kind   { return b.key.Kind }

// NoParent is the parent ID of a bucket that has none.
const NoParent = -1

// totalName is the name of the single Total bucket of a store.
const totalName = "Total"

// BucketStore is an ordered set of buckets. Buckets are created on first
// reference and never re-keyed.
type BucketStore[B Bucket] struct {
	buckets []B // sorted by key
	nextID  int
	create  func(id int, key Key) B
}

// NewBucketStore returns an empty store that uses create to build new buckets.
func NewBucketStore[B Bucket](create func(id int, key Key) B) *BucketStore[B] {
	return &BucketStore[B]{create: create}
}

// BucketFor returns the bucket with that key, creating it if needed.
func (s *BucketStore[B]) BucketFor(kind Kind, order int, name string) B {
	key := Key{Kind: kind, Order: order, Name: name}
	// buckets are sorted: stop at the first key past the target, that's the insertion point.
	i := 0
	for ; i < len(s.buckets); i++ {
		c := s.buckets[i].Key().Compare(key)
		if c == 0 {
			return s.buckets[i]
		}
		if c > 0 {
			break
		}
	}
	b := s.create(s.nextID, key)
	s.nextID++
	s.buckets = slices.Insert(s.buckets, i, b)
	return b
}

// Find returns the bucket with that key, if it exists.
func (s *BucketStore[B]) Find(kind Kind, order int, name string) (B, bool) {
	key := Key{Kind: kind, Order: order, Name: name}
	for _, b := range s.buckets {
		c := b.Key().Compare(key)
		if c == 0 {
			return b, true
		}
		if c > 0 {
			break
		}
	}
	var zero B
	return zero, false
}

// ByID returns the bucket with that ID, if it is still in the store.
func (s *BucketStore[B]) ByID(id int) (B, bool) {
	for _, b := range s.buckets {
		if b.ID() == id {
			return b, true
		}
	}
	var zero B
	return zero, false
}

// TotalsBucket returns the single Total bucket.
func (s *BucketStore[B]) TotalsBucket() B { return s.BucketFor(Total, 0, totalName) }

// PruneEmpty removes the Detail buckets that are idle.
func (s *BucketStore[B]) PruneEmpty() { s.PruneDetail(B.IsIdle) }

// PruneNonPriced removes the Detail buckets that do not hold priced assets.
func (s *BucketStore[B]) PruneNonPriced() {
	s.PruneDetail(func(b B) bool { return !b.IsPriced() })
}

// PruneDetail removes the Detail buckets for which drop returns true.
func (s *BucketStore[B]) PruneDetail(drop func(B) bool) {
	s.buckets = slices.DeleteFunc(s.buckets, func(b B) bool {
		return b.Key().Kind == Detail && drop(b)
	})
}

// Clear removes every bucket of a kind.
func (s *BucketStore[B]) Clear(kind Kind) {
	s.buckets = slices.DeleteFunc(s.buckets, func(b B) bool { return b.Key().Kind == kind })
}

// Len returns the number of buckets.
func (s *BucketStore[B]) Len() int { return len(s.buckets) }

// All iterates over buckets in key order.
func (s *BucketStore[B]) All() iter.Seq[B] {
	return func(yield func(B) bool) {
		for _, b := range s.buckets {
			if !yield(b) {
				return
			}
		}
	}
}

// OfKind iterates over buckets of a single kind in key order.
func (s *BucketStore[B]) OfKind(kind Kind) iter.Seq[B] {
	return func(yield func(B) bool) {
		for _, b := range s.buckets {
			k := b.Key().Kind
			if k < kind {
				continue
			}
			if k > kind {
				return
			}
			if !yield(b) {
				return
			}
		}
	}
}
