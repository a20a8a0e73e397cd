// Package interval provides a closed-interval map backed by a B-tree,
// used by the parser package to store reserved field-number and
// enum-value-number ranges and to query them in O(log n) rather than by
// linear scan.
package interval

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/tidwall/btree"
)

// Map is an interval map, which maps disjoint closed intervals with
// endpoints in K to values of type V. Insert reports (rather than
// silently allowing) any overlap with an interval already present, which
// is exactly the shape of the "do these reserved ranges overlap" check.
//
// A zero value is ready to use.
type Map[K cmp.Ordered, V any] struct {
	// Keys in this map are the ends of intervals in the map.
	tree btree.Map[K, *entry[K, V]]
}

// Interval is an entry returned by [Map.Get] or [Map.Insert].
type Interval[K cmp.Ordered, V any] struct {
	// The range for this interval.
	Start, End K

	// The value associated with it.
	Value *V
}

// Relation classifies how a range passed to [Map.Insert] related to the
// interval it collided with, so a caller can report a collision more
// precisely than just "these ranges overlap".
type Relation int

const (
	// NoOverlap means the insert succeeded; there is no colliding interval.
	NoOverlap Relation = iota
	// Contains means the inserted range fully contains the interval it
	// collided with (e.g. "reserved 1 to 20" after "reserved 5 to 10").
	Contains
	// ContainedBy means the inserted range is fully contained by the
	// interval it collided with (e.g. "reserved 5 to 10" after "reserved
	// 1 to 20").
	ContainedBy
	// PartialOverlap means neither range contains the other; they share
	// only some endpoints in the middle (e.g. "reserved 1 to 10" after
	// "reserved 5 to 15").
	PartialOverlap
)

func relate[K cmp.Ordered](start, end, exStart, exEnd K) Relation {
	switch {
	case start <= exStart && end >= exEnd:
		return Contains
	case start >= exStart && end <= exEnd:
		return ContainedBy
	default:
		return PartialOverlap
	}
}

// Get looks up the interval which contains key, if one exists.
//
// If no such interval exists, the Value of the returned [Interval] will be
// nil.
func (m *Map[K, V]) Get(key K) Interval[K, V] {
	it := m.tree.Iter()
	found := it.Seek(key)

	if !found || key < it.Value().start {
		// Check that the interval actually contains key. It is implicit
		// already that key <= end.
		return Interval[K, V]{}
	}

	return Interval[K, V]{
		Start: it.Value().start,
		End:   it.Key(),
		Value: &it.Value().value,
	}
}

// Intervals returns an iterator over the intervals in this map, in order.
func (m *Map[K, V]) Intervals() iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		it := m.tree.Iter()
		more := it.First()
		for more {
			if !yield(Interval[K, V]{
				Start: it.Value().start,
				End:   it.Key(),
				Value: &it.Value().value,
			}) {
				return
			}
			more = it.Next()
		}
	}
}

// Insert inserts a new interval into this map, with the given associated
// value. Both endpoints are inclusive.
//
// If [start, end] overlaps any interval present in this map, this function
// will return one interval that overlaps with it (when several do, not
// necessarily the one with the least start), along with how the two
// ranges relate. This case is distinguished by
// overlap.Value != nil; the caller is expected to treat that as a
// collision and not actually add a second entry.
func (m *Map[K, V]) Insert(start, end K, value V) (overlap Interval[K, V], rel Relation) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}

	// We need to deal with five cases. Let start and end be a and b here.
	//
	// 1. [a, b] does not overlap any intervals.
	// 2. [a, b] is a subset of an interval.
	// 3. [a, b] intersects the greatest interval before it.
	// 4. [a, b] intersects the least interval after it.
	// 5. [a, b] contains an interval.

	it := m.tree.Iter()
	if !it.Seek(start) {
		// Either the map is empty, or there is no interval with a <= d, which
		// means that c <= d < a <= b for all intervals. This is a degenerate
		// version of case (1).
		m.tree.Set(end, &entry[K, V]{start: start, value: value})
		return Interval[K, V]{}, NoOverlap
	}

	switch {
	case end < it.Value().start:
		// We have that a <= b < c <= d, where [c, d] is the least interval
		// with a <= d. This is case (1).
		m.tree.Set(end, &entry[K, V]{start: start, value: value})
		return Interval[K, V]{}, NoOverlap

	case end <= it.Key():
		// We instead have that c <= b <= d with a <= d. This is case (2)
		// when c <= a, and case (4) when a < c.
		iv := Interval[K, V]{Start: it.Value().start, End: it.Key(), Value: &it.Value().value}
		return iv, relate(start, end, iv.Start, iv.End)
	}

	// To check for case (3), we need c <= a <= d <= b, where [c, d) is the
	// greatest interval with d <= b.
	it.Seek(end)
	notFirst := it.Prev()
	if notFirst && start <= it.Key() {
		// This is case (3), and also case (5): a <= c <= d <= b.
		iv := Interval[K, V]{Start: it.Value().start, End: it.Key(), Value: &it.Value().value}
		return iv, relate(start, end, iv.Start, iv.End)
	}

	if notFirst {
		it.Next() // Undo the Prev() above, if it succeeded.
	}

	// By process of elimination, this must be case (4): a <= c <= b <= d,
	// where [c, d) is the least interval with b <= d.
	iv := Interval[K, V]{Start: it.Value().start, End: it.Key(), Value: &it.Value().value}
	return iv, relate(start, end, iv.Start, iv.End)
}

type entry[K cmp.Ordered, V any] struct {
	start K
	value V
}
