package interval_test

import (
	"testing"

	"github.com/protolex/proto3parse/internal/interval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsert(t *testing.T) {
	t.Parallel()
	type r struct {
		start, end int32
		value      string
	}

	tests := []struct {
		name    string
		ranges  []r
		want    string // non-"" is the overlap value expected for the last range.
		wantRel interval.Relation
	}{
		{
			name:   "empty-map",
			ranges: []r{{0, 9, "foo"}},
		},
		{
			name: "disjoint-above-existing",
			ranges: []r{
				{0, 9, "foo"},
				{30, 39, "bar"},
			},
		},
		{
			name: "disjoint-below-existing",
			ranges: []r{
				{30, 39, "bar"},
				{0, 9, "foo"},
			},
		},
		{
			name: "disjoint-between-two-existing",
			ranges: []r{
				{0, 9, "foo"},
				{30, 39, "bar"},
				{20, 25, "baz"},
			},
		},
		{
			name: "new-range-contained-by-existing",
			ranges: []r{
				{0, 9, "foo"},
				{1, 2, "baz"},
			},
			want:    "foo",
			wantRel: interval.ContainedBy,
		},
		{
			name: "new-range-exactly-matches-existing",
			ranges: []r{
				{0, 9, "foo"},
				{0, 9, "baz"},
			},
			want:    "foo",
			wantRel: interval.Contains, // start<=c && end>=d both hold on an exact match
		},
		{
			name: "new-range-touches-end-of-existing",
			ranges: []r{
				{0, 9, "foo"},
				{9, 12, "baz"},
			},
			want:    "foo",
			wantRel: interval.PartialOverlap,
		},
		{
			name: "new-range-touches-start-of-later-existing",
			ranges: []r{
				{0, 9, "foo"},
				{30, 39, "bar"},
				{20, 32, "baz"},
			},
			want:    "bar",
			wantRel: interval.PartialOverlap,
		},
		{
			name: "new-range-contains-existing",
			ranges: []r{
				{0, 9, "foo"},
				{-2, 12, "baz"},
			},
			want:    "foo",
			wantRel: interval.Contains,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := new(interval.Map[int32, string])
			for i, e := range tt.ranges {
				overlap, rel := m.Insert(e.start, e.end, e.value)
				if i < len(tt.ranges)-1 || tt.want == "" {
					require.Nil(t, overlap.Value)
					assert.Equal(t, interval.NoOverlap, rel)
				} else {
					require.NotNil(t, overlap.Value)
					assert.Equal(t, tt.want, *overlap.Value)
					assert.Equal(t, tt.wantRel, rel)
				}
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()
	m := new(interval.Map[int32, string])
	m.Insert(10, 19, "reserved-low")
	m.Insert(100, 199, "reserved-high")

	require.Nil(t, m.Get(5).Value)
	require.NotNil(t, m.Get(15).Value)
	assert.Equal(t, "reserved-low", *m.Get(15).Value)
	assert.Equal(t, "reserved-high", *m.Get(150).Value)
	require.Nil(t, m.Get(50).Value)
}

func TestIntervals(t *testing.T) {
	t.Parallel()
	m := new(interval.Map[int32, string])
	m.Insert(100, 199, "reserved-high")
	m.Insert(10, 19, "reserved-low")

	var got []string
	for iv := range m.Intervals() {
		got = append(got, *iv.Value)
	}
	assert.Equal(t, []string{"reserved-low", "reserved-high"}, got)
}
