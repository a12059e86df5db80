package loom

import (
	"math"
	"sort"
)

// UnknownHeight is the sentinel stored for rows that have not been measured.
const UnknownHeight float64 = -1

// DefaultEstimateHeight is the fallback used for unmeasured rows when no
// estimate is configured. Pixel hosts tend to keep it; cell hosts set the row
// height they actually produce.
const DefaultEstimateHeight float64 = 28

// heightEpsilon bounds float comparison when deciding whether a stored
// height actually changed. Two unknown entries always compare equal.
const heightEpsilon = 1e-3

// heightIndex is the index<->offset mapping a presentation strategy keeps.
// HeightStore is the general per-row implementation; the fixed-height
// strategy substitutes O(1) arithmetic behind the same contract, and the two
// must agree whenever all heights are uniform.
type heightIndex interface {
	Len() int
	Get(index int) float64
	Extent() float64
	OffsetOf(index int) float64
	IndexAt(offset float64) int
	VisibleRange(offset, viewport, overscan float64) (first, lastExclusive int, top float64)
	EnsureCapacity(count int)
	InsertAt(index, count int)
	RemoveAt(index, count int)
	InvalidateRange(index, count int)
	InvalidateAll()
}

// HeightStore caches one height per row and maintains a prefix-sum table
// over the cache for O(log n) offset<->index conversion. Rows that have not
// been measured hold UnknownHeight and read back as the estimate, so the
// table is always fully defined.
type HeightStore struct {
	heights  []float64
	estimate float64

	// prefix has len(heights)+1 entries; prefix[i] is the cumulative height
	// of rows [0, i). Rebuilt lazily when dirty.
	prefix []float64
	dirty  bool
}

// NewHeightStore creates an empty store. estimate is the height assumed for
// unmeasured rows; non-positive or non-finite values fall back to
// DefaultEstimateHeight.
func NewHeightStore(estimate float64) *HeightStore {
	if !isFiniteHeight(estimate) || estimate <= 0 {
		estimate = DefaultEstimateHeight
	}
	return &HeightStore{estimate: estimate, dirty: true}
}

func isFiniteHeight(h float64) bool {
	return !math.IsNaN(h) && !math.IsInf(h, 0)
}

// sanitizeOffset clamps NaN/Inf scroll input to 0. Layout math must never
// produce non-finite bounds.
func sanitizeOffset(y float64) float64 {
	if !isFiniteHeight(y) {
		return 0
	}
	return y
}

// Len returns the number of cached entries.
func (s *HeightStore) Len() int { return len(s.heights) }

// Estimate returns the fallback height for unmeasured rows.
func (s *HeightStore) Estimate() float64 { return s.estimate }

// Known reports whether the row has a measured height.
func (s *HeightStore) Known(index int) bool {
	return index >= 0 && index < len(s.heights) && s.heights[index] >= 0
}

// Get returns the cached height for a row, or the estimate if the row is
// unmeasured or out of range.
func (s *HeightStore) Get(index int) float64 {
	if !s.Known(index) {
		return s.estimate
	}
	return s.heights[index]
}

// Set stores a refined height and reports whether the stored value actually
// changed. Equality is tolerant: values within heightEpsilon are the same,
// and two unknowns are the same. Non-finite input falls back to the
// estimate; negative input clamps to 0. Out-of-range indices are ignored.
func (s *HeightStore) Set(index int, h float64) bool {
	if index < 0 || index >= len(s.heights) {
		return false
	}
	if !isFiniteHeight(h) {
		h = s.estimate
	}
	if h < 0 {
		h = 0
	}
	old := s.heights[index]
	if old >= 0 && math.Abs(old-h) < heightEpsilon {
		return false
	}
	if old < 0 && math.Abs(s.estimate-h) < heightEpsilon {
		// refinement confirmed the estimate; store it, but the mapping is
		// unchanged so the table stays clean
		s.heights[index] = h
		return false
	}
	s.heights[index] = h
	s.dirty = true
	return true
}

// Invalidate resets one row to unmeasured.
func (s *HeightStore) Invalidate(index int) {
	s.InvalidateRange(index, 1)
}

// InvalidateRange resets rows [index, index+count) to unmeasured, clamped to
// the cache bounds.
func (s *HeightStore) InvalidateRange(index, count int) {
	if index < 0 {
		count += index
		index = 0
	}
	for i := index; i < index+count && i < len(s.heights); i++ {
		if s.heights[i] >= 0 {
			s.heights[i] = UnknownHeight
			s.dirty = true
		}
	}
}

// InvalidateAll resets every row to unmeasured.
func (s *HeightStore) InvalidateAll() {
	for i := range s.heights {
		s.heights[i] = UnknownHeight
	}
	s.dirty = true
}

// EnsureCapacity grows or shrinks the cache to count entries. New entries
// start unmeasured.
func (s *HeightStore) EnsureCapacity(count int) {
	if count < 0 {
		count = 0
	}
	if count == len(s.heights) {
		return
	}
	if count < len(s.heights) {
		s.heights = s.heights[:count]
	} else {
		for len(s.heights) < count {
			s.heights = append(s.heights, UnknownHeight)
		}
	}
	s.dirty = true
}

// InsertAt inserts count unmeasured entries at index, clamped to the cache.
func (s *HeightStore) InsertAt(index, count int) {
	if count <= 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.heights) {
		index = len(s.heights)
	}
	blank := make([]float64, count)
	for i := range blank {
		blank[i] = UnknownHeight
	}
	s.heights = append(s.heights[:index], append(blank, s.heights[index:]...)...)
	s.dirty = true
}

// RemoveAt deletes entries [index, index+count), clamped to the cache.
func (s *HeightStore) RemoveAt(index, count int) {
	if index < 0 {
		count += index
		index = 0
	}
	if index >= len(s.heights) || count <= 0 {
		return
	}
	if index+count > len(s.heights) {
		count = len(s.heights) - index
	}
	s.heights = append(s.heights[:index], s.heights[index+count:]...)
	s.dirty = true
}

// table returns the prefix-sum table, rebuilding it if any entry changed.
func (s *HeightStore) table() []float64 {
	if !s.dirty && len(s.prefix) == len(s.heights)+1 {
		return s.prefix
	}
	if cap(s.prefix) < len(s.heights)+1 {
		s.prefix = make([]float64, len(s.heights)+1)
	}
	s.prefix = s.prefix[:len(s.heights)+1]
	s.prefix[0] = 0
	for i, h := range s.heights {
		if h < 0 {
			h = s.estimate
		}
		s.prefix[i+1] = s.prefix[i] + h
	}
	s.dirty = false
	return s.prefix
}

// Extent returns the total content height.
func (s *HeightStore) Extent() float64 {
	t := s.table()
	return t[len(t)-1]
}

// OffsetOf returns the top offset of a row, clamped to [0, Len].
func (s *HeightStore) OffsetOf(index int) float64 {
	t := s.table()
	if index < 0 {
		index = 0
	}
	if index >= len(t) {
		index = len(t) - 1
	}
	return t[index]
}

// IndexAt returns the largest index i with prefix[i] <= offset, so the item
// whose span contains the offset. On an exact boundary the later item owns
// the pixel row, consistent with half-open ranges. The offset is clamped to
// [0, Extent]; an empty store yields 0.
func (s *HeightStore) IndexAt(offset float64) int {
	if len(s.heights) == 0 {
		return 0
	}
	offset = sanitizeOffset(offset)
	t := s.table()
	extent := t[len(t)-1]
	if offset <= 0 {
		return 0
	}
	if offset >= extent {
		return len(s.heights) - 1
	}
	// smallest i with prefix[i] > offset, minus one
	i := sort.Search(len(t), func(i int) bool { return t[i] > offset })
	return i - 1
}

// VisibleRange resolves the half-open index range [first, lastExclusive)
// overlapping the viewport at the given offset, padded by overscan on both
// sides, plus the top offset of the first row.
func (s *HeightStore) VisibleRange(offset, viewport, overscan float64) (first, lastExclusive int, top float64) {
	if len(s.heights) == 0 {
		return 0, 0, 0
	}
	offset = sanitizeOffset(offset)
	if viewport < 0 || !isFiniteHeight(viewport) {
		viewport = 0
	}
	first = s.IndexAt(math.Max(0, offset-overscan))
	lastExclusive = s.IndexAt(offset+viewport+overscan) + 1
	if lastExclusive > len(s.heights) {
		lastExclusive = len(s.heights)
	}
	return first, lastExclusive, s.OffsetOf(first)
}
