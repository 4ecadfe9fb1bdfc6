package intervals

import (
	"reflect"
	"testing"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/interfaces"
)

type span struct {
	s, e uint64
}

func (x span) Start() uint64 { return x.s }
func (x span) End() uint64   { return x.e }

func spans(pairs ...[2]uint64) []interfaces.Interval {
	out := make([]interfaces.Interval, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, span{p[0], p[1]})
	}
	return out
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b span
		want bool
	}{
		{"identical", span{10, 20}, span{10, 20}, true},
		{"partial", span{10, 20}, span{15, 30}, true},
		{"contained", span{10, 40}, span{20, 30}, true},
		{"touching", span{10, 20}, span{20, 30}, false},
		{"disjoint", span{10, 20}, span{30, 40}, false},
		{"zero length at boundary", span{10, 20}, span{20, 20}, false},
		{"zero length inside", span{10, 20}, span{15, 15}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v; want %v", tt.a, tt.b, got, tt.want)
			}
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v; want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name         string
		outer, inner span
		want         bool
	}{
		{"identical", span{10, 20}, span{10, 20}, true},
		{"strictly inside", span{10, 40}, span{20, 30}, true},
		{"shared start", span{10, 40}, span{10, 30}, true},
		{"shared end", span{10, 40}, span{30, 40}, true},
		{"extends past end", span{10, 40}, span{30, 50}, false},
		{"starts before", span{10, 40}, span{5, 20}, false},
		{"disjoint", span{10, 20}, span{30, 40}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.outer, tt.inner); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v; want %v", tt.outer, tt.inner, got, tt.want)
			}
		})
	}
}

func TestLength(t *testing.T) {
	if got := Length(span{0x1000, 0x3000}); got != 0x2000 {
		t.Errorf("Length = %#x; want 0x2000", got)
	}
	if got := Length(span{7, 7}); got != 0 {
		t.Errorf("Length of empty range = %d; want 0", got)
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []interfaces.Interval
		want []Range
	}{
		{"empty", nil, nil},
		{"single", spans([2]uint64{10, 20}), []Range{NewRange(10, 20)}},
		{
			"overlapping pair",
			spans([2]uint64{10, 20}, [2]uint64{15, 30}),
			[]Range{NewRange(10, 30)},
		},
		{
			"touching pair",
			spans([2]uint64{100, 220}, [2]uint64{220, 300}),
			[]Range{NewRange(100, 300)},
		},
		{
			"disjoint stays split",
			spans([2]uint64{10, 20}, [2]uint64{30, 40}),
			[]Range{NewRange(10, 20), NewRange(30, 40)},
		},
		{
			"unsorted input",
			spans([2]uint64{30, 40}, [2]uint64{10, 20}, [2]uint64{18, 31}),
			[]Range{NewRange(10, 40)},
		},
		{
			"duplicates collapse",
			spans([2]uint64{10, 20}, [2]uint64{10, 20}),
			[]Range{NewRange(10, 20)},
		},
		{
			"contained input absorbed",
			spans([2]uint64{10, 100}, [2]uint64{20, 30}),
			[]Range{NewRange(10, 100)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge(%v) = %v; want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	once := Merge(spans([2]uint64{10, 20}, [2]uint64{25, 40}, [2]uint64{38, 60}))

	again := make([]interfaces.Interval, len(once))
	for i, r := range once {
		again[i] = r
	}
	twice := Merge(again)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second merge changed result: %v -> %v", once, twice)
	}
}

func TestMergeCompleteness(t *testing.T) {
	in := spans(
		[2]uint64{0, 5},
		[2]uint64{4, 10},
		[2]uint64{10, 12},
		[2]uint64{100, 150},
		[2]uint64{120, 130},
		[2]uint64{151, 160},
	)
	merged := Merge(in)

	for _, iv := range in {
		containers := 0
		for _, r := range merged {
			if Contains(r, iv) {
				containers++
			}
		}
		if containers != 1 {
			t.Errorf("input [%d, %d) contained in %d merged ranges; want exactly 1",
				iv.Start(), iv.End(), containers)
		}
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].Start() <= merged[i-1].End() {
			t.Errorf("merged ranges %v and %v overlap or touch", merged[i-1], merged[i])
		}
	}
}
