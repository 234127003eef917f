package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2030, 5, 12, hour, min, 0, 0, time.UTC)
}

func TestNewInterval(t *testing.T) {
	iv := NewInterval(at(9, 0), 30)
	assert.Equal(t, at(9, 0), iv.Start)
	assert.Equal(t, at(9, 30), iv.End)
}

func TestOverlaps(t *testing.T) {
	base := Interval{Start: at(9, 0), End: at(9, 30)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{at(9, 0), at(9, 30)}, true},
		{"partial overlap from inside", Interval{at(9, 15), at(9, 45)}, true},
		{"partial overlap from before", Interval{at(8, 45), at(9, 15)}, true},
		{"fully contained", Interval{at(9, 10), at(9, 20)}, true},
		{"fully containing", Interval{at(8, 0), at(11, 0)}, true},
		{"touching end", Interval{at(9, 30), at(10, 0)}, false},
		{"touching start", Interval{at(8, 30), at(9, 0)}, false},
		{"disjoint after", Interval{at(10, 0), at(10, 30)}, false},
		{"disjoint before", Interval{at(7, 0), at(7, 30)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}
