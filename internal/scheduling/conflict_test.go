package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindConflicts(t *testing.T) {
	siblings := []Slot{
		{ID: "s1", Interval: Interval{Start: 9 * 60, End: 10*60 + 30}},
		{ID: "s2", Interval: Interval{Start: 11 * 60, End: 12 * 60}},
	}

	tests := []struct {
		name      string
		candidate Interval
		exclude   string
		buffer    int
		want      []string
	}{
		{
			name:      "overlap mid session",
			candidate: Interval{Start: 10 * 60, End: 11 * 60},
			want:      []string{"s1"},
		},
		{
			name:      "boundary adjacent is accepted",
			candidate: Interval{Start: 10*60 + 30, End: 11 * 60},
			want:      nil,
		},
		{
			name:      "spans both siblings",
			candidate: Interval{Start: 9 * 60, End: 12 * 60},
			want:      []string{"s1", "s2"},
		},
		{
			name:      "excluded entity is skipped",
			candidate: Interval{Start: 9 * 60, End: 10 * 60},
			exclude:   "s1",
			want:      nil,
		},
		{
			name:      "buffer catches near miss",
			candidate: Interval{Start: 10*60 + 32, End: 11*60 - 10},
			buffer:    5,
			want:      []string{"s1"},
		},
		{
			name:      "buffer satisfied by five minute gap",
			candidate: Interval{Start: 10*60 + 35, End: 11*60 - 10},
			buffer:    5,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindConflicts(tt.candidate, siblings, tt.exclude, tt.buffer)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindConflictsEmptyScope(t *testing.T) {
	got := FindConflicts(Interval{Start: 540, End: 600}, nil, "", 0)
	assert.Empty(t, got)
}
