package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDuration(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       *int
	}{
		{"same day", "2024-01-01", "2024-01-01", intp(1)},
		{"one week", "2024-06-01", "2024-06-07", intp(7)},
		{"leap year february", "2024-02-28", "2024-03-01", intp(3)},
		{"four centuries", "2000-01-01", "2400-01-01", intp(146098)},
		{"whole calendar", "0001-01-01", "9999-12-31", intp(3652059)},
		{"rfc3339 input", "2025-06-15T10:00:00Z", "2025-06-22T08:00:00Z", intp(8)},
		{"end before start", "2024-01-10", "2024-01-09", nil},
		{"missing end", "2024-01-10", "", nil},
		{"missing start", "", "2024-01-10", nil},
		{"garbage", "soon", "2024-01-10", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDuration(tt.start, tt.end))
		})
	}
}

func TestDurationLaw(t *testing.T) {
	base := time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC)
	for offset := 0; offset < 400; offset += 7 {
		for span := 0; span < 40; span += 3 {
			start := base.AddDate(0, 0, offset)
			end := start.AddDate(0, 0, span)
			got := ComputeDuration(start.Format(DateLayout), end.Format(DateLayout))
			require.NotNil(t, got)
			assert.Equal(t, span+1, *got)

			if span > 0 {
				assert.Nil(t, ComputeDuration(end.Format(DateLayout), start.Format(DateLayout)))
			}
		}
	}
}

func intp(v int) *int { return &v }
