package vacation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVacationRequest_Overlaps(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, time.July, d, 0, 0, 0, 0, time.UTC) }
	v := &VacationRequest{FromDate: day(10), ToDate: day(20)}

	assert.True(t, v.Overlaps(day(10), day(20)))
	assert.True(t, v.Overlaps(day(1), day(10)))
	assert.True(t, v.Overlaps(day(20), day(25)))
	assert.True(t, v.Overlaps(day(12), day(13)))
	assert.False(t, v.Overlaps(day(1), day(9)))
	assert.False(t, v.Overlaps(day(21), day(30)))
}
