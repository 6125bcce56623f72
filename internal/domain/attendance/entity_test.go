package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkingTypeValid(t *testing.T) {
	for _, wt := range []WorkingType{
		WorkingTypeWeekend, WorkingTypeHoliday, WorkingTypeAnnualLeave,
		WorkingTypeSick, WorkingTypeRemote, WorkingTypeOffice,
	} {
		assert.True(t, wt.Valid(), string(wt))
	}
	assert.False(t, WorkingType("vacation").Valid())
}

func TestWorkingTypePriorityOrder(t *testing.T) {
	assert.Less(t, WorkingTypeWeekend.Priority(), WorkingTypeHoliday.Priority())
	assert.Less(t, WorkingTypeHoliday.Priority(), WorkingTypeAnnualLeave.Priority())
	assert.Less(t, WorkingTypeAnnualLeave.Priority(), WorkingTypeSick.Priority())
	assert.Less(t, WorkingTypeSick.Priority(), WorkingTypeRemote.Priority())
	assert.Less(t, WorkingTypeRemote.Priority(), WorkingTypeOffice.Priority())
}

func TestCanPromoteTo(t *testing.T) {
	// Only weekend rows may be rewritten, and only to something more specific.
	assert.True(t, WorkingTypeWeekend.CanPromoteTo(WorkingTypeSick))
	assert.True(t, WorkingTypeWeekend.CanPromoteTo(WorkingTypeHoliday))
	assert.True(t, WorkingTypeWeekend.CanPromoteTo(WorkingTypeAnnualLeave))
	assert.False(t, WorkingTypeWeekend.CanPromoteTo(WorkingTypeWeekend))

	assert.False(t, WorkingTypeOffice.CanPromoteTo(WorkingTypeSick))
	assert.False(t, WorkingTypeHoliday.CanPromoteTo(WorkingTypeSick))
	assert.False(t, WorkingTypeSick.CanPromoteTo(WorkingTypeOffice))
}
