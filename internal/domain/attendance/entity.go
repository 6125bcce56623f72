package attendance

import "time"

// WorkingType classifies one attendance day. The values form a total
// priority order: weekend is the lowest and is the only classification the
// reconciler may overwrite.
type WorkingType string

const (
	WorkingTypeWeekend     WorkingType = "weekend"
	WorkingTypeHoliday     WorkingType = "holiday"
	WorkingTypeAnnualLeave WorkingType = "annual_leave"
	WorkingTypeSick        WorkingType = "sick"
	WorkingTypeRemote      WorkingType = "remote"
	WorkingTypeOffice      WorkingType = "office"
)

var workingTypePriority = map[WorkingType]int{
	WorkingTypeWeekend:     0,
	WorkingTypeHoliday:     1,
	WorkingTypeAnnualLeave: 2,
	WorkingTypeSick:        3,
	WorkingTypeRemote:      4,
	WorkingTypeOffice:      5,
}

func (t WorkingType) Priority() int {
	return workingTypePriority[t]
}

func (t WorkingType) Valid() bool {
	_, ok := workingTypePriority[t]
	return ok
}

// CanPromoteTo is the single upsert rule of the reconciler: an existing row
// is rewritten iff it is a weekend fill-in and the new classification is
// more specific. Manual or actual attendance is never overwritten.
func (t WorkingType) CanPromoteTo(next WorkingType) bool {
	return t == WorkingTypeWeekend && next.Priority() > WorkingTypeWeekend.Priority()
}

// Attendance is the ledger row: at most one logical record per employee per
// calendar day, enforced by upsert rather than by a uniqueness error.
type Attendance struct {
	ID          string
	EmployeeID  string
	Day         time.Time
	CheckIn     time.Time
	CheckOut    *time.Time
	WorkingType WorkingType
	Note        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpsertOutcome tells the reconciler what an UpsertDay call did.
type UpsertOutcome int

const (
	UpsertSkipped UpsertOutcome = iota
	UpsertCreated
	UpsertUpdated
)
