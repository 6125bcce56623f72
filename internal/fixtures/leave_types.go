package fixtures

import "github.com/kalibra-hr/workforce-backend-go/internal/domain/leave"

type LeaveTypeDefault struct {
	Name  string
	Code  string
	Color int
}

// DefaultLeaveTypes is the fixed catalogue seeded at process start. Codes
// are the discriminator everywhere; names and colors are display defaults.
var DefaultLeaveTypes = []LeaveTypeDefault{
	{Name: "Annual Leave", Code: leave.CodeAnnual, Color: 5},
	{Name: "Sick Leave", Code: leave.CodeSick, Color: 1},
	{Name: "Unpaid Leave", Code: leave.CodeUnpaid, Color: 3},
	{Name: "Public Holiday", Code: leave.CodeHoliday, Color: 4},
}
