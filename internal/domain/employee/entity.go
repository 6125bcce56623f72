package employee

import "time"

type Employee struct {
	ID        string
	FullName  string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
