package employee

import "time"

type Employee struct {
	ID               string
	Code             string
	FullName         string
	Email            string
	Position         *string
	EmploymentStatus string

	// Monthly payroll inputs, in the smallest currency unit.
	BaseSalary      int
	AllowanceAmount int
	DeductionAmount int

	UserID    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
