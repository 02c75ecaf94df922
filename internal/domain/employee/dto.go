package employee

import (
	"strings"

	"github.com/kintaihq/kintai-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Code            string  `json:"code"`
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	Position        *string `json:"position,omitempty"`
	BaseSalary      int     `json:"base_salary"`
	AllowanceAmount int     `json:"allowance_amount"`
	DeductionAmount int     `json:"deduction_amount"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if r.BaseSalary < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}

	if r.AllowanceAmount < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "allowance_amount",
			Message: "allowance_amount must not be negative",
		})
	}

	if r.DeductionAmount < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "deduction_amount",
			Message: "deduction_amount must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID               string  `json:"-"`
	FullName         *string `json:"full_name,omitempty"`
	Email            *string `json:"email,omitempty"`
	Position         *string `json:"position,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty"`
	BaseSalary       *int    `json:"base_salary,omitempty"`
	AllowanceAmount  *int    `json:"allowance_amount,omitempty"`
	DeductionAmount  *int    `json:"deduction_amount,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if r.EmploymentStatus != nil {
		validStatuses := []string{"active", "on_leave", "retired"}
		if !validator.IsInSlice(strings.ToLower(*r.EmploymentStatus), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "employment_status",
				Message: "employment_status must be one of: active, on_leave, retired",
			})
		}
	}

	for field, value := range map[string]*int{
		"base_salary":      r.BaseSalary,
		"allowance_amount": r.AllowanceAmount,
		"deduction_amount": r.DeductionAmount,
	} {
		if value != nil && *value < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	Code             string  `json:"code"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Position         *string `json:"position,omitempty"`
	EmploymentStatus string  `json:"employment_status"`
	BaseSalary       int     `json:"base_salary"`
	AllowanceAmount  int     `json:"allowance_amount"`
	DeductionAmount  int     `json:"deduction_amount"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type EmployeeFilter struct {
	Name   *string `json:"name,omitempty"`
	Status *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}
