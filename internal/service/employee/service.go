package employee

import (
	"context"
	"math"

	"github.com/kintaihq/kintai-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
}

func NewEmployeeService(repo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{EmployeeRepository: repo}
}

func toResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:               e.ID,
		Code:             e.Code,
		FullName:         e.FullName,
		Email:            e.Email,
		Position:         e.Position,
		EmploymentStatus: e.EmploymentStatus,
		BaseSalary:       e.BaseSalary,
		AllowanceAmount:  e.AllowanceAmount,
		DeductionAmount:  e.DeductionAmount,
		CreatedAt:        e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:        e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		Code:             req.Code,
		FullName:         req.FullName,
		Email:            req.Email,
		Position:         req.Position,
		EmploymentStatus: "active",
		BaseSalary:       req.BaseSalary,
		AllowanceAmount:  req.AllowanceAmount,
		DeductionAmount:  req.DeductionAmount,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(e), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Position != nil {
		e.Position = req.Position
	}
	if req.EmploymentStatus != nil {
		e.EmploymentStatus = *req.EmploymentStatus
	}
	if req.BaseSalary != nil {
		e.BaseSalary = *req.BaseSalary
	}
	if req.AllowanceAmount != nil {
		e.AllowanceAmount = *req.AllowanceAmount
	}
	if req.DeductionAmount != nil {
		e.DeductionAmount = *req.DeductionAmount
	}

	if err := s.EmployeeRepository.Update(ctx, e); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(e), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	resp := employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  []employee.EmployeeResponse{},
	}
	for _, e := range employees {
		resp.Employees = append(resp.Employees, toResponse(e))
	}

	return resp, nil
}
