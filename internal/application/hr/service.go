package hr

import (
	"context"
	"fmt"
	"time"

	auditapp "github.com/garage/backend/internal/application/audit"
	financeapp "github.com/garage/backend/internal/application/finance"
	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/finance"
	"github.com/garage/backend/internal/domain/hr"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FinanceRecorder posts derived finance records for salary payouts
type FinanceRecorder interface {
	RecordDerived(ctx context.Context, categoryName string, kind finance.CategoryKind, amount valueobject.Money, description string, refType finance.ReferenceType, refID string, date time.Time) (*financeapp.RecordResponse, error)
}

// EmployeeService manages employee records
type EmployeeService struct {
	employeeRepo hr.EmployeeRepository
	salaryRepo   hr.SalaryRepository
	auditor      *auditapp.Service
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo hr.EmployeeRepository, salaryRepo hr.SalaryRepository, auditor *auditapp.Service) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		salaryRepo:   salaryRepo,
		auditor:      auditor,
	}
}

// Create creates a new employee
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := hr.NewEmployee(req.Name, req.Position, req.Contact, req.Email,
		req.HireDate, valueobject.NewMoneyUSD(req.BaseSalary))
	if err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionCreate,
		TableName: employee.TableName(),
		RecordID:  employee.ID.String(),
		After:     auditapp.Snapshot(ToEmployeeResponse(employee)),
	}); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToEmployeeResponse(employee)
	return &response, nil
}

// List retrieves employees with pagination and search
func (s *EmployeeService) List(ctx context.Context, filter ListFilter) ([]EmployeeResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	employees, err := s.employeeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.employeeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = ToEmployeeResponse(&employees[i])
	}
	return responses, total, nil
}

// Update applies partial changes to an employee
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := auditapp.Snapshot(ToEmployeeResponse(employee))

	var baseSalary *valueobject.Money
	if req.BaseSalary != nil {
		m := valueobject.NewMoneyUSD(*req.BaseSalary)
		baseSalary = &m
	}
	if err := employee.Update(req.Name, req.Position, req.Contact, req.Email, baseSalary); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.SaveWithLock(ctx, employee); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionUpdate,
		TableName: employee.TableName(),
		RecordID:  employee.ID.String(),
		Before:    before,
		After:     auditapp.Snapshot(ToEmployeeResponse(employee)),
	}); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// Delete removes an employee unless salary payouts reference them
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	payouts, err := s.salaryRepo.CountByEmployee(ctx, id)
	if err != nil {
		return err
	}
	if payouts > 0 {
		return shared.NewReferentialIntegrityError("employee", "salary payouts")
	}

	before := auditapp.Snapshot(ToEmployeeResponse(employee))
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionDelete,
		TableName: employee.TableName(),
		RecordID:  employee.ID.String(),
		Before:    before,
	})
}

// SalaryService manages salary payouts and their derived expense records
type SalaryService struct {
	salaryRepo      hr.SalaryRepository
	employeeRepo    hr.EmployeeRepository
	financeRecorder FinanceRecorder
	auditor         *auditapp.Service
	logger          *zap.Logger
}

// NewSalaryService creates a new SalaryService
func NewSalaryService(salaryRepo hr.SalaryRepository, employeeRepo hr.EmployeeRepository, financeRecorder FinanceRecorder, auditor *auditapp.Service, logger *zap.Logger) *SalaryService {
	return &SalaryService{
		salaryRepo:      salaryRepo,
		employeeRepo:    employeeRepo,
		financeRecorder: financeRecorder,
		auditor:         auditor,
		logger:          logger,
	}
}

// Create registers an unpaid salary payout for an employee. The amount
// defaults to the employee's base salary.
func (s *SalaryService) Create(ctx context.Context, req CreateSalaryRequest) (*SalaryResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	amount := employee.GetBaseSalaryMoney()
	if req.Amount != nil {
		amount = valueobject.NewMoneyUSD(*req.Amount)
	}

	salary, err := hr.NewSalary(employee.ID, amount, req.Period, req.Note)
	if err != nil {
		return nil, err
	}

	if err := s.salaryRepo.Save(ctx, salary); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionCreate,
		TableName: salary.TableName(),
		RecordID:  salary.ID.String(),
		After:     auditapp.Snapshot(ToSalaryResponse(salary)),
	}); err != nil {
		return nil, err
	}

	response := ToSalaryResponse(salary)
	return &response, nil
}

// GetByID retrieves a salary payout by ID
func (s *SalaryService) GetByID(ctx context.Context, id uuid.UUID) (*SalaryResponse, error) {
	salary, err := s.salaryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSalaryResponse(salary)
	return &response, nil
}

// ListByEmployee retrieves all payouts for one employee
func (s *SalaryService) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]SalaryResponse, error) {
	salaries, err := s.salaryRepo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	responses := make([]SalaryResponse, len(salaries))
	for i := range salaries {
		responses[i] = ToSalaryResponse(&salaries[i])
	}
	return responses, nil
}

// Pay marks a payout as paid and posts the salary as a derived expense
// record. A failed finance posting is logged, not propagated: the payout
// itself has already been committed.
func (s *SalaryService) Pay(ctx context.Context, id uuid.UUID) (*SalaryResponse, error) {
	salary, err := s.salaryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := auditapp.Snapshot(ToSalaryResponse(salary))

	if err := salary.Pay(); err != nil {
		return nil, err
	}

	if err := s.salaryRepo.Save(ctx, salary); err != nil {
		return nil, err
	}

	employeeName := salary.EmployeeID.String()
	if employee, err := s.employeeRepo.FindByID(ctx, salary.EmployeeID); err == nil {
		employeeName = employee.Name
	}
	description := fmt.Sprintf("Salary for %s, period %s", employeeName, salary.Period)
	if _, err := s.financeRecorder.RecordDerived(ctx,
		finance.CategorySalaries, finance.KindExpense,
		salary.GetAmountMoney(), description, finance.ReferenceSalary, salary.ID.String(), time.Now()); err != nil {
		s.logger.Error("failed to record salary expense",
			zap.String("salary_id", salary.ID.String()),
			zap.Error(err))
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:        audit.ActionUpdate,
		TableName:     salary.TableName(),
		RecordID:      salary.ID.String(),
		Before:        before,
		After:         auditapp.Snapshot(ToSalaryResponse(salary)),
		PaymentAmount: &salary.Amount,
	}); err != nil {
		return nil, err
	}

	response := ToSalaryResponse(salary)
	return &response, nil
}

// Delete removes an unpaid salary payout. Paid payouts are part of the
// finance history and cannot be removed.
func (s *SalaryService) Delete(ctx context.Context, id uuid.UUID) error {
	salary, err := s.salaryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if salary.Status == hr.SalaryPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid salary payouts cannot be deleted")
	}

	before := auditapp.Snapshot(ToSalaryResponse(salary))
	if err := s.salaryRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionDelete,
		TableName: salary.TableName(),
		RecordID:  salary.ID.String(),
		Before:    before,
	})
}

func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
