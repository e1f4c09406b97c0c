package finance

import (
	"context"
	"errors"
	"time"

	auditapp "github.com/garage/backend/internal/application/audit"
	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/finance"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Service handles finance categories, records and the derived read side.
// Payment, restock and salary flows post records through RecordDerived;
// handlers may only post manual records under their own categories.
type Service struct {
	categoryRepo finance.FinanceCategoryRepository
	recordRepo   finance.FinanceRecordRepository
	auditor      *auditapp.Service
}

// NewService creates a finance service
func NewService(categoryRepo finance.FinanceCategoryRepository, recordRepo finance.FinanceRecordRepository, auditor *auditapp.Service) *Service {
	return &Service{
		categoryRepo: categoryRepo,
		recordRepo:   recordRepo,
		auditor:      auditor,
	}
}

// EnsureCategory returns the named category, creating it when missing
func (s *Service) EnsureCategory(ctx context.Context, name string, kind finance.CategoryKind) (*finance.FinanceCategory, error) {
	category, err := s.categoryRepo.FindByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	category, err = finance.NewFinanceCategory(name, kind)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// RecordDerived posts a record under a well-known category as a side effect
// of another flow, linked back to the source entity
func (s *Service) RecordDerived(ctx context.Context, categoryName string, kind finance.CategoryKind, amount valueobject.Money, description string, refType finance.ReferenceType, refID string, date time.Time) (*RecordResponse, error) {
	category, err := s.EnsureCategory(ctx, categoryName, kind)
	if err != nil {
		return nil, err
	}

	record, err := finance.NewFinanceRecord(category.ID, amount, description, date)
	if err != nil {
		return nil, err
	}
	if err := record.LinkReference(refType, refID); err != nil {
		return nil, err
	}
	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	response := ToRecordResponse(record)
	return &response, nil
}

// CreateCategory creates a category
func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	existing, err := s.categoryRepo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	}

	category, err := finance.NewFinanceCategory(req.Name, finance.CategoryKind(req.Kind))
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionCreate,
		TableName: category.TableName(),
		RecordID:  category.ID.String(),
		After:     auditapp.Snapshot(ToCategoryResponse(category)),
	}); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// ListCategories returns all categories
func (s *Service) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 500
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses, nil
}

// DeleteCategory removes a category. Blocked while records reference it.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	recordCount, err := s.recordRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if recordCount > 0 {
		return shared.NewReferentialIntegrityError("category", "finance records")
	}

	before := auditapp.Snapshot(ToCategoryResponse(category))
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionDelete,
		TableName: category.TableName(),
		RecordID:  category.ID.String(),
		Before:    before,
	})
}

// CreateRecord posts a manual finance record
func (s *Service) CreateRecord(ctx context.Context, req CreateRecordRequest) (*RecordResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	record, err := finance.NewFinanceRecord(req.CategoryID, valueobject.NewMoneyUSD(req.Amount), req.Description, req.Date)
	if err != nil {
		return nil, err
	}
	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionCreate,
		TableName: record.TableName(),
		RecordID:  record.ID.String(),
		After:     auditapp.Snapshot(ToRecordResponse(record)),
	}); err != nil {
		return nil, err
	}

	response := ToRecordResponse(record)
	return &response, nil
}

// UpdateRecord applies a partial update to a record
func (s *Service) UpdateRecord(ctx context.Context, id uuid.UUID, req UpdateRecordRequest) (*RecordResponse, error) {
	record, err := s.recordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := auditapp.Snapshot(ToRecordResponse(record))

	var amount *valueobject.Money
	if req.Amount != nil {
		money := valueobject.NewMoneyUSD(*req.Amount)
		amount = &money
	}
	if err := record.Update(amount, req.Description, req.Date); err != nil {
		return nil, err
	}
	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionUpdate,
		TableName: record.TableName(),
		RecordID:  record.ID.String(),
		Before:    before,
		After:     auditapp.Snapshot(ToRecordResponse(record)),
	}); err != nil {
		return nil, err
	}

	response := ToRecordResponse(record)
	return &response, nil
}

// DeleteRecord removes a record
func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	record, err := s.recordRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	before := auditapp.Snapshot(ToRecordResponse(record))
	if err := s.recordRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionDelete,
		TableName: record.TableName(),
		RecordID:  record.ID.String(),
		Before:    before,
	})
}

// ListRecords returns records within a date range
func (s *Service) ListRecords(ctx context.Context, start, end time.Time) ([]RecordResponse, error) {
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_INPUT", "End date cannot precede the start date")
	}
	records, err := s.recordRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	responses := make([]RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, ToRecordResponse(&records[i]))
	}
	return responses, nil
}

// Summary returns per-category totals for the period
func (s *Service) Summary(ctx context.Context, filter SummaryFilter) ([]finance.CategorySummary, error) {
	if filter.End.Before(filter.Start) {
		return nil, shared.NewDomainError("INVALID_INPUT", "End date cannot precede the start date")
	}
	return s.recordRepo.SummarizeByCategory(ctx, filter.Start, filter.End)
}

// TimeSeries returns bucketed income/expense totals for dashboards
func (s *Service) TimeSeries(ctx context.Context, filter TimeSeriesFilter) ([]finance.TimeSeriesPoint, error) {
	if filter.End.Before(filter.Start) {
		return nil, shared.NewDomainError("INVALID_INPUT", "End date cannot precede the start date")
	}
	granularity := filter.Granularity
	if granularity == "" {
		granularity = "month"
	}
	return s.recordRepo.TimeSeries(ctx, filter.Start, filter.End, granularity)
}
