package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	auditapp "github.com/garage/backend/internal/application/audit"
	financeapp "github.com/garage/backend/internal/application/finance"
	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/catalog"
	"github.com/garage/backend/internal/domain/finance"
	"github.com/garage/backend/internal/domain/fleet"
	"github.com/garage/backend/internal/domain/maintenance"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FinanceRecorder posts derived finance records for maintenance payments
type FinanceRecorder interface {
	RecordDerived(ctx context.Context, categoryName string, kind finance.CategoryKind, amount valueobject.Money, description string, refType finance.ReferenceType, refID string, date time.Time) (*financeapp.RecordResponse, error)
}

// LedgerService owns the maintenance request lifecycle. Every mutation runs
// inside one transaction so the request, the stock counters it moves and the
// audit entry it emits commit or roll back together. Finance derivation for
// payments happens after commit and is best-effort.
type LedgerService struct {
	scope           TransactionScope
	requestRepo     maintenance.MaintenanceRequestRepository
	carRepo         fleet.CarRepository
	serviceRepo     catalog.ShopServiceRepository
	financeRecorder FinanceRecorder
	logger          *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	scope TransactionScope,
	requestRepo maintenance.MaintenanceRequestRepository,
	carRepo fleet.CarRepository,
	serviceRepo catalog.ShopServiceRepository,
	financeRecorder FinanceRecorder,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		scope:           scope,
		requestRepo:     requestRepo,
		carRepo:         carRepo,
		serviceRepo:     serviceRepo,
		financeRecorder: financeRecorder,
		logger:          logger,
	}
}

// Create opens a maintenance request for an existing car, pricing its service
// lines from the catalog and deducting every product line from its named stock
// location. The deduction is all-or-nothing: any shortfall rolls the whole
// request back.
func (s *LedgerService) Create(ctx context.Context, req CreateRequestRequest) (*RequestResponse, error) {
	uin := strings.ToUpper(strings.TrimSpace(req.CarUin))
	car, err := s.carRepo.FindByUIN(ctx, uin)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Car does not exist")
		}
		return nil, err
	}

	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = time.Now()
	}
	status := maintenance.StatusPending
	if req.Status != "" {
		status = maintenance.RequestStatus(req.Status)
	}

	request, err := maintenance.NewMaintenanceRequest(uin, car.ClientID, startDate, status)
	if err != nil {
		return nil, err
	}

	offerings, err := s.resolveServices(ctx, req.Services)
	if err != nil {
		return nil, err
	}
	for _, input := range req.Services {
		offering := offerings[input.ServiceID]
		if err := request.AddServiceLine(offering.ID, offering.Name, input.Quantity, offering.GetStandardFeeMoney()); err != nil {
			return nil, err
		}
	}

	if err := request.SetAdditionalFee(valueobject.NewMoneyUSD(req.AdditionalFee)); err != nil {
		return nil, err
	}
	if err := request.SetDiscount(valueobject.NewMoneyUSD(req.Discount), req.DiscountJustification); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products := newProductCache(repos.ProductRepo())
		for _, input := range req.Products {
			product, err := products.get(ctx, input.ProductID)
			if err != nil {
				return err
			}
			if err := product.Deduct(catalog.StockLocation(input.StockSource), input.Quantity); err != nil {
				return err
			}
			if err := request.AddProductLine(product.ID, product.Name, input.Quantity,
				product.GetSalePriceMoney(), maintenance.StockSource(input.StockSource)); err != nil {
				return err
			}
		}
		if err := products.save(ctx); err != nil {
			return err
		}

		if err := request.Validate(); err != nil {
			return err
		}
		if err := repos.RequestRepo().Save(ctx, request); err != nil {
			return err
		}

		return s.appendAudit(ctx, repos, audit.ActionCreate, request, nil, nil)
	})
	if err != nil {
		return nil, err
	}

	response := ToRequestResponse(request)
	return &response, nil
}

// GetByID retrieves a maintenance request by ID
func (s *LedgerService) GetByID(ctx context.Context, id uuid.UUID) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToRequestResponse(request)
	return &response, nil
}

// List retrieves maintenance requests with pagination and search
func (s *LedgerService) List(ctx context.Context, filter ListFilter) ([]RequestResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	requests, err := s.requestRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.requestRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(requests), total, nil
}

// GetByCarUin retrieves the maintenance history of one car
func (s *LedgerService) GetByCarUin(ctx context.Context, uin string) ([]RequestResponse, error) {
	requests, err := s.requestRepo.FindByCarUin(ctx, strings.ToUpper(strings.TrimSpace(uin)))
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// GetByClientID retrieves every request billed to one client
func (s *LedgerService) GetByClientID(ctx context.Context, clientID uuid.UUID) ([]RequestResponse, error) {
	requests, err := s.requestRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// GetByDateRange retrieves the requests started inside [start, end] together
// with per-period cost totals
func (s *LedgerService) GetByDateRange(ctx context.Context, filter RangeFilter) (*DateRangeReport, error) {
	if filter.End.Before(filter.Start) {
		return nil, shared.NewDomainError("INVALID_INPUT", "End date cannot precede the start date")
	}

	requests, err := s.requestRepo.FindByDateRange(ctx, filter.Start, filter.End)
	if err != nil {
		return nil, err
	}

	granularity := filter.Granularity
	if granularity == "" {
		granularity = "month"
	}
	layout := "2006-01"
	if granularity == "day" {
		layout = "2006-01-02"
	}

	bucketIndex := make(map[string]int)
	buckets := make([]PeriodBucket, 0)
	for i := range requests {
		period := requests[i].StartDate.Format(layout)
		idx, ok := bucketIndex[period]
		if !ok {
			idx = len(buckets)
			bucketIndex[period] = idx
			buckets = append(buckets, PeriodBucket{Period: period})
		}
		buckets[idx].Count++
		buckets[idx].TotalCost = buckets[idx].TotalCost.Add(requests[i].TotalCost)
		buckets[idx].Paid = buckets[idx].Paid.Add(requests[i].PaidAmount)
	}

	return &DateRangeReport{Requests: toResponses(requests), Buckets: buckets}, nil
}

// Update applies a partial update to a request. Replacing the product lines
// restores the old quantities and deducts the new ones in the same
// transaction, so stock is conserved on failure and success alike.
func (s *LedgerService) Update(ctx context.Context, id uuid.UUID, req UpdateRequestRequest) (*RequestResponse, error) {
	var request *maintenance.MaintenanceRequest

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		request, err = repos.RequestRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		before := auditapp.Snapshot(ToRequestResponse(request))

		if req.Services != nil {
			offerings, err := s.resolveServices(ctx, *req.Services)
			if err != nil {
				return err
			}
			lines := make([]maintenance.ServiceLine, 0, len(*req.Services))
			for _, input := range *req.Services {
				offering := offerings[input.ServiceID]
				line, err := maintenance.NewServiceLine(request.ID, offering.ID, offering.Name,
					input.Quantity, offering.GetStandardFeeMoney())
				if err != nil {
					return err
				}
				lines = append(lines, *line)
			}
			if err := request.ReplaceServiceLines(lines); err != nil {
				return err
			}
		}

		if req.Products != nil {
			products := newProductCache(repos.ProductRepo())
			for _, line := range request.ProductLines {
				product, err := products.get(ctx, line.ProductID)
				if err != nil {
					return err
				}
				if err := product.Restore(catalog.StockLocation(line.StockSource.String()), line.Quantity); err != nil {
					return err
				}
			}
			lines := make([]maintenance.ProductLine, 0, len(*req.Products))
			for _, input := range *req.Products {
				product, err := products.get(ctx, input.ProductID)
				if err != nil {
					return err
				}
				if err := product.Deduct(catalog.StockLocation(input.StockSource), input.Quantity); err != nil {
					return err
				}
				line, err := maintenance.NewProductLine(request.ID, product.ID, product.Name,
					input.Quantity, product.GetSalePriceMoney(), maintenance.StockSource(input.StockSource))
				if err != nil {
					return err
				}
				lines = append(lines, *line)
			}
			request.ReplaceProductLines(lines)
			if err := products.save(ctx); err != nil {
				return err
			}
		}

		if req.AdditionalFee != nil {
			if err := request.SetAdditionalFee(valueobject.NewMoneyUSD(*req.AdditionalFee)); err != nil {
				return err
			}
		}
		if req.Discount != nil || req.DiscountJustification != nil {
			discount := request.Discount
			if req.Discount != nil {
				discount = *req.Discount
			}
			justification := request.DiscountJustification
			if req.DiscountJustification != nil {
				justification = *req.DiscountJustification
			}
			if err := request.SetDiscount(valueobject.NewMoneyUSD(discount), justification); err != nil {
				return err
			}
		}
		if req.StartDate != nil {
			if err := request.SetStartDate(*req.StartDate); err != nil {
				return err
			}
		}
		if req.EndDate != nil {
			if err := request.SetEndDate(req.EndDate); err != nil {
				return err
			}
		}
		if req.PaidAmount != nil {
			if err := request.SetPaidAmount(*req.PaidAmount); err != nil {
				return err
			}
		}
		if req.Status != nil {
			if err := request.TransitionTo(maintenance.RequestStatus(*req.Status)); err != nil {
				return err
			}
		}

		if err := request.Validate(); err != nil {
			return err
		}
		if err := repos.RequestRepo().SaveWithLock(ctx, request); err != nil {
			return err
		}

		return s.appendAudit(ctx, repos, audit.ActionUpdate, request, before, nil)
	})
	if err != nil {
		return nil, err
	}

	response := ToRequestResponse(request)
	return &response, nil
}

// TransitionStatus moves a request along the workshop status machine
func (s *LedgerService) TransitionStatus(ctx context.Context, id uuid.UUID, req StatusRequest) (*RequestResponse, error) {
	var request *maintenance.MaintenanceRequest

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		request, err = repos.RequestRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		before := auditapp.Snapshot(ToRequestResponse(request))

		if err := request.TransitionTo(maintenance.RequestStatus(req.Status)); err != nil {
			return err
		}
		if err := repos.RequestRepo().SaveWithLock(ctx, request); err != nil {
			return err
		}

		return s.appendAudit(ctx, repos, audit.ActionUpdate, request, before, nil)
	})
	if err != nil {
		return nil, err
	}

	response := ToRequestResponse(request)
	return &response, nil
}

// MakePayment applies a payment against the remaining balance and posts the
// amount as a derived income record. The finance posting runs after the
// payment has committed; its failure is logged, not propagated.
func (s *LedgerService) MakePayment(ctx context.Context, id uuid.UUID, req PaymentRequest) (*RequestResponse, error) {
	amount := valueobject.NewMoneyUSD(req.Amount)
	var request *maintenance.MaintenanceRequest

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		request, err = repos.RequestRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		before := auditapp.Snapshot(ToRequestResponse(request))

		if err := request.MakePayment(amount); err != nil {
			return err
		}
		if err := repos.RequestRepo().SaveWithLock(ctx, request); err != nil {
			return err
		}

		return s.appendAudit(ctx, repos, audit.ActionUpdate, request, before, &req.Amount)
	})
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Payment for maintenance request on %s", request.CarUin)
	if _, err := s.financeRecorder.RecordDerived(ctx,
		finance.CategoryMaintenancePayments, finance.KindIncome,
		amount, description, finance.ReferenceMaintenance, request.ID.String(), time.Now()); err != nil {
		s.logger.Error("failed to record maintenance payment income",
			zap.String("request_id", request.ID.String()),
			zap.Error(err))
	}

	response := ToRequestResponse(request)
	return &response, nil
}

// Delete removes a request and restores every product line to its source
// location. A second delete finds nothing to restore and returns NOT_FOUND.
func (s *LedgerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		request, err := repos.RequestRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		before := auditapp.Snapshot(ToRequestResponse(request))

		products := newProductCache(repos.ProductRepo())
		for _, line := range request.ProductLines {
			product, err := products.get(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if err := product.Restore(catalog.StockLocation(line.StockSource.String()), line.Quantity); err != nil {
				return err
			}
		}
		if err := products.save(ctx); err != nil {
			return err
		}

		if err := repos.RequestRepo().Delete(ctx, id); err != nil {
			return err
		}

		entry, err := auditapp.BuildEntry(ctx, auditapp.RecordInput{
			Action:        audit.ActionDelete,
			TableName:     request.TableName(),
			RecordID:      request.ID.String(),
			Before:        before,
			ClientID:      &request.ClientID,
			CarUin:        &request.CarUin,
			MaintenanceID: &request.ID,
		})
		if err != nil {
			return err
		}
		return repos.AuditRepo().Append(ctx, entry)
	})
}

func (s *LedgerService) resolveServices(ctx context.Context, inputs []ServiceLineInput) (map[uuid.UUID]catalog.ShopService, error) {
	if len(inputs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one service is required")
	}

	ids := make([]uuid.UUID, 0, len(inputs))
	seen := make(map[uuid.UUID]bool)
	for _, input := range inputs {
		if !seen[input.ServiceID] {
			seen[input.ServiceID] = true
			ids = append(ids, input.ServiceID)
		}
	}

	offerings, err := s.serviceRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.ShopService, len(offerings))
	for _, offering := range offerings {
		byID[offering.ID] = offering
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Service %s does not exist", id))
		}
	}
	return byID, nil
}

// appendAudit writes the audit entry for a request mutation through the
// transaction-scoped repository, carrying the financial fields alongside the
// snapshots.
func (s *LedgerService) appendAudit(ctx context.Context, repos TransactionalRepositories, action audit.ActionType, request *maintenance.MaintenanceRequest, before map[string]any, paymentAmount *decimal.Decimal) error {
	entry, err := auditapp.BuildEntry(ctx, auditapp.RecordInput{
		Action:           action,
		TableName:        request.TableName(),
		RecordID:         request.ID.String(),
		Before:           before,
		After:            auditapp.Snapshot(ToRequestResponse(request)),
		PaymentAmount:    paymentAmount,
		Discount:         &request.Discount,
		AdditionalFees:   &request.AdditionalFee,
		RemainingBalance: &request.RemainingBalance,
		ClientID:         &request.ClientID,
		CarUin:           &request.CarUin,
		MaintenanceID:    &request.ID,
	})
	if err != nil {
		return err
	}
	return repos.AuditRepo().Append(ctx, entry)
}

// productCache loads each touched product once per transaction so repeated
// lines against one product see each other's stock movements.
type productCache struct {
	repo      catalog.ProductRepository
	byID      map[uuid.UUID]*catalog.Product
	loadOrder []uuid.UUID
}

func newProductCache(repo catalog.ProductRepository) *productCache {
	return &productCache{repo: repo, byID: make(map[uuid.UUID]*catalog.Product)}
}

func (c *productCache) get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if product, ok := c.byID[id]; ok {
		return product, nil
	}
	product, err := c.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s does not exist", id))
		}
		return nil, err
	}
	c.byID[id] = product
	c.loadOrder = append(c.loadOrder, id)
	return product, nil
}

func (c *productCache) save(ctx context.Context) error {
	for _, id := range c.loadOrder {
		if err := c.repo.SaveWithLock(ctx, c.byID[id]); err != nil {
			return err
		}
	}
	return nil
}

func toResponses(requests []maintenance.MaintenanceRequest) []RequestResponse {
	responses := make([]RequestResponse, len(requests))
	for i := range requests {
		responses[i] = ToRequestResponse(&requests[i])
	}
	return responses
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
