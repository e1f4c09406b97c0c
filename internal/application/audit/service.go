package audit

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/partner"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// unknownLabel is shown when a linked entity no longer resolves
const unknownLabel = "Unknown"

// BuildEntry assembles an audit entry from the input, taking the actor from
// the request context. Exposed so transactional callers can append through
// their own transaction-scoped repository.
func BuildEntry(ctx context.Context, input RecordInput) (*audit.Entry, error) {
	actor := shared.ActorFromContext(ctx)
	entry, err := audit.NewEntry(input.Action, input.TableName, input.RecordID, actor.Name)
	if err != nil {
		return nil, err
	}
	entry.WithSnapshots(input.Before, input.After).
		WithFinancials(input.PaymentAmount, input.Discount, input.AdditionalFees, input.RemainingBalance).
		WithLinks(input.ClientID, input.CarUin, input.MaintenanceID)
	return entry, nil
}

// Service records mutations into the append-only audit trail and serves the
// trail's read side.
type Service struct {
	entries    audit.EntryRepository
	clientRepo partner.ClientRepository
}

// NewService creates an audit service. clientRepo is used to resolve client
// names on the read side and may be nil in write-only wiring.
func NewService(entries audit.EntryRepository, clientRepo partner.ClientRepository) *Service {
	return &Service{
		entries:    entries,
		clientRepo: clientRepo,
	}
}

// Record appends one audit entry for a successful mutation
func (s *Service) Record(ctx context.Context, input RecordInput) error {
	entry, err := BuildEntry(ctx, input)
	if err != nil {
		return err
	}
	return s.entries.Append(ctx, entry)
}

// List returns a paged slice of the audit trail, newest first
func (s *Service) List(ctx context.Context, filter ListFilter) ([]EntryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	if filter.TableName != "" {
		domainFilter.Filters["table_name"] = filter.TableName
	}
	if filter.Action != "" {
		domainFilter.Filters["action_type"] = filter.Action
	}

	entries, err := s.entries.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.entries.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return s.toResponses(ctx, entries), total, nil
}

// GetByDateRange returns all entries within [start, end]
func (s *Service) GetByDateRange(ctx context.Context, start, end time.Time) ([]EntryResponse, error) {
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_INPUT", "End date cannot precede the start date")
	}
	entries, err := s.entries.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, entries), nil
}

// ExportCSV streams the entries within [start, end] as CSV
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, start, end time.Time) error {
	responses, err := s.GetByDateRange(ctx, start, end)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := []string{
		"id", "timestamp", "action", "table", "record_id", "actor", "client",
		"car_uin", "payment_amount", "discount", "additional_fees", "remaining_balance",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range responses {
		row := []string{
			r.ID.String(),
			r.CreatedAt.Format(time.RFC3339),
			r.ActionType,
			r.TableName,
			r.RecordID,
			r.ActorName,
			r.ClientName,
			stringOrEmpty(r.CarUin),
			decimalOrEmpty(r.PaymentAmount),
			decimalOrEmpty(r.Discount),
			decimalOrEmpty(r.AdditionalFees),
			decimalOrEmpty(r.RemainingBalance),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func (s *Service) toResponses(ctx context.Context, entries []audit.Entry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToEntryResponse(&entries[i], s.resolveClientName(ctx, &entries[i])))
	}
	return responses
}

// resolveClientName labels a linked client, falling back to Unknown when the
// client has since been deleted
func (s *Service) resolveClientName(ctx context.Context, entry *audit.Entry) string {
	if entry.ClientID == nil || s.clientRepo == nil {
		return ""
	}
	client, err := s.clientRepo.FindByID(ctx, *entry.ClientID)
	if err != nil {
		return unknownLabel
	}
	return client.Name
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decimalOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
