package partner

import "github.com/garage/backend/internal/domain/shared"

// Client event types
const (
	EventTypeClientCreated = "partner.client.created"
	EventTypeClientUpdated = "partner.client.updated"
	EventTypeClientDeleted = "partner.client.deleted"
)

// ClientCreatedEvent is emitted when a client is created
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewClientCreatedEvent creates a new ClientCreatedEvent
func NewClientCreatedEvent(client *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientCreated, "Client", client.ID),
		Name:            client.Name,
		Email:           client.Email,
	}
}

// ClientUpdatedEvent is emitted when a client is updated
type ClientUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewClientUpdatedEvent creates a new ClientUpdatedEvent
func NewClientUpdatedEvent(client *Client) *ClientUpdatedEvent {
	return &ClientUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientUpdated, "Client", client.ID),
		Name:            client.Name,
	}
}
