package identity

import (
	"github.com/souq/backend/internal/domain/shared"
)

// Aggregate type for identity events
const AggregateTypeUser = "user"

// Event types
const (
	EventTypeUserRegistered = "identity.user.registered"
)

// UserRegisteredEvent is published when a new user registers
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	Email    string `json:"email"`
	IsSeller bool   `json:"is_seller"`
}

// NewUserRegisteredEvent creates a new user registered event
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		Username:        user.Username,
		Email:           user.Email,
		IsSeller:        user.IsSeller,
	}
}
