package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/souq/backend/internal/domain/shared"
)

// Shop is a seller's storefront. Each seller owns at most one shop, enforced
// by the unique index on OwnerID.
type Shop struct {
	shared.BaseAggregateRoot
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new shop for a seller
func NewShop(ownerID uuid.UUID, name, description string) (*Shop, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if err := validateShopName(name); err != nil {
		return nil, err
	}

	shop := &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Name:              strings.TrimSpace(name),
		Description:       strings.TrimSpace(description),
	}

	shop.AddDomainEvent(NewShopCreatedEvent(shop))

	return shop, nil
}

// Update updates the shop's basic information
func (s *Shop) Update(name, description string) error {
	if err := validateShopName(name); err != nil {
		return err
	}

	s.Name = strings.TrimSpace(name)
	s.Description = strings.TrimSpace(description)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

func validateShopName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot exceed 200 characters")
	}
	return nil
}
