// Package store defines the persistence collaborator for contacts. The concrete backends live
// in the subpackages mongostore, mysqlstore and memstore.
package store

import (
	"context"
	"errors"

	"gitlab.com/dirk.krummacker/contacts-web/internal/model"
)

// ErrNotFound is returned when no contact matches the lookup key.
var ErrNotFound = errors.New("store: contact not found")

// Store is implemented by every contact backend.
type Store interface {
	// FindAll returns all contacts in creation order.
	FindAll(ctx context.Context) ([]model.Contact, error)
	// FindByName returns the contact with exactly this name, or ErrNotFound.
	FindByName(ctx context.Context, name string) (model.Contact, error)
	// Insert stores a new contact and sets its Id.
	Insert(ctx context.Context, contact *model.Contact) error
	// UpdateByID replaces name, email and phone of the contact with the given id.
	UpdateByID(ctx context.Context, id string, contact model.Contact) error
	// DeleteByName removes the contact with this name. It reports whether a contact was removed.
	DeleteByName(ctx context.Context, name string) (bool, error)
	Close(ctx context.Context) error
}
