// Package memstore keeps contacts in process memory. It is used for local development and by
// the handler tests.
package memstore

import (
	"context"
	"strconv"
	"sync"

	"gitlab.com/dirk.krummacker/contacts-web/internal/model"
	"gitlab.com/dirk.krummacker/contacts-web/internal/store"
)

// Store is an in-memory contact store. The zero value is not usable, call New.
type Store struct {
	mu       sync.RWMutex
	nextId   int64
	contacts []model.Contact
}

var _ store.Store = (*Store)(nil)

// New returns an empty store, optionally filled with the given contacts.
func New(initial ...model.Contact) *Store {
	s := &Store{}
	for _, c := range initial {
		s.Insert(context.Background(), &c)
	}
	return s
}

func (s *Store) FindAll(ctx context.Context) ([]model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contacts := make([]model.Contact, len(s.contacts))
	copy(contacts, s.contacts)
	return contacts, nil
}

func (s *Store) FindByName(ctx context.Context, name string) (model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.contacts {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Contact{}, store.ErrNotFound
}

func (s *Store) Insert(ctx context.Context, contact *model.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextId++
	contact.Id = strconv.FormatInt(s.nextId, 10)
	s.contacts = append(s.contacts, *contact)
	return nil
}

func (s *Store) UpdateByID(ctx context.Context, id string, contact model.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.contacts {
		if s.contacts[i].Id == id {
			s.contacts[i].Name = contact.Name
			s.contacts[i].Email = contact.Email
			s.contacts[i].Phone = contact.Phone
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteByName(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.contacts {
		if c.Name == name {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}
