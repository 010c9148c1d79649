// Package mongostore keeps contacts as documents in a MongoDB collection. Each document has the
// shape {_id: ObjectID, name, email, phone}; the hex form of the ObjectID is the contact id.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"gitlab.com/dirk.krummacker/contacts-web/internal/config"
	"gitlab.com/dirk.krummacker/contacts-web/internal/model"
	"gitlab.com/dirk.krummacker/contacts-web/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// document is the stored form of a contact.
type document struct {
	ID    bson.ObjectID `bson:"_id,omitempty"`
	Name  string        `bson:"name"`
	Email string        `bson:"email"`
	Phone string        `bson:"phone"`
}

func fromContact(c model.Contact) document {
	return document{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func (d document) contact() model.Contact {
	return model.Contact{
		Id:    d.ID.Hex(),
		Name:  d.Name,
		Email: d.Email,
		Phone: d.Phone,
	}
}

// Store is the MongoDB contact store.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// Open connects to the configured server and verifies the connection with a ping.
func Open(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeoutDuration()))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeoutDuration())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongostore: ping: %w", err)
	}
	return New(client, cfg.Database, cfg.Collection), nil
}

// New uses an already connected client.
func New(client *mongo.Client, database, collection string) *Store {
	return &Store{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

// EnsureCollection creates the contacts collection if it does not exist yet.
func (s *Store) EnsureCollection(ctx context.Context) (bool, error) {
	db := s.collection.Database()
	names, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: s.collection.Name()}})
	if err != nil {
		return false, fmt.Errorf("mongostore: list collections: %w", err)
	}
	if len(names) > 0 {
		return false, nil
	}
	if err := db.CreateCollection(ctx, s.collection.Name()); err != nil {
		return false, fmt.Errorf("mongostore: create collection: %w", err)
	}
	return true, nil
}

// FindAll sorts by _id, which follows insertion order for driver generated ObjectIDs.
func (s *Store) FindAll(ctx context.Context) ([]model.Contact, error) {
	cursor, err := s.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongostore: find all: %w", err)
	}
	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongostore: find all: %w", err)
	}
	contacts := make([]model.Contact, 0, len(docs))
	for _, d := range docs {
		contacts = append(contacts, d.contact())
	}
	return contacts, nil
}

func (s *Store) FindByName(ctx context.Context, name string) (model.Contact, error) {
	var d document
	err := s.collection.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Contact{}, store.ErrNotFound
	}
	if err != nil {
		return model.Contact{}, fmt.Errorf("mongostore: find by name: %w", err)
	}
	return d.contact(), nil
}

func (s *Store) Insert(ctx context.Context, contact *model.Contact) error {
	d := fromContact(*contact)
	d.ID = bson.NewObjectID()
	if _, err := s.collection.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("mongostore: insert: %w", err)
	}
	contact.Id = d.ID.Hex()
	return nil
}

// UpdateByID returns ErrNotFound for ids that are not valid ObjectIDs.
func (s *Store) UpdateByID(ctx context.Context, id string, contact model.Contact) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: contact.Name},
		{Key: "email", Value: contact.Email},
		{Key: "phone", Value: contact.Phone},
	}}}
	result, err := s.collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update)
	if err != nil {
		return fmt.Errorf("mongostore: update: %w", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteByName(ctx context.Context, name string) (bool, error) {
	result, err := s.collection.DeleteOne(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return false, fmt.Errorf("mongostore: delete: %w", err)
	}
	return result.DeletedCount > 0, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
