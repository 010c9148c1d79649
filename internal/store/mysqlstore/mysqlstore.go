// Package mysqlstore keeps contacts in a MySQL table. All statements are prepared once when the
// store is created.
package mysqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/contacts-web/internal/config"
	"gitlab.com/dirk.krummacker/contacts-web/internal/model"
	"gitlab.com/dirk.krummacker/contacts-web/internal/store"
)

// Store is the MySQL contact store.
type Store struct {
	db *sqlx.DB

	// insert creates a contact.
	insert *sqlx.NamedStmt

	// selectAll selects all contacts in id order.
	selectAll *sqlx.Stmt

	// selectWhereName selects the contact with a given name.
	selectWhereName *sqlx.Stmt

	// updateWhereId replaces the fields of the contact with a given id.
	updateWhereId *sqlx.Stmt

	// deleteWhereName deletes the contact with a given name.
	deleteWhereName *sqlx.Stmt
}

var _ store.Store = (*Store)(nil)

// Open creates the database handle for the configured MySQL server. ClientFoundRows is set so
// that an update which leaves all values unchanged still reports the row as affected.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = cfg.Host
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.ClientFoundRows = true
	sqlDB, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("mysqlstore: open: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())
	return sqlDB, nil
}

// New wraps the sql database with sqlx and prepares all statements. The database argument can
// be a real database for production use or a mock database within unit tests.
func New(sqlDB *sql.DB) (*Store, error) {
	var err error
	s := &Store{db: sqlx.NewDb(sqlDB, "mysql")}

	s.insert, err = s.db.PrepareNamed(`
		INSERT INTO contacts (name, email, phone)
		VALUES (:name, :email, :phone)
	`)
	if err != nil {
		return nil, fmt.Errorf("mysqlstore: prepare insert: %w", err)
	}
	s.selectAll, err = s.db.Preparex(`
		SELECT id, name, email, phone FROM contacts ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("mysqlstore: prepare select all: %w", err)
	}
	s.selectWhereName, err = s.db.Preparex(`
		SELECT id, name, email, phone FROM contacts WHERE name = ? LIMIT 1
	`)
	if err != nil {
		return nil, fmt.Errorf("mysqlstore: prepare select by name: %w", err)
	}
	s.updateWhereId, err = s.db.Preparex(`
		UPDATE contacts SET name = ?, email = ?, phone = ? WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("mysqlstore: prepare update: %w", err)
	}
	s.deleteWhereName, err = s.db.Preparex(`
		DELETE FROM contacts WHERE name = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("mysqlstore: prepare delete: %w", err)
	}
	return s, nil
}

func (s *Store) FindAll(ctx context.Context) ([]model.Contact, error) {
	contacts := []model.Contact{}
	if err := s.selectAll.SelectContext(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("mysqlstore: find all: %w", err)
	}
	return contacts, nil
}

func (s *Store) FindByName(ctx context.Context, name string) (model.Contact, error) {
	var contact model.Contact
	err := s.selectWhereName.GetContext(ctx, &contact, name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, store.ErrNotFound
	}
	if err != nil {
		return model.Contact{}, fmt.Errorf("mysqlstore: find by name: %w", err)
	}
	return contact, nil
}

func (s *Store) Insert(ctx context.Context, contact *model.Contact) error {
	result, err := s.insert.ExecContext(ctx, contact)
	if err != nil {
		return fmt.Errorf("mysqlstore: insert: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("mysqlstore: insert: %w", err)
	}
	contact.Id = strconv.FormatInt(id, 10)
	return nil
}

// UpdateByID returns ErrNotFound for ids that are not numeric without reaching out to the
// database.
func (s *Store) UpdateByID(ctx context.Context, id string, contact model.Contact) error {
	numericId, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return store.ErrNotFound
	}
	result, err := s.updateWhereId.ExecContext(ctx, contact.Name, contact.Email, contact.Phone, numericId)
	if err != nil {
		return fmt.Errorf("mysqlstore: update: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mysqlstore: update: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteByName removes every row with this name. Since names are unique at write time this is
// at most one row.
func (s *Store) DeleteByName(ctx context.Context, name string) (bool, error) {
	result, err := s.deleteWhereName.ExecContext(ctx, name)
	if err != nil {
		return false, fmt.Errorf("mysqlstore: delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mysqlstore: delete: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Close()
}

