package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"librarysvc/pkg/domain"
)

const migrateLockID int64 = 52105210

// notDeleted filters out soft-deleted books. A null status counts as not
// deleted, so the predicate must admit nulls explicitly.
const notDeleted = "(status IS NULL OR status NOT LIKE ?)"

const deletedPattern = "%" + domain.StatusDeleted + "%"

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := withMigrationLock(db, func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&BookModel{}, &UserModel{}); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func withMigrationLock(db *gorm.DB, fn func(*gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open sql conn: %w", err)
	}
	defer conn.Close()
	if err := execAdvisory(ctx, conn, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return fmt.Errorf("acquire migrate lock: %w", err)
	}
	defer func() {
		_ = execAdvisory(ctx, conn, "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()
	return fn(db)
}

func execAdvisory(ctx context.Context, conn *sql.Conn, query string, lockID int64) error {
	_, err := conn.ExecContext(ctx, query, lockID)
	return err
}

// AddBook inserts a book and returns it with the generated ID.
func (s *GormStore) AddBook(b domain.Book) (domain.Book, error) {
	model := bookToModel(b)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Book{}, err
	}
	return bookFromModel(model), nil
}

// ListBooks returns all books that are not soft-deleted.
func (s *GormStore) ListBooks() ([]domain.Book, error) {
	var models []BookModel
	if err := s.db.Where(notDeleted, deletedPattern).Order("book_id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Book, 0, len(models))
	for _, m := range models {
		res = append(res, bookFromModel(m))
	}
	return res, nil
}

// GetBook retrieves a book by ID, excluding soft-deleted rows.
func (s *GormStore) GetBook(id int64) (domain.Book, bool, error) {
	var model BookModel
	err := s.db.Where("book_id = ?", id).Where(notDeleted, deletedPattern).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Book{}, false, nil
		}
		return domain.Book{}, false, err
	}
	return bookFromModel(model), true, nil
}

// GetBookAnyStatus retrieves a book by ID regardless of soft-delete state.
func (s *GormStore) GetBookAnyStatus(id int64) (domain.Book, bool, error) {
	var model BookModel
	if err := s.db.First(&model, "book_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Book{}, false, nil
		}
		return domain.Book{}, false, err
	}
	return bookFromModel(model), true, nil
}

// UpdateBook persists all fields of an existing book.
func (s *GormStore) UpdateBook(b domain.Book) error {
	model := bookToModel(b)
	return s.db.Save(&model).Error
}

// DeleteBook physically removes a book row.
func (s *GormStore) DeleteBook(id int64) error {
	return s.db.Delete(&BookModel{}, "book_id = ?", id).Error
}

// AddUser inserts a user and returns it with the generated ID.
func (s *GormStore) AddUser(u domain.User) (domain.User, error) {
	model := userToModel(u)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.User{}, err
	}
	return userFromModel(model), nil
}

// ListUsers returns all users ordered by ID.
func (s *GormStore) ListUsers() ([]domain.User, error) {
	var models []UserModel
	if err := s.db.Order("user_id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.User, 0, len(models))
	for _, m := range models {
		res = append(res, userFromModel(m))
	}
	return res, nil
}

// GetUser retrieves a user by ID.
func (s *GormStore) GetUser(id int64) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "user_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// UpdateUser persists all fields of an existing user.
func (s *GormStore) UpdateUser(u domain.User) error {
	model := userToModel(u)
	return s.db.Save(&model).Error
}

// DeleteUser physically removes a user row.
func (s *GormStore) DeleteUser(id int64) error {
	return s.db.Delete(&UserModel{}, "user_id = ?", id).Error
}

func bookToModel(b domain.Book) BookModel {
	return BookModel{
		ID:           b.ID,
		Category:     b.Category,
		Title:        b.Title,
		ISBN:         b.ISBN,
		Author:       b.Author,
		Publisher:    b.Publisher,
		Description:  b.Description,
		Location:     b.Location,
		PurchaseDate: b.PurchaseDate,
		Price:        b.Price,
		TotalBook:    b.TotalBook,
		Status:       nullable(b.Status),
		Reason:       nullable(b.Reason),
		Language:     nullable(b.Language),
	}
}

func bookFromModel(m BookModel) domain.Book {
	return domain.Book{
		ID:           m.ID,
		Category:     m.Category,
		Title:        m.Title,
		ISBN:         m.ISBN,
		Author:       m.Author,
		Publisher:    m.Publisher,
		Description:  m.Description,
		Location:     m.Location,
		PurchaseDate: m.PurchaseDate,
		Price:        m.Price,
		TotalBook:    m.TotalBook,
		Status:       orEmpty(m.Status),
		Reason:       orEmpty(m.Reason),
		Language:     orEmpty(m.Language),
	}
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:                u.ID,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Position:          u.Position,
		Privilege:         nullable(u.Privilege),
		LibraryCardNumber: nullable(u.LibraryCardNumber),
		Notes:             nullable(u.Notes),
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:                m.ID,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Position:          m.Position,
		Privilege:         orEmpty(m.Privilege),
		LibraryCardNumber: orEmpty(m.LibraryCardNumber),
		Notes:             orEmpty(m.Notes),
	}
}

func nullable(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func orEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
