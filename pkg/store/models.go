package store

import "time"

// GORM models used for persistence.
type BookModel struct {
	ID           int64     `gorm:"column:book_id;primaryKey;autoIncrement"`
	Category     string    `gorm:"size:255;not null"`
	Title        string    `gorm:"size:255;not null"`
	ISBN         string    `gorm:"column:isbn;size:255;not null"`
	Author       string    `gorm:"size:255;not null"`
	Publisher    string    `gorm:"size:255;not null"`
	Description  string    `gorm:"size:255;not null"`
	Location     string    `gorm:"size:255;not null"`
	PurchaseDate time.Time `gorm:"not null"`
	Price        float64   `gorm:"not null"`
	TotalBook    int       `gorm:"not null"`
	Status       *string   `gorm:"size:255"`
	Reason       *string   `gorm:"size:255"`
	Language     *string   `gorm:"size:255"`
}

func (BookModel) TableName() string { return "books" }

type UserModel struct {
	ID                int64   `gorm:"column:user_id;primaryKey;autoIncrement"`
	FirstName         string  `gorm:"size:255;not null"`
	LastName          string  `gorm:"size:255;not null"`
	Position          string  `gorm:"size:255;not null"`
	Privilege         *string `gorm:"size:255"`
	LibraryCardNumber *string `gorm:"size:255"`
	Notes             *string `gorm:"size:255"`
}

func (UserModel) TableName() string { return "users" }
