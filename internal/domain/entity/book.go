package entity

import (
	"time"
)

// Book is a catalog record owned by exactly one user. UserID never changes
// after creation; only the content fields are mutable.
type Book struct {
	ID            string
	Title         string
	Author        string
	ISBN          string
	PublishedDate time.Time // date precision only
	Description   string
	CoverURL      string
	UserID        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
