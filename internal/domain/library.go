package domain

import "time"

type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Publisher struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	PriceCents  int64     `json:"priceCents"`
	CoverImage  string    `json:"coverImage,omitempty"`
	AuthorID    string    `json:"authorId"`
	PublisherID string    `json:"publisherId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Review struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Reviewer  string    `json:"reviewer"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// LibraryMember is a borrower bound one-to-one to an external user identity.
type LibraryMember struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
