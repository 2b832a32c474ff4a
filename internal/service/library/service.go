package library

import (
	"context"
	"errors"
	"io"
	"log"
	"net/mail"
	"strings"

	"storelib/internal/domain"
	bookrepo "storelib/internal/repository/book"
)

const (
	minRating = 1
	maxRating = 5
)

// Service manages authors, publishers, books and their reviews.
type Service struct {
	authors    authorRepo
	publishers publisherRepo
	books      bookRepo
	logger     *log.Logger
}

type authorRepo interface {
	Create(ctx context.Context, a domain.Author) (*domain.Author, error)
	GetByID(ctx context.Context, id string) (*domain.Author, error)
	GetByEmail(ctx context.Context, email string) (*domain.Author, error)
	Delete(ctx context.Context, id string) error
}

type publisherRepo interface {
	Create(ctx context.Context, p domain.Publisher) (*domain.Publisher, error)
	GetByID(ctx context.Context, id string) (*domain.Publisher, error)
}

type bookRepo interface {
	Create(ctx context.Context, b domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, f bookrepo.ListFilter) ([]domain.Book, error)
	Delete(ctx context.Context, id string) error
	AddReview(ctx context.Context, rv domain.Review) (*domain.Review, error)
	ListReviews(ctx context.Context, bookID string) ([]domain.Review, error)
}

func New(authors authorRepo, publishers publisherRepo, books bookRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{authors: authors, publishers: publishers, books: books, logger: logger}
}

type AuthorInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PublisherInput struct {
	Name    string `json:"name"`
	Website string `json:"website"`
}

type BookInput struct {
	Title       string `json:"title"`
	PriceCents  int64  `json:"priceCents"`
	CoverImage  string `json:"coverImage"`
	AuthorID    string `json:"authorId"`
	PublisherID string `json:"publisherId"`
}

type ReviewInput struct {
	Reviewer string `json:"reviewer"`
	Content  string `json:"content"`
	Rating   int    `json:"rating"`
}

// CreateAuthor registers an author. Emails are unique across authors.
func (s *Service) CreateAuthor(ctx context.Context, in AuthorInput) (*domain.Author, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Invalid("invalid email %q", in.Email)
	}

	existing, err := s.authors.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrAlreadyExists
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	return s.authors.Create(ctx, domain.Author{Name: name, Email: email})
}

func (s *Service) GetAuthor(ctx context.Context, id string) (*domain.Author, error) {
	return s.authors.GetByID(ctx, id)
}

// DeleteAuthor removes the author together with their books.
func (s *Service) DeleteAuthor(ctx context.Context, id string) error {
	if err := s.authors.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Printf("library: author deleted id=%s", id)
	return nil
}

func (s *Service) CreatePublisher(ctx context.Context, in PublisherInput) (*domain.Publisher, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name required")
	}
	return s.publishers.Create(ctx, domain.Publisher{Name: name, Website: strings.TrimSpace(in.Website)})
}

func (s *Service) GetPublisher(ctx context.Context, id string) (*domain.Publisher, error) {
	return s.publishers.GetByID(ctx, id)
}

func (s *Service) CreateBook(ctx context.Context, in BookInput) (*domain.Book, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.Invalid("title required")
	}
	if in.PriceCents < 0 {
		return nil, domain.Invalid("price must not be negative")
	}
	authorID := strings.TrimSpace(in.AuthorID)
	if authorID == "" {
		return nil, domain.Invalid("authorId required")
	}
	publisherID := strings.TrimSpace(in.PublisherID)
	if publisherID == "" {
		return nil, domain.Invalid("publisherId required")
	}
	if _, err := s.authors.GetByID(ctx, authorID); err != nil {
		return nil, relationErr("author", authorID, err)
	}
	if _, err := s.publishers.GetByID(ctx, publisherID); err != nil {
		return nil, relationErr("publisher", publisherID, err)
	}

	return s.books.Create(ctx, domain.Book{
		Title:       title,
		PriceCents:  in.PriceCents,
		CoverImage:  strings.TrimSpace(in.CoverImage),
		AuthorID:    authorID,
		PublisherID: publisherID,
	})
}

func (s *Service) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.books.GetByID(ctx, id)
}

// ListBooks returns all books, or only the author's when authorID is set.
func (s *Service) ListBooks(ctx context.Context, authorID string) ([]domain.Book, error) {
	return s.books.List(ctx, bookrepo.ListFilter{AuthorID: strings.TrimSpace(authorID)})
}

// DeleteBook removes the book with its reviews. Borrow records keep existing without the book.
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	return s.books.Delete(ctx, id)
}

func (s *Service) AddReview(ctx context.Context, bookID string, in ReviewInput) (*domain.Review, error) {
	reviewer := strings.TrimSpace(in.Reviewer)
	if reviewer == "" {
		return nil, domain.Invalid("reviewer required")
	}
	if in.Rating < minRating || in.Rating > maxRating {
		return nil, domain.Invalid("rating must be between %d and %d", minRating, maxRating)
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.books.AddReview(ctx, domain.Review{
		BookID:   bookID,
		Reviewer: reviewer,
		Content:  strings.TrimSpace(in.Content),
		Rating:   in.Rating,
	})
}

func (s *Service) ListReviews(ctx context.Context, bookID string) ([]domain.Review, error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.books.ListReviews(ctx, bookID)
}

func relationErr(kind, id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Invalid("%s %s not found", kind, id)
	}
	return err
}
