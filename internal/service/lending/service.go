package lending

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"storelib/internal/domain"
)

const maxPhoneLen = 10

// Service lends books to library members.
type Service struct {
	members memberRepo
	books   bookRepo
	records borrowRepo
	now     func() time.Time
}

type memberRepo interface {
	Create(ctx context.Context, m domain.LibraryMember) (*domain.LibraryMember, error)
	GetByID(ctx context.Context, id string) (*domain.LibraryMember, error)
	Delete(ctx context.Context, id string) error
}

type bookRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Book, error)
}

type borrowRepo interface {
	Create(ctx context.Context, memberID, bookID string, borrowedAt time.Time) (*domain.BorrowRecord, error)
	GetByID(ctx context.Context, id string) (*domain.BorrowRecord, error)
	ListByMember(ctx context.Context, memberID string) ([]domain.BorrowRecord, error)
	MarkReturned(ctx context.Context, id string, returnedAt time.Time) (*domain.BorrowRecord, error)
}

func New(members memberRepo, books bookRepo, records borrowRepo) *Service {
	return &Service{members: members, books: books, records: records, now: time.Now}
}

// BorrowStatus is a borrow record with the values derived from it at read time.
type BorrowStatus struct {
	Record       domain.BorrowRecord `json:"record"`
	Overdue      bool                `json:"overdue"`
	DaysBorrowed int                 `json:"daysBorrowed"`
}

type MemberInput struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

func (s *Service) RegisterMember(ctx context.Context, in MemberInput) (*domain.LibraryMember, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, domain.Invalid("userId required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Invalid("invalid email %q", in.Email)
	}
	phone := strings.TrimSpace(in.Phone)
	if len(phone) > maxPhoneLen {
		return nil, domain.Invalid("phone must be at most %d characters", maxPhoneLen)
	}
	return s.members.Create(ctx, domain.LibraryMember{UserID: userID, Name: name, Email: email, Phone: phone})
}

func (s *Service) GetMember(ctx context.Context, id string) (*domain.LibraryMember, error) {
	return s.members.GetByID(ctx, id)
}

// DeleteMember removes the member. Their borrow records stay, detached from the member.
func (s *Service) DeleteMember(ctx context.Context, id string) error {
	return s.members.Delete(ctx, id)
}

// Borrow opens a record for the member and book dated now.
func (s *Service) Borrow(ctx context.Context, memberID, bookID string) (*BorrowStatus, error) {
	memberID = strings.TrimSpace(memberID)
	bookID = strings.TrimSpace(bookID)
	if memberID == "" || bookID == "" {
		return nil, domain.Invalid("memberId and bookId required")
	}
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		return nil, relationErr("member", memberID, err)
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, relationErr("book", bookID, err)
	}

	now := s.now().UTC()
	rec, err := s.records.Create(ctx, memberID, bookID, now)
	if err != nil {
		return nil, err
	}
	return statusOf(*rec, now), nil
}

// Return closes the record. Returning twice is a conflict.
func (s *Service) Return(ctx context.Context, recordID string) (*BorrowStatus, error) {
	now := s.now().UTC()
	rec, err := s.records.MarkReturned(ctx, recordID, now)
	if err != nil {
		return nil, err
	}
	return statusOf(*rec, now), nil
}

func (s *Service) Get(ctx context.Context, recordID string) (*BorrowStatus, error) {
	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return statusOf(*rec, s.now().UTC()), nil
}

func (s *Service) ListByMember(ctx context.Context, memberID string) ([]BorrowStatus, error) {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		return nil, err
	}
	records, err := s.records.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	out := make([]BorrowStatus, 0, len(records))
	for _, rec := range records {
		out = append(out, *statusOf(rec, now))
	}
	return out, nil
}

func statusOf(rec domain.BorrowRecord, now time.Time) *BorrowStatus {
	return &BorrowStatus{
		Record:       rec,
		Overdue:      rec.IsOverdue(now),
		DaysBorrowed: rec.DaysBorrowed(now),
	}
}

func relationErr(kind, id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Invalid("%s %s not found", kind, id)
	}
	return err
}
