package library

import (
	"context"
	"fmt"
	"testing"

	"storelib/internal/domain"
	bookrepo "storelib/internal/repository/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAuthors struct {
	byID map[string]domain.Author
	seq  int
}

func (m *memoryAuthors) Create(_ context.Context, a domain.Author) (*domain.Author, error) {
	if m.byID == nil {
		m.byID = map[string]domain.Author{}
	}
	m.seq++
	a.ID = fmt.Sprintf("author-%d", m.seq)
	m.byID[a.ID] = a
	return &a, nil
}

func (m *memoryAuthors) GetByID(_ context.Context, id string) (*domain.Author, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (m *memoryAuthors) GetByEmail(_ context.Context, email string) (*domain.Author, error) {
	for _, a := range m.byID {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memoryAuthors) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memoryPublishers struct {
	byID map[string]domain.Publisher
}

func (m *memoryPublishers) Create(_ context.Context, p domain.Publisher) (*domain.Publisher, error) {
	if m.byID == nil {
		m.byID = map[string]domain.Publisher{}
	}
	p.ID = fmt.Sprintf("publisher-%d", len(m.byID)+1)
	m.byID[p.ID] = p
	return &p, nil
}

func (m *memoryPublishers) GetByID(_ context.Context, id string) (*domain.Publisher, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type memoryBooks struct {
	books      []domain.Book
	reviews    []domain.Review
	lastFilter bookrepo.ListFilter
}

func (m *memoryBooks) Create(_ context.Context, b domain.Book) (*domain.Book, error) {
	b.ID = fmt.Sprintf("book-%d", len(m.books)+1)
	m.books = append(m.books, b)
	return &b, nil
}

func (m *memoryBooks) GetByID(_ context.Context, id string) (*domain.Book, error) {
	for _, b := range m.books {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memoryBooks) List(_ context.Context, f bookrepo.ListFilter) ([]domain.Book, error) {
	m.lastFilter = f
	var out []domain.Book
	for _, b := range m.books {
		if f.AuthorID == "" || b.AuthorID == f.AuthorID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryBooks) Delete(_ context.Context, id string) error {
	for i, b := range m.books {
		if b.ID == id {
			m.books = append(m.books[:i], m.books[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memoryBooks) AddReview(_ context.Context, rv domain.Review) (*domain.Review, error) {
	rv.ID = fmt.Sprintf("review-%d", len(m.reviews)+1)
	m.reviews = append(m.reviews, rv)
	return &rv, nil
}

func (m *memoryBooks) ListReviews(_ context.Context, bookID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, rv := range m.reviews {
		if rv.BookID == bookID {
			out = append(out, rv)
		}
	}
	return out, nil
}

type fixture struct {
	svc        *Service
	authors    *memoryAuthors
	publishers *memoryPublishers
	books      *memoryBooks
}

func newFixture() fixture {
	f := fixture{authors: &memoryAuthors{}, publishers: &memoryPublishers{}, books: &memoryBooks{}}
	f.svc = New(f.authors, f.publishers, f.books, nil)
	return f
}

func (f fixture) seedBook(t *testing.T) (*domain.Author, *domain.Book) {
	t.Helper()
	ctx := context.Background()
	a, err := f.svc.CreateAuthor(ctx, AuthorInput{Name: "Jane Doe", Email: "jane@example.com"})
	require.NoError(t, err)
	p, err := f.svc.CreatePublisher(ctx, PublisherInput{Name: "Acme Press"})
	require.NoError(t, err)
	b, err := f.svc.CreateBook(ctx, BookInput{Title: "Go Basics", PriceCents: 2500, AuthorID: a.ID, PublisherID: p.ID})
	require.NoError(t, err)
	return a, b
}

func TestCreateAuthorNormalizesAndRejectsDuplicates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a, err := f.svc.CreateAuthor(ctx, AuthorInput{Name: " Jane ", Email: " Jane@Example.COM "})
	require.NoError(t, err)
	assert.Equal(t, "Jane", a.Name)
	assert.Equal(t, "jane@example.com", a.Email)

	_, err = f.svc.CreateAuthor(ctx, AuthorInput{Name: "Other", Email: "jane@example.com"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestCreateAuthorValidation(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateAuthor(context.Background(), AuthorInput{Name: "", Email: "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.svc.CreateAuthor(context.Background(), AuthorInput{Name: "A", Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateBookValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, err := f.svc.CreateAuthor(ctx, AuthorInput{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	p, err := f.svc.CreatePublisher(ctx, PublisherInput{Name: "P"})
	require.NoError(t, err)

	cases := map[string]BookInput{
		"missing title":     {PriceCents: 1, AuthorID: a.ID, PublisherID: p.ID},
		"negative price":    {Title: "T", PriceCents: -1, AuthorID: a.ID, PublisherID: p.ID},
		"missing author":    {Title: "T", PublisherID: p.ID},
		"missing publisher": {Title: "T", AuthorID: a.ID},
		"unknown author":    {Title: "T", AuthorID: "nope", PublisherID: p.ID},
		"unknown publisher": {Title: "T", AuthorID: a.ID, PublisherID: "nope"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.CreateBook(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, f.books.books)
}

func TestListBooksByAuthor(t *testing.T) {
	f := newFixture()
	a, b := f.seedBook(t)

	books, err := f.svc.ListBooks(context.Background(), " "+a.ID+" ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, f.books.lastFilter.AuthorID)
	require.Len(t, books, 1)
	assert.Equal(t, b.ID, books[0].ID)

	books, err = f.svc.ListBooks(context.Background(), "someone-else")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestAddReviewRatingBounds(t *testing.T) {
	f := newFixture()
	_, b := f.seedBook(t)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		_, err := f.svc.AddReview(ctx, b.ID, ReviewInput{Reviewer: "r", Rating: rating})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "rating %d", rating)
	}
	for _, rating := range []int{1, 5} {
		_, err := f.svc.AddReview(ctx, b.ID, ReviewInput{Reviewer: "r", Content: "ok", Rating: rating})
		require.NoError(t, err)
	}

	reviews, err := f.svc.ListReviews(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestAddReviewUnknownBook(t *testing.T) {
	f := newFixture()
	_, err := f.svc.AddReview(context.Background(), "missing", ReviewInput{Reviewer: "r", Rating: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAuthor(t *testing.T) {
	f := newFixture()
	a, _ := f.seedBook(t)
	require.NoError(t, f.svc.DeleteAuthor(context.Background(), a.ID))
	_, err := f.svc.GetAuthor(context.Background(), a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
