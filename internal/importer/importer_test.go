package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storelib/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

type stubAuthorRepo struct {
	byEmail map[string]domain.Author
	created int
}

func (s *stubAuthorRepo) GetByEmail(_ context.Context, email string) (*domain.Author, error) {
	a, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (s *stubAuthorRepo) Create(_ context.Context, a domain.Author) (*domain.Author, error) {
	s.created++
	a.ID = "author-" + a.Email
	s.byEmail[a.Email] = a
	return &a, nil
}

type stubPublisherRepo struct {
	byName  map[string]domain.Publisher
	created int
}

func (s *stubPublisherRepo) GetByName(_ context.Context, name string) (*domain.Publisher, error) {
	p, ok := s.byName[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubPublisherRepo) Create(_ context.Context, p domain.Publisher) (*domain.Publisher, error) {
	s.created++
	p.ID = "publisher-" + p.Name
	s.byName[p.Name] = p
	return &p, nil
}

type stubBookRepo struct {
	items []domain.Book
}

func (s *stubBookRepo) Create(_ context.Context, b domain.Book) (*domain.Book, error) {
	s.items = append(s.items, b)
	return &b, nil
}

func TestDetectKind(t *testing.T) {
	kind, err := DetectKind([]string{"id", "name", "description", "price_cents"})
	require.NoError(t, err)
	assert.Equal(t, KindProducts, kind)

	kind, err = DetectKind([]string{"Title", "price", "author_name", "author_email", "publisher_name"})
	require.NoError(t, err)
	assert.Equal(t, KindBooks, kind)

	_, err = DetectKind([]string{"foo", "bar"})
	assert.Error(t, err)
}

func TestCSVImporter_RunProducts(t *testing.T) {
	csvData := `id,name,description,price_cents,category_id,image
00000000-0000-0000-0000-000000000001,Demo T-Shirt,Soft cotton tee,1999,00000000-0000-0000-0000-0000000000aa,shirt.jpg

,Demo Mug,Ceramic mug,1299,,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), Stores{Products: repo})

	count, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, KindProducts, imp.Kind())

	require.Len(t, repo.items, 2)
	first := repo.items[0]
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", first.ID)
	assert.Equal(t, int64(1999), first.PriceCents)
	require.NotNil(t, first.CategoryID)
	assert.Equal(t, "00000000-0000-0000-0000-0000000000aa", *first.CategoryID)
	assert.Equal(t, "shirt.jpg", first.Image)

	second := repo.items[1]
	assert.Empty(t, second.ID)
	assert.Nil(t, second.CategoryID)
}

func TestCSVImporter_RunProductsDecimalPrice(t *testing.T) {
	csvData := "name,price\nA,19.99\nB,5\nC,.5\n"
	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), Stores{Products: repo})

	_, err := imp.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, repo.items, 3)
	assert.Equal(t, int64(1999), repo.items[0].PriceCents)
	assert.Equal(t, int64(500), repo.items[1].PriceCents)
	assert.Equal(t, int64(50), repo.items[2].PriceCents)
}

func TestCSVImporter_RejectsBadRows(t *testing.T) {
	cases := map[string]string{
		"bad id":          "id,name,price_cents\nnot-a-uuid,A,100\n",
		"negative price":  "name,price_cents\nA,-1\n",
		"negative amount": "name,price\nA,-0.50\n",
		"three decimals":  "name,price\nA,1.999\n",
		"missing name":    "name,price_cents\n,100\n",
		"signed cents":    "name,price_cents\nA,+100\n",
		"signed price":    "name,price\nA,+1.5\n",
		"signed fraction": "name,price\nA,1.+5\n",
		"lone point":      "name,price\nA,.\n",
		"overflow price":  "name,price\nA,99999999999999999999.99\n",
		"near max price":  "name,price\nA,92233720368547758.07\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &stubProductRepo{}
			_, err := NewCSVImporter(strings.NewReader(data), Stores{Products: repo}).Run(context.Background())
			assert.Error(t, err)
			assert.Empty(t, repo.items)
		})
	}
}

func TestParseDecimalCents(t *testing.T) {
	for raw, want := range map[string]int64{
		"19.99": 1999,
		"20":    2000,
		"1.5":   150,
		".5":    50,
		"3.":    300,
		"0.07":  7,
	} {
		got, err := parseDecimalCents(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"+1.5", "1.+5", "1.-5", " 1.5", "1e3", "", ".", "1.2.3", "92233720368547758.07"} {
		_, err := parseDecimalCents(raw)
		assert.Error(t, err, raw)
	}

	got, err := parseDecimalCents("92233720368547757.99")
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854775799), got)
}

func TestCSVImporter_RunBooks(t *testing.T) {
	csvData := `title,price,cover_image,author_name,author_email,publisher_name,publisher_website
Go Basics,25.00,go.jpg,Jane Doe,Jane@Example.com,Acme Press,https://acme.example
Go Advanced,30.50,,Jane Doe,jane@example.com,Acme Press,
Rust Intro,20,,John Roe,john@example.com,Other House,`

	authors := &stubAuthorRepo{byEmail: map[string]domain.Author{}}
	publishers := &stubPublisherRepo{byName: map[string]domain.Publisher{}}
	books := &stubBookRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), Stores{Authors: authors, Publishers: publishers, Books: books})

	count, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, KindBooks, imp.Kind())

	assert.Equal(t, 2, authors.created, "authors are reused by email")
	assert.Equal(t, 2, publishers.created, "publishers are reused by name")

	require.Len(t, books.items, 3)
	assert.Equal(t, int64(2500), books.items[0].PriceCents)
	assert.Equal(t, "author-jane@example.com", books.items[0].AuthorID)
	assert.Equal(t, books.items[0].AuthorID, books.items[1].AuthorID)
	assert.Equal(t, "publisher-Acme Press", books.items[1].PublisherID)
	assert.Equal(t, int64(3050), books.items[1].PriceCents)
}

func TestCSVImporter_MissingStores(t *testing.T) {
	_, err := NewCSVImporter(strings.NewReader("title,price,author_email,publisher_name\n"), Stores{}).Run(context.Background())
	assert.Error(t, err)

	_, err = NewCSVImporter(strings.NewReader("name,price\n"), Stores{}).Run(context.Background())
	assert.Error(t, err)
}

type failingAuthors struct{}

func (failingAuthors) GetByEmail(context.Context, string) (*domain.Author, error) {
	return nil, errors.New("db down")
}

func (failingAuthors) Create(context.Context, domain.Author) (*domain.Author, error) {
	return nil, errors.New("unreachable")
}

func TestCSVImporter_BooksLookupError(t *testing.T) {
	csvData := "title,price,author_name,author_email,publisher_name\nT,1,A,a@example.com,P\n"
	books := &stubBookRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), Stores{
		Authors:    failingAuthors{},
		Publishers: &stubPublisherRepo{byName: map[string]domain.Publisher{}},
		Books:      books,
	})
	_, err := imp.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Empty(t, books.items)
}
