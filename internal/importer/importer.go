package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"storelib/internal/domain"

	"github.com/google/uuid"
)

// Kind names the record type a CSV file holds.
type Kind string

const (
	KindProducts Kind = "products"
	KindBooks    Kind = "books"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type AuthorStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Author, error)
	Create(ctx context.Context, a domain.Author) (*domain.Author, error)
}

type PublisherStore interface {
	GetByName(ctx context.Context, name string) (*domain.Publisher, error)
	Create(ctx context.Context, p domain.Publisher) (*domain.Publisher, error)
}

type BookWriter interface {
	Create(ctx context.Context, b domain.Book) (*domain.Book, error)
}

// Stores are the write targets. Only the ones needed by the detected kind must be set.
type Stores struct {
	Products   ProductWriter
	Authors    AuthorStore
	Publishers PublisherStore
	Books      BookWriter
}

// CSVImporter reads product or book CSV exports and writes them through the stores.
type CSVImporter struct {
	reader *csv.Reader
	stores Stores
	kind   Kind
}

func NewCSVImporter(r io.Reader, stores Stores) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, stores: stores}
}

// Kind reports what the last Run detected.
func (i *CSVImporter) Kind() Kind {
	return i.kind
}

// DetectKind decides the file kind from its header row.
func DetectKind(headers []string) (Kind, error) {
	index := headerIndex(headers)
	has := func(cols ...string) bool {
		for _, c := range cols {
			if _, ok := index[c]; !ok {
				return false
			}
		}
		return true
	}
	hasPrice := has("price_cents") || has("price")
	switch {
	case has("title", "author_email", "publisher_name") && hasPrice:
		return KindBooks, nil
	case has("name") && hasPrice:
		return KindProducts, nil
	default:
		return "", fmt.Errorf("unrecognised header %v", headers)
	}
}

// Run parses the file and returns how many records were written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	kind, err := DetectKind(headers)
	if err != nil {
		return 0, err
	}
	i.kind = kind
	index := headerIndex(headers)

	var save func(context.Context, []string, map[string]int) error
	switch kind {
	case KindProducts:
		if i.stores.Products == nil {
			return 0, errors.New("product store not configured")
		}
		save = i.saveProduct
	case KindBooks:
		if i.stores.Books == nil || i.stores.Authors == nil || i.stores.Publishers == nil {
			return 0, errors.New("book stores not configured")
		}
		save = i.saveBook
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++
		if blank(record) {
			continue
		}
		if err := save(ctx, record, index); err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) saveProduct(ctx context.Context, record []string, index map[string]int) error {
	name := pick(record, index, "name")
	if name == "" {
		return errors.New("product name required")
	}
	id := pick(record, index, "id")
	if id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return fmt.Errorf("invalid id for %q: %s", name, id)
		}
		id = parsed.String()
	}
	cents, err := priceCents(record, index)
	if err != nil {
		return fmt.Errorf("product %q: %w", name, err)
	}

	p := domain.Product{
		ID:          id,
		Name:        name,
		Description: pick(record, index, "description"),
		PriceCents:  cents,
		Image:       pick(record, index, "image"),
	}
	if cat := pick(record, index, "category_id"); cat != "" {
		parsed, err := uuid.Parse(cat)
		if err != nil {
			return fmt.Errorf("invalid category_id for %q: %s", name, cat)
		}
		catID := parsed.String()
		p.CategoryID = &catID
	}

	if _, err := i.stores.Products.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", name, err)
	}
	return nil
}

func (i *CSVImporter) saveBook(ctx context.Context, record []string, index map[string]int) error {
	title := pick(record, index, "title")
	if title == "" {
		return errors.New("book title required")
	}
	cents, err := priceCents(record, index)
	if err != nil {
		return fmt.Errorf("book %q: %w", title, err)
	}

	author, err := i.resolveAuthor(ctx, pick(record, index, "author_name"), pick(record, index, "author_email"))
	if err != nil {
		return fmt.Errorf("book %q: %w", title, err)
	}
	publisher, err := i.resolvePublisher(ctx, pick(record, index, "publisher_name"), pick(record, index, "publisher_website"))
	if err != nil {
		return fmt.Errorf("book %q: %w", title, err)
	}

	_, err = i.stores.Books.Create(ctx, domain.Book{
		Title:       title,
		PriceCents:  cents,
		CoverImage:  pick(record, index, "cover_image"),
		AuthorID:    author.ID,
		PublisherID: publisher.ID,
	})
	if err != nil {
		return fmt.Errorf("create book %q: %w", title, err)
	}
	return nil
}

func (i *CSVImporter) resolveAuthor(ctx context.Context, name, email string) (*domain.Author, error) {
	email = strings.ToLower(email)
	if email == "" {
		return nil, errors.New("author_email required")
	}
	a, err := i.stores.Authors.GetByEmail(ctx, email)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("author_name required for new author %s", email)
	}
	return i.stores.Authors.Create(ctx, domain.Author{Name: name, Email: email})
}

func (i *CSVImporter) resolvePublisher(ctx context.Context, name, website string) (*domain.Publisher, error) {
	if name == "" {
		return nil, errors.New("publisher_name required")
	}
	p, err := i.stores.Publishers.GetByName(ctx, name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return i.stores.Publishers.Create(ctx, domain.Publisher{Name: name, Website: website})
}

// priceCents reads price_cents, or a decimal price such as "19.99".
func priceCents(record []string, index map[string]int) (int64, error) {
	if raw := pick(record, index, "price_cents"); raw != "" {
		cents, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || !digits(raw) {
			return 0, fmt.Errorf("invalid price_cents %q", raw)
		}
		return cents, nil
	}
	raw := pick(record, index, "price")
	if raw == "" {
		return 0, errors.New("price required")
	}
	return parseDecimalCents(raw)
}

func parseDecimalCents(raw string) (int64, error) {
	whole, frac, _ := strings.Cut(raw, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	if !digits(whole) || !digits(frac) {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("price %q has more than two decimals", raw)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w > (math.MaxInt64-99)/100 {
		return 0, fmt.Errorf("price %q out of range", raw)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	return w*100 + f, nil
}

// digits reports whether s holds only ASCII digits. Empty is allowed.
func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
