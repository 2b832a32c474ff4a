package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Fixed ids keep the seed idempotent and give manual testing stable handles.
const (
	demoCategoryID  = "6a0f3c1e-1b2d-4c3e-9f40-000000000001"
	demoCustomerID  = "6a0f3c1e-1b2d-4c3e-9f40-000000000002"
	demoAuthorID    = "6a0f3c1e-1b2d-4c3e-9f40-000000000003"
	demoPublisherID = "6a0f3c1e-1b2d-4c3e-9f40-000000000004"
	demoMemberID    = "6a0f3c1e-1b2d-4c3e-9f40-000000000005"
)

type productSeed struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
}

type bookSeed struct {
	ID         string
	Title      string
	PriceCents int64
}

// Apply inserts demo catalog and library data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := seedCatalog(ctx, pool); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if err := seedLibrary(ctx, pool); err != nil {
		return fmt.Errorf("seed library: %w", err)
	}
	return nil
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
INSERT INTO categories (id, name) VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`, demoCategoryID, "Demo Merchandise")
	if err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}

	_, err = pool.Exec(ctx, `
INSERT INTO customers (id, user_id, name, email) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`, demoCustomerID, "demo-user", "Demo Customer", "demo@example.com")
	if err != nil {
		return fmt.Errorf("upsert customer: %w", err)
	}

	products := []productSeed{
		{
			ID:          "6a0f3c1e-1b2d-4c3e-9f40-000000000101",
			Name:        "Demo T-Shirt",
			Description: "Soft cotton tee for demo purposes",
			PriceCents:  1999,
		},
		{
			ID:          "6a0f3c1e-1b2d-4c3e-9f40-000000000102",
			Name:        "Demo Mug",
			Description: "Ceramic mug with demo logo",
			PriceCents:  1299,
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (id, name, description, price_cents, category_id)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    category_id = EXCLUDED.category_id
`
	_, err := pool.Exec(ctx, q, p.ID, p.Name, p.Description, p.PriceCents, demoCategoryID)
	return err
}

func seedLibrary(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
INSERT INTO authors (id, name, email) VALUES ($1, $2, $3)
ON CONFLICT (id) DO NOTHING`, demoAuthorID, "Ada Writer", "ada@example.com")
	if err != nil {
		return fmt.Errorf("upsert author: %w", err)
	}

	_, err = pool.Exec(ctx, `
INSERT INTO publishers (id, name, website) VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, website = EXCLUDED.website`,
		demoPublisherID, "Demo Press", "https://press.example.com")
	if err != nil {
		return fmt.Errorf("upsert publisher: %w", err)
	}

	books := []bookSeed{
		{ID: "6a0f3c1e-1b2d-4c3e-9f40-000000000201", Title: "Practical Go", PriceCents: 3499},
		{ID: "6a0f3c1e-1b2d-4c3e-9f40-000000000202", Title: "Relational Modeling", PriceCents: 2999},
	}
	for _, b := range books {
		_, err := pool.Exec(ctx, `
INSERT INTO books (id, title, price_cents, author_id, publisher_id)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, price_cents = EXCLUDED.price_cents`,
			b.ID, b.Title, b.PriceCents, demoAuthorID, demoPublisherID)
		if err != nil {
			return fmt.Errorf("upsert book %s: %w", b.Title, err)
		}
	}

	_, err = pool.Exec(ctx, `
INSERT INTO library_members (id, user_id, name, email) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`, demoMemberID, "demo-reader", "Demo Reader", "reader@example.com")
	if err != nil {
		return fmt.Errorf("upsert member: %w", err)
	}
	return nil
}
