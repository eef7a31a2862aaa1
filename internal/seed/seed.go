package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	Type        string
	Description string
	ImageURL    string
	Category    string
	PriceCents  int64
	Stock       int
}

// Apply inserts the starter catalog for manual testing. It is idempotent via
// ON CONFLICT; stock is only set when the product is first created, later
// runs leave live stock alone.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:        "Premium Carbon Fiber Rod",
			Type:        "Fishing Rods",
			Description: "Professional grade carbon fiber fishing rod with enhanced sensitivity and durability.",
			ImageURL:    "assets/pexels-cottonbro-4822295.jpg",
			Category:    "rods",
			PriceCents:  14999,
			Stock:       15,
		},
		{
			Name:        "Professional Hook Set",
			Type:        "Hooks",
			Description: "Complete set of professional fishing hooks in various sizes.",
			ImageURL:    "assets/pexels-karolina-grabowska-6478094.jpg",
			Category:    "hooks",
			PriceCents:  2499,
			Stock:       30,
		},
		{
			Name:        "Fresh Live Bait Collection",
			Type:        "Bait",
			Description: "Premium fresh bait collection for the best fishing experience.",
			ImageURL:    "assets/pexels-karolina-grabowska-6478141.jpg",
			Category:    "bait",
			PriceCents:  1899,
			Stock:       25,
		},
		{
			Name:        "Tackle Storage Box",
			Type:        "Containers",
			Description: "Waterproof tackle box with multiple compartments.",
			ImageURL:    "assets/pexels-lum3n-44775-294674.jpg",
			Category:    "containers",
			PriceCents:  3999,
			Stock:       20,
		},
		{
			Name:        "Professional Fishing Line",
			Type:        "Other",
			Description: "High-strength fishing line suitable for all fishing conditions.",
			ImageURL:    "assets/pexels-pablo-gutierrez-2064903-3690705.jpg",
			Category:    "other",
			PriceCents:  1299,
			Stock:       50,
		},
		{
			Name:        "Spinning Reel Combo",
			Type:        "Fishing Rods",
			Description: "Complete spinning reel and rod combination for beginners.",
			ImageURL:    "assets/pexels-jplenio-1105386.jpg",
			Category:    "rods",
			PriceCents:  8999,
			Stock:       12,
		},
		{
			Name:        "Bait Bucket Pro",
			Type:        "Containers",
			Description: "Professional bait bucket with aeration system.",
			ImageURL:    "assets/pexels-pixabay-39854.jpg",
			Category:    "containers",
			PriceCents:  2999,
			Stock:       18,
		},
		{
			Name:        "Multi-Tool Fisher",
			Type:        "Other",
			Description: "Essential fishing multi-tool with pliers, knife, and hook remover.",
			ImageURL:    "assets/pexels-brent-keane-181485-1687242.jpg",
			Category:    "other",
			PriceCents:  3499,
			Stock:       22,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %q: %w", p.Name, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, type, description, image_url, category, price_cents, stock)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (name) DO UPDATE SET
    type = EXCLUDED.type,
    description = EXCLUDED.description,
    image_url = EXCLUDED.image_url,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents
`
	_, err := pool.Exec(ctx, q, p.Name, p.Type, p.Description, p.ImageURL, p.Category, p.PriceCents, p.Stock)
	return err
}
