package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mrhook/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products.
// Expected columns: name, price_cents, description, image, type, category,
// stock. Header order is free; unknown columns are ignored.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row. It returns the count
// of imported products and stops at the first bad row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing required column: name")
	}
	if _, ok := index["price_cents"]; !ok {
		return 0, errors.New("missing required column: price_cents")
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		product, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+2, err)
		}
		if product == nil {
			continue
		}
		if _, err := i.productRepo.Upsert(ctx, *product); err != nil {
			return imported, fmt.Errorf("upsert %q: %w", product.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("name")
	if name == "" {
		return nil, nil
	}

	cents, err := strconv.ParseInt(field("price_cents"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse price_cents: %w", err)
	}
	if cents < 0 {
		return nil, fmt.Errorf("negative price for %q", name)
	}

	stock := 0
	if raw := field("stock"); raw != "" {
		stock, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse stock: %w", err)
		}
		if stock < 0 {
			return nil, fmt.Errorf("negative stock for %q", name)
		}
	}

	return &domain.Product{
		Name:        name,
		Type:        field("type"),
		Description: field("description"),
		ImageURL:    field("image"),
		Category:    field("category"),
		PriceCents:  cents,
		Stock:       stock,
	}, nil
}
