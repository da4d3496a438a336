package main

import (
	"bufio"
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/padoca/confeitaria/internal/catalog"
	"github.com/padoca/confeitaria/internal/config"
	"github.com/padoca/confeitaria/internal/customers"
	"github.com/padoca/confeitaria/internal/postgres"
	"github.com/shopspring/decimal"
)

// Seeds the catalog and delivery areas so a fresh database is usable:
// areas (optionally from a name;fee CSV), flavor levels, sizes, a starter
// set of flavors and products, and one admin account. Each group is only
// written when its table is empty, so re-running is safe.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	if err := postgres.Migrate(cfg.PostgresDSN); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	catalogRepo := &catalog.Repo{DB: db}
	customerRepo := &customers.Repo{DB: db}

	seedAreas(ctx, customerRepo)
	levelIDs := seedFlavorLevels(ctx, catalogRepo)
	sizeIDs := seedSizes(ctx, catalogRepo)
	flavorIDs := seedFlavors(ctx, catalogRepo, levelIDs)
	seedProducts(ctx, catalogRepo, flavorIDs, sizeIDs)
	seedAdmin(ctx, customerRepo, cfg)

	log.Println("seed complete")
}

func seedAreas(ctx context.Context, repo *customers.Repo) {
	existing, err := repo.ListAreas(ctx)
	if err != nil {
		log.Fatalf("list areas: %v", err)
	}
	if len(existing) > 0 {
		return
	}

	for name, fee := range loadAreas() {
		if _, err := repo.CreateArea(ctx, name, fee); err != nil {
			log.Fatalf("create area %q: %v", name, err)
		}
	}
}

// loadAreas reads AREAS_CSV ("name;fee" per line, # for comments) when set,
// else falls back to a small built-in list.
func loadAreas() map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}

	path := os.Getenv("AREAS_CSV")
	if path == "" {
		out["Centro"] = decimal.NewFromFloat(8.00)
		out["Jardim das Flores"] = decimal.NewFromFloat(12.00)
		out["Vila Nova"] = decimal.NewFromFloat(15.00)
		return out
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		name, feeStr, ok := strings.Cut(raw, ";")
		if !ok {
			continue
		}
		fee, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(feeStr), ",", "."))
		if err != nil {
			log.Fatalf("bad fee in %q: %v", raw, err)
		}
		out[strings.TrimSpace(name)] = fee
	}
	if err := sc.Err(); err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	return out
}

func seedFlavorLevels(ctx context.Context, repo *catalog.Repo) map[string]int64 {
	ids := map[string]int64{}
	existing, err := repo.ListFlavorLevels(ctx)
	if err != nil {
		log.Fatalf("list flavor levels: %v", err)
	}
	if len(existing) > 0 {
		for _, l := range existing {
			ids[l.Name] = l.ID
		}
		return ids
	}

	for name, price := range map[string]float64{"Tradicional": 10.00, "Especial": 20.00} {
		id, err := repo.CreateFlavorLevel(ctx, name, decimal.NewFromFloat(price))
		if err != nil {
			log.Fatalf("create flavor level %q: %v", name, err)
		}
		ids[name] = id
	}
	return ids
}

func seedSizes(ctx context.Context, repo *catalog.Repo) map[string]int64 {
	ids := map[string]int64{}
	existing, err := repo.ListSizes(ctx)
	if err != nil {
		log.Fatalf("list sizes: %v", err)
	}
	if len(existing) > 0 {
		for _, s := range existing {
			ids[s.Name] = s.ID
		}
		return ids
	}

	sizes := []struct {
		name, yield, weight string
		price               float64
	}{
		{"Mine", "8 a 10 pessoas", "1.3kg", 130.00},
		{"PP", "20 a 25 pessoas", "2.3kg", 20.00},
		{"P", "35 a 40 pessoas", "3.8kg", 20.00},
		{"M", "50 pessoas", "7kg", 20.00},
		{"G", "90 pessoas", "9kg", 20.00},
	}
	for _, s := range sizes {
		id, err := repo.CreateSize(ctx, s.name, s.yield, s.weight, decimal.NewFromFloat(s.price))
		if err != nil {
			log.Fatalf("create size %q: %v", s.name, err)
		}
		ids[s.name] = id
	}
	return ids
}

func seedFlavors(ctx context.Context, repo *catalog.Repo, levels map[string]int64) map[string]int64 {
	ids := map[string]int64{}
	existing, err := repo.ListFlavors(ctx)
	if err != nil {
		log.Fatalf("list flavors: %v", err)
	}
	if len(existing) > 0 {
		for _, f := range existing {
			ids[f.Name] = f.ID
		}
		return ids
	}

	flavors := []struct{ name, level, desc string }{
		{"Brigadeiro", "Tradicional", "massa branca, recheio de brigadeiro"},
		{"Ninho com Morango", "Especial", "massa branca, creme de ninho e morangos"},
		{"Prestígio", "Tradicional", "massa de chocolate, recheio de coco"},
	}
	for _, f := range flavors {
		id, err := repo.CreateFlavor(ctx, f.name, levels[f.level], f.desc)
		if err != nil {
			log.Fatalf("create flavor %q: %v", f.name, err)
		}
		ids[f.name] = id
	}
	return ids
}

func seedProducts(ctx context.Context, repo *catalog.Repo, flavors, sizes map[string]int64) {
	existing, err := repo.ListProducts(ctx)
	if err != nil {
		log.Fatalf("list products: %v", err)
	}
	if len(existing) > 0 {
		return
	}

	products := []struct {
		name, flavor, size string
		base               float64
	}{
		{"Bolo Brigadeiro Mine", "Brigadeiro", "Mine", 0},
		{"Bolo Ninho com Morango P", "Ninho com Morango", "P", 35.00},
		{"Bolo Prestígio M", "Prestígio", "M", 48.00},
	}
	for _, p := range products {
		if _, err := repo.CreateProduct(ctx, p.name, flavors[p.flavor], sizes[p.size], decimal.NewFromFloat(p.base), ""); err != nil {
			log.Fatalf("create product %q: %v", p.name, err)
		}
	}
}

func seedAdmin(ctx context.Context, repo *customers.Repo, cfg config.Config) {
	if len(cfg.AdminEmails) == 0 {
		return
	}
	email := cfg.AdminEmails[0]
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin account")
		return
	}
	hash, err := customers.HashPassword(password)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}

	areas, err := repo.ListAreas(ctx)
	if err != nil || len(areas) == 0 {
		log.Fatalf("admin account needs at least one area: %v", err)
	}
	_, err = repo.Register(ctx, customers.RegisterRecord{
		FirstName:    "Admin",
		Email:        email,
		PasswordHash: hash,
		AreaID:       areas[0].ID,
		Street:       "Rua da Confeitaria",
	})
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	log.Printf("admin account created for %s", email)
}
