package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNotFound distinguishes "no such record" from infrastructure failures.
// Callers that tolerate missing products (cart projection, checkout) match
// on it with errors.Is.
var ErrNotFound = errors.New("catalog: not found")

// ErrInUse reports a delete blocked by a foreign key: the record is still
// referenced, either by a product or by a past order's lines. Order history
// is permanent, so such deletes are rejected rather than cascaded.
var ErrInUse = errors.New("catalog: still referenced")

const fkViolation = "23503"

func mapDeleteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
		return ErrInUse
	}
	return err
}

type Repo struct{ DB *pgxpool.Pool }

const productSelect = `
	SELECT p.id, p.name, p.base_price, p.description,
	       f.id, f.name, f.description,
	       fl.id, fl.name, fl.price,
	       s.id, s.name, s.yield, s.weight, s.price
	FROM product p
	INNER JOIN flavor f ON f.id = p.id_flavor
	INNER JOIN flavor_level fl ON fl.id = f.id_flavor_level
	INNER JOIN size s ON s.id = p.id_size`

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		fl    Flavor
		level FlavorLevel
		s     Size
	)
	err := row.Scan(&p.ID, &p.Name, &p.BasePrice, &p.Description,
		&fl.ID, &fl.Name, &fl.Description,
		&level.ID, &level.Name, &level.Price,
		&s.ID, &s.Name, &s.Yield, &s.Weight, &s.Price)
	if err != nil {
		return Product{}, err
	}
	fl.Level = &level
	p.Flavor = &fl
	p.Size = &s
	return p, nil
}

// FindProduct loads one product with its flavor, flavor level and size.
// Returns ErrNotFound when the id does not resolve.
func (r *Repo) FindProduct(ctx context.Context, id int64) (Product, error) {
	row := r.DB.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

// ListProducts returns all products, newest first.
func (r *Repo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, productSelect+` ORDER BY p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) CreateProduct(ctx context.Context, name string, flavorID, sizeID int64, basePrice decimal.Decimal, description string) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO product(name, id_flavor, id_size, base_price, description)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		name, flavorID, sizeID, basePrice, description).Scan(&id)
	return id, err
}

func (r *Repo) DeleteProduct(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		return mapDeleteErr(err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Admin maintenance for the price contributors below. These mirror the
// product methods; listing orders by name for the admin screens.

func (r *Repo) CreateSize(ctx context.Context, name, yield, weight string, price decimal.Decimal) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO size(name, yield, weight, price) VALUES ($1, $2, $3, $4) RETURNING id`,
		name, yield, weight, price).Scan(&id)
	return id, err
}

func (r *Repo) ListSizes(ctx context.Context) ([]Size, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, yield, weight, price FROM size ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Size
	for rows.Next() {
		var s Size
		if err := rows.Scan(&s.ID, &s.Name, &s.Yield, &s.Weight, &s.Price); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteSize(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM size WHERE id = $1`, id)
	if err != nil {
		return mapDeleteErr(err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) CreateFlavorLevel(ctx context.Context, name string, price decimal.Decimal) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO flavor_level(name, price) VALUES ($1, $2) RETURNING id`,
		name, price).Scan(&id)
	return id, err
}

func (r *Repo) ListFlavorLevels(ctx context.Context) ([]FlavorLevel, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, price FROM flavor_level ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FlavorLevel
	for rows.Next() {
		var l FlavorLevel
		if err := rows.Scan(&l.ID, &l.Name, &l.Price); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repo) CreateFlavor(ctx context.Context, name string, levelID int64, description string) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO flavor(name, id_flavor_level, description) VALUES ($1, $2, $3) RETURNING id`,
		name, levelID, description).Scan(&id)
	return id, err
}

func (r *Repo) ListFlavors(ctx context.Context) ([]Flavor, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT f.id, f.name, f.description, fl.id, fl.name, fl.price
		FROM flavor f
		INNER JOIN flavor_level fl ON fl.id = f.id_flavor_level
		ORDER BY f.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Flavor
	for rows.Next() {
		var (
			f     Flavor
			level FlavorLevel
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &level.ID, &level.Name, &level.Price); err != nil {
			return nil, err
		}
		f.Level = &level
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteFlavor(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM flavor WHERE id = $1`, id)
	if err != nil {
		return mapDeleteErr(err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
