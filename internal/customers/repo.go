package customers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("customers: not found")

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) CreateArea(ctx context.Context, name string, fee decimal.Decimal) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO area(name, fee) VALUES ($1, $2) RETURNING id`, name, fee).Scan(&id)
	return id, err
}

func (r *Repo) ListAreas(ctx context.Context) ([]Area, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, fee FROM area ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Area
	for rows.Next() {
		var a Area
		if err := rows.Scan(&a.ID, &a.Name, &a.Fee); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type RegisterRecord struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	AreaID       int64
	CEP          *string
	Street       string
	Number       *int
	Complement   *string
	Reference    *string
}

// Register creates address, person and customer rows in one transaction.
// The three inserts stand or fall together; unlike checkout there is no
// reason to expose a partially created account.
func (r *Repo) Register(ctx context.Context, rec RegisterRecord) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var addressID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO address(id_area, cep, street, number, complement, reference)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		rec.AreaID, rec.CEP, rec.Street, rec.Number, rec.Complement, rec.Reference).Scan(&addressID)
	if err != nil {
		return 0, err
	}

	var personID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO person(first_name, last_name, email, id_address)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		rec.FirstName, rec.LastName, rec.Email, addressID).Scan(&personID)
	if err != nil {
		return 0, err
	}

	var customerID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO customer(id_person, password_hash) VALUES ($1, $2) RETURNING id`,
		personID, rec.PasswordHash).Scan(&customerID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return customerID, nil
}

// FindByEmail loads the customer account behind an email address.
func (r *Repo) FindByEmail(ctx context.Context, email string) (Customer, error) {
	var c Customer
	err := r.DB.QueryRow(ctx, `
		SELECT c.id, p.id, p.first_name, COALESCE(p.last_name, ''), p.email, c.password_hash
		FROM customer c
		INNER JOIN person p ON p.id = c.id_person
		WHERE lower(p.email) = lower($1)`, email).
		Scan(&c.ID, &c.PersonID, &c.FirstName, &c.LastName, &c.Email, &c.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, ErrNotFound
	}
	return c, err
}

// Email returns the email on file for a customer id.
func (r *Repo) Email(ctx context.Context, customerID int64) (string, error) {
	var email string
	err := r.DB.QueryRow(ctx, `
		SELECT p.email FROM customer c
		INNER JOIN person p ON p.id = c.id_person
		WHERE c.id = $1`, customerID).Scan(&email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return email, err
}

// FeeFor resolves the delivery fee of the customer's area. A customer
// without an address or area on file pays no fee.
func (r *Repo) FeeFor(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	var fee decimal.Decimal
	err := r.DB.QueryRow(ctx, `
		SELECT a.fee FROM customer c
		INNER JOIN person p ON p.id = c.id_person
		INNER JOIN address ad ON ad.id = p.id_address
		INNER JOIN area a ON a.id = ad.id_area
		WHERE c.id = $1`, customerID).Scan(&fee)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	return fee, err
}
