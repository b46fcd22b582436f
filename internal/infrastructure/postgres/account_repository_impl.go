package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emartsoft/login-service/internal/domain/entity"
	"github.com/emartsoft/login-service/internal/domain/repository"
)

const accountColumns = `id, name, email, phone, password_hash, city, roles, enabled, locked, login_attempts, last_login, created_at, updated_at`

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *AccountRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE phone = $1)`, phone).Scan(&exists)
	return exists, err
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (name, email, phone, password_hash, city, roles, enabled, locked, login_attempts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, a.Name, a.Email, a.Phone, a.PasswordHash, a.City, a.Roles, a.Enabled, a.Locked, a.LoginAttempts)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, a *entity.Account) error {
	a.UpdatedAt = time.Now().UTC()

	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET name = $1, email = $2, phone = $3, password_hash = $4, city = $5,
		    roles = $6, enabled = $7, locked = $8, login_attempts = $9,
		    last_login = $10, updated_at = $11
		WHERE id = $12
	`, a.Name, a.Email, a.Phone, a.PasswordHash, a.City,
		a.Roles, a.Enabled, a.Locked, a.LoginAttempts,
		a.LastLogin, a.UpdatedAt, a.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{}
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.PasswordHash, &a.City,
		&a.Roles, &a.Enabled, &a.Locked, &a.LoginAttempts, &a.LastLogin,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// mapUniqueViolation translates a Postgres unique violation (23505)
// into a DuplicateKeyError naming the colliding key, based on the
// constraint names from the accounts migration.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "accounts_email_key":
		return &repository.DuplicateKeyError{Field: "email"}
	case "accounts_phone_key":
		return &repository.DuplicateKeyError{Field: "phone"}
	default:
		return &repository.DuplicateKeyError{Field: pgErr.ConstraintName}
	}
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
