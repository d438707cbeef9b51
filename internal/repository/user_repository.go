package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"formserver/internal/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmailOrPhone(ctx context.Context, identifier string) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
	UpdatePasswordHashByEmail(ctx context.Context, email string, passwordHash string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, gender, phone, address, state, city, country, description, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Personal.Name,
		user.Personal.Email,
		user.Personal.Gender,
		user.Contact.Phone,
		user.Contact.Address,
		user.Contact.State,
		user.Contact.City,
		user.Contact.Country,
		user.About.Description,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&user.CreatedAt)
	if err != nil {
		// The unique constraint is the backstop against concurrent
		// duplicate registrations.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

const userColumns = `id, name, email, gender, phone, address, state, city, country, description, password_hash, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Personal.Name,
		&u.Personal.Email,
		&u.Personal.Gender,
		&u.Contact.Phone,
		&u.Contact.Address,
		&u.Contact.State,
		&u.Contact.City,
		&u.Contact.Country,
		&u.About.Description,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) GetByEmailOrPhone(ctx context.Context, identifier string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1)
		   OR phone = $1
		LIMIT 1
	`
	return scanUser(r.db.QueryRowContext(ctx, query, identifier))
}

func (r *userRepository) ListAll(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, name, email, country, created_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Personal.Name, &u.Personal.Email, &u.Contact.Country, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *userRepository) UpdatePasswordHashByEmail(ctx context.Context, email string, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1 WHERE LOWER(email) = LOWER($2)`
	res, err := r.db.ExecContext(ctx, query, passwordHash, email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
