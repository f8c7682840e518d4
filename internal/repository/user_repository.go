package repository

import (
	"context"
	"strings"

	"nanny-match/internal/database"
	"nanny-match/internal/database/postgres"
	"nanny-match/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresUserRepository struct {
	db database.DB
}

var (
	_ user.Repository = (*PostgresUserRepository)(nil)
	_ user.Directory  = (*PostgresUserRepository)(nil)
)

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userSelect = `SELECT p.id, p.user_id, p.email, p.phone, p.password_hash, p.first_name, p.last_name,
	COALESCE((SELECT array_agg(r.role ORDER BY r.role) FROM user_roles r WHERE r.user_id = p.user_id), '{}'),
	p.created_at, p.updated_at
	FROM profiles p`

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User, role string) error {
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO profiles (id, user_id, email, phone, password_hash, first_name, last_name)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			u.ID, u.UserID, u.Email, u.Phone, u.PasswordHash, u.FirstName, u.LastName,
		); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO user_roles (id, user_id, role) VALUES ($1,$2,$3)`,
			uuid.New(), u.UserID, role,
		)
		return err
	})
	if postgres.IsUniqueViolation(err) {
		return user.ErrAlreadyExists
	}
	return err
}

func (r *PostgresUserRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return r.getOne(ctx, userSelect+` WHERE p.user_id = $1`, userID)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, userSelect+` WHERE lower(p.email) = $1`, strings.ToLower(strings.TrimSpace(email)))
}

func (r *PostgresUserRepository) GetByPhone(ctx context.Context, phone string) (user.User, error) {
	return r.getOne(ctx, userSelect+` WHERE p.phone = $1`, strings.TrimSpace(phone))
}

func (r *PostgresUserRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone *string) (bool, error) {
	if email == nil && phone == nil {
		return false, nil
	}
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM profiles
			WHERE ($1::text IS NOT NULL AND lower(email) = lower($1::text))
			   OR ($2::text IS NOT NULL AND phone = $2::text)
		)`,
		email, phone,
	).Scan(&exists)
	return exists, err
}

func (r *PostgresUserRepository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE profiles SET password_hash = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, hash,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) getOne(ctx context.Context, sql string, arg any) (user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&u.ID, &u.UserID, &u.Email, &u.Phone, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Roles, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// A nanny without a nannies row has not filled in availability yet and is
// listed as available.
const activeNanniesSQL = `SELECT p.user_id, p.first_name, p.last_name, COALESCE(n.city, p.city), p.created_at
	FROM profiles p
	JOIN user_roles r ON r.user_id = p.user_id AND r.role = 'nanny'
	LEFT JOIN nannies n ON n.user_id = p.user_id
	WHERE COALESCE(n.is_available, TRUE)
	ORDER BY p.created_at DESC, p.id
	LIMIT $1`

func (r *PostgresUserRepository) ActiveNannies(ctx context.Context, limit int) ([]user.NannySummary, error) {
	rows, err := r.db.Query(ctx, activeNanniesSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.NannySummary, 0, limit)
	for rows.Next() {
		var n user.NannySummary
		if err := rows.Scan(&n.UserID, &n.FirstName, &n.LastName, &n.City, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
