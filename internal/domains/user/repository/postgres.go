package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf-backend/internal/domains/user"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds the pgx-backed account repository.
func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

// uniqueViolation maps a unique-constraint error onto the domain error
// for the column it guards.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return user.ErrUsernameTaken
		case "users_email_key":
			return user.ErrEmailTaken
		}
	}
	return nil
}

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, username, email, hashed_password, bio, location, image_url, creation_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Username,
		u.Email,
		u.HashedPassword,
		u.Bio,
		u.Location,
		u.ImageURL,
		u.CreationDate,
	)
	if err != nil {
		if domainErr := uniqueViolation(err); domainErr != nil {
			return domainErr
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

const selectUser = `
	SELECT id, username, email, hashed_password, bio, location, image_url, creation_date
	FROM users
`

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, selectUser+` WHERE email = $1`, email)
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.HashedPassword,
		&u.Bio,
		&u.Location,
		&u.ImageURL,
		&u.CreationDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, id uuid.UUID, patch user.ProfilePatch) (*user.User, error) {
	query := `
		UPDATE users
		SET username = COALESCE($2, username),
		    email = COALESCE($3, email),
		    bio = COALESCE($4, bio),
		    location = COALESCE($5, location),
		    image_url = COALESCE($6, image_url)
		WHERE id = $1
		RETURNING id, username, email, hashed_password, bio, location, image_url, creation_date
	`

	var u user.User
	err := r.pool.QueryRow(ctx, query, id,
		patch.Username,
		patch.Email,
		patch.Bio,
		patch.Location,
		patch.ImageURL,
	).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.HashedPassword,
		&u.Bio,
		&u.Location,
		&u.ImageURL,
		&u.CreationDate,
	)
	if err != nil {
		if domainErr := uniqueViolation(err); domainErr != nil {
			return nil, domainErr
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
