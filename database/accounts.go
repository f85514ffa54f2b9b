package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ReciclaBackend/models"
)

// GetDonorByName fetches the first donor registered under the given
// name. Names are not unique; login matches the oldest account.
func GetDonorByName(ctx context.Context, name string) (*models.Donor, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}

	const query = `
		SELECT id, name, email, cpf, password_hash, delivery_completed, rating, created_at, updated_at
		FROM donors
		WHERE name = $1
		ORDER BY id
		LIMIT 1
	`

	var d models.Donor
	err := DB.QueryRowContext(ctx, query, name).Scan(
		&d.ID, &d.Name, &d.Email, &d.CPF, &d.PasswordHash,
		&d.DeliveryCompleted, &d.Rating, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("GetDonorByName query failed: %w", err)
	}
	return &d, nil
}

func GetCollectorByName(ctx context.Context, name string) (*models.Collector, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}

	const query = `
		SELECT id, name, email, cpf, password_hash, accepting_collections, rating, created_at, updated_at
		FROM collectors
		WHERE name = $1
		ORDER BY id
		LIMIT 1
	`

	var c models.Collector
	err := DB.QueryRowContext(ctx, query, name).Scan(
		&c.ID, &c.Name, &c.Email, &c.CPF, &c.PasswordHash,
		&c.AcceptingCollections, &c.Rating, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("GetCollectorByName query failed: %w", err)
	}
	return &c, nil
}

func GetDonorByID(ctx context.Context, id int64) (*models.Donor, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}

	const query = `
		SELECT id, name, email, cpf, password_hash, delivery_completed, rating, created_at, updated_at
		FROM donors
		WHERE id = $1
	`

	var d models.Donor
	err := DB.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Email, &d.CPF, &d.PasswordHash,
		&d.DeliveryCompleted, &d.Rating, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("GetDonorByID query failed: %w", err)
	}
	return &d, nil
}

func GetCollectorByID(ctx context.Context, id int64) (*models.Collector, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}

	const query = `
		SELECT id, name, email, cpf, password_hash, accepting_collections, rating, created_at, updated_at
		FROM collectors
		WHERE id = $1
	`

	var c models.Collector
	err := DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.CPF, &c.PasswordHash,
		&c.AcceptingCollections, &c.Rating, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("GetCollectorByID query failed: %w", err)
	}
	return &c, nil
}

// EmailExists checks uniqueness within a single role table; the same
// email may register once as donor and once as collector.
func EmailExists(ctx context.Context, role models.Role, email string) (bool, error) {
	if DB == nil {
		return false, errors.New("database not initialized")
	}

	var query string
	switch role {
	case models.RoleDonor:
		query = "SELECT EXISTS(SELECT 1 FROM donors WHERE email = $1)"
	case models.RoleCollector:
		query = "SELECT EXISTS(SELECT 1 FROM collectors WHERE email = $1)"
	default:
		return false, fmt.Errorf("invalid role %q", role)
	}

	var exists bool
	if err := DB.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("EmailExists query failed: %w", err)
	}
	return exists, nil
}
