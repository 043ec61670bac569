package pgsql

import (
	"context"
	"errors"

	"github.com/flowpay/flow_backend/internal/apperrors"
	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/models"
	"github.com/flowpay/flow_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUserRepository implements the user repository interfaces using pgxpool.
type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveUser inserts a new user. A duplicate email surfaces as ErrDuplicate.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO users (
			user_id, company_id, email, name, role, password_hash, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.UserID, m.CompanyID, m.Email, m.Name, m.Role, m.PasswordHash, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save user", err)
	}
	return nil
}

// FindUserByID retrieves a user by its ID, excluding soft-deleted rows.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var m models.User
	err := r.Pool.QueryRow(ctx, `
		SELECT user_id, company_id, email, name, role, password_hash, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version, deleted_at
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL`,
		userID,
	).Scan(
		&m.UserID, &m.CompanyID, &m.Email, &m.Name, &m.Role, &m.PasswordHash, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version, &m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user with ID " + userID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get user by ID", err)
	}

	u := mapping.ToDomainUser(m)
	return &u, nil
}

// SaveCompany inserts a new company. A duplicate ID surfaces as ErrDuplicate.
func (r *PgxUserRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO companies (
			company_id, company_name, registered_country, industry_sector, fx_volume_band,
			created_at, created_by, last_updated_at, last_updated_by, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.CompanyID, m.CompanyName, m.RegisteredCountry, m.IndustrySector, m.FXVolumeBand,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save company", err)
	}
	return nil
}

// FindCompanyByID retrieves a company by its ID.
func (r *PgxUserRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	var m models.Company
	err := r.Pool.QueryRow(ctx, `
		SELECT company_id, company_name, registered_country, industry_sector, fx_volume_band,
			created_at, created_by, last_updated_at, last_updated_by, version
		FROM companies
		WHERE company_id = $1`,
		companyID,
	).Scan(
		&m.CompanyID, &m.CompanyName, &m.RegisteredCountry, &m.IndustrySector, &m.FXVolumeBand,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("company with ID " + companyID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get company by ID", err)
	}

	c := mapping.ToDomainCompany(m)
	return &c, nil
}
