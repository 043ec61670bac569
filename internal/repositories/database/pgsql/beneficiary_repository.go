package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/flowpay/flow_backend/internal/apperrors"
	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/models"
	"github.com/flowpay/flow_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const beneficiaryColumns = `beneficiary_id, company_id, beneficiary_name, beneficiary_type, country,
	is_active, created_at, created_by, last_updated_at, last_updated_by, version`

const bankAccountColumns = `bank_account_id, beneficiary_id, account_holder_name, iban, swift_bic,
	bank_name, currency_code, is_default, created_at, created_by, last_updated_at, last_updated_by, version`

// PgxBeneficiaryRepository implements the beneficiary repository interfaces using pgxpool.
type PgxBeneficiaryRepository struct {
	BaseRepository
}

func newPgxBeneficiaryRepository(db *pgxpool.Pool) *PgxBeneficiaryRepository {
	return &PgxBeneficiaryRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanBeneficiary(row pgx.Row) (models.Beneficiary, error) {
	var m models.Beneficiary
	err := row.Scan(
		&m.BeneficiaryID, &m.CompanyID, &m.BeneficiaryName, &m.BeneficiaryType, &m.Country,
		&m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

func scanBankAccount(row pgx.Row) (models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID, &m.BeneficiaryID, &m.AccountHolderName, &m.IBAN, &m.SwiftBIC,
		&m.BankName, &m.CurrencyCode, &m.IsDefault, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

// SaveBeneficiary inserts a new beneficiary.
func (r *PgxBeneficiaryRepository) SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	m := mapping.ToModelBeneficiary(beneficiary)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO beneficiaries (
			beneficiary_id, company_id, beneficiary_name, beneficiary_type, country,
			is_active, created_at, created_by, last_updated_at, last_updated_by, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.BeneficiaryID, m.CompanyID, m.BeneficiaryName, m.BeneficiaryType, m.Country,
		m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save beneficiary", err)
	}
	return nil
}

// FindBeneficiaryByID retrieves a beneficiary by its ID.
func (r *PgxBeneficiaryRepository) FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE beneficiary_id = $1;`

	m, err := scanBeneficiary(r.Pool.QueryRow(ctx, query, beneficiaryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("beneficiary with ID " + beneficiaryID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get beneficiary by ID", err)
	}

	b := mapping.ToDomainBeneficiary(m)
	return &b, nil
}

// ListCompanyBeneficiaries retrieves beneficiaries for a company.
func (r *PgxBeneficiaryRepository) ListCompanyBeneficiaries(ctx context.Context, companyID string, includeInactive bool) ([]domain.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE company_id = $1`
	if !includeInactive {
		query += " AND is_active = true"
	}
	query += " ORDER BY beneficiary_name ASC"

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list beneficiaries", err)
	}
	defer rows.Close()

	var out []models.Beneficiary
	for rows.Next() {
		m, err := scanBeneficiary(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan beneficiary", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating beneficiaries", err)
	}
	return mapping.ToDomainBeneficiaries(out), nil
}

// UpdateBeneficiary replaces the mutable fields of a beneficiary.
func (r *PgxBeneficiaryRepository) UpdateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	m := mapping.ToModelBeneficiary(beneficiary)

	tag, err := r.Pool.Exec(ctx, `
		UPDATE beneficiaries SET
			beneficiary_name = $1, beneficiary_type = $2, country = $3,
			last_updated_at = $4, last_updated_by = $5, version = $6
		WHERE beneficiary_id = $7`,
		m.BeneficiaryName, m.BeneficiaryType, m.Country,
		m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
		m.BeneficiaryID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update beneficiary", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("beneficiary with ID " + beneficiary.BeneficiaryID + " not found")
	}
	return nil
}

// SetBeneficiaryActive enables or disables a beneficiary.
func (r *PgxBeneficiaryRepository) SetBeneficiaryActive(ctx context.Context, beneficiaryID string, active bool, updatedBy string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE beneficiaries SET is_active = $1, last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE beneficiary_id = $4`,
		active, time.Now(), updatedBy, beneficiaryID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set beneficiary active state", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("beneficiary with ID " + beneficiaryID + " not found")
	}
	return nil
}

// SaveBankAccount inserts a new bank account.
func (r *PgxBeneficiaryRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO beneficiary_bank_accounts (
			bank_account_id, beneficiary_id, account_holder_name, iban, swift_bic,
			bank_name, currency_code, is_default, created_at, created_by, last_updated_at, last_updated_by, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.BankAccountID, m.BeneficiaryID, m.AccountHolderName, m.IBAN, m.SwiftBIC,
		m.BankName, m.CurrencyCode, m.IsDefault, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save bank account", err)
	}
	return nil
}

// FindBankAccountByID retrieves a bank account by its ID.
func (r *PgxBeneficiaryRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM beneficiary_bank_accounts WHERE bank_account_id = $1;`

	m, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("bank account with ID " + bankAccountID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get bank account by ID", err)
	}

	a := mapping.ToDomainBankAccount(m)
	return &a, nil
}

// ListBankAccounts retrieves the bank accounts of a beneficiary, default first.
func (r *PgxBeneficiaryRepository) ListBankAccounts(ctx context.Context, beneficiaryID string) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM beneficiary_bank_accounts
		WHERE beneficiary_id = $1
		ORDER BY is_default DESC, created_at ASC`

	rows, err := r.Pool.Query(ctx, query, beneficiaryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list bank accounts", err)
	}
	defer rows.Close()

	var out []models.BankAccount
	for rows.Next() {
		m, err := scanBankAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank accounts", err)
	}
	return mapping.ToDomainBankAccounts(out), nil
}

// DeleteBankAccount removes a bank account.
func (r *PgxBeneficiaryRepository) DeleteBankAccount(ctx context.Context, bankAccountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM beneficiary_bank_accounts WHERE bank_account_id = $1`, bankAccountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete bank account", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("bank account with ID " + bankAccountID + " not found")
	}
	return nil
}

// SetDefaultBankAccount atomically makes the account the beneficiary's only
// default. Siblings are unset and the target set inside one transaction.
func (r *PgxBeneficiaryRepository) SetDefaultBankAccount(ctx context.Context, bankAccountID string, updatedBy string) (*domain.BankAccount, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}

	var beneficiaryID string
	err = tx.QueryRow(ctx, `SELECT beneficiary_id FROM beneficiary_bank_accounts WHERE bank_account_id = $1 FOR UPDATE`, bankAccountID).Scan(&beneficiaryID)
	if err != nil {
		_ = r.Rollback(ctx, tx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("bank account with ID " + bankAccountID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to look up bank account", err)
	}

	now := time.Now()
	_, err = tx.Exec(ctx, `
		UPDATE beneficiary_bank_accounts
		SET is_default = false, last_updated_at = $1, last_updated_by = $2, version = version + 1
		WHERE beneficiary_id = $3 AND is_default = true AND bank_account_id <> $4`,
		now, updatedBy, beneficiaryID, bankAccountID,
	)
	if err != nil {
		_ = r.Rollback(ctx, tx)
		return nil, apperrors.NewAppError(500, "failed to unset previous default account", err)
	}

	m, err := scanBankAccount(tx.QueryRow(ctx, `
		UPDATE beneficiary_bank_accounts
		SET is_default = true, last_updated_at = $1, last_updated_by = $2, version = version + 1
		WHERE bank_account_id = $3
		RETURNING `+bankAccountColumns,
		now, updatedBy, bankAccountID,
	))
	if err != nil {
		_ = r.Rollback(ctx, tx)
		return nil, apperrors.NewAppError(500, "failed to set default account", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	a := mapping.ToDomainBankAccount(m)
	return &a, nil
}
