package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowpay/flow_backend/internal/apperrors"
	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/models"
	"github.com/flowpay/flow_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `payment_id, company_id, created_by_id, beneficiary_id, bank_account_id,
	quote_id, source_currency, target_currency, source_amount, target_amount, fx_rate,
	fee_amount, total_debit, payment_reference, execution_date, status, external_id,
	failure_reason, created_at, created_by, last_updated_at, last_updated_by, version`

// PgxPaymentRepository implements the payment repository interfaces using pgxpool.
type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(db *pgxpool.Pool) *PgxPaymentRepository {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID, &m.CompanyID, &m.CreatedByID, &m.BeneficiaryID, &m.BankAccountID,
		&m.QuoteID, &m.SourceCurrency, &m.TargetCurrency, &m.SourceAmount, &m.TargetAmount, &m.FXRate,
		&m.FeeAmount, &m.TotalDebit, &m.PaymentReference, &m.ExecutionDate, &m.Status, &m.ExternalID,
		&m.FailureReason, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

// SavePayment inserts a new draft payment.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO payments (
			payment_id, company_id, created_by_id, beneficiary_id, bank_account_id,
			quote_id, source_currency, target_currency, source_amount, target_amount, fx_rate,
			fee_amount, total_debit, payment_reference, execution_date, status, external_id,
			failure_reason, created_at, created_by, last_updated_at, last_updated_by, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23)`,
		m.PaymentID, m.CompanyID, m.CreatedByID, m.BeneficiaryID, m.BankAccountID,
		m.QuoteID, m.SourceCurrency, m.TargetCurrency, m.SourceAmount, m.TargetAmount, m.FXRate,
		m.FeeAmount, m.TotalDebit, m.PaymentReference, m.ExecutionDate, m.Status, m.ExternalID,
		m.FailureReason, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save payment", err)
	}
	return nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment with ID " + paymentID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get payment by ID", err)
	}

	p := mapping.ToDomainPayment(m)
	return &p, nil
}

// ListCompanyPayments retrieves payments for a company, optionally filtered by
// status, newest first.
func (r *PgxPaymentRepository) ListCompanyPayments(ctx context.Context, companyID string, status *domain.PaymentStatus, limit int) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE company_id = $1`
	args := []interface{}{companyID}
	argNum := 2

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, string(*status))
		argNum++
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list company payments", err)
	}
	defer rows.Close()

	var out []models.Payment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payments", err)
	}
	return mapping.ToDomainPayments(out), nil
}

// CountActiveQuoteUsage counts non-terminal payments referencing a quote.
func (r *PgxPaymentRepository) CountActiveQuoteUsage(ctx context.Context, quoteID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM payments
		WHERE quote_id = $1 AND status NOT IN ($2, $3)`,
		quoteID, string(domain.PaymentCompleted), string(domain.PaymentFailed),
	).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count quote usage", err)
	}
	return count, nil
}

// FindApprovalsByPaymentID retrieves the decision history of a payment,
// oldest first.
func (r *PgxPaymentRepository) FindApprovalsByPaymentID(ctx context.Context, paymentID string) ([]domain.Approval, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT approval_id, payment_id, decider_id, action, comment, created_at
		FROM payment_approvals
		WHERE payment_id = $1
		ORDER BY created_at ASC`,
		paymentID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list approvals", err)
	}
	defer rows.Close()

	var out []models.Approval
	for rows.Next() {
		var m models.Approval
		if err := rows.Scan(&m.ApprovalID, &m.PaymentID, &m.DeciderID, &m.Action, &m.Comment, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan approval", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating approvals", err)
	}
	return mapping.ToDomainApprovals(out), nil
}

// UpdatePayment replaces the mutable fields of a payment, guarded by the
// row's current version.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment, expectedVersion int64) error {
	m := mapping.ToModelPayment(payment)

	tag, err := r.Pool.Exec(ctx, `
		UPDATE payments SET
			beneficiary_id = $1, bank_account_id = $2, quote_id = $3,
			source_amount = $4, target_amount = $5, fx_rate = $6,
			fee_amount = $7, total_debit = $8, payment_reference = $9,
			execution_date = $10, external_id = $11, failure_reason = $12,
			last_updated_at = $13, last_updated_by = $14, version = $15
		WHERE payment_id = $16 AND version = $17`,
		m.BeneficiaryID, m.BankAccountID, m.QuoteID,
		m.SourceAmount, m.TargetAmount, m.FXRate,
		m.FeeAmount, m.TotalDebit, m.PaymentReference,
		m.ExecutionDate, m.ExternalID, m.FailureReason,
		m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
		m.PaymentID, expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s version %d", apperrors.ErrStaleState, payment.PaymentID, expectedVersion)
	}
	return nil
}

// TransitionStatus moves a payment between states, guarded by the expected
// current status and version. The approval, when non-nil, is written in the
// same transaction. Zero rows on the guard means another writer got there first.
func (r *PgxPaymentRepository) TransitionStatus(ctx context.Context, payment domain.Payment, fromStatus domain.PaymentStatus, expectedVersion int64, approval *domain.Approval) error {
	m := mapping.ToModelPayment(payment)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE payments SET
			status = $1, quote_id = $2, target_amount = $3, fx_rate = $4,
			fee_amount = $5, total_debit = $6, external_id = $7, failure_reason = $8,
			last_updated_at = $9, last_updated_by = $10, version = $11
		WHERE payment_id = $12 AND status = $13 AND version = $14`,
		m.Status, m.QuoteID, m.TargetAmount, m.FXRate,
		m.FeeAmount, m.TotalDebit, m.ExternalID, m.FailureReason,
		m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
		m.PaymentID, string(fromStatus), expectedVersion,
	)
	if err != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to transition payment status", err)
	}
	if tag.RowsAffected() == 0 {
		_ = r.Rollback(ctx, tx)
		return fmt.Errorf("%w: payment %s expected %s v%d", apperrors.ErrStaleState, payment.PaymentID, fromStatus, expectedVersion)
	}

	if approval != nil {
		am := mapping.ToModelApproval(*approval)
		_, err = tx.Exec(ctx, `
			INSERT INTO payment_approvals (approval_id, payment_id, decider_id, action, comment, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			am.ApprovalID, am.PaymentID, am.DeciderID, am.Action, am.Comment, am.CreatedAt,
		)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			return apperrors.NewAppError(500, "failed to record approval", err)
		}
	}

	return r.Commit(ctx, tx)
}
