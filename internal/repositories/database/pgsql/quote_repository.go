package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowpay/flow_backend/internal/apperrors"
	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/models"
	"github.com/flowpay/flow_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const quoteColumns = `quote_id, company_id, source_currency, target_currency, base_rate,
	markup_fraction, final_rate, source_amount, target_amount, expires_at, is_expired,
	created_at, created_by, last_updated_at, last_updated_by, version`

// PgxQuoteRepository implements the quote repository interfaces using pgxpool.
type PgxQuoteRepository struct {
	BaseRepository
}

func newPgxQuoteRepository(db *pgxpool.Pool) *PgxQuoteRepository {
	return &PgxQuoteRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanQuote(row pgx.Row) (models.Quote, error) {
	var m models.Quote
	err := row.Scan(
		&m.QuoteID, &m.CompanyID, &m.SourceCurrency, &m.TargetCurrency, &m.BaseRate,
		&m.MarkupFraction, &m.FinalRate, &m.SourceAmount, &m.TargetAmount, &m.ExpiresAt, &m.IsExpired,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

// SaveQuote inserts a new quote. Quotes are immutable apart from the expiry flag.
func (r *PgxQuoteRepository) SaveQuote(ctx context.Context, quote domain.Quote) error {
	m := mapping.ToModelQuote(quote)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO fx_quotes (
			quote_id, company_id, source_currency, target_currency, base_rate,
			markup_fraction, final_rate, source_amount, target_amount, expires_at, is_expired,
			created_at, created_by, last_updated_at, last_updated_by, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		m.QuoteID, m.CompanyID, m.SourceCurrency, m.TargetCurrency, m.BaseRate,
		m.MarkupFraction, m.FinalRate, m.SourceAmount, m.TargetAmount, m.ExpiresAt, m.IsExpired,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save quote", err)
	}
	return nil
}

// FindQuoteByID retrieves a quote by its ID.
func (r *PgxQuoteRepository) FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM fx_quotes WHERE quote_id = $1;`

	m, err := scanQuote(r.Pool.QueryRow(ctx, query, quoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("quote with ID " + quoteID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get quote by ID", err)
	}

	q := mapping.ToDomainQuote(m)
	return &q, nil
}

// ListActiveQuotes retrieves non-expired quotes for a company, optionally
// filtered to one currency pair. The time comparison, not the persisted flag,
// decides liveness.
func (r *PgxQuoteRepository) ListActiveQuotes(ctx context.Context, companyID string, sourceCurrency, targetCurrency *string, now time.Time) ([]domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM fx_quotes
		WHERE company_id = $1 AND is_expired = false AND expires_at > $2`
	args := []interface{}{companyID, now}
	argNum := 3

	if sourceCurrency != nil {
		query += fmt.Sprintf(" AND source_currency = $%d", argNum)
		args = append(args, *sourceCurrency)
		argNum++
	}
	if targetCurrency != nil {
		query += fmt.Sprintf(" AND target_currency = $%d", argNum)
		args = append(args, *targetCurrency)
		argNum++
	}
	query += " ORDER BY expires_at ASC"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list active quotes", err)
	}
	defer rows.Close()

	return collectQuotes(rows)
}

// ListCompanyQuotes retrieves quotes for a company, newest first.
func (r *PgxQuoteRepository) ListCompanyQuotes(ctx context.Context, companyID string, includeExpired bool, limit int) ([]domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM fx_quotes WHERE company_id = $1`
	args := []interface{}{companyID}
	argNum := 2

	if !includeExpired {
		query += " AND is_expired = false"
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list company quotes", err)
	}
	defer rows.Close()

	return collectQuotes(rows)
}

// CountQuoteStatistics aggregates quote activity since the cutoff. Expiry is
// judged against the clock so that unflagged but past-expiry quotes count as
// expired.
func (r *PgxQuoteRepository) CountQuoteStatistics(ctx context.Context, companyID string, since time.Time) (*domain.QuoteStatistics, error) {
	stats := &domain.QuoteStatistics{}

	err := r.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_expired OR expires_at <= now()),
			COUNT(*) FILTER (WHERE NOT is_expired AND expires_at > now())
		FROM fx_quotes
		WHERE company_id = $1 AND created_at >= $2`,
		companyID, since,
	).Scan(&stats.TotalQuotes, &stats.ExpiredQuotes, &stats.ActiveQuotes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to count quote statistics", err)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT DISTINCT source_currency || '/' || target_currency
		FROM fx_quotes
		WHERE company_id = $1 AND created_at >= $2
		ORDER BY 1`,
		companyID, since,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list quoted currency pairs", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pair string
		if err := rows.Scan(&pair); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency pair", err)
		}
		stats.CurrencyPairs = append(stats.CurrencyPairs, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating currency pairs", err)
	}

	return stats, nil
}

// MarkExpired flips the expired flag on one quote. Re-flipping an already
// expired quote affects zero rows and is not an error.
func (r *PgxQuoteRepository) MarkExpired(ctx context.Context, quoteID string) error {
	_, err := r.Pool.Exec(ctx, `
		UPDATE fx_quotes SET is_expired = true, last_updated_at = now()
		WHERE quote_id = $1 AND is_expired = false`,
		quoteID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark quote expired", err)
	}
	return nil
}

// ExpireQuotesBefore flips the flag on every unexpired quote whose expiry has
// passed and returns how many rows changed.
func (r *PgxQuoteRepository) ExpireQuotesBefore(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE fx_quotes SET is_expired = true, last_updated_at = $1
		WHERE is_expired = false AND expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to expire quotes", err)
	}
	return tag.RowsAffected(), nil
}

func collectQuotes(rows pgx.Rows) ([]domain.Quote, error) {
	var out []models.Quote
	for rows.Next() {
		m, err := scanQuote(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan quote", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating quotes", err)
	}
	return mapping.ToDomainQuotes(out), nil
}
