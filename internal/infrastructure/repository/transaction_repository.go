package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/querybuilder"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type transactor interface {
	Transaction(ctx context.Context, fn func(pgx.Tx) error) error
}

// TransactionRepository stores scored returns and their field verifications in Postgres.
// Missing rows come back as not-found AppErrors so services need no driver knowledge.
type TransactionRepository struct {
	db querier
	tx transactor
}

// NewTransactionRepository creates a repository over db; tx runs multi-statement writes.
func NewTransactionRepository(db querier, tx transactor) *TransactionRepository {
	return &TransactionRepository{db: db, tx: tx}
}

// InsertScored stores a scored batch in one transaction, skipping order ids already
// present. It returns how many rows were inserted.
func (r *TransactionRepository) InsertScored(ctx context.Context, txs []*returns.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, t := range txs {
		query, args, err := querybuilder.InsertTransaction(t).ToSQL()
		if err != nil {
			return 0, fmt.Errorf("failed to build insert: %w", err)
		}
		batch.Queue(query, args...)
	}

	added := 0
	err := r.tx.Transaction(ctx, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for i := range txs {
			tag, err := results.Exec()
			if err != nil {
				return WrapRepositoryError(err, "insert transaction "+txs[i].OrderID)
			}
			added += int(tag.RowsAffected())
		}
		return results.Close()
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// GetOrder loads one order.
func (r *TransactionRepository) GetOrder(ctx context.Context, orderID string) (*returns.Transaction, error) {
	query, args, err := querybuilder.NewTransactionQuery().
		SelectTransactions().
		WhereEqual("order_id", orderID).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	t, err := scanTransaction(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NewNotFoundError("order " + orderID).WithCause(ErrNotFound)
		}
		return nil, WrapRepositoryError(err, "get order")
	}
	return t, nil
}

// ListOrders returns orders matching f by descending risk score.
func (r *TransactionRepository) ListOrders(ctx context.Context, f returns.OrderFilter) ([]*returns.Transaction, error) {
	q := querybuilder.NewTransactionQuery().
		SelectTransactions().
		WhereFilter(f).
		ByRiskDescending()
	q.Limit(f.EffectiveLimit())
	if offset := f.EffectiveOffset(); offset > 0 {
		q.Offset(offset)
	}

	return r.list(ctx, q.QueryBuilder, "list orders")
}

// ListByCustomer returns every order of one customer in insertion order.
func (r *TransactionRepository) ListByCustomer(ctx context.Context, customerID string) ([]*returns.Transaction, error) {
	q := querybuilder.NewTransactionQuery().
		SelectTransactions().
		WhereCustomer(customerID)
	q.OrderByAsc("seq")

	return r.list(ctx, q.QueryBuilder, "list customer orders")
}

func (r *TransactionRepository) list(ctx context.Context, qb *querybuilder.QueryBuilder, operation string) ([]*returns.Transaction, error) {
	query, args, err := qb.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, WrapRepositoryError(err, operation)
	}
	defer rows.Close()

	out := make([]*returns.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, WrapRepositoryError(err, operation)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapRepositoryError(err, operation)
	}
	return out, nil
}

// UpdateDisposition saves the workflow fields of order.
func (r *TransactionRepository) UpdateDisposition(ctx context.Context, order *returns.Transaction) error {
	return updateDisposition(ctx, r.db, order)
}

func updateDisposition(ctx context.Context, db querier, order *returns.Transaction) error {
	query, args, err := querybuilder.UpdateDisposition(order).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return WrapRepositoryError(err, "update disposition")
	}
	if tag.RowsAffected() == 0 {
		return errors.NewNotFoundError("order " + order.OrderID).WithCause(ErrNotFound)
	}
	return nil
}

const selectVerification = `
	SELECT id, order_id, agent_name, item_matches_order, tag_attached, packaging_intact,
	       item_condition, agent_notes, photo_url, verification_result, verified_at
	FROM field_verifications
	WHERE order_id = $1`

// GetVerification loads the verification recorded for an order.
func (r *TransactionRepository) GetVerification(ctx context.Context, orderID string) (*returns.FieldVerification, error) {
	var (
		v         returns.FieldVerification
		condition string
		result    string
	)
	err := r.db.QueryRow(ctx, selectVerification, orderID).Scan(
		&v.ID, &v.OrderID, &v.AgentName, &v.ItemMatchesOrder, &v.TagAttached, &v.PackagingIntact,
		&condition, &v.AgentNotes, &v.PhotoURL, &result, &v.VerifiedAt,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NewNotFoundError("verification for order " + orderID).WithCause(ErrNotFound)
		}
		return nil, WrapRepositoryError(err, "get verification")
	}
	v.ItemCondition = returns.ItemCondition(condition)
	v.VerificationResult = returns.VerificationResult(result)
	v.VerifiedAt = v.VerifiedAt.UTC()
	return &v, nil
}

// RecordVerification inserts v and saves order's workflow fields atomically.
// A second verification for the same order fails with a conflict AppError.
func (r *TransactionRepository) RecordVerification(ctx context.Context, v *returns.FieldVerification, order *returns.Transaction) error {
	insert, args, err := querybuilder.New().Insert("field_verifications").
		Set("id", v.ID).
		Set("order_id", v.OrderID).
		Set("agent_name", v.AgentName).
		Set("item_matches_order", v.ItemMatchesOrder).
		Set("tag_attached", v.TagAttached).
		Set("packaging_intact", v.PackagingIntact).
		Set("item_condition", string(v.ItemCondition)).
		Set("agent_notes", v.AgentNotes).
		Set("photo_url", v.PhotoURL).
		Set("verification_result", string(v.VerificationResult)).
		Set("verified_at", v.VerifiedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	return r.tx.Transaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insert, args...); err != nil {
			switch {
			case IsDuplicateKeyViolation(err):
				return errors.ErrVerificationExists(v.OrderID).WithCause(ErrDuplicateKey)
			case IsForeignKeyViolation(err):
				return errors.NewNotFoundError("order " + v.OrderID).WithCause(ErrForeignKey)
			default:
				return WrapRepositoryError(err, "insert verification")
			}
		}
		return updateDisposition(ctx, tx, order)
	})
}

// Count returns the number of stored orders.
func (r *TransactionRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM transactions").Scan(&n); err != nil {
		return 0, WrapRepositoryError(err, "count transactions")
	}
	return n, nil
}

func scanTransaction(row pgx.Row) (*returns.Transaction, error) {
	var (
		t           returns.Transaction
		status      string
		fingerprint []byte
	)
	err := row.Scan(
		&t.OrderID, &t.CustomerID, &t.CustomerName, &t.City, &t.Category,
		&t.OrderValue, &t.ReturnReason, &t.ReturnCount, &t.ReturnDayGap, &t.ReturnDate,
		&t.RiskScore, &t.IsFraud, &t.FraudType, &t.ReasonCategoryMismatch,
		&fingerprint, &t.FingerprintMatch, &t.FingerprintMismatchReason,
		&t.PhotoVerificationRequired, &t.PhotoVerificationStatus,
		&status, &t.IsLocked, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = returns.Status(status)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	if len(fingerprint) > 0 {
		if err := json.Unmarshal(fingerprint, &t.Fingerprint); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fingerprint: %w", err)
		}
	}
	return &t, nil
}

// Totals aggregates every stored order.
func (r *TransactionRepository) Totals(ctx context.Context) (returns.Totals, error) {
	var t returns.Totals
	query, args, err := querybuilder.TotalsQuery().ToSQL()
	if err != nil {
		return t, fmt.Errorf("failed to build query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&t.Total, &t.Flagged, &t.FlaggedValue, &t.AvgRiskScore); err != nil {
		return t, WrapRepositoryError(err, "aggregate totals")
	}
	return t, nil
}

// GroupTotals aggregates orders per value of dim.
func (r *TransactionRepository) GroupTotals(ctx context.Context, dim returns.Dimension) ([]returns.GroupTotals, error) {
	qb, err := querybuilder.GroupTotalsQuery(dim)
	if err != nil {
		return nil, errors.NewValidationError(errors.CodeInvalidPayload, err.Error())
	}
	query, args, err := qb.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, WrapRepositoryError(err, "aggregate by "+string(dim))
	}
	defer rows.Close()

	out := make([]returns.GroupTotals, 0)
	for rows.Next() {
		var g returns.GroupTotals
		if err := rows.Scan(&g.Key, &g.Total, &g.Flagged, &g.Value); err != nil {
			return nil, WrapRepositoryError(err, "aggregate by "+string(dim))
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapRepositoryError(err, "aggregate by "+string(dim))
	}
	return out, nil
}

// WeeklyTotals aggregates dated orders per calendar week for the latest weeks
// buckets, oldest first.
func (r *TransactionRepository) WeeklyTotals(ctx context.Context, weeks int) ([]returns.WeekTotals, error) {
	query, args, err := querybuilder.WeeklyTotalsQuery(weeks).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, WrapRepositoryError(err, "aggregate by week")
	}
	defer rows.Close()

	out := make([]returns.WeekTotals, 0, weeks)
	for rows.Next() {
		var w returns.WeekTotals
		if err := rows.Scan(&w.WeekStart, &w.Total, &w.Flagged, &w.FlaggedValue); err != nil {
			return nil, WrapRepositoryError(err, "aggregate by week")
		}
		w.WeekStart = w.WeekStart.UTC()
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapRepositoryError(err, "aggregate by week")
	}
	slices.Reverse(out)
	return out, nil
}
