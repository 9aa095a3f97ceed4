package querybuilder

import (
	"strings"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
)

// TransactionColumns lists the transactions table columns in scan order
var TransactionColumns = []string{
	"order_id", "customer_id", "customer_name", "city", "category",
	"order_value", "return_reason", "return_count", "return_day_gap", "return_date",
	"risk_score", "is_fraud", "fraud_type", "reason_category_mismatch",
	"fingerprint", "fingerprint_match", "fingerprint_mismatch_reason",
	"photo_verification_required", "photo_verification_status",
	"status", "is_locked", "created_at", "updated_at",
}

// TransactionQueryBuilder builds queries over scored returns
type TransactionQueryBuilder struct {
	*QueryBuilder
}

// NewTransactionQuery creates a new TransactionQueryBuilder
func NewTransactionQuery() *TransactionQueryBuilder {
	return &TransactionQueryBuilder{QueryBuilder: New()}
}

// SelectTransactions starts a SELECT over all transaction columns
func (tqb *TransactionQueryBuilder) SelectTransactions() *TransactionQueryBuilder {
	tqb.Select(TransactionColumns...).From("transactions")
	return tqb
}

// WhereFilter applies every restriction set on f
func (tqb *TransactionQueryBuilder) WhereFilter(f returns.OrderFilter) *TransactionQueryBuilder {
	if f.FlaggedOnly {
		tqb.WhereEqual("is_fraud", true)
	}
	if f.Category != "" {
		tqb.Where("category", ILike, escapeLike(f.Category))
	}
	if f.MinScore > 0 {
		tqb.Where("risk_score", GreaterThanOrEqual, f.MinScore)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		tqb.WhereAny([]string{"order_id", "customer_id", "customer_name"}, ILike, "%"+escapeLike(q)+"%")
	}
	return tqb
}

// WhereCustomer restricts to one customer
func (tqb *TransactionQueryBuilder) WhereCustomer(customerID string) *TransactionQueryBuilder {
	tqb.WhereEqual("customer_id", customerID)
	return tqb
}

// ByRiskDescending orders by risk score, ties in insertion order
func (tqb *TransactionQueryBuilder) ByRiskDescending() *TransactionQueryBuilder {
	tqb.OrderByDesc("risk_score").OrderByAsc("seq")
	return tqb
}

// InsertTransaction builds an insert that skips an existing order id
func InsertTransaction(t *returns.Transaction) *QueryBuilder {
	return New().Insert("transactions").
		Set("order_id", t.OrderID).
		Set("customer_id", t.CustomerID).
		Set("customer_name", t.CustomerName).
		Set("city", t.City).
		Set("category", t.Category).
		Set("order_value", t.OrderValue).
		Set("return_reason", t.ReturnReason).
		Set("return_count", t.ReturnCount).
		Set("return_day_gap", t.ReturnDayGap).
		Set("return_date", t.ReturnDate).
		Set("risk_score", t.RiskScore).
		Set("is_fraud", t.IsFraud).
		Set("fraud_type", t.FraudType).
		Set("reason_category_mismatch", t.ReasonCategoryMismatch).
		Set("fingerprint", t.Fingerprint).
		Set("fingerprint_match", t.FingerprintMatch).
		Set("fingerprint_mismatch_reason", t.FingerprintMismatchReason).
		Set("photo_verification_required", t.PhotoVerificationRequired).
		Set("photo_verification_status", t.PhotoVerificationStatus).
		Set("status", string(t.Status)).
		Set("is_locked", t.IsLocked).
		Set("created_at", t.CreatedAt).
		Set("updated_at", t.UpdatedAt).
		OnConflictDoNothing("order_id")
}

// UpdateDisposition builds the workflow-state update for one order
func UpdateDisposition(t *returns.Transaction) *QueryBuilder {
	return New().Update("transactions").
		Set("status", string(t.Status)).
		Set("is_locked", t.IsLocked).
		Set("photo_verification_status", t.PhotoVerificationStatus).
		Set("updated_at", t.UpdatedAt).
		WhereEqual("order_id", t.OrderID)
}

// escapeLike neutralizes LIKE wildcards in user input
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
