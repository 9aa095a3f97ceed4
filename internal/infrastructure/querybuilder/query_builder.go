package querybuilder

import (
	"fmt"
	"strings"
)

// QueryBuilder builds parameterized Postgres statements with a fluent interface
type QueryBuilder struct {
	queryType  QueryType
	table      string
	columns    []string
	conditions []Condition
	orderBy    []OrderBy
	groupBy    []string
	limit      *int
	offset     *int
	assigns    []assignment
	onConflict *ConflictClause
}

// QueryType represents the type of SQL statement
type QueryType int

const (
	SelectQuery QueryType = iota
	InsertQuery
	UpdateQuery
)

// Condition represents a WHERE condition. A condition with several Columns
// matches when any of them does and renders as a parenthesized OR group.
type Condition struct {
	Columns  []string
	Operator Operator
	Value    interface{}
}

// OrderBy represents an ORDER BY term
type OrderBy struct {
	Column    string
	Direction Direction
}

// ConflictClause represents ON CONFLICT (...) DO NOTHING
type ConflictClause struct {
	Columns []string
}

type assignment struct {
	column string
	value  interface{}
}

// Operator represents SQL comparison operators
type Operator int

const (
	Equal Operator = iota
	NotEqual
	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
	ILike
)

// Direction represents sort direction
type Direction int

const (
	Asc Direction = iota
	Desc
)

// New creates a new QueryBuilder instance
func New() *QueryBuilder {
	return &QueryBuilder{}
}

// Select starts a SELECT query
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	qb.queryType = SelectQuery
	qb.columns = columns
	return qb
}

// Insert starts an INSERT query
func (qb *QueryBuilder) Insert(table string) *QueryBuilder {
	qb.queryType = InsertQuery
	qb.table = table
	return qb
}

// Update starts an UPDATE query
func (qb *QueryBuilder) Update(table string) *QueryBuilder {
	qb.queryType = UpdateQuery
	qb.table = table
	return qb
}

// From sets the table for SELECT queries
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	qb.table = table
	return qb
}

// Set adds a column=value pair for INSERT/UPDATE queries. Columns render in call order.
func (qb *QueryBuilder) Set(column string, value interface{}) *QueryBuilder {
	qb.assigns = append(qb.assigns, assignment{column: column, value: value})
	return qb
}

// Where adds an AND condition
func (qb *QueryBuilder) Where(column string, operator Operator, value interface{}) *QueryBuilder {
	qb.conditions = append(qb.conditions, Condition{Columns: []string{column}, Operator: operator, Value: value})
	return qb
}

// WhereEqual is a convenience method for equality conditions
func (qb *QueryBuilder) WhereEqual(column string, value interface{}) *QueryBuilder {
	return qb.Where(column, Equal, value)
}

// WhereAny adds a condition satisfied when any column matches; value binds once
func (qb *QueryBuilder) WhereAny(columns []string, operator Operator, value interface{}) *QueryBuilder {
	qb.conditions = append(qb.conditions, Condition{Columns: columns, Operator: operator, Value: value})
	return qb
}

// OrderBy adds an ORDER BY term
func (qb *QueryBuilder) OrderBy(column string, direction Direction) *QueryBuilder {
	qb.orderBy = append(qb.orderBy, OrderBy{Column: column, Direction: direction})
	return qb
}

// OrderByAsc adds an ORDER BY ASC term
func (qb *QueryBuilder) OrderByAsc(column string) *QueryBuilder {
	return qb.OrderBy(column, Asc)
}

// OrderByDesc adds an ORDER BY DESC term
func (qb *QueryBuilder) OrderByDesc(column string) *QueryBuilder {
	return qb.OrderBy(column, Desc)
}

// GroupBy adds a GROUP BY clause
func (qb *QueryBuilder) GroupBy(columns ...string) *QueryBuilder {
	qb.groupBy = append(qb.groupBy, columns...)
	return qb
}

// Limit sets the LIMIT clause
func (qb *QueryBuilder) Limit(limit int) *QueryBuilder {
	qb.limit = &limit
	return qb
}

// Offset sets the OFFSET clause
func (qb *QueryBuilder) Offset(offset int) *QueryBuilder {
	qb.offset = &offset
	return qb
}

// OnConflictDoNothing skips rows that collide on columns
func (qb *QueryBuilder) OnConflictDoNothing(columns ...string) *QueryBuilder {
	qb.onConflict = &ConflictClause{Columns: columns}
	return qb
}

// ToSQL generates the SQL statement and its parameter list
func (qb *QueryBuilder) ToSQL() (string, []interface{}, error) {
	if qb.table == "" {
		return "", nil, fmt.Errorf("table name is required")
	}
	switch qb.queryType {
	case SelectQuery:
		return qb.buildSelect()
	case InsertQuery:
		return qb.buildInsert()
	case UpdateQuery:
		return qb.buildUpdate()
	default:
		return "", nil, fmt.Errorf("unknown query type")
	}
}

func (qb *QueryBuilder) buildSelect() (string, []interface{}, error) {
	var query strings.Builder
	var params []interface{}
	paramIndex := 1

	query.WriteString("SELECT ")
	if len(qb.columns) == 0 {
		query.WriteString("*")
	} else {
		query.WriteString(strings.Join(qb.columns, ", "))
	}
	query.WriteString(" FROM ")
	query.WriteString(qb.table)

	whereClause, whereParams, newIndex, err := qb.buildConditions(paramIndex)
	if err != nil {
		return "", nil, err
	}
	if whereClause != "" {
		query.WriteString(" WHERE ")
		query.WriteString(whereClause)
		params = append(params, whereParams...)
		paramIndex = newIndex
	}

	if len(qb.groupBy) > 0 {
		query.WriteString(" GROUP BY ")
		query.WriteString(strings.Join(qb.groupBy, ", "))
	}

	if len(qb.orderBy) > 0 {
		orderClauses := make([]string, len(qb.orderBy))
		for i, order := range qb.orderBy {
			direction := "ASC"
			if order.Direction == Desc {
				direction = "DESC"
			}
			orderClauses[i] = order.Column + " " + direction
		}
		query.WriteString(" ORDER BY ")
		query.WriteString(strings.Join(orderClauses, ", "))
	}

	if qb.limit != nil {
		query.WriteString(fmt.Sprintf(" LIMIT $%d", paramIndex))
		params = append(params, *qb.limit)
		paramIndex++
	}
	if qb.offset != nil {
		query.WriteString(fmt.Sprintf(" OFFSET $%d", paramIndex))
		params = append(params, *qb.offset)
	}

	return query.String(), params, nil
}

func (qb *QueryBuilder) buildInsert() (string, []interface{}, error) {
	if len(qb.assigns) == 0 {
		return "", nil, fmt.Errorf("no values specified for INSERT query")
	}

	columns := make([]string, len(qb.assigns))
	placeholders := make([]string, len(qb.assigns))
	params := make([]interface{}, len(qb.assigns))
	for i, a := range qb.assigns {
		columns[i] = a.column
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		params[i] = a.value
	}

	var query strings.Builder
	query.WriteString("INSERT INTO ")
	query.WriteString(qb.table)
	query.WriteString(" (")
	query.WriteString(strings.Join(columns, ", "))
	query.WriteString(") VALUES (")
	query.WriteString(strings.Join(placeholders, ", "))
	query.WriteString(")")

	if qb.onConflict != nil {
		query.WriteString(" ON CONFLICT (")
		query.WriteString(strings.Join(qb.onConflict.Columns, ", "))
		query.WriteString(") DO NOTHING")
	}
	return query.String(), params, nil
}

func (qb *QueryBuilder) buildUpdate() (string, []interface{}, error) {
	if len(qb.assigns) == 0 {
		return "", nil, fmt.Errorf("no SET values specified for UPDATE query")
	}
	if len(qb.conditions) == 0 {
		return "", nil, fmt.Errorf("UPDATE without WHERE is not allowed")
	}

	var query strings.Builder
	params := make([]interface{}, 0, len(qb.assigns)+len(qb.conditions))

	query.WriteString("UPDATE ")
	query.WriteString(qb.table)
	query.WriteString(" SET ")

	setClauses := make([]string, len(qb.assigns))
	for i, a := range qb.assigns {
		setClauses[i] = fmt.Sprintf("%s = $%d", a.column, i+1)
		params = append(params, a.value)
	}
	query.WriteString(strings.Join(setClauses, ", "))

	whereClause, whereParams, _, err := qb.buildConditions(len(qb.assigns) + 1)
	if err != nil {
		return "", nil, err
	}
	query.WriteString(" WHERE ")
	query.WriteString(whereClause)
	params = append(params, whereParams...)

	return query.String(), params, nil
}

func (qb *QueryBuilder) buildConditions(startIndex int) (string, []interface{}, int, error) {
	if len(qb.conditions) == 0 {
		return "", nil, startIndex, nil
	}

	parts := make([]string, 0, len(qb.conditions))
	var params []interface{}
	paramIndex := startIndex

	for _, condition := range qb.conditions {
		op, err := operatorSQL(condition.Operator)
		if err != nil {
			return "", nil, 0, err
		}
		terms := make([]string, len(condition.Columns))
		for j, column := range condition.Columns {
			terms[j] = fmt.Sprintf("%s %s $%d", column, op, paramIndex)
		}
		params = append(params, condition.Value)
		paramIndex++

		if len(terms) == 1 {
			parts = append(parts, terms[0])
		} else {
			parts = append(parts, "("+strings.Join(terms, " OR ")+")")
		}
	}

	return strings.Join(parts, " AND "), params, paramIndex, nil
}

func operatorSQL(op Operator) (string, error) {
	switch op {
	case Equal:
		return "=", nil
	case NotEqual:
		return "!=", nil
	case GreaterThan:
		return ">", nil
	case GreaterThanOrEqual:
		return ">=", nil
	case LessThan:
		return "<", nil
	case LessThanOrEqual:
		return "<=", nil
	case ILike:
		return "ILIKE", nil
	default:
		return "", fmt.Errorf("unsupported operator %d", op)
	}
}
