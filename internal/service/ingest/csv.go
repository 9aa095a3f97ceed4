package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/fraud"
)

// RequiredColumns must all be present in an uploaded header.
var RequiredColumns = []string{
	"order_id", "customer_id", "customer_name", "order_value",
	"return_count", "return_day_gap", "category", "return_reason",
}

// ParseCSV reads return rows from r. The header may list columns in any
// order; city and date are optional.
func ParseCSV(r io.Reader) ([]fraud.RawTransaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewValidationError(errors.CodeInvalidPayload, "CSV file is empty")
	}
	if err != nil {
		return nil, errors.NewValidationError(errors.CodeInvalidPayload, "failed to parse CSV").WithCause(err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewValidationError(errors.CodeMissingColumns,
			fmt.Sprintf("Missing columns: [%s]", strings.Join(missing, ", "))).
			WithDetails(map[string]interface{}{"missing": missing})
	}

	var raws []fraud.RawTransaction
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewValidationError(errors.CodeInvalidPayload,
				fmt.Sprintf("failed to parse CSV row %d", line)).WithCause(err)
		}
		if blank(record) {
			continue
		}

		raw, err := parseRow(record, index)
		if err != nil {
			return nil, errors.NewValidationError(errors.CodeInvalidPayload,
				fmt.Sprintf("row %d: %s", line, err.Error())).
				WithDetails(map[string]interface{}{"row": line}).
				WithCause(err)
		}
		raws = append(raws, raw)
	}

	if len(raws) == 0 {
		return nil, errors.NewValidationError(errors.CodeInvalidBatch, "CSV file has a header but no data rows")
	}
	return raws, nil
}

func parseRow(record []string, index map[string]int) (fraud.RawTransaction, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	value, err := strconv.ParseFloat(field("order_value"), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return fraud.RawTransaction{}, fmt.Errorf("order_value %q is not a number", field("order_value"))
	}
	count, err := wholeNumber(field("return_count"))
	if err != nil {
		return fraud.RawTransaction{}, fmt.Errorf("return_count: %w", err)
	}
	gap, err := wholeNumber(field("return_day_gap"))
	if err != nil {
		return fraud.RawTransaction{}, fmt.Errorf("return_day_gap: %w", err)
	}

	return fraud.RawTransaction{
		OrderID:      field("order_id"),
		CustomerID:   field("customer_id"),
		CustomerName: field("customer_name"),
		City:         field("city"),
		Category:     field("category"),
		OrderValue:   value,
		ReturnReason: field("return_reason"),
		ReturnCount:  count,
		ReturnDayGap: gap,
		Date:         field("date"),
	}, nil
}

// wholeNumber accepts "3" as well as spreadsheet exports like "3.0".
func wholeNumber(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
