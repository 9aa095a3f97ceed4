package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
)

const sampleCSV = `order_id,customer_id,customer_name,order_value,return_count,return_day_gap,category,return_reason,city,date
ORD1,CUST1,Arjun Sharma,12000,9,0,Electronics,Changed mind,Mumbai,2024-11-03
ORD2,CUST2,Priya Patel,799.5,1.0,14,Clothing,Wrong size,Pune,2024-11-04
`

func TestParseCSV(t *testing.T) {
	raws, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, raws, 2)

	assert.Equal(t, "ORD1", raws[0].OrderID)
	assert.Equal(t, 12000.0, raws[0].OrderValue)
	assert.Equal(t, 9, raws[0].ReturnCount)
	assert.Equal(t, "Mumbai", raws[0].City)
	assert.Equal(t, "2024-11-03", raws[0].Date)

	assert.Equal(t, 799.5, raws[1].OrderValue)
	assert.Equal(t, 1, raws[1].ReturnCount, "spreadsheet floats are accepted when whole")
}

func TestParseCSV_OptionalColumnsAndOrder(t *testing.T) {
	in := "\ufeffCategory,return_reason,order_id,customer_id,customer_name,order_value,return_count,return_day_gap\n" +
		"Footwear,Defective product,ORD9,CUST9,Meera Bose,2500,2,5\n" +
		",,,,,,,\n"

	raws, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, raws, 1, "blank rows are skipped")
	assert.Equal(t, "Footwear", raws[0].Category)
	assert.Empty(t, raws[0].City)
	assert.Empty(t, raws[0].Date)
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
		contains string
	}{
		{
			name:     "empty file",
			input:    "",
			wantCode: errors.CodeInvalidPayload,
		},
		{
			name:     "missing columns",
			input:    "order_id,customer_id,order_value\nORD1,CUST1,10\n",
			wantCode: errors.CodeMissingColumns,
			contains: "customer_name, return_count, return_day_gap, category, return_reason",
		},
		{
			name:     "header only",
			input:    "order_id,customer_id,customer_name,order_value,return_count,return_day_gap,category,return_reason\n",
			wantCode: errors.CodeInvalidBatch,
		},
		{
			name: "bad number",
			input: "order_id,customer_id,customer_name,order_value,return_count,return_day_gap,category,return_reason\n" +
				"ORD1,CUST1,A,abc,1,1,Electronics,Defective product\n",
			wantCode: errors.CodeInvalidPayload,
			contains: "row 2",
		},
		{
			name: "fractional count",
			input: "order_id,customer_id,customer_name,order_value,return_count,return_day_gap,category,return_reason\n" +
				"ORD1,CUST1,A,100,1.5,1,Electronics,Defective product\n",
			wantCode: errors.CodeInvalidPayload,
			contains: "return_count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.wantCode), "got %v", err)
			assert.Equal(t, 400, errors.GetStatusCode(err))
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}
