package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/extract"
)

func TestNewParseUploadsResponseNullDate(t *testing.T) {
	resp := NewParseUploadsResponse([]extract.Candidate{
		{
			Date:        "",
			Type:        extract.TypeExpense,
			Category:    "Shopping",
			Description: "Corner Cafe",
			Amount:      12.0,
			Source:      extract.Source{File: "receipt.png", Mode: extract.ModeOCRImage},
		},
		{
			Date:   "2025-08-01",
			Type:   extract.TypeIncome,
			Amount: 85000,
			Source: extract.Source{File: "statement.pdf", Mode: extract.ModePDFTable},
		},
	})

	require.Len(t, resp.Items, 2)
	assert.Nil(t, resp.Items[0].Date)
	require.NotNil(t, resp.Items[1].Date)
	assert.Equal(t, "2025-08-01", *resp.Items[1].Date)

	raw, err := json.Marshal(resp.Items[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"date":null`)
	assert.Contains(t, string(raw), `"_source"`)
}

func TestNewParseUploadsResponseEmptyList(t *testing.T) {
	resp := NewParseUploadsResponse(nil)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
}
