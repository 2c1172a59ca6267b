package dto

import "finsight/internal/extract"

// CandidateSource mirrors extract.Source for the HTTP boundary.
type CandidateSource struct {
	File string `json:"file"`
	Mode string `json:"mode"`
}

// CandidateResponse is one unconfirmed transaction awaiting user review.
// Date is null when the extractor could not determine one.
type CandidateResponse struct {
	Date        *string         `json:"date"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Source      CandidateSource `json:"_source"`
}

type ParseUploadsResponse struct {
	Items []CandidateResponse `json:"items"`
}

// NewParseUploadsResponse shapes extracted candidates for the boundary,
// rendering unknown dates as JSON null.
func NewParseUploadsResponse(candidates []extract.Candidate) ParseUploadsResponse {
	items := make([]CandidateResponse, len(candidates))
	for i, c := range candidates {
		var date *string
		if c.Date != "" {
			d := c.Date
			date = &d
		}
		items[i] = CandidateResponse{
			Date:        date,
			Type:        string(c.Type),
			Category:    c.Category,
			Description: c.Description,
			Amount:      c.Amount,
			Source: CandidateSource{
				File: c.Source.File,
				Mode: string(c.Source.Mode),
			},
		}
	}
	return ParseUploadsResponse{Items: items}
}
