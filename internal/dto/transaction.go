package dto

type CreateTransactionRequest struct {
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

type CreateTransactionResponse struct {
	ID string `json:"id"`
}

type TransactionResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	CreatedAt   string  `json:"created_at"`
}

type TransactionTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

type MonthPoint struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type CategoryPoint struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type TransactionSeries struct {
	ByMonth    []MonthPoint    `json:"by_month"`
	ByCategory []CategoryPoint `json:"by_category"`
}

type ListTransactionsResponse struct {
	Items  []TransactionResponse `json:"items"`
	Total  int64                 `json:"total"`
	Pages  int64                 `json:"pages"`
	Totals TransactionTotals     `json:"totals"`
	Series TransactionSeries     `json:"series"`
}
