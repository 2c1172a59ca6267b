package service

import (
	"context"
	"errors"
	"time"

	"finsight/internal/dto"
	"finsight/internal/models"
	"finsight/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrTransactionMissing = errors.New("transaction not found")
)

// TransactionService stores and queries confirmed transactions. This is the
// persistence collaborator behind the extraction pipeline: it is invoked
// only after the user has reviewed candidate transactions.
type TransactionService struct {
	txRepo *repository.TransactionRepository
	logger *zap.Logger
}

func NewTransactionService(txRepo *repository.TransactionRepository, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		txRepo: txRepo,
		logger: logger,
	}
}

// Create persists one confirmed transaction and returns its new id.
// Unparseable dates degrade to today; missing category degrades to the
// default label; a non-positive amount is rejected.
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*dto.CreateTransactionResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	txType := "expense"
	if req.Type == "income" {
		txType = "income"
	}

	category := req.Category
	if category == "" {
		category = models.DefaultCategory
	}

	date := time.Now().UTC()
	if req.Date != "" {
		if d, err := time.Parse("2006-01-02", req.Date); err == nil {
			date = d
		}
	}

	now := time.Now()
	tx := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		Type:        txType,
		Category:    category,
		Description: req.Description,
		Amount:      req.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	return &dto.CreateTransactionResponse{ID: tx.ID.String()}, nil
}

// List returns a page of transactions plus the totals and series computed
// over the whole filter window, so chart figures match the KPI numbers.
func (s *TransactionService) List(ctx context.Context, f repository.TransactionFilter, page, size int) (*dto.ListTransactionsResponse, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	if size > 200 {
		size = 200
	}

	items, err := s.txRepo.List(ctx, f, size, (page-1)*size)
	if err != nil {
		return nil, err
	}

	total, err := s.txRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	totalsByType, err := s.txRepo.TotalsByType(ctx, f)
	if err != nil {
		return nil, err
	}

	byMonth, err := s.txRepo.SeriesByMonth(ctx, f)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.txRepo.ExpensesByCategory(ctx, f)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TransactionResponse, len(items))
	for i, tx := range items {
		responses[i] = dto.TransactionResponse{
			ID:          tx.ID.String(),
			Date:        tx.Date.Format("2006-01-02"),
			Type:        tx.Type,
			Category:    tx.Category,
			Description: tx.Description,
			Amount:      tx.Amount,
			CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		}
	}

	income := totalsByType["income"]
	expense := totalsByType["expense"]

	return &dto.ListTransactionsResponse{
		Items: responses,
		Total: total,
		Pages: (total + int64(size) - 1) / int64(size),
		Totals: dto.TransactionTotals{
			Income:  income,
			Expense: expense,
			Net:     income - expense,
		},
		Series: dto.TransactionSeries{
			ByMonth:    byMonth,
			ByCategory: byCategory,
		},
	}, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.txRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionMissing
	}
	return nil
}
