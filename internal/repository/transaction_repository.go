package repository

import (
	"context"
	"time"

	"finsight/internal/dto"
	"finsight/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TransactionFilter narrows list and aggregation queries. Zero values mean
// "no constraint".
type TransactionFilter struct {
	UserID   uuid.UUID
	Query    string // case-insensitive substring of description
	Start    string // inclusive ISO date
	End      string // inclusive ISO date
	Category string
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns("id", "user_id", "date", "type", "category", "description", "amount", "created_at", "updated_at").
		Values(tx.ID, tx.UserID, tx.Date, tx.Type, tx.Category, tx.Description, tx.Amount, tx.CreatedAt, tx.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TransactionRepository) List(ctx context.Context, f TransactionFilter, limit, offset int) ([]*models.Transaction, error) {
	query := squirrel.Select("id", "user_id", "date", "type", "category", "description", "amount", "created_at", "updated_at").
		From("transactions").
		Where(filterConditions(f)).
		OrderBy("date DESC", "created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Date, &tx.Type, &tx.Category, &tx.Description, &tx.Amount, &tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}

func (r *TransactionRepository) Count(ctx context.Context, f TransactionFilter) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("transactions").
		Where(filterConditions(f)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	return count, err
}

// TotalsByType sums amounts per transaction type under the filter.
func (r *TransactionRepository) TotalsByType(ctx context.Context, f TransactionFilter) (map[string]float64, error) {
	query := squirrel.Select("type", "COALESCE(SUM(amount), 0)").
		From("transactions").
		Where(filterConditions(f)).
		GroupBy("type").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var txType string
		var total float64
		if err := rows.Scan(&txType, &total); err != nil {
			return nil, err
		}
		totals[txType] = total
	}

	return totals, rows.Err()
}

// SeriesByMonth returns per-month income/expense sums ordered by month,
// so chart figures line up exactly with the listed totals.
func (r *TransactionRepository) SeriesByMonth(ctx context.Context, f TransactionFilter) ([]dto.MonthPoint, error) {
	query := squirrel.Select(
		"to_char(date, 'YYYY-MM') AS month",
		"COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0)",
		"COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)",
	).
		From("transactions").
		Where(filterConditions(f)).
		GroupBy("month").
		OrderBy("month").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []dto.MonthPoint
	for rows.Next() {
		var p dto.MonthPoint
		if err := rows.Scan(&p.Month, &p.Income, &p.Expense); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// ExpensesByCategory returns expense sums per category, largest first.
func (r *TransactionRepository) ExpensesByCategory(ctx context.Context, f TransactionFilter) ([]dto.CategoryPoint, error) {
	conditions := filterConditions(f)
	conditions = append(conditions, squirrel.Eq{"type": "expense"})

	query := squirrel.Select(
		"COALESCE(NULLIF(category, ''), 'Uncategorized')",
		"COALESCE(SUM(amount), 0) AS total",
	).
		From("transactions").
		Where(conditions).
		GroupBy("COALESCE(NULLIF(category, ''), 'Uncategorized')").
		OrderBy("total DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []dto.CategoryPoint
	for rows.Next() {
		var p dto.CategoryPoint
		if err := rows.Scan(&p.Category, &p.Total); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

func filterConditions(f TransactionFilter) squirrel.And {
	conditions := squirrel.And{squirrel.Eq{"user_id": f.UserID}}
	if f.Query != "" {
		conditions = append(conditions, squirrel.ILike{"description": "%" + f.Query + "%"})
	}
	if f.Start != "" {
		if t, err := time.Parse("2006-01-02", f.Start); err == nil {
			conditions = append(conditions, squirrel.GtOrEq{"date": t})
		}
	}
	if f.End != "" {
		if t, err := time.Parse("2006-01-02", f.End); err == nil {
			conditions = append(conditions, squirrel.LtOrEq{"date": t})
		}
	}
	if f.Category != "" {
		conditions = append(conditions, squirrel.Eq{"category": f.Category})
	}
	return conditions
}
