package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
	"github.com/wallet-ledger/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByIDs retrieves all transactions for the given IDs.
func (r *transactionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// FindByFilter retrieves transactions matching the filter, newest first.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})

	if filter.WalletID != nil {
		query = query.Where("wallet_id = ?", *filter.WalletID)
	}
	if filter.CategoryID != nil {
		query = query.Where(
			"category_id = ? OR subcategory_id IN (?)",
			*filter.CategoryID,
			r.db.Model(&model.SubcategoryModel{}).Select("id").Where("category_id = ?", *filter.CategoryID),
		)
	}
	if filter.Month != nil {
		start := time.Date(filter.Month.Year(), filter.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		query = query.Where("date >= ? AND date < ?", start, end)
	}
	if filter.Direction != nil {
		query = query.Where("direction = ?", string(*filter.Direction))
	}
	if filter.Classification != nil {
		query = query.Where("classification = ?", string(*filter.Classification))
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var transactionModels []model.TransactionModel
	result := query.Order("date DESC, created_at DESC").Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// Update persists changes to an existing transaction.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	// Full-row save so cleared optional fields (category, pairing) persist.
	result := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("id = ?", transaction.ID).
		Select("*").Omit("created_at").
		Updates(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// SetIgnored flips the is_ignored flag for the given transactions.
func (r *transactionRepository) SetIgnored(ctx context.Context, ids []uuid.UUID, ignored bool) error {
	result := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("id IN ?", ids).
		Update("is_ignored", ignored)
	return result.Error
}

// SumByDirection sums amounts for the wallet's transactions with the given
// direction and date <= until, restricted to date > after when set.
func (r *transactionRepository) SumByDirection(ctx context.Context, walletID uuid.UUID, direction entity.TransactionDirection, after *time.Time, until time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("wallet_id = ?", walletID).
		Where("direction = ?", string(direction)).
		Where("date <= ?", until)

	if after != nil {
		query = query.Where("date > ?", *after)
	}

	return sumAmount(query)
}

// SumOnDate sums amounts for the wallet's transactions with the given
// direction dated exactly on date.
func (r *transactionRepository) SumOnDate(ctx context.Context, walletID uuid.UUID, direction entity.TransactionDirection, date time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("wallet_id = ?", walletID).
		Where("direction = ?", string(direction)).
		Where("date = ?", date)

	return sumAmount(query)
}

// CountSince counts the wallet's transactions dated on or after from.
func (r *transactionRepository) CountSince(ctx context.Context, walletID uuid.UUID, from time.Time) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("wallet_id = ?", walletID).
		Where("date >= ?", from).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// ExistsForWallet reports whether the wallet owns any transactions.
func (r *transactionRepository) ExistsForWallet(ctx context.Context, walletID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("wallet_id = ?", walletID).
		Limit(1).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// SumExpensesInRange sums non-ignored Outflow/Expense amounts with
// from <= date < to.
func (r *transactionRepository) SumExpensesInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("date >= ? AND date < ?", from, to).
		Where("direction = ?", string(entity.DirectionOutflow)).
		Where("classification = ?", string(entity.ClassificationExpense)).
		Where("is_ignored = ?", false)

	return sumAmount(query)
}

// FindReportableOutflowsInRange retrieves non-ignored outflow transactions
// classified Expense or SplitPayment with from <= date < to.
func (r *transactionRepository) FindReportableOutflowsInRange(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Where("direction = ?", string(entity.DirectionOutflow)).
		Where("classification IN ?", []string{
			string(entity.ClassificationExpense),
			string(entity.ClassificationSplitPayment),
		}).
		Where("is_ignored = ?", false).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// sumAmount executes SUM(amount) on the prepared query, mapping NULL to zero.
func sumAmount(query *gorm.DB) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := query.Select("SUM(amount)").Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
