package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
	"github.com/wallet-ledger/backend/internal/integration/persistence/model"
)

// linkedEntryRepository implements the adapter.LinkedEntryRepository interface.
type linkedEntryRepository struct {
	db *gorm.DB
}

// NewLinkedEntryRepository creates a new linked entry repository instance.
func NewLinkedEntryRepository(db *gorm.DB) adapter.LinkedEntryRepository {
	return &linkedEntryRepository{
		db: db,
	}
}

// CreateEntry creates a new linked entry in the database.
func (r *linkedEntryRepository) CreateEntry(ctx context.Context, entry *entity.LinkedEntry) error {
	entryModel := model.LinkedEntryFromEntity(entry)
	result := r.db.WithContext(ctx).Create(entryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindEntryByID retrieves a linked entry by its ID.
func (r *linkedEntryRepository) FindEntryByID(ctx context.Context, id uuid.UUID) (*entity.LinkedEntry, error) {
	var entryModel model.LinkedEntryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLinkedEntryNotFound
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// FindEntryByPrimaryTransaction retrieves the entry originated by the given
// primary transaction.
func (r *linkedEntryRepository) FindEntryByPrimaryTransaction(ctx context.Context, transactionID uuid.UUID) (*entity.LinkedEntry, error) {
	var entryModel model.LinkedEntryModel
	result := r.db.WithContext(ctx).Where("primary_transaction_id = ?", transactionID).First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLinkedEntryNotFound
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// FindEntries retrieves linked entries matching the filter, newest first.
func (r *linkedEntryRepository) FindEntries(ctx context.Context, filter adapter.LinkedEntryFilter) ([]*entity.LinkedEntry, error) {
	query := r.db.WithContext(ctx).Model(&model.LinkedEntryModel{})

	if filter.LinkType != nil {
		query = query.Where("link_type = ?", string(*filter.LinkType))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var entryModels []model.LinkedEntryModel
	result := query.Order("created_at DESC").Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.LinkedEntry, len(entryModels))
	for i, em := range entryModels {
		entries[i] = em.ToEntity()
	}
	return entries, nil
}

// UpdateEntry persists changes to an existing entry.
func (r *linkedEntryRepository) UpdateEntry(ctx context.Context, entry *entity.LinkedEntry) error {
	entryModel := model.LinkedEntryFromEntity(entry)
	result := r.db.WithContext(ctx).Model(&model.LinkedEntryModel{}).
		Where("id = ?", entry.ID).
		Select("counterparty_name", "total_amount", "user_amount", "pending_amount", "status", "notes", "updated_at").
		Updates(entryModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrLinkedEntryNotFound
	}
	return nil
}

// DeleteEntry removes an entry and its links.
func (r *linkedEntryRepository) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	// Explicit child delete: sqlite does not always enforce FK cascades.
	if err := r.db.WithContext(ctx).
		Where("linked_entry_id = ?", id).
		Delete(&model.LinkedTransactionModel{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.LinkedEntryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrLinkedEntryNotFound
	}
	return nil
}

// CreateLink creates a linked transaction join record.
func (r *linkedEntryRepository) CreateLink(ctx context.Context, link *entity.LinkedTransaction) error {
	linkModel := model.LinkedTransactionFromEntity(link)
	result := r.db.WithContext(ctx).Create(linkModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindLinkByID retrieves a linked transaction by its ID.
func (r *linkedEntryRepository) FindLinkByID(ctx context.Context, id uuid.UUID) (*entity.LinkedTransaction, error) {
	var linkModel model.LinkedTransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&linkModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLinkNotFound
		}
		return nil, result.Error
	}
	return linkModel.ToEntity(), nil
}

// FindLinkByTransaction retrieves the link owning the given settling transaction.
func (r *linkedEntryRepository) FindLinkByTransaction(ctx context.Context, transactionID uuid.UUID) (*entity.LinkedTransaction, error) {
	var linkModel model.LinkedTransactionModel
	result := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&linkModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLinkNotFound
		}
		return nil, result.Error
	}
	return linkModel.ToEntity(), nil
}

// FindLinksByTransactionIDs retrieves all links whose settling transaction is in ids.
func (r *linkedEntryRepository) FindLinksByTransactionIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.LinkedTransaction, error) {
	var linkModels []model.LinkedTransactionModel
	result := r.db.WithContext(ctx).Where("transaction_id IN ?", ids).Find(&linkModels)
	if result.Error != nil {
		return nil, result.Error
	}

	links := make([]*entity.LinkedTransaction, len(linkModels))
	for i, lm := range linkModels {
		links[i] = lm.ToEntity()
	}
	return links, nil
}

// FindLinksByEntry retrieves all links of an entry.
func (r *linkedEntryRepository) FindLinksByEntry(ctx context.Context, entryID uuid.UUID) ([]*entity.LinkedTransaction, error) {
	var linkModels []model.LinkedTransactionModel
	result := r.db.WithContext(ctx).Where("linked_entry_id = ?", entryID).Find(&linkModels)
	if result.Error != nil {
		return nil, result.Error
	}

	links := make([]*entity.LinkedTransaction, len(linkModels))
	for i, lm := range linkModels {
		links[i] = lm.ToEntity()
	}
	return links, nil
}

// DeleteLink removes a linked transaction join record.
func (r *linkedEntryRepository) DeleteLink(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.LinkedTransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrLinkNotFound
	}
	return nil
}

// SettledAmount sums the amounts of the entry's settling transactions via the
// join; the linked_transactions table stores no amount of its own.
func (r *linkedEntryRepository) SettledAmount(ctx context.Context, entryID uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&model.LinkedTransactionModel{}).
		Joins("JOIN transactions ON transactions.id = linked_transactions.transaction_id").
		Where("linked_transactions.linked_entry_id = ?", entryID)

	var total decimal.NullDecimal
	if err := query.Select("SUM(transactions.amount)").Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// SumPendingByTypes sums pending amounts of unsettled entries with the given
// link types.
func (r *linkedEntryRepository) SumPendingByTypes(ctx context.Context, types []entity.LinkType) (decimal.Decimal, error) {
	typeStrings := make([]string, len(types))
	for i, t := range types {
		typeStrings[i] = string(t)
	}

	query := r.db.WithContext(ctx).Model(&model.LinkedEntryModel{}).
		Where("link_type IN ?", typeStrings).
		Where("status IN ?", []string{string(entity.LinkStatusPending), string(entity.LinkStatusPartial)})

	var total decimal.NullDecimal
	if err := query.Select("SUM(pending_amount)").Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// SumPendingInstallments sums pending amounts of unsettled installment
// entries, optionally restricted to the wallet owning the primary transaction.
func (r *linkedEntryRepository) SumPendingInstallments(ctx context.Context, walletID *uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&model.LinkedEntryModel{}).
		Joins("JOIN transactions ON transactions.id = linked_entries.primary_transaction_id").
		Where("linked_entries.link_type = ?", string(entity.LinkTypeInstallment)).
		Where("linked_entries.status IN ?", []string{string(entity.LinkStatusPending), string(entity.LinkStatusPartial)})

	if walletID != nil {
		query = query.Where("transactions.wallet_id = ?", *walletID)
	}

	var total decimal.NullDecimal
	if err := query.Select("SUM(linked_entries.pending_amount)").Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
