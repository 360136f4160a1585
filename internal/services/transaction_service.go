package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// transactionService is the ledger: it owns transaction records and keeps
// each account's stored balance consistent with its transaction history.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
	}
}

// CreateTransaction persists a transaction and applies its signed adjustment
// to the owning account's balance. Record insert and balance increment run
// in one database transaction: either both happen or neither does.
func (s *transactionService) CreateTransaction(
	userID, accountID string,
	categoryID *string,
	flow models.FlowType,
	amount int64,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	if accountID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account ID is required")
	}

	if date.IsZero() {
		date = time.Now()
	}

	// Ensure the account exists and belongs to the user before any mutation.
	account, err := s.accountService.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	flow, err = s.resolveFlow(userID, categoryID, flow)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AccountID:   account.ID,
		CategoryID:  categoryID,
		Type:        flow,
		Amount:      amount,
		Description: description,
		Date:        date,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.ApplyBalanceAdjustment(tx, account.ID, flow.Adjustment(amount))
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// resolveFlow determines the effective direction of a new transaction.
// A referenced category's type wins over an explicit direction; with
// neither, the transaction defaults to an expense.
func (s *transactionService) resolveFlow(userID string, categoryID *string, explicit models.FlowType) (models.FlowType, error) {
	if categoryID != nil && *categoryID != "" {
		var category models.Category
		if err := s.db.Where("id = ? AND user_id = ?", *categoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", apperrors.ErrCategoryNotFound
			}
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return category.Type, nil
	}

	switch explicit {
	case models.FlowIncome, models.FlowExpense:
		return explicit, nil
	case "":
		return models.FlowExpense, nil
	default:
		return "", apperrors.ErrInvalidFlowType
	}
}

// GetUserTransactions retrieves a filtered, date-descending list of the
// user's transactions with category and account joined for display.
// An unbounded page request returns every matching row.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.AccountID != nil {
		base = base.Where("account_id = ?", *filter.AccountID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Category").
		Preload("Account").
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction reverses the transaction's balance effect and removes
// the record. The reversal and the delete share one database transaction so
// a failure cannot leave an unreversed balance change behind.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Recompute the original adjustment from the stored direction and
		// subtract it.
		reversal := -transaction.Type.Adjustment(transaction.Amount)
		if err := s.accountService.ApplyBalanceAdjustment(tx, transaction.AccountID, reversal); err != nil {
			return err
		}
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
