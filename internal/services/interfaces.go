package services

import (
	"time"

	"gorm.io/gorm"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// AccountUpdateFields holds the optional fields for an account update.
// Balance edits here are direct user corrections, not ledger adjustments.
type AccountUpdateFields struct {
	Name    *string
	Kind    *models.AccountKind
	Balance *int64
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID, name string, kind models.AccountKind, currency string, openingBalance int64) (*models.Account, error)
	GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	UpdateAccount(userID, accountID string, fields AccountUpdateFields) (*models.Account, error)
	DeleteAccount(userID, accountID string) error
	ApplyBalanceAdjustment(tx *gorm.DB, accountID string, adjustment int64) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string, flow models.FlowType, color, icon string) (*models.Category, error)
	SeedDefaults(tx *gorm.DB, userID string) error
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type      *models.FlowType
	AccountID *string
}

// TransactionServicer defines the contract for the transaction ledger.
type TransactionServicer interface {
	CreateTransaction(userID, accountID string, categoryID *string, flow models.FlowType, amount int64, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// BudgetProgress pairs a budget with its spending for the current period.
type BudgetProgress struct {
	models.Budget
	Spent     int64 `json:"spent"`
	Remaining int64 `json:"remaining"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, categoryID string, amount int64, period models.BudgetPeriod) (*models.Budget, error)
	GetUserBudgetsWithProgress(userID string) ([]BudgetProgress, error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
}

// GoalUpdateFields holds the optional fields for a goal update.
type GoalUpdateFields struct {
	Name          *string
	TargetAmount  *int64
	CurrentAmount *int64
	Deadline      *time.Time
}

// GoalServicer defines the contract for savings-goal business logic.
type GoalServicer interface {
	CreateGoal(userID, name string, targetAmount, currentAmount int64, deadline *time.Time) (*models.Goal, error)
	GetUserGoals(userID string) ([]models.Goal, error)
	UpdateGoal(userID, goalID string, fields GoalUpdateFields) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
}

// MonthPoint is one month's income/expense totals in USD, labelled with the
// short month name.
type MonthPoint struct {
	Name    string  `json:"name"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Dashboard aggregates a user's finances in USD.
type Dashboard struct {
	TotalBalance   float64      `json:"total_balance"`
	MonthlyIncome  float64      `json:"monthly_income"`
	MonthlyExpense float64      `json:"monthly_expense"`
	AccountsCount  int          `json:"accounts_count"`
	ChartData      []MonthPoint `json:"chart_data"`
}

// AnalyticsServicer defines the contract for dashboard aggregation.
type AnalyticsServicer interface {
	GetDashboard(userID string) (*Dashboard, error)
}
