package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("income_increases_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		tx, err := txSvc.CreateTransaction(user.ID, account.ID, nil, models.FlowIncome, 5000, "Salary", time.Now())
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected non-empty transaction ID")
		}
		if tx.Amount != 5000 {
			t.Errorf("expected amount 5000, got %d", tx.Amount)
		}

		updated, err := acctSvc.GetAccountByID(user.ID, account.ID)
		testutil.AssertNoError(t, err)
		if updated.Balance != 5000 {
			t.Errorf("expected balance 5000, got %d", updated.Balance)
		}
	})

	t.Run("expense_decreases_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccountWithBalance(t, db, user.ID, 10000)

		_, err := txSvc.CreateTransaction(user.ID, account.ID, nil, models.FlowExpense, 3000, "Lunch", time.Now())
		testutil.AssertNoError(t, err)

		updated, err := acctSvc.GetAccountByID(user.ID, account.ID)
		testutil.AssertNoError(t, err)
		if updated.Balance != 7000 {
			t.Errorf("expected balance 7000, got %d", updated.Balance)
		}
	})

	t.Run("category_direction_wins_over_explicit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.FlowIncome)

		// Explicit expense loses to the income category.
		tx, err := txSvc.CreateTransaction(user.ID, account.ID, &cat.ID, models.FlowExpense, 2000, "", time.Now())
		testutil.AssertNoError(t, err)

		if tx.Type != models.FlowIncome {
			t.Errorf("expected persisted type income, got %s", tx.Type)
		}

		updated, err := acctSvc.GetAccountByID(user.ID, account.ID)
		testutil.AssertNoError(t, err)
		if updated.Balance != 2000 {
			t.Errorf("expected balance 2000, got %d", updated.Balance)
		}
	})

	t.Run("defaults_to_expense_without_category_or_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccountWithBalance(t, db, user.ID, 1000)

		tx, err := txSvc.CreateTransaction(user.ID, account.ID, nil, "", 400, "", time.Now())
		testutil.AssertNoError(t, err)

		if tx.Type != models.FlowExpense {
			t.Errorf("expected default type expense, got %s", tx.Type)
		}
		updated, err := acctSvc.GetAccountByID(user.ID, account.ID)
		testutil.AssertNoError(t, err)
		if updated.Balance != 600 {
			t.Errorf("expected balance 600, got %d", updated.Balance)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		missing := "00000000-0000-0000-0000-000000000000"
		_, err := txSvc.CreateTransaction(user.ID, account.ID, &missing, "", 100, "", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("other_users_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user1.ID)
		cat := testutil.CreateTestCategory(t, db, user2.ID, models.FlowExpense)

		_, err := txSvc.CreateTransaction(user1.ID, account.ID, &cat.ID, "", 100, "", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		_, err := txSvc.CreateTransaction(user.ID, account.ID, nil, models.FlowIncome, 0, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		_, err := txSvc.CreateTransaction(user.ID, account.ID, nil, models.FlowIncome, -100, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_account_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)

		_, err := txSvc.CreateTransaction("some-user", "", nil, models.FlowIncome, 1000, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("wrong_user_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user1.ID)

		_, err := txSvc.CreateTransaction(user2.ID, account.ID, nil, models.FlowIncome, 1000, "", time.Now())
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("default_date_when_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		tx, err := txSvc.CreateTransaction(user.ID, account.ID, nil, models.FlowIncome, 1000, "", time.Time{})
		testutil.AssertNoError(t, err)

		if tx.Date.IsZero() {
			t.Error("expected date to be defaulted to now, got zero")
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("restores_balance_exactly", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user := testutil.CreateTestUser(t, db)
		// Account opens with $100.00; a $30.00 expense drops it to $70.00
		// and deleting the expense restores $100.00.
		account := testutil.CreateTestAccountWithBalance(t, db, user.ID, 10000)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.FlowExpense)

		tx, err := txSvc.CreateTransaction(user.ID, account.ID, &cat.ID, "", 3000, "Groceries", time.Now())
		testutil.AssertNoError(t, err)

		mid, err := acctSvc.GetAccountByID(user.ID, account.ID)
		testutil.AssertNoError(t, err)
		if mid.Balance != 7000 {
			t.Fatalf("expected balance 7000 after expense, got %d", mid.Balance)
		}

		testutil.AssertNoError(t, txSvc.DeleteTransaction(user.ID, tx.ID))

		final, err := acctSvc.GetAccountByID(user.ID, account.ID)
		testutil.AssertNoError(t, err)
		if final.Balance != 10000 {
			t.Errorf("expected balance restored to 10000, got %d", final.Balance)
		}

		if _, err := txSvc.GetTransactionByID(user.ID, tx.ID); err == nil {
			t.Error("expected deleted transaction to be gone")
		}
	})

	t.Run("reverses_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		tx, err := txSvc.CreateTransaction(user.ID, account.ID, nil, models.FlowIncome, 5000, "", time.Now())
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, txSvc.DeleteTransaction(user.ID, tx.ID))

		final, err := acctSvc.GetAccountByID(user.ID, account.ID)
		testutil.AssertNoError(t, err)
		if final.Balance != 0 {
			t.Errorf("expected balance 0, got %d", final.Balance)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user := testutil.CreateTestUser(t, db)

		err := txSvc.DeleteTransaction(user.ID, "00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user1.ID)

		tx, err := txSvc.CreateTransaction(user1.ID, account.ID, nil, models.FlowIncome, 1000, "", time.Now())
		testutil.AssertNoError(t, err)

		testutil.AssertAppError(t, txSvc.DeleteTransaction(user2.ID, tx.ID), "TRANSACTION_NOT_FOUND")
	})
}

// The stored balance must always equal the opening balance plus the signed
// sum of adjustments from surviving transactions.
func TestBalanceInvariant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	acctSvc := NewAccountService(db)
	txSvc := NewTransactionService(db, acctSvc)
	user := testutil.CreateTestUser(t, db)

	const opening = 25000
	account := testutil.CreateTestAccountWithBalance(t, db, user.ID, opening)

	steps := []struct {
		flow   models.FlowType
		amount int64
	}{
		{models.FlowIncome, 12000},
		{models.FlowExpense, 4500},
		{models.FlowExpense, 99},
		{models.FlowIncome, 1},
		{models.FlowExpense, 30000},
	}

	var created []string
	var expected int64 = opening
	for _, step := range steps {
		tx, err := txSvc.CreateTransaction(user.ID, account.ID, nil, step.flow, step.amount, "", time.Now())
		testutil.AssertNoError(t, err)
		created = append(created, tx.ID)
		expected += step.flow.Adjustment(step.amount)
	}

	// Delete a subset and adjust expectations accordingly.
	for _, i := range []int{0, 3} {
		testutil.AssertNoError(t, txSvc.DeleteTransaction(user.ID, created[i]))
		expected -= steps[i].flow.Adjustment(steps[i].amount)
	}

	final, err := acctSvc.GetAccountByID(user.ID, account.ID)
	testutil.AssertNoError(t, err)
	if final.Balance != expected {
		t.Errorf("balance invariant violated: expected %d, got %d", expected, final.Balance)
	}
}

func TestGetUserTransactions(t *testing.T) {
	t.Run("filters_and_orders_by_date_desc", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user := testutil.CreateTestUser(t, db)
		account1 := testutil.CreateTestAccount(t, db, user.ID)
		account2 := testutil.CreateTestAccount(t, db, user.ID)

		now := time.Now()
		testutil.CreateTestTransactionOn(t, db, user.ID, account1.ID, models.FlowExpense, 100, now.Add(-2*time.Hour))
		testutil.CreateTestTransactionOn(t, db, user.ID, account1.ID, models.FlowIncome, 200, now.Add(-1*time.Hour))
		testutil.CreateTestTransactionOn(t, db, user.ID, account2.ID, models.FlowExpense, 300, now)

		page := pagination.PageRequest{}
		all, err := txSvc.GetUserTransactions(user.ID, page, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if all.TotalItems != 3 {
			t.Fatalf("expected 3 transactions, got %d", all.TotalItems)
		}
		if all.Data[0].Amount != 300 || all.Data[2].Amount != 100 {
			t.Error("expected newest-first ordering")
		}

		expense := models.FlowExpense
		filtered, err := txSvc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{Type: &expense})
		testutil.AssertNoError(t, err)
		if filtered.TotalItems != 2 {
			t.Errorf("expected 2 expense transactions, got %d", filtered.TotalItems)
		}

		byAccount, err := txSvc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{AccountID: &account2.ID})
		testutil.AssertNoError(t, err)
		if byAccount.TotalItems != 1 {
			t.Errorf("expected 1 transaction for account2, got %d", byAccount.TotalItems)
		}
	})

	t.Run("unbounded_returns_all_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		for i := 0; i < 25; i++ {
			testutil.CreateTestTransaction(t, db, user.ID, account.ID, models.FlowExpense, int64(i+1))
		}

		paged, err := txSvc.GetUserTransactions(user.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(paged.Data) != 20 {
			t.Errorf("expected default page of 20, got %d", len(paged.Data))
		}

		unbounded, err := txSvc.GetUserTransactions(user.ID, pagination.PageRequest{PageSize: pagination.Unbounded}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(unbounded.Data) != 25 {
			t.Errorf("expected all 25 rows, got %d", len(unbounded.Data))
		}
		if unbounded.TotalItems != 25 || unbounded.TotalPages != 1 {
			t.Errorf("expected total 25 in 1 page, got %d in %d", unbounded.TotalItems, unbounded.TotalPages)
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user1.ID)
		testutil.CreateTestTransaction(t, db, user1.ID, account.ID, models.FlowExpense, 100)

		result, err := txSvc.GetUserTransactions(user2.ID, pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("expected no transactions for other user, got %d", result.TotalItems)
		}
	})
}
