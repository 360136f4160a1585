package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(user.ID, "Groceries", models.FlowExpense, "#ef4444", "cart")
		testutil.AssertNoError(t, err)

		if cat.ID == "" {
			t.Fatal("expected non-empty category ID")
		}
		if cat.Type != models.FlowExpense {
			t.Errorf("expected expense type, got %s", cat.Type)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "", models.FlowExpense, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Groceries", models.FlowExpense, "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Groceries", models.FlowExpense, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSeedDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.AssertNoError(t, svc.SeedDefaults(db, user.ID))

	page, err := svc.GetUserCategories(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 6 {
		t.Fatalf("expected 6 seeded categories, got %d", page.TotalItems)
	}

	var incomeCount int
	for _, cat := range page.Data {
		if cat.Type == models.FlowIncome {
			incomeCount++
		}
	}
	if incomeCount != 1 {
		t.Errorf("expected exactly 1 income category in seed set, got %d", incomeCount)
	}
}

func TestDeleteCategory(t *testing.T) {
	t.Run("nullifies_transactions_and_deletes_budgets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		acctSvc := NewAccountService(db)
		txSvc := NewTransactionService(db, acctSvc)
		budgetSvc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.FlowExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, 20000)

		tx1 := testutil.CreateTestTransaction(t, db, user.ID, account.ID, models.FlowExpense, 100)
		tx2 := testutil.CreateTestTransaction(t, db, user.ID, account.ID, models.FlowExpense, 200)
		for _, tx := range []*models.Transaction{tx1, tx2} {
			if err := db.Model(tx).Update("category_id", cat.ID).Error; err != nil {
				t.Fatalf("failed to tag transaction: %v", err)
			}
		}

		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, cat.ID))

		// Transactions survive with their category reference cleared.
		for _, id := range []string{tx1.ID, tx2.ID} {
			kept, err := txSvc.GetTransactionByID(user.ID, id)
			testutil.AssertNoError(t, err)
			if kept.CategoryID != nil {
				t.Errorf("expected category_id cleared on transaction %s", id)
			}
		}

		// The referencing budget is gone.
		_, err := budgetSvc.GetBudgetByID(user.ID, budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

		_, err = svc.GetCategoryByID(user.ID, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user1.ID, models.FlowExpense)

		testutil.AssertAppError(t, svc.DeleteCategory(user2.ID, cat.ID), "CATEGORY_NOT_FOUND")
	})
}
