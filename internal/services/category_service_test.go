package services

import (
	"testing"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/models"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory("Dairy", "Milk and cheese")
		testutil.AssertNoError(t, err)

		if cat.ID == 0 {
			t.Fatal("expected non-zero category ID")
		}
		if cat.Name != "Dairy" {
			t.Errorf("expected name Dairy, got %s", cat.Name)
		}
		if cat.Description != "Milk and cheese" {
			t.Errorf("expected description 'Milk and cheese', got %s", cat.Description)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Bakery", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory("Bakery", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("blank_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("   ", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListCategories(t *testing.T) {
	t.Run("newest_first_with_search", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, _ = svc.CreateCategory("Frozen food", "")
		_, _ = svc.CreateCategory("Cleaning", "")
		_, _ = svc.CreateCategory("Canned food", "")

		all, err := svc.ListCategories("")
		testutil.AssertNoError(t, err)
		if len(all) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(all))
		}
		if all[0].Name != "Canned food" {
			t.Errorf("expected newest first, got %s", all[0].Name)
		}

		food, err := svc.ListCategories("food")
		testutil.AssertNoError(t, err)
		if len(food) != 2 {
			t.Errorf("expected 2 matches for 'food', got %d", len(food))
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("renames", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		created := testutil.CreateTestCategory(t, db)

		_, err := svc.UpdateCategory(created.ID, "Beverages", "Drinks")
		testutil.AssertNoError(t, err)

		got, err := svc.GetCategoryByID(created.ID)
		testutil.AssertNoError(t, err)
		if got.Name != "Beverages" || got.Description != "Drinks" {
			t.Errorf("expected updated category, got %+v", got)
		}
	})

	t.Run("keeping_own_name_is_not_a_duplicate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		created := testutil.CreateTestCategory(t, db)

		_, err := svc.UpdateCategory(created.ID, created.Name, "new description")
		testutil.AssertNoError(t, err)
	})

	t.Run("name_taken_by_other", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		first := testutil.CreateTestCategory(t, db)
		second := testutil.CreateTestCategory(t, db)

		_, err := svc.UpdateCategory(second.ID, first.Name, "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.UpdateCategory(99999, "Anything", "")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("products_survive_as_uncategorized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		category := testutil.CreateTestCategory(t, db)

		product := testutil.CreateTestProduct(t, db, 20)
		if err := db.Model(product).Update("category_id", category.ID).Error; err != nil {
			t.Fatalf("failed to categorize product: %v", err)
		}

		testutil.AssertNoError(t, svc.DeleteCategory(category.ID))

		reloaded := testutil.ReloadProduct(t, db, product.ID)
		if reloaded.CategoryID != nil {
			t.Errorf("expected category reference cleared, got %d", *reloaded.CategoryID)
		}
		if reloaded.CategoryName() != models.UncategorizedLabel {
			t.Errorf("expected %q, got %q", models.UncategorizedLabel, reloaded.CategoryName())
		}
		if reloaded.Quantity != 20 || reloaded.Name != product.Name {
			t.Errorf("expected product untouched, got %+v", reloaded)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		err := svc.DeleteCategory(99999)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
