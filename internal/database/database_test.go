package database_test

import (
	"path/filepath"
	"testing"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/database"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/testutil"
)

func TestNewManager(t *testing.T) {
	t.Run("creates_file_and_schema", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "shop.db")
		manager, err := database.NewManager(database.NewConfig(path))
		testutil.AssertNoError(t, err)
		defer manager.Close()

		testutil.AssertNoError(t, manager.RunMigrations())

		row, ok := manager.Gateway().FetchOne("SELECT COUNT(*) AS n FROM sqlite_master WHERE type = 'table' AND name = ?", "inventory_movements")
		if !ok || row.Int("n") != 1 {
			t.Fatalf("expected inventory_movements table, got %v", row)
		}
	})

	t.Run("migrations_are_idempotent", func(t *testing.T) {
		manager := testutil.SetupTestManager(t)
		defer manager.Close()

		testutil.AssertNoError(t, manager.RunMigrations())
	})

	t.Run("foreign_keys_enabled", func(t *testing.T) {
		manager := testutil.SetupTestManager(t)
		defer manager.Close()

		row, ok := manager.Gateway().FetchOne("PRAGMA foreign_keys")
		if !ok || row.Int("foreign_keys") != 1 {
			t.Errorf("expected foreign_keys=1, got %v", row)
		}
	})
}

func TestGateway(t *testing.T) {
	t.Run("exec_and_fetch", func(t *testing.T) {
		manager := testutil.SetupTestManager(t)
		defer manager.Close()
		gw := manager.Gateway()

		if !gw.Exec("INSERT INTO suppliers (name, debt_syp, debt_usd) VALUES (?, ?, ?)", "Acme", 1000, 10.5) {
			t.Fatal("expected insert to succeed")
		}

		rows := gw.FetchAll("SELECT name, debt_syp, debt_usd FROM suppliers WHERE name = ?", "Acme")
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		if rows[0].String("name") != "Acme" {
			t.Errorf("expected name Acme, got %s", rows[0].String("name"))
		}
		testutil.AssertDecimal(t, "debt_syp", rows[0].Decimal("debt_syp"), "1000")
		testutil.AssertDecimal(t, "debt_usd", rows[0].Decimal("debt_usd"), "10.5")
	})

	t.Run("values_are_never_interpolated", func(t *testing.T) {
		manager := testutil.SetupTestManager(t)
		defer manager.Close()
		gw := manager.Gateway()

		name := "x'); DROP TABLE suppliers; --"
		if !gw.Exec("INSERT INTO suppliers (name) VALUES (?)", name) {
			t.Fatal("expected insert to succeed")
		}
		row, ok := gw.FetchOne("SELECT name FROM suppliers")
		if !ok || row.String("name") != name {
			t.Errorf("expected literal name to round-trip, got %v", row)
		}
	})

	t.Run("fault_returns_false_and_rolls_back", func(t *testing.T) {
		manager := testutil.SetupTestManager(t)
		defer manager.Close()
		gw := manager.Gateway()

		// product 999 does not exist, so the foreign key rejects the row.
		if gw.Exec("INSERT INTO inventory_movements (product_id, movement_type, quantity) VALUES (?, 'in', 1)", 999) {
			t.Fatal("expected foreign key violation to fail")
		}
		if n := testutil.CountRows(t, manager.DB(), "inventory_movements"); n != 0 {
			t.Errorf("expected no movement rows, got %d", n)
		}
	})

	t.Run("query_fault_returns_empty", func(t *testing.T) {
		manager := testutil.SetupTestManager(t)
		defer manager.Close()
		gw := manager.Gateway()

		if rows := gw.FetchAll("SELECT * FROM no_such_table"); rows != nil {
			t.Errorf("expected nil rows, got %v", rows)
		}
		if _, ok := gw.FetchOne("SELECT * FROM no_such_table"); ok {
			t.Error("expected FetchOne to report absent")
		}
	})

	t.Run("null_sum_reads_as_zero", func(t *testing.T) {
		manager := testutil.SetupTestManager(t)
		defer manager.Close()

		row, ok := manager.Gateway().FetchOne("SELECT SUM(total_syp) AS total FROM sales")
		if !ok {
			t.Fatal("expected an aggregate row")
		}
		if !row.Decimal("total").IsZero() {
			t.Errorf("expected zero, got %s", row.Decimal("total"))
		}
	})
}
