package db

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"margin-desk/internal/config"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestLoadConfig_EmptyReturnsDefaults(t *testing.T) {
	d := openTestDB(t)
	cfg := d.LoadConfig()
	if cfg.FeeRate != config.Default().FeeRate {
		t.Fatalf("fee rate = %v, want default", cfg.FeeRate)
	}
}

func TestSaveAndLoadConfig_RoundTrip(t *testing.T) {
	d := openTestDB(t)

	cfg := config.Default()
	cfg.AdRate = 15.5
	cfg.PackagingCost = 700
	cfg.ExchangeRate = 192.3
	if err := d.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got := d.LoadConfig()
	if got.AdRate != 15.5 || got.PackagingCost != 700 || got.ExchangeRate != 192.3 {
		t.Fatalf("round-trip config = %+v", got)
	}
}

func TestLoadConfig_IgnoresUnparseableValue(t *testing.T) {
	d := openTestDB(t)
	if _, err := d.sql.Exec(
		"INSERT INTO config (user_id, key, value) VALUES (?, 'fee_rate', 'not-a-number')",
		DefaultUserID); err != nil {
		t.Fatalf("seed bad value: %v", err)
	}

	cfg := d.LoadConfig()
	if cfg.FeeRate != config.Default().FeeRate {
		t.Fatalf("unparseable value should keep default, got %v", cfg.FeeRate)
	}
}

func TestImportConfigJSON(t *testing.T) {
	d := openTestDB(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	blob, _ := json.Marshal(map[string]interface{}{
		"fee_rate":     12.0,
		"ad_rate":      "oops", // non-numeric, must keep default
		"unknown_key":  true,   // ignored
		"gift_cost":    450,
		"return_rate":  5,
		"exchange_rate": 185,
	})
	if err := os.WriteFile(path, blob, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	d.ImportConfigJSON(path)

	cfg := d.LoadConfig()
	if cfg.FeeRate != 12.0 || cfg.GiftCost != 450 || cfg.ExchangeRate != 185 {
		t.Fatalf("imported config = %+v", cfg)
	}
	if cfg.AdRate != config.Default().AdRate {
		t.Fatalf("non-numeric ad_rate should keep default, got %v", cfg.AdRate)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Fatalf("config.json should be renamed after import: %v", err)
	}
}

func TestSettlements_CRUD(t *testing.T) {
	d := openTestDB(t)

	first, err := d.InsertSettlement(Settlement{
		Date: "2026-08-01", ProductName: "티셔츠", CampaignName: "여름 세일",
		TotalSalesQty: 30, TotalRevenue: 900000, AdSalesQty: 12, AdRevenue: 340000, AdCost: 81200,
	})
	if err != nil {
		t.Fatalf("InsertSettlement: %v", err)
	}
	second, err := d.InsertSettlement(Settlement{Date: "2026-08-02", ProductName: "코트"})
	if err != nil {
		t.Fatalf("InsertSettlement: %v", err)
	}

	list, err := d.ListSettlements()
	if err != nil {
		t.Fatalf("ListSettlements: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("settlements = %d, want 2", len(list))
	}
	if list[0].ID != second || list[1].ID != first {
		t.Fatalf("expected newest-first order, got %d then %d", list[0].ID, list[1].ID)
	}
	if list[1].CampaignName != "여름 세일" || list[1].AdCost != 81200 {
		t.Fatalf("stored record = %+v", list[1])
	}

	if err := d.DeleteSettlement(first); err != nil {
		t.Fatalf("DeleteSettlement: %v", err)
	}
	list, _ = d.ListSettlements()
	if len(list) != 1 || list[0].ID != second {
		t.Fatalf("after delete: %+v", list)
	}

	// Unknown ID delete is a no-op.
	if err := d.DeleteSettlement(9999); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
}
