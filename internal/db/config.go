package db

import (
	"encoding/json"
	"os"
	"strconv"

	"margin-desk/internal/config"
	"margin-desk/internal/logger"
)

// LoadConfig reads the fee/cost configuration from SQLite. Missing keys
// keep their defaults; stored values that fail to parse as numbers are
// ignored (default retained) rather than surfaced as errors.
func (d *DB) LoadConfig() *config.Config {
	return d.LoadConfigForUser(DefaultUserID)
}

// SaveConfig upserts the default user's configuration.
func (d *DB) SaveConfig(cfg *config.Config) error {
	return d.SaveConfigForUser(DefaultUserID, cfg)
}

// configFields maps storage keys to Config field accessors. Unknown keys
// in the table are simply never read, which gives the documented
// "unknown keys ignored" behavior for free.
func configFields(cfg *config.Config) map[string]*float64 {
	return map[string]*float64{
		"fee_rate":       &cfg.FeeRate,
		"ad_rate":        &cfg.AdRate,
		"inout_cost":     &cfg.InOutCost,
		"pickup_cost":    &cfg.PickupCost,
		"restock_cost":   &cfg.RestockCost,
		"return_rate":    &cfg.ReturnRate,
		"etc_rate":       &cfg.EtcRate,
		"exchange_rate":  &cfg.ExchangeRate,
		"packaging_cost": &cfg.PackagingCost,
		"gift_cost":      &cfg.GiftCost,
	}
}

// LoadConfigForUser reads config for one user; empty storage returns
// the defaults.
func (d *DB) LoadConfigForUser(userID string) *config.Config {
	cfg := config.Default()

	rows, err := d.sql.Query("SELECT key, value FROM config WHERE user_id = ?", userID)
	if err != nil {
		return cfg
	}
	defer rows.Close()

	stored := make(map[string]string)
	for rows.Next() {
		var k, v string
		rows.Scan(&k, &v)
		stored[k] = v
	}

	fields := configFields(cfg)
	for key, field := range fields {
		v, ok := stored[key]
		if !ok {
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*field = f
		}
	}
	cfg.Normalize()
	return cfg
}

// SaveConfigForUser upserts every config field for one user.
func (d *DB) SaveConfigForUser(userID string, cfg *config.Config) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO config (user_id, key, value) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for key, field := range configFields(cfg) {
		if _, err := stmt.Exec(userID, key, strconv.FormatFloat(*field, 'g', -1, 64)); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// ImportConfigJSON checks for a legacy config.json next to the database
// and imports it once. Unknown keys are ignored; non-numeric values for
// known keys keep their defaults. The file is renamed afterwards so the
// import never repeats.
func (d *DB) ImportConfigJSON(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return // no file, nothing to import
	}

	var count int
	d.sql.QueryRow("SELECT COUNT(*) FROM config WHERE user_id = ?", DefaultUserID).Scan(&count)
	if count > 0 {
		os.Rename(path, path+".bak")
		return
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("DB", "config.json unreadable, skipping import: "+err.Error())
		return
	}

	cfg := config.Default()
	for key, field := range configFields(cfg) {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err == nil {
			*field = f
		}
	}
	cfg.Normalize()

	if err := d.SaveConfigForUser(DefaultUserID, cfg); err != nil {
		logger.Warn("DB", "config.json import failed: "+err.Error())
		return
	}
	os.Rename(path, path+".bak")
	logger.Success("DB", "Imported config.json")
}
