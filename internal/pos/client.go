package pos

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// windowDays is the trailing query window, UTC, inclusive start.
const windowDays = 30

// TableConfig names the warehouse tables and key columns. Metric column
// names inside the tables are fixed: gross_sales, net_sales,
// transactions, items_sold on the daily table and item_name, sku,
// quantity, gross_sales on the item table.
type TableConfig struct {
	DailyTable  string
	ItemTable   string
	StoreColumn string
	DateColumn  string
}

func (config TableConfig) withDefaults() TableConfig {
	if config.DailyTable == "" {
		config.DailyTable = "pos_daily_summary"
	}
	if config.ItemTable == "" {
		config.ItemTable = "pos_item_sales"
	}
	if config.StoreColumn == "" {
		config.StoreColumn = "store_id"
	}
	if config.DateColumn == "" {
		config.DateColumn = "business_date"
	}
	return config
}

// Client reads point-of-sale aggregates from an external
// Postgres-compatible analytics warehouse. A nil Client means the
// warehouse is not configured and every summary degrades to
// "not_configured".
type Client struct {
	database *gorm.DB
	tables   TableConfig
	now      func() time.Time
}

func Open(dsn string, tables TableConfig) (*Client, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{LogLevel: gormlogger.Error},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open analytics store: %w", err)
	}
	return &Client{
		database: database,
		tables:   tables.withDefaults(),
		now:      time.Now,
	}, nil
}

// LoadSummary returns the 30-day POS summary for one store. A fault on
// the daily aggregates short-circuits to "unavailable"; a fault on the
// per-item aggregates is tolerated and treated as zero item rows.
func (client *Client) LoadSummary(storeID string) Summary {
	if client == nil || client.database == nil {
		return Summary{Status: StatusNotConfigured}
	}

	windowStart := client.now().UTC().AddDate(0, 0, -windowDays).Format("2006-01-02")

	dailyRows, err := client.fetchDailyRows(storeID, windowStart)
	if err != nil {
		log.Printf("pos: daily aggregates query failed for store %s: %v", storeID, err)
		return Summary{Status: StatusUnavailable}
	}

	itemRows, err := client.fetchItemRows(storeID, windowStart)
	if err != nil {
		log.Printf("pos: item aggregates query failed for store %s: %v", storeID, err)
		itemRows = nil
	}

	return summarize(dailyRows, itemRows)
}

func (client *Client) fetchDailyRows(storeID string, windowStart string) ([]map[string]any, error) {
	query := fmt.Sprintf(
		`SELECT gross_sales, net_sales, transactions, items_sold FROM %q WHERE %q = ? AND %q >= ?`,
		client.tables.DailyTable, client.tables.StoreColumn, client.tables.DateColumn,
	)
	rows := make([]map[string]any, 0)
	if err := client.database.Raw(query, storeID, windowStart).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (client *Client) fetchItemRows(storeID string, windowStart string) ([]map[string]any, error) {
	query := fmt.Sprintf(
		`SELECT item_name, sku, quantity, gross_sales FROM %q WHERE %q = ? AND %q >= ?`,
		client.tables.ItemTable, client.tables.StoreColumn, client.tables.DateColumn,
	)
	rows := make([]map[string]any, 0)
	if err := client.database.Raw(query, storeID, windowStart).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
