package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"ccf-analysis/internal/storage"
)

// Storage is the process-wide embedded store. Open it once, pass it to every
// component, close it on shutdown. WAL mode lets readers run while one writer
// holds the store; all write-class operations here are single-transaction and
// complete (commit or rollback) regardless of caller timeouts.
type Storage struct {
	db   *sql.DB
	log  *slog.Logger
	path string
}

func New(path string, log *slog.Logger) (*Storage, error) {
	const op = "storage.sqlite.New"

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// SQLite serializes writers; a second connection attempting to write
	// would get SQLITE_BUSY instead of queueing behind the first.
	db.SetMaxOpenConns(1)

	s := &Storage{db: db, log: log, path: path}

	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

func (s *Storage) init() error {
	if _, err := s.db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if err := s.createTables(); err != nil {
		return err
	}

	return s.createIndexes()
}

func (s *Storage) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS purchase_orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			Entity TEXT,
			Site_Location TEXT,
			Entity_Level_2 TEXT,
			Entity_Level_3 TEXT,
			SCSS_Category_Team TEXT,
			UNSPSC_Code TEXT,
			UNSPSC_Segment_Title TEXT,
			UNSPSC_Family_Title TEXT,
			UNSPSC_Class_Title TEXT,
			UNSPSC_Commodity_Title TEXT,
			PO_Year INTEGER,
			PO_Month INTEGER,
			PO_Week INTEGER,
			PO_Date TEXT,
			Destination_Location TEXT,
			Destination_Location_Name TEXT,
			Ship_To TEXT,
			Ship_To_Name TEXT,
			Special_Handling TEXT,
			Rush_Flag TEXT,
			PO_Number TEXT,
			PO_Line_Number TEXT,
			Oracle_Item_Number TEXT,
			Item_Description TEXT,
			Item_Type TEXT,
			PO_Quantity_Ordered INTEGER,
			PO_Quantity_Ordered_LUOM INTEGER,
			Buy_UOM TEXT,
			Buy_UOM_Multiplier INTEGER,
			Manufacturer_Name TEXT,
			Manufacturer_Number TEXT,
			Supplier_Number TEXT,
			Supplier_Name TEXT,
			Supplier_Site TEXT,
			ValueLink_Flag TEXT,
			Cost_Center_Group TEXT,
			PPI_Flag TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS labor_statistics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL UNIQUE,
			day_of_week TEXT NOT NULL,
			day_type TEXT NOT NULL,
			transaction_lines INTEGER NOT NULL,
			quantity_picked INTEGER NOT NULL,
			bulk_points REAL NOT NULL,
			lum_points REAL NOT NULL,
			replen_points REAL NOT NULL,
			receive_points REAL NOT NULL,
			put_points REAL NOT NULL,
			bulkFTE REAL NOT NULL,
			lumFTE REAL NOT NULL,
			receiveFTE REAL NOT NULL,
			inventoryFTE REAL NOT NULL,
			supportFTE REAL NOT NULL,
			rfidFTE REAL NOT NULL,
			supervisorFTE REAL NOT NULL,
			leaderFTE REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS labor_analysis_summary (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			day_type TEXT NOT NULL UNIQUE,
			days INTEGER NOT NULL,
			avg_bulkFTE REAL NOT NULL,
			avg_lumFTE REAL NOT NULL,
			avg_receiveFTE REAL NOT NULL,
			avg_inventoryFTE REAL NOT NULL,
			avg_supportFTE REAL NOT NULL,
			avg_rfidFTE REAL NOT NULL,
			avg_supervisorFTE REAL NOT NULL,
			avg_leaderFTE REAL NOT NULL,
			avg_totalFTE REAL NOT NULL,
			stdev_totalFTE REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS analysis_variables (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			payload TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}

	return nil
}

func (s *Storage) createIndexes() error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_po_number ON purchase_orders(PO_Number)`,
		`CREATE INDEX IF NOT EXISTS idx_po_date ON purchase_orders(PO_Date)`,
		`CREATE INDEX IF NOT EXISTS idx_supplier ON purchase_orders(Supplier_Name)`,
		`CREATE INDEX IF NOT EXISTS idx_entity ON purchase_orders(Entity)`,
		`CREATE INDEX IF NOT EXISTS idx_unspsc_code ON purchase_orders(UNSPSC_Code)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create indexes: %w", err)
		}
	}

	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Recreate drops and rebuilds the order table, for schema-correction
// scenarios. Labor output tables are cleared rather than dropped so a stale
// simulation never outlives its source data.
func (s *Storage) Recreate(ctx context.Context) error {
	const op = "storage.sqlite.Recreate"

	if _, err := s.db.ExecContext(ctx, `DROP TABLE IF EXISTS purchase_orders`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM labor_statistics`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM labor_analysis_summary`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.createTables(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.createIndexes(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Stats reports row counts and on-disk size for the stats view.
func (s *Storage) Stats(ctx context.Context) (*storage.DatabaseStats, error) {
	const op = "storage.sqlite.Stats"

	tables := []string{"purchase_orders", "labor_statistics", "labor_analysis_summary"}
	counts := make(map[string]int64, len(tables))
	var total int64

	for _, table := range tables {
		var n int64
		err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
		if err != nil {
			return nil, fmt.Errorf("%s: count %s: %w", op, table, err)
		}
		counts[table] = n
		total += n
	}

	var size int64
	if info, err := os.Stat(s.path); err == nil {
		size = info.Size()
	}

	return &storage.DatabaseStats{
		TotalRecords: total,
		TableCounts:  counts,
		DatabaseSize: formatFileSize(size),
		LastUpdated:  time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func formatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Log(float64(bytes)) / math.Log(1024))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}

	return fmt.Sprintf("%.2f %s", float64(bytes)/math.Pow(1024, float64(i)), sizes[i])
}
