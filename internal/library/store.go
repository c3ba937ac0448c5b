package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"mediashelf/internal/config"
	"mediashelf/internal/logging"
	"mediashelf/internal/media"
	"mediashelf/internal/services"
)

// Store persists catalog records in SQLite, one table per category.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// timeLayout keeps fractional seconds fixed-width so stored timestamps sort
// lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// Open initializes or connects to the catalog database.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	dbPath := strings.TrimSpace(cfg.Paths.DatabasePath)
	if dbPath == "" {
		return nil, services.Wrap(services.ErrConfiguration, "library", "open", "paths.database_path is empty", nil)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:     db,
		path:   dbPath,
		logger: logging.NewComponentLogger(logger, "library"),
		now:    func() time.Time { return time.Now().UTC() },
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func validateRecord(record *Record) error {
	if record == nil {
		return services.Wrap(services.ErrValidation, "library", "validate", "record is nil", nil)
	}
	if strings.TrimSpace(record.Title) == "" {
		return services.Wrap(services.ErrValidation, "library", "validate", "title is required", nil)
	}
	return nil
}

func lookupTable(category media.Category) (table, error) {
	t, err := tableFor(category)
	if err != nil {
		return table{}, services.Wrap(services.ErrValidation, "library", "resolve table", "", err)
	}
	return t, nil
}

// Create inserts a record and returns its new identifier.
func (s *Store) Create(ctx context.Context, category media.Category, record Record) (string, error) {
	t, err := lookupTable(category)
	if err != nil {
		return "", err
	}
	if err := validateRecord(&record); err != nil {
		return "", err
	}
	if record.Status == "" {
		record.Status = media.DefaultStatus(category)
	}

	id := uuid.NewString()
	timestamp := s.now().Format(timeLayout)
	args := []any{
		id,
		strings.TrimSpace(record.Title),
		string(record.Status),
		record.Rating,
		boolToInt(record.IsOwned),
		timestamp,
		timestamp,
	}
	args = append(args, t.values(&record)...)

	if _, err := s.execWithRetry(ctx, t.insertSQL(), args...); err != nil {
		return "", fmt.Errorf("insert %s record: %w", category, err)
	}
	s.logger.Debug("record created",
		logging.String(logging.FieldCategory, string(category)),
		logging.String(logging.FieldRecordID, id),
		logging.String(logging.FieldExternalID, record.ExternalID),
	)
	return id, nil
}

// Get fetches a record. A missing record yields (nil, nil).
func (s *Store) Get(ctx context.Context, category media.Category, id string) (*Record, error) {
	t, err := lookupTable(category)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT "+t.selectList()+" FROM "+t.name+" WHERE id = ?", id)
	record, err := t.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s record: %w", category, err)
	}
	return record, nil
}

// FindByExternalID returns the first record imported from externalID, or
// (nil, nil) when there is none.
func (s *Store) FindByExternalID(ctx context.Context, category media.Category, externalID string) (*Record, error) {
	t, err := lookupTable(category)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT "+t.selectList()+" FROM "+t.name+" WHERE external_id = ? ORDER BY created_at LIMIT 1",
		strings.TrimSpace(externalID))
	record, err := t.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s record by external id: %w", category, err)
	}
	return record, nil
}

// Update replaces every stored field of a record. It reports false when no
// record has the identifier.
func (s *Store) Update(ctx context.Context, category media.Category, id string, record Record) (bool, error) {
	t, err := lookupTable(category)
	if err != nil {
		return false, err
	}
	if err := validateRecord(&record); err != nil {
		return false, err
	}
	if record.Status == "" {
		record.Status = media.DefaultStatus(category)
	}

	args := []any{
		strings.TrimSpace(record.Title),
		string(record.Status),
		record.Rating,
		boolToInt(record.IsOwned),
		s.now().Format(timeLayout),
	}
	args = append(args, t.values(&record)...)
	args = append(args, id)

	res, err := s.execWithRetry(ctx, t.updateSQL(), args...)
	if err != nil {
		return false, fmt.Errorf("update %s record: %w", category, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// List returns every record of a category, newest first.
func (s *Store) List(ctx context.Context, category media.Category) ([]Record, error) {
	t, err := lookupTable(category)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		"SELECT "+t.selectList()+" FROM "+t.name+" ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", category, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s record: %w", category, err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s records: %w", category, err)
	}
	return records, nil
}

// Delete removes a record. It reports false when no record has the identifier.
func (s *Store) Delete(ctx context.Context, category media.Category, id string) (bool, error) {
	t, err := lookupTable(category)
	if err != nil {
		return false, err
	}
	res, err := s.execWithRetry(ctx, "DELETE FROM "+t.name+" WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete %s record: %w", category, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected > 0 {
		s.logger.Debug("record deleted",
			logging.String(logging.FieldCategory, string(category)),
			logging.String(logging.FieldRecordID, id),
		)
	}
	return affected > 0, nil
}

// Save creates a record from a candidate, or updates the record previously
// imported from the same external id. It returns the record id and whether a
// new record was created.
func (s *Store) Save(ctx context.Context, candidate media.ImportCandidate) (string, bool, error) {
	record := FromCandidate(candidate)
	if candidate.ExternalID != "" {
		existing, err := s.FindByExternalID(ctx, candidate.Category, candidate.ExternalID)
		if err != nil {
			return "", false, err
		}
		if existing != nil {
			if _, err := s.Update(ctx, candidate.Category, existing.ID, record); err != nil {
				return "", false, err
			}
			return existing.ID, false, nil
		}
	}
	id, err := s.Create(ctx, candidate.Category, record)
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}
