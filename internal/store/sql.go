package store

import (
	"context"
	"regexp"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/gitwhisperer/whisper/internal/git"
)

const (
	backendSQL   = "sqlite"
	sqlBatchSize = 300
)

var tableNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]`)

type sqlCommit struct {
	ID           string `gorm:"primaryKey"`
	Hash         string `gorm:"index"`
	Message      string
	FilesChanged []git.FileChange `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSQLCommit(r git.CommitRecord) *sqlCommit {
	doc := NewStoredCommit(r)
	return &sqlCommit{
		ID:           doc.ID,
		Hash:         doc.Hash,
		Message:      doc.Message,
		FilesChanged: normalizeFiles(doc.FilesChanged),
	}
}

func (c *sqlCommit) toStored() StoredCommit {
	return StoredCommit{
		ID:           c.ID,
		Hash:         c.Hash,
		Message:      c.Message,
		FilesChanged: normalizeFiles(c.FilesChanged),
	}
}

// SQLStore keeps commits in a relational table through gorm.
// LoadAll returns rows in primary key order.
type SQLStore struct {
	db    *gorm.DB
	table string
}

// WithSqlite returns a dialector for a SQLite file.
func WithSqlite(file string) gorm.Dialector {
	return sqlite.Open(file + "?_pragma=journal_mode(WAL)")
}

// WithSqliteInMemory returns a dialector for a private in-memory SQLite database.
func WithSqliteInMemory() gorm.Dialector {
	return sqlite.Open(":memory:")
}

// NewSQLStore opens the database and migrates the commit table for namespace.
func NewSQLStore(d gorm.Dialector, namespace string) (*SQLStore, error) {
	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, unavailable(backendSQL, "open", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, unavailable(backendSQL, "open", err)
	}
	// SQLite allows a single writer, and every ":memory:" connection is a separate database.
	sqlDB.SetMaxOpenConns(1)

	table := tableNameSanitizer.ReplaceAllString(namespace, "_") + "_commits"
	if err := db.Table(table).AutoMigrate(&sqlCommit{}); err != nil {
		_ = sqlDB.Close()
		return nil, unavailable(backendSQL, "migrate", err)
	}

	return &SQLStore{db: db, table: table}, nil
}

func (s *SQLStore) Save(ctx context.Context, records []git.CommitRecord) error {
	if len(records) == 0 {
		return nil
	}

	// Later duplicates win, matching sequential upserts.
	rows := lo.Values(lo.KeyBy(records, func(r git.CommitRecord) string { return r.Hash }))
	sqlRows := lo.Map(rows, func(r git.CommitRecord, _ int) *sqlCommit { return newSQLCommit(r) })

	err := s.db.WithContext(ctx).
		Table(s.table).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(&sqlRows, sqlBatchSize).Error
	return unavailable(backendSQL, "save", err)
}

func (s *SQLStore) LoadAll(ctx context.Context) ([]StoredCommit, error) {
	var rows []*sqlCommit
	err := s.db.WithContext(ctx).Table(s.table).Order("id").Find(&rows).Error
	if err != nil {
		return nil, unavailable(backendSQL, "load", err)
	}

	return lo.Map(rows, func(c *sqlCommit, _ int) StoredCommit { return c.toStored() }), nil
}

func (s *SQLStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// Compile-time interface conformance check.
var _ Store = (*SQLStore)(nil)
