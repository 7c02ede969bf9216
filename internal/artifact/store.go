package artifact

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	minaerror "github.com/msto63/mina/foundation/core/error"
	minalog "github.com/msto63/mina/foundation/core/log"
	"github.com/msto63/mina/foundation/mina/ast"
	"github.com/msto63/mina/foundation/mina/astpb"
	"github.com/msto63/mina/pkg/core/cache"
)

// Artifact is one stored, serialized syntax tree
type Artifact struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	SourceHash    string    `json:"source_hash" yaml:"source_hash"`
	SchemaVersion uint32    `json:"schema_version" yaml:"schema_version"`
	NodeCount     int       `json:"node_count" yaml:"node_count"`
	Size          int       `json:"size" yaml:"size"`
	Encoded       []byte    `json:"-" yaml:"-"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// Unit decodes the stored bytes
func (a *Artifact) Unit() (*astpb.Unit, error) {
	if len(a.Encoded) == 0 {
		return nil, minaerror.New("artifact has no encoded tree").
			WithCode(minaerror.CodeInvalidInput).
			WithOperation("artifact.Unit").
			WithDetail("id", a.ID)
	}
	return astpb.Unmarshal(a.Encoded)
}

// Stats summarizes the store contents
type Stats struct {
	Artifacts  int64            `json:"artifacts" yaml:"artifacts"`
	TotalBytes int64            `json:"total_bytes" yaml:"total_bytes"`
	BySchema   map[uint32]int64 `json:"by_schema" yaml:"by_schema"`
	Cache      cache.Stats      `json:"cache" yaml:"cache"`
}

// Store defines the interface for artifact persistence
type Store interface {
	Save(ctx context.Context, name, source string, encoded []byte) (*Artifact, error)
	Get(ctx context.Context, id string) (*Artifact, error)
	FindBySource(ctx context.Context, sourceHash string) (*Artifact, error)
	List(ctx context.Context, limit int) ([]*Artifact, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
	Close() error
}

// Config holds configuration for the SQLite store
type Config struct {
	Path   string
	Cache  cache.Config
	Logger *minalog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path:  "./data/artifacts.db",
		Cache: cache.DefaultConfig(),
	}
}

// SQLiteStore implements Store using SQLite with a read-through cache
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	cache  *cache.Cache[*Artifact]
	logger *minalog.Logger
	now    func() time.Time
}

// HashSource returns the hex SHA-256 of a source text, the key used by
// FindBySource
func HashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// NewSQLiteStore opens or creates the store at cfg.Path
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = minalog.Discard()
	}

	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, dbError(err, "failed to create directory", "artifact.NewSQLiteStore").
			WithDetail("path", dir)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, dbError(err, "failed to open database", "artifact.NewSQLiteStore").
			WithDetail("path", cfg.Path)
	}

	store := &SQLiteStore{
		db:     db,
		cache:  cache.New[*Artifact](cfg.Cache),
		logger: logger.WithField("component", "artifact-store"),
		now:    time.Now,
	}

	if err := store.initSchema(); err != nil {
		store.cache.Close()
		db.Close()
		return nil, dbError(err, "failed to initialize schema", "artifact.NewSQLiteStore").
			WithDetail("path", cfg.Path)
	}

	store.logger.Debug("artifact store opened", minalog.Fields{"path": cfg.Path})
	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS artifacts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		source_hash TEXT NOT NULL,
		schema_version INTEGER NOT NULL,
		node_count INTEGER NOT NULL,
		encoded BLOB NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_artifacts_source_hash ON artifacts(source_hash);
	CREATE INDEX IF NOT EXISTS idx_artifacts_created_at ON artifacts(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save decodes encoded to check it, then stores it under a new ID
func (s *SQLiteStore) Save(ctx context.Context, name, source string, encoded []byte) (*Artifact, error) {
	unit, err := astpb.Unmarshal(encoded)
	if err != nil {
		return nil, minaerror.Wrap(err, "refusing to store an undecodable tree").
			WithOperation("artifact.Save").
			WithDetail("name", name)
	}

	a := &Artifact{
		ID:            uuid.New().String(),
		Name:          name,
		SourceHash:    HashSource(source),
		SchemaVersion: unit.SchemaVersion,
		NodeCount:     ast.Count(unit.Root),
		Size:          len(encoded),
		Encoded:       append([]byte(nil), encoded...),
		CreatedAt:     s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO artifacts (id, name, source_hash, schema_version, node_count, encoded, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Name, a.SourceHash, a.SchemaVersion, a.NodeCount, a.Encoded, a.CreatedAt)
	if err != nil {
		return nil, dbError(err, "failed to save artifact", "artifact.Save").
			WithDetail("name", name)
	}

	s.cache.Set(a.ID, a)
	s.logger.Debug("artifact saved", minalog.Fields{
		"id":    a.ID,
		"name":  a.Name,
		"nodes": a.NodeCount,
		"bytes": a.Size,
	})
	return a, nil
}

// Get returns the artifact with the given ID, served from the cache when
// possible
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Artifact, error) {
	return s.cache.GetOrSet(id, func() (*Artifact, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()

		row := s.db.QueryRowContext(ctx, `
			SELECT id, name, source_hash, schema_version, node_count, encoded, created_at
			FROM artifacts WHERE id = ?
		`, id)

		a, err := scanArtifact(row)
		if err != nil {
			return nil, s.lookupError(err, "artifact.Get", "id", id)
		}
		return a, nil
	})
}

// FindBySource returns the newest artifact whose source hashes to
// sourceHash
func (s *SQLiteStore) FindBySource(ctx context.Context, sourceHash string) (*Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, source_hash, schema_version, node_count, encoded, created_at
		FROM artifacts WHERE source_hash = ?
		ORDER BY created_at DESC, rowid DESC LIMIT 1
	`, sourceHash)

	a, err := scanArtifact(row)
	if err != nil {
		return nil, s.lookupError(err, "artifact.FindBySource", "source_hash", sourceHash)
	}
	return a, nil
}

// List returns artifact metadata, newest first. Encoded is left empty.
// A limit of zero or less returns everything.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, name, source_hash, schema_version, node_count, length(encoded), created_at
		FROM artifacts ORDER BY created_at DESC, rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to list artifacts", "artifact.List")
	}
	defer rows.Close()

	var artifacts []*Artifact
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.ID, &a.Name, &a.SourceHash, &a.SchemaVersion, &a.NodeCount, &a.Size, &a.CreatedAt); err != nil {
			return nil, dbError(err, "failed to scan artifact", "artifact.List")
		}
		artifacts = append(artifacts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to list artifacts", "artifact.List")
	}
	return artifacts, nil
}

// Delete removes an artifact
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Delete(id)

	result, err := s.db.ExecContext(ctx, `DELETE FROM artifacts WHERE id = ?`, id)
	if err != nil {
		return dbError(err, "failed to delete artifact", "artifact.Delete").WithDetail("id", id)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return minaerror.Newf("artifact %s not found", id).
			WithCode(minaerror.CodeNotFound).
			WithOperation("artifact.Delete").
			WithDetail("id", id)
	}

	s.logger.Debug("artifact deleted", minalog.Fields{"id": id})
	return nil
}

// Stats returns counts per schema version and the cache statistics
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{BySchema: make(map[uint32]int64)}

	rows, err := s.db.QueryContext(ctx, `
		SELECT schema_version, COUNT(*), COALESCE(SUM(length(encoded)), 0)
		FROM artifacts GROUP BY schema_version
	`)
	if err != nil {
		return nil, dbError(err, "failed to query statistics", "artifact.Stats")
	}
	defer rows.Close()

	for rows.Next() {
		var version uint32
		var count, size int64
		if err := rows.Scan(&version, &count, &size); err != nil {
			return nil, dbError(err, "failed to scan statistics", "artifact.Stats")
		}
		stats.BySchema[version] = count
		stats.Artifacts += count
		stats.TotalBytes += size
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to query statistics", "artifact.Stats")
	}

	stats.Cache = s.cache.Stats()
	return stats, nil
}

// Close closes the database and stops the cache
func (s *SQLiteStore) Close() error {
	s.cache.Close()
	return s.db.Close()
}

func scanArtifact(row *sql.Row) (*Artifact, error) {
	var a Artifact
	if err := row.Scan(&a.ID, &a.Name, &a.SourceHash, &a.SchemaVersion, &a.NodeCount, &a.Encoded, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Size = len(a.Encoded)
	return &a, nil
}

func (s *SQLiteStore) lookupError(err error, op, key, value string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return minaerror.New("artifact not found").
			WithCode(minaerror.CodeNotFound).
			WithOperation(op).
			WithDetail(key, value)
	}
	return dbError(err, "failed to read artifact", op).WithDetail(key, value)
}

func dbError(err error, msg, op string) *minaerror.Error {
	return minaerror.Wrap(err, msg).
		WithCode(minaerror.CodeDatabaseError).
		WithOperation(op)
}
