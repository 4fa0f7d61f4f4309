package querier

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/darkclainer/camtrans/pkg/lexicon"
)

var (
	ErrDuplicate         = errors.New("duplicate transcription")
	ErrUnknownCandidate  = errors.New("unknown transcription")
	ErrInvalidCandidate  = errors.New("invalid transcription")
	errRegistryNotLoaded = errors.New("registry is not loaded")
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS lemmas (
	id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
	lemma TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS lemmas_lemma ON lemmas (lemma);
CREATE TABLE IF NOT EXISTS transItems (
	transID INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
	id INTEGER NOT NULL,
	transcription TEXT NOT NULL,
	transType INTEGER,
	wordClassID INTEGER NOT NULL,
	varietyID INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS wordClasses (
	wordClassID INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
	wordClass TEXT NOT NULL,
	abbreviation TEXT NOT NULL,
	contentWord INTEGER
);
CREATE TABLE IF NOT EXISTS varieties (
	varietyID INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
	variety TEXT NOT NULL,
	abbreviation TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS punctChars (
	punctChar TEXT PRIMARY KEY NOT NULL,
	delimiterMode INTEGER,
	comment TEXT
);
CREATE TABLE IF NOT EXISTS currencyChars (
	currencyChar TEXT PRIMARY KEY NOT NULL,
	singular TEXT NOT NULL,
	plural TEXT NOT NULL
)`

const selectTranscriptions = `SELECT t.transID, l.lemma, t.transcription, t.transType, t.wordClassID, t.varietyID
FROM transItems t JOIN lemmas l ON l.id = t.id`

// SQLite is a lexicon source backed by the lemmas and transItems tables of
// an SQLite database. Word classes and varieties are resolved through the
// registry stored in the same database.
type SQLite struct {
	db *sql.DB

	mu       sync.RWMutex
	registry *lexicon.Registry
}

// OpenSQLite opens the database at path, creating the schema and the default
// tables if they are missing.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can not open sqlite %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("can not open sqlite %s: %w", path, err)
	}
	s := NewSQLite(db)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := s.LoadRegistry(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Migrate creates missing tables and fills empty lookup tables with the
// defaults.
func (s *SQLite) Migrate(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can not begin migration: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck // no-op after commit

	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("can not migrate: %w", err)
		}
	}

	defaults := lexicon.DefaultRegistry()
	seeds := []struct {
		table string
		fill  func() error
	}{
		{"varieties", func() error {
			for _, v := range defaults.Varieties() {
				if _, err := tx.ExecContext(ctx,
					"INSERT INTO varieties (varietyID, variety, abbreviation) VALUES (?, ?, ?)",
					v.ID, v.Name, v.Abbreviation); err != nil {
					return err
				}
			}
			return nil
		}},
		{"wordClasses", func() error {
			for _, wc := range defaults.WordClasses() {
				if _, err := tx.ExecContext(ctx,
					"INSERT INTO wordClasses (wordClassID, wordClass, abbreviation, contentWord) VALUES (?, ?, ?, ?)",
					wc.ID, wc.Name, wc.Abbreviation, wc.ContentWord); err != nil {
					return err
				}
			}
			return nil
		}},
		{"punctChars", func() error {
			for _, p := range defaults.PunctuationRules() {
				if _, err := tx.ExecContext(ctx,
					"INSERT INTO punctChars (punctChar, delimiterMode) VALUES (?, ?)",
					string(p.Character), p.DelimiterMode); err != nil {
					return err
				}
			}
			return nil
		}},
		{"currencyChars", func() error {
			for _, c := range defaults.CurrencyRules() {
				if _, err := tx.ExecContext(ctx,
					"INSERT INTO currencyChars (currencyChar, singular, plural) VALUES (?, ?, ?)",
					string(c.Character), c.Singular, c.Plural); err != nil {
					return err
				}
			}
			return nil
		}},
	}
	for _, seed := range seeds {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+seed.table).Scan(&count); err != nil {
			return fmt.Errorf("can not count %s: %w", seed.table, err)
		}
		if count != 0 {
			continue
		}
		if err := seed.fill(); err != nil {
			return fmt.Errorf("can not fill %s: %w", seed.table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("can not commit migration: %w", err)
	}
	return nil
}

// LoadRegistry reads varieties, word classes and the character tables. The
// result is also used by later lookups.
func (s *SQLite) LoadRegistry(ctx context.Context) (*lexicon.Registry, error) {
	var varieties []lexicon.Variety
	err := s.queryRows(ctx, "SELECT varietyID, variety, abbreviation FROM varieties ORDER BY varietyID",
		func(rows *sql.Rows) error {
			var v lexicon.Variety
			if err := rows.Scan(&v.ID, &v.Name, &v.Abbreviation); err != nil {
				return err
			}
			varieties = append(varieties, v)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("can not load varieties: %w", err)
	}

	var wordClasses []lexicon.WordClass
	err = s.queryRows(ctx,
		"SELECT wordClassID, wordClass, abbreviation, COALESCE(contentWord, 0) FROM wordClasses ORDER BY wordClassID",
		func(rows *sql.Rows) error {
			var wc lexicon.WordClass
			var content int
			if err := rows.Scan(&wc.ID, &wc.Name, &wc.Abbreviation, &content); err != nil {
				return err
			}
			wc.ContentWord = content != 0
			wordClasses = append(wordClasses, wc)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("can not load word classes: %w", err)
	}

	var punctuation []lexicon.PunctuationRule
	err = s.queryRows(ctx, "SELECT punctChar, COALESCE(delimiterMode, 0) FROM punctChars ORDER BY rowid",
		func(rows *sql.Rows) error {
			var ch string
			var p lexicon.PunctuationRule
			if err := rows.Scan(&ch, &p.DelimiterMode); err != nil {
				return err
			}
			r, err := oneRune(ch)
			if err != nil {
				return err
			}
			p.Character = r
			punctuation = append(punctuation, p)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("can not load punctuation: %w", err)
	}

	var currency []lexicon.CurrencyRule
	err = s.queryRows(ctx, "SELECT currencyChar, singular, plural FROM currencyChars ORDER BY rowid",
		func(rows *sql.Rows) error {
			var ch string
			var c lexicon.CurrencyRule
			if err := rows.Scan(&ch, &c.Singular, &c.Plural); err != nil {
				return err
			}
			r, err := oneRune(ch)
			if err != nil {
				return err
			}
			c.Character = r
			currency = append(currency, c)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("can not load currency: %w", err)
	}

	registry, err := lexicon.NewRegistry(varieties, wordClasses, punctuation, currency)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.registry = registry
	s.mu.Unlock()
	return registry, nil
}

func (s *SQLite) loadedRegistry() (*lexicon.Registry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.registry == nil {
		return nil, errRegistryNotLoaded
	}
	return s.registry, nil
}

func (s *SQLite) Lookup(ctx context.Context, lemma string) ([]lexicon.Candidate, error) {
	registry, err := s.loadedRegistry()
	if err != nil {
		return nil, err
	}
	candidates := []lexicon.Candidate{}
	err = s.queryRows(ctx, selectTranscriptions+" WHERE l.lemma = ? ORDER BY t.transID",
		func(rows *sql.Rows) error {
			c, err := scanCandidate(rows, registry)
			if err != nil {
				return err
			}
			candidates = append(candidates, c)
			return nil
		}, strings.ToLower(lemma))
	if err != nil {
		return nil, fmt.Errorf("can not look up %q: %w", lemma, err)
	}
	return candidates, nil
}

// Candidate returns the transcription stored under id.
func (s *SQLite) Candidate(ctx context.Context, id int64) (lexicon.Candidate, error) {
	registry, err := s.loadedRegistry()
	if err != nil {
		return lexicon.Candidate{}, err
	}
	row := s.db.QueryRowContext(ctx, selectTranscriptions+" WHERE t.transID = ?", id)
	c, err := scanCandidate(row, registry)
	if errors.Is(err, sql.ErrNoRows) {
		return lexicon.Candidate{}, fmt.Errorf("%w: %d", ErrUnknownCandidate, id)
	}
	return c, err
}

// AddTranscription stores c and returns it with its new ID. A transcription
// equal in lemma, phonetic string, word class and variety to a stored one is
// rejected with ErrDuplicate.
func (s *SQLite) AddTranscription(ctx context.Context, c lexicon.Candidate) (lexicon.Candidate, error) {
	c.Lemma = strings.ToLower(strings.TrimSpace(c.Lemma))
	if c.Lemma == "" || c.Phonetic == "" {
		return lexicon.Candidate{}, fmt.Errorf("%w: lemma and phonetic string are required", ErrInvalidCandidate)
	}
	registry, err := s.loadedRegistry()
	if err != nil {
		return lexicon.Candidate{}, err
	}
	if _, ok := registry.WordClassByID(c.WordClass.ID); !ok {
		return lexicon.Candidate{}, fmt.Errorf("%w: unknown word class %d", ErrInvalidCandidate, c.WordClass.ID)
	}
	if _, ok := registry.VarietyByID(c.Variety.ID); !ok {
		return lexicon.Candidate{}, fmt.Errorf("%w: unknown variety %d", ErrInvalidCandidate, c.Variety.ID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return lexicon.Candidate{}, err
	}
	defer tx.Rollback() // nolint:errcheck // no-op after commit

	var lemmaID int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM lemmas WHERE lemma = ?", c.Lemma).Scan(&lemmaID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx, "INSERT INTO lemmas (lemma) VALUES (?)", c.Lemma)
		if err != nil {
			return lexicon.Candidate{}, fmt.Errorf("can not insert lemma: %w", err)
		}
		if lemmaID, err = res.LastInsertId(); err != nil {
			return lexicon.Candidate{}, err
		}
	case err != nil:
		return lexicon.Candidate{}, fmt.Errorf("can not look up lemma: %w", err)
	}

	var existing int64
	err = tx.QueryRowContext(ctx,
		"SELECT transID FROM transItems WHERE id = ? AND transcription = ? AND wordClassID = ? AND varietyID = ?",
		lemmaID, c.Phonetic, c.WordClass.ID, c.Variety.ID).Scan(&existing)
	switch {
	case err == nil:
		return lexicon.Candidate{}, fmt.Errorf("%w: /%s/ of %q is stored as %d", ErrDuplicate, c.Phonetic, c.Lemma, existing)
	case !errors.Is(err, sql.ErrNoRows):
		return lexicon.Candidate{}, fmt.Errorf("can not check for duplicates: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO transItems (id, transcription, transType, wordClassID, varietyID) VALUES (?, ?, ?, ?, ?)",
		lemmaID, c.Phonetic, int(c.Type), c.WordClass.ID, c.Variety.ID)
	if err != nil {
		return lexicon.Candidate{}, fmt.Errorf("can not insert transcription: %w", err)
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return lexicon.Candidate{}, err
	}
	if err := tx.Commit(); err != nil {
		return lexicon.Candidate{}, fmt.Errorf("can not commit transcription: %w", err)
	}
	return c, nil
}

// DeleteTranscription removes the transcription with id. Lemmas left without
// transcriptions are removed too.
func (s *SQLite) DeleteTranscription(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck // no-op after commit

	var lemmaID int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM transItems WHERE transID = ?", id).Scan(&lemmaID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %d", ErrUnknownCandidate, id)
	}
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM transItems WHERE transID = ?", id); err != nil {
		return fmt.Errorf("can not delete transcription: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM lemmas WHERE id = ? AND NOT EXISTS (SELECT 1 FROM transItems WHERE id = ?)",
		lemmaID, lemmaID); err != nil {
		return fmt.Errorf("can not delete lemma: %w", err)
	}
	return tx.Commit()
}

func (s *SQLite) Close(ctx context.Context) error {
	return s.db.Close()
}

func (s *SQLite) queryRows(ctx context.Context, query string, scan func(*sql.Rows) error, args ...interface{}) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCandidate(row scanner, registry *lexicon.Registry) (lexicon.Candidate, error) {
	var (
		c                    lexicon.Candidate
		transType            sql.NullInt64
		wordClassID, variety int
	)
	if err := row.Scan(&c.ID, &c.Lemma, &c.Phonetic, &transType, &wordClassID, &variety); err != nil {
		return lexicon.Candidate{}, err
	}
	c.Type = lexicon.TranscriptionType(transType.Int64)
	var ok bool
	if c.WordClass, ok = registry.WordClassByID(wordClassID); !ok {
		return lexicon.Candidate{}, fmt.Errorf("transcription %d has unknown word class %d", c.ID, wordClassID)
	}
	if c.Variety, ok = registry.VarietyByID(variety); !ok {
		return lexicon.Candidate{}, fmt.Errorf("transcription %d has unknown variety %d", c.ID, variety)
	}
	return c, nil
}

func oneRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%q must be exactly one character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
