// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/adaptype/internal/letters"
	"github.com/verte-zerg/adaptype/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a requested session does not exist.
var ErrNotFound = errors.New("store: session not found")

// timeLayout is fixed width and always written in UTC so stored timestamps
// compare as text in instant order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Store wraps SQLite access for session data.
type Store struct {
	db *sql.DB
}

type snapshot struct {
	ErrorProbs      []float64 `json:"error_probs"`
	NormalizedProbs []float64 `json:"normalized_probs"`
	CorrectProbs    []float64 `json:"correct_probs"`
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps :memory: databases shared across calls.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			label TEXT NOT NULL,
			phase TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			elapsed_sec REAL NOT NULL,
			correct_chars INTEGER NOT NULL,
			total_chars INTEGER NOT NULL,
			wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			entropy REAL NOT NULL,
			kl_divergence REAL NOT NULL,
			typing_score REAL NOT NULL,
			snapshot TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_letter_stats (
			session_id INTEGER NOT NULL,
			letter TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			PRIMARY KEY (session_id, letter)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_run_id ON sessions(run_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and its per-letter outcomes.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord) (id int64, err error) {
	snap, err := json.Marshal(snapshot{
		ErrorProbs:      rec.ErrorProbs,
		NormalizedProbs: rec.NormalizedProbs,
		CorrectProbs:    rec.CorrectProbs,
	})
	if err != nil {
		return 0, fmt.Errorf("encode snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (run_id, label, phase, sequence, started_at, ended_at, elapsed_sec,
			correct_chars, total_chars, wpm, accuracy, entropy, kl_divergence, typing_score, snapshot)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Label,
		string(rec.Phase),
		rec.Sequence,
		formatTime(rec.StartedAt),
		formatTime(rec.EndedAt),
		rec.ElapsedSec,
		rec.CorrectChars,
		rec.TotalChars,
		rec.WPM,
		rec.Accuracy,
		rec.Entropy,
		rec.KLDivergence,
		rec.TypingScore,
		string(snap),
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO session_letter_stats (session_id, letter, correct, incorrect) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i := 0; i < letters.Count; i++ {
		correct, incorrect := at(rec.LetterCorrect, i), at(rec.LetterIncorrect, i)
		if correct == 0 && incorrect == 0 {
			continue
		}
		if _, err = stmt.ExecContext(ctx, id, string(letters.Letter(i)), correct, incorrect); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

const sessionColumns = `id, run_id, label, phase, sequence, started_at, ended_at, elapsed_sec,
	correct_chars, total_chars, wpm, accuracy, entropy, kl_divergence, typing_score, snapshot`

// GetSession loads one session by ID.
func (s *Store) GetSession(ctx context.Context, id int64) (model.SessionRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SessionRecord{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return model.SessionRecord{}, err
	}
	recs := []model.SessionRecord{rec}
	if err := s.attachLetters(ctx, recs); err != nil {
		return model.SessionRecord{}, err
	}
	return recs[0], nil
}

// ListSessions returns sessions filtered by stats config in completion
// (insertion) order.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.RunID != "" {
		clauses = append(clauses, "run_id = ?")
		args = append(args, cfg.RunID)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, formatTime(*cfg.Since))
	}
	query := fmt.Sprintf(`SELECT %s FROM sessions WHERE %s ORDER BY id DESC`,
		sessionColumns, strings.Join(clauses, " AND "))
	if cfg.Last > 0 {
		query += " LIMIT ?"
		args = append(args, cfg.Last)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	if err := s.attachLetters(ctx, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// LetterTotals sums per-letter outcomes across the given sessions, or across
// every stored session when ids is empty.
func (s *Store) LetterTotals(ctx context.Context, ids []int64) (incorrect, correct [letters.Count]int, err error) {
	query := `SELECT letter, SUM(correct), SUM(incorrect) FROM session_letter_stats`
	var args []any
	if len(ids) > 0 {
		placeholders, idArgs := inClause(ids)
		query += fmt.Sprintf(" WHERE session_id IN (%s)", placeholders)
		args = idArgs
	}
	query += " GROUP BY letter"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return incorrect, correct, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for rows.Next() {
		var letter string
		var c, w int
		if err := rows.Scan(&letter, &c, &w); err != nil {
			return incorrect, correct, err
		}
		idx := letterIndex(letter)
		if idx < 0 {
			continue
		}
		correct[idx] = c
		incorrect[idx] = w
	}
	return incorrect, correct, rows.Err()
}

func (s *Store) attachLetters(ctx context.Context, recs []model.SessionRecord) error {
	if len(recs) == 0 {
		return nil
	}
	ids := make([]int64, len(recs))
	pos := make(map[int64]int, len(recs))
	for i := range recs {
		ids[i] = recs[i].ID
		pos[recs[i].ID] = i
		recs[i].LetterCorrect = make([]int, letters.Count)
		recs[i].LetterIncorrect = make([]int, letters.Count)
	}
	placeholders, args := inClause(ids)
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT session_id, letter, correct, incorrect FROM session_letter_stats WHERE session_id IN (%s)`,
		placeholders), args...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for rows.Next() {
		var sessionID int64
		var letter string
		var c, w int
		if err := rows.Scan(&sessionID, &letter, &c, &w); err != nil {
			return err
		}
		idx := letterIndex(letter)
		i, ok := pos[sessionID]
		if idx < 0 || !ok {
			continue
		}
		recs[i].LetterCorrect[idx] = c
		recs[i].LetterIncorrect[idx] = w
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (model.SessionRecord, error) {
	var rec model.SessionRecord
	var phase, startedAt, endedAt, snap string
	if err := row.Scan(&rec.ID, &rec.RunID, &rec.Label, &phase, &rec.Sequence, &startedAt, &endedAt,
		&rec.ElapsedSec, &rec.CorrectChars, &rec.TotalChars, &rec.WPM, &rec.Accuracy,
		&rec.Entropy, &rec.KLDivergence, &rec.TypingScore, &snap); err != nil {
		return rec, err
	}
	rec.Phase = model.Phase(phase)
	var err error
	if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return rec, err
	}
	if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
		return rec, err
	}
	var sn snapshot
	if err := json.Unmarshal([]byte(snap), &sn); err != nil {
		return rec, fmt.Errorf("decode snapshot for session %d: %w", rec.ID, err)
	}
	rec.ErrorProbs = sn.ErrorProbs
	rec.NormalizedProbs = sn.NormalizedProbs
	rec.CorrectProbs = sn.CorrectProbs
	return rec, nil
}

func inClause(ids []int64) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return strings.Join(placeholders, ","), args
}

func letterIndex(s string) int {
	if len(s) != 1 {
		return -1
	}
	return letters.Index(rune(s[0]))
}

func at(values []int, i int) int {
	if i < len(values) {
		return values[i]
	}
	return 0
}
