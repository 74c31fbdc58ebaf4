package mysqldb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/shaibinkb16/demo--api/internal/model"
	"github.com/shaibinkb16/demo--api/internal/store"
)

// Store runs every mutation as a single UPDATE/INSERT statement so the
// database, not Go code, computes counters and high-water-marks. Two
// concurrent /progress/end calls for the same user both land.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetAuthorizedEmail(ctx context.Context, email string) (model.AuthorizedEmail, error) {
	var ae model.AuthorizedEmail
	err := s.db.GetContext(ctx, &ae, `SELECT email, name FROM authorized_emails WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.AuthorizedEmail{}, store.ErrNotFound
	}
	return ae, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, email, name, completed_slides, total_login_time, login_count, status,
		       current_slide, active_since, end_time, finished_at, quiz_score, quiz_submitted_at,
		       created_at, updated_at
		FROM users WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, store.ErrNotFound
	}
	return u, err
}

func (s *Store) UpsertLogin(ctx context.Context, id, email, name string) (int, error) {
	// One statement covers both the first login and every later one; the
	// candidate id is discarded when the row already exists.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, completed_slides, total_login_time, login_count, status, created_at, updated_at)
		VALUES (?, ?, ?, 0, 0, 1, 'in_progress', NOW(6), NOW(6))
		ON DUPLICATE KEY UPDATE login_count = login_count + 1, updated_at = NOW(6)`,
		id, email, name)
	if err != nil {
		return 0, err
	}

	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT login_count FROM users WHERE email = ?`, email); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) StartSlide(ctx context.Context, email string, slideID int, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET current_slide = ?, active_since = ?, updated_at = NOW(6)
		WHERE email = ?`, slideID, now, email)
	return err
}

func (s *Store) EndSlide(ctx context.Context, email string, slideID int, now time.Time) (float64, error) {
	// Elapsed minutes and the slide high-water-mark are computed inside the
	// UPDATE; active_since stays as-is until the next StartSlide overwrites it.
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			total_login_time = total_login_time + IF(active_since IS NULL, 0, TIMESTAMPDIFF(MICROSECOND, active_since, ?) / 60000000.0),
			completed_slides = GREATEST(completed_slides, ?),
			end_time = ?,
			updated_at = NOW(6)
		WHERE email = ?`, now, slideID, now, email)
	if err != nil {
		return 0, err
	}

	var total float64
	if err := s.db.GetContext(ctx, &total, `SELECT total_login_time FROM users WHERE email = ?`, email); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) FinishTraining(ctx context.Context, email string, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET status = 'completed', finished_at = ?, updated_at = NOW(6)
		WHERE email = ?`, now, email)
	return err
}

func (s *Store) SubmitQuiz(ctx context.Context, email string, score int, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET quiz_score = ?, quiz_submitted_at = ?, updated_at = NOW(6)
		WHERE email = ?`, score, now, email)
	return err
}

func (s *Store) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	entries := []model.LeaderboardEntry{}
	err := s.db.SelectContext(ctx, &entries, `
		SELECT email, name, quiz_score, quiz_submitted_at
		FROM users
		WHERE quiz_score IS NOT NULL
		ORDER BY quiz_score DESC, quiz_submitted_at ASC
		LIMIT ?`, limit)
	return entries, err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
