package store

import (
	"context"
	"errors"
	"time"

	"github.com/shaibinkb16/demo--api/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Store is the persistence surface the handlers run against. The mysql
// implementation backs production; the inmem one backs tests. Counter and
// high-water-mark mutations (login count, total time, completed slides) must
// be atomic: concurrent calls for the same email must never lose an update.
type Store interface {
	// GetAuthorizedEmail looks up an allow-list entry. Callers pass the
	// email already lowercased.
	GetAuthorizedEmail(ctx context.Context, email string) (model.AuthorizedEmail, error)

	// GetUserByEmail returns the training record for an email.
	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	// UpsertLogin creates the user record on first login (with the given
	// candidate id, login_count=1) or bumps login_count by one, and returns
	// the resulting count. The insert-or-increment is a single atomic
	// statement so concurrent first logins cannot create two records.
	UpsertLogin(ctx context.Context, id, email, name string) (int, error)

	// StartSlide opens a viewing interval: sets current_slide and
	// active_since. Any prior unclosed interval is silently superseded.
	StartSlide(ctx context.Context, email string, slideID int, now time.Time) error

	// EndSlide closes a viewing interval: accumulates elapsed minutes since
	// active_since (zero if none), raises the completed-slide high-water-mark
	// to slideID if higher, records end_time, and returns the new total.
	// active_since is deliberately left in place; only the next StartSlide
	// replaces it.
	EndSlide(ctx context.Context, email string, slideID int, now time.Time) (float64, error)

	// FinishTraining marks the course completed. Safe to repeat; only
	// finished_at moves.
	FinishTraining(ctx context.Context, email string, now time.Time) error

	// SubmitQuiz overwrites the quiz score and submission time. A missing
	// record is a silent no-op.
	SubmitQuiz(ctx context.Context, email string, score int, now time.Time) error

	// Leaderboard returns up to limit users with a submitted score, best
	// score first, ties broken by earliest submission.
	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)

	// Ping reports store connectivity for the health endpoint.
	Ping(ctx context.Context) error
}
