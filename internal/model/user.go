package model

import "time"

// Training status values for User.Status. The only legal transition is
// in_progress -> completed; nothing ever moves a user back.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// User is the single progress record kept per authenticated trainee.
// Email is the lookup key (stored lowercase); ID is generated once on the
// first successful login and never changes.
type User struct {
	ID              string     `db:"id"`
	Email           string     `db:"email"`
	Name            string     `db:"name"`
	CompletedSlides int        `db:"completed_slides"`
	TotalLoginTime  float64    `db:"total_login_time"` // minutes
	LoginCount      int        `db:"login_count"`
	Status          string     `db:"status"`
	CurrentSlide    *int       `db:"current_slide"`
	ActiveSince     *time.Time `db:"active_since"`
	EndTime         *time.Time `db:"end_time"`
	FinishedAt      *time.Time `db:"finished_at"`
	QuizScore       *int       `db:"quiz_score"`
	QuizSubmittedAt *time.Time `db:"quiz_submitted_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// AuthorizedEmail is one allow-list entry. The table is provisioned by HR
// out-of-band; the service only ever reads it.
type AuthorizedEmail struct {
	Email string `db:"email"`
	Name  string `db:"name"`
}

// LeaderboardEntry is a read-only projection of users who submitted a quiz.
type LeaderboardEntry struct {
	Email           string    `db:"email"`
	Name            string    `db:"name"`
	QuizScore       int       `db:"quiz_score"`
	QuizSubmittedAt time.Time `db:"quiz_submitted_at"`
}
