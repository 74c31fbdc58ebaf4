package inmemdb

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shaibinkb16/demo--api/internal/model"
	"github.com/shaibinkb16/demo--api/internal/store"
)

// Store keeps everything in maps behind one mutex, keyed by lowercase email.
// It mirrors the mysql implementation's semantics exactly so handler tests
// run without a database.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*model.User
	allowlist map[string]model.AuthorizedEmail
}

func New() *Store {
	return &Store{
		users:     make(map[string]*model.User),
		allowlist: make(map[string]model.AuthorizedEmail),
	}
}

// Authorize seeds an allow-list entry; tests stand in for the HR provisioning
// that normally populates the table.
func (s *Store) Authorize(email, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allowlist[email] = model.AuthorizedEmail{Email: email, Name: name}
}

func (s *Store) GetAuthorizedEmail(_ context.Context, email string) (model.AuthorizedEmail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ae, ok := s.allowlist[email]
	if !ok {
		return model.AuthorizedEmail{}, store.ErrNotFound
	}
	return ae, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return model.User{}, store.ErrNotFound
	}
	return *u, nil
}

func (s *Store) UpsertLogin(_ context.Context, id, email, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[email]; ok {
		u.LoginCount++
		u.UpdatedAt = time.Now().UTC()
		return u.LoginCount, nil
	}

	now := time.Now().UTC()
	s.users[email] = &model.User{
		ID:         id,
		Email:      email,
		Name:       name,
		LoginCount: 1,
		Status:     model.StatusInProgress,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return 1, nil
}

func (s *Store) StartSlide(_ context.Context, email string, slideID int, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil
	}
	u.CurrentSlide = &slideID
	u.ActiveSince = &now
	u.UpdatedAt = now
	return nil
}

func (s *Store) EndSlide(_ context.Context, email string, slideID int, now time.Time) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return 0, nil
	}
	if u.ActiveSince != nil {
		u.TotalLoginTime += now.Sub(*u.ActiveSince).Minutes()
	}
	if slideID > u.CompletedSlides {
		u.CompletedSlides = slideID
	}
	end := now
	u.EndTime = &end
	u.UpdatedAt = now
	return u.TotalLoginTime, nil
}

func (s *Store) FinishTraining(_ context.Context, email string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil
	}
	u.Status = model.StatusCompleted
	finished := now
	u.FinishedAt = &finished
	u.UpdatedAt = now
	return nil
}

func (s *Store) SubmitQuiz(_ context.Context, email string, score int, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil
	}
	u.QuizScore = &score
	submitted := now
	u.QuizSubmittedAt = &submitted
	u.UpdatedAt = now
	return nil
}

func (s *Store) Leaderboard(_ context.Context, limit int) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]model.LeaderboardEntry, 0, len(s.users))
	for _, u := range s.users {
		if u.QuizScore == nil {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			Email:           u.Email,
			Name:            u.Name,
			QuizScore:       *u.QuizScore,
			QuizSubmittedAt: *u.QuizSubmittedAt,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].QuizScore != entries[j].QuizScore {
			return entries[i].QuizScore > entries[j].QuizScore
		}
		return entries[i].QuizSubmittedAt.Before(entries[j].QuizSubmittedAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *Store) Ping(context.Context) error { return nil }
