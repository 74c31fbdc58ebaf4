package inmemdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shaibinkb16/demo--api/internal/store"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestUpsertLoginCounts(t *testing.T) {
	s := New()
	ctx := context.Background()

	n, err := s.UpsertLogin(ctx, "id-1", "jane@corp.example", "Jane")
	if err != nil || n != 1 {
		t.Fatalf("first login = %d, %v, want 1, nil", n, err)
	}
	n, err = s.UpsertLogin(ctx, "id-2", "jane@corp.example", "Jane")
	if err != nil || n != 2 {
		t.Fatalf("second login = %d, %v, want 2, nil", n, err)
	}

	u, err := s.GetUserByEmail(ctx, "jane@corp.example")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if u.ID != "id-1" {
		t.Fatalf("ID = %q, want the id from the first login", u.ID)
	}
	if u.LoginCount != 2 || u.Status != "in_progress" {
		t.Fatalf("LoginCount = %d, Status = %q", u.LoginCount, u.Status)
	}
}

func TestGetUserByEmailMissing(t *testing.T) {
	s := New()
	if _, err := s.GetUserByEmail(context.Background(), "nobody@corp.example"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetAuthorizedEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetAuthorizedEmail(ctx, "jane@corp.example"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	s.Authorize("jane@corp.example", "Jane Doe")
	ae, err := s.GetAuthorizedEmail(ctx, "jane@corp.example")
	if err != nil {
		t.Fatalf("GetAuthorizedEmail: %v", err)
	}
	if ae.Name != "Jane Doe" {
		t.Fatalf("Name = %q, want Jane Doe", ae.Name)
	}
}

func TestEndSlideElapsed(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.UpsertLogin(ctx, "id-1", "jane@corp.example", "Jane")

	if err := s.StartSlide(ctx, "jane@corp.example", 3, t0); err != nil {
		t.Fatalf("StartSlide: %v", err)
	}
	total, err := s.EndSlide(ctx, "jane@corp.example", 3, t0.Add(90*time.Second))
	if err != nil {
		t.Fatalf("EndSlide: %v", err)
	}
	if total != 1.5 {
		t.Fatalf("total = %v, want 1.5", total)
	}

	u, _ := s.GetUserByEmail(ctx, "jane@corp.example")
	if u.CompletedSlides != 3 {
		t.Fatalf("CompletedSlides = %d, want 3", u.CompletedSlides)
	}
	if u.ActiveSince == nil {
		t.Fatal("ActiveSince cleared, want it kept")
	}
}

func TestEndSlideHighWaterMark(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.UpsertLogin(ctx, "id-1", "jane@corp.example", "Jane")

	s.StartSlide(ctx, "jane@corp.example", 5, t0)
	s.EndSlide(ctx, "jane@corp.example", 5, t0.Add(time.Minute))

	s.StartSlide(ctx, "jane@corp.example", 2, t0.Add(2*time.Minute))
	s.EndSlide(ctx, "jane@corp.example", 2, t0.Add(3*time.Minute))

	u, _ := s.GetUserByEmail(ctx, "jane@corp.example")
	if u.CompletedSlides != 5 {
		t.Fatalf("CompletedSlides = %d, want 5", u.CompletedSlides)
	}
}

func TestEndSlideWithoutStart(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.UpsertLogin(ctx, "id-1", "jane@corp.example", "Jane")

	total, err := s.EndSlide(ctx, "jane@corp.example", 1, t0)
	if err != nil {
		t.Fatalf("EndSlide: %v", err)
	}
	if total != 0 {
		t.Fatalf("total = %v, want 0 when no slide was started", total)
	}
}

func TestStartSlideSupersedesOpenInterval(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.UpsertLogin(ctx, "id-1", "jane@corp.example", "Jane")

	s.StartSlide(ctx, "jane@corp.example", 1, t0)
	s.StartSlide(ctx, "jane@corp.example", 2, t0.Add(10*time.Minute))

	total, err := s.EndSlide(ctx, "jane@corp.example", 2, t0.Add(12*time.Minute))
	if err != nil {
		t.Fatalf("EndSlide: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %v, want 2 (the abandoned first start adds nothing)", total)
	}
}

func TestFinishTrainingIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.UpsertLogin(ctx, "id-1", "jane@corp.example", "Jane")

	if err := s.FinishTraining(ctx, "jane@corp.example", t0); err != nil {
		t.Fatalf("FinishTraining: %v", err)
	}
	if err := s.FinishTraining(ctx, "jane@corp.example", t0.Add(time.Minute)); err != nil {
		t.Fatalf("FinishTraining again: %v", err)
	}

	u, _ := s.GetUserByEmail(ctx, "jane@corp.example")
	if u.Status != "completed" || u.FinishedAt == nil {
		t.Fatalf("Status = %q, FinishedAt = %v", u.Status, u.FinishedAt)
	}
}

func TestSubmitQuizOverwrites(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.UpsertLogin(ctx, "id-1", "jane@corp.example", "Jane")

	s.SubmitQuiz(ctx, "jane@corp.example", 90, t0)
	s.SubmitQuiz(ctx, "jane@corp.example", 70, t0.Add(time.Hour))

	u, _ := s.GetUserByEmail(ctx, "jane@corp.example")
	if u.QuizScore == nil || *u.QuizScore != 70 {
		t.Fatalf("QuizScore = %v, want 70", u.QuizScore)
	}
	if !u.QuizSubmittedAt.Equal(t0.Add(time.Hour)) {
		t.Fatalf("QuizSubmittedAt = %v, want the later stamp", u.QuizSubmittedAt)
	}
}

func TestSubmitQuizMissingUserIsNoop(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.SubmitQuiz(ctx, "ghost@corp.example", 50, t0); err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if _, err := s.GetUserByEmail(ctx, "ghost@corp.example"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("row created for unknown user: err = %v", err)
	}
}

func TestLeaderboardOrderAndTies(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.UpsertLogin(ctx, "id-1", "a@corp.example", "A")
	s.UpsertLogin(ctx, "id-2", "b@corp.example", "B")
	s.UpsertLogin(ctx, "id-3", "c@corp.example", "C")
	s.UpsertLogin(ctx, "id-4", "d@corp.example", "D") // never submits

	s.SubmitQuiz(ctx, "a@corp.example", 80, t0.Add(2*time.Minute))
	s.SubmitQuiz(ctx, "b@corp.example", 95, t0)
	s.SubmitQuiz(ctx, "c@corp.example", 80, t0.Add(time.Minute))

	rows, err := s.Leaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}
	want := []string{"b@corp.example", "c@corp.example", "a@corp.example"}
	for i, w := range want {
		if rows[i].Email != w {
			t.Fatalf("rows[%d] = %q, want %q", i, rows[i].Email, w)
		}
	}

	rows, _ = s.Leaderboard(ctx, 2)
	if len(rows) != 2 {
		t.Fatalf("limited len = %d, want 2", len(rows))
	}
}
