package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/shaibinkb16/demo--api/internal/config"
	"github.com/shaibinkb16/demo--api/internal/middleware"
	"github.com/shaibinkb16/demo--api/internal/store"
	"github.com/shaibinkb16/demo--api/internal/telemetry"
)

type Handler struct {
	cfg   *config.Config
	store store.Store
	rdb   *redis.Client
}

// NewHandler wires the quiz endpoints. rdb may be nil, which disables the
// leaderboard cache.
func NewHandler(cfg *config.Config, st store.Store, rdb *redis.Client) *Handler {
	return &Handler{cfg: cfg, store: st, rdb: rdb}
}

// Submit records the score as-is. Resubmitting overwrites the previous
// attempt, stamp included.
func (h *Handler) Submit(c *fiber.Ctx) error {
	email := middleware.AuthedEmail(c)
	score, err := strconv.Atoi(c.FormValue("score"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "score must be an integer")
	}

	now := time.Now().UTC()
	if err := h.store.SubmitQuiz(c.Context(), email, score, now); err != nil {
		return err
	}

	rid, _ := c.Locals(middleware.ReqIDKey).(string)
	log := telemetry.L().With().Str("req_id", rid).Logger()
	log.Info().Str("email", email).Int("score", score).Msg("quiz_submitted")
	return c.JSON(fiber.Map{
		"error":     false,
		"message":   "Quiz score submitted successfully",
		"score":     score,
		"quiz_time": now.Format("15:04:05"),
		"quiz_date": now.Format("2006-01-02"),
	})
}

func (h *Handler) Score(c *fiber.Ctx) error {
	email := middleware.AuthedEmail(c)

	u, err := h.store.GetUserByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	var quizTime, quizDate any
	if u.QuizSubmittedAt != nil {
		quizTime = u.QuizSubmittedAt.Format("15:04:05")
		quizDate = u.QuizSubmittedAt.Format("2006-01-02")
	}
	var quizScore any
	if u.QuizScore != nil {
		quizScore = *u.QuizScore
	}
	return c.JSON(fiber.Map{
		"error":      false,
		"email":      email,
		"quiz_score": quizScore,
		"quiz_time":  quizTime,
		"quiz_date":  quizDate,
	})
}

type leaderboardEntry struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	QuizScore int    `json:"quiz_score"`
	QuizTime  string `json:"quiz_time"`
	QuizDate  string `json:"quiz_date"`
}

// Leaderboard returns the top scores. Results are cached briefly per limit
// so a results screen polling every few seconds stays off the database.
func (h *Handler) Leaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	key := fmt.Sprintf("leaderboard:%d", limit)
	if h.rdb != nil {
		if cached, err := h.rdb.Get(c.Context(), key).Result(); err == nil {
			return c.Type("json").SendString(cached)
		}
	}

	rows, err := h.store.Leaderboard(c.Context(), limit)
	if err != nil {
		return err
	}

	entries := make([]leaderboardEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, leaderboardEntry{
			Email:     r.Email,
			Name:      r.Name,
			QuizScore: r.QuizScore,
			QuizTime:  r.QuizSubmittedAt.Format("15:04:05"),
			QuizDate:  r.QuizSubmittedAt.Format("2006-01-02"),
		})
	}

	resp := fiber.Map{
		"error":       false,
		"leaderboard": entries,
	}
	if h.rdb != nil {
		if body, err := json.Marshal(resp); err == nil {
			h.rdb.Set(c.Context(), key, body, h.cfg.LeaderboardTTL)
		}
	}
	return c.JSON(resp)
}
