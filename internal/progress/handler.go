package progress

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shaibinkb16/demo--api/internal/middleware"
	"github.com/shaibinkb16/demo--api/internal/store"
	"github.com/shaibinkb16/demo--api/internal/telemetry"
)

const stampLayout = "2006-01-02 15:04:05"

type Handler struct {
	store store.Store
}

func NewHandler(st store.Store) *Handler {
	return &Handler{store: st}
}

// Start marks the slide the user is on and the moment they opened it. The
// elapsed time is settled on End against this timestamp.
func (h *Handler) Start(c *fiber.Ctx) error {
	email := middleware.AuthedEmail(c)
	slideID, err := strconv.Atoi(c.FormValue("slide_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "slide_id must be an integer")
	}

	if err := h.requireUser(c, email); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := h.store.StartSlide(c.Context(), email, slideID, now); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Slide %d started at %s", slideID, now.Format(stampLayout)),
	})
}

// End folds the open interval into total_login_time and raises the
// completed-slides high-water mark. Ending a lower slide never lowers it.
func (h *Handler) End(c *fiber.Ctx) error {
	email := middleware.AuthedEmail(c)
	slideID, err := strconv.Atoi(c.FormValue("slide_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "slide_id must be an integer")
	}

	if err := h.requireUser(c, email); err != nil {
		return err
	}

	now := time.Now().UTC()
	total, err := h.store.EndSlide(c.Context(), email, slideID, now)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":    fmt.Sprintf("Slide %d ended at %s", slideID, now.Format(stampLayout)),
		"total_time": total,
	})
}

func (h *Handler) Finish(c *fiber.Ctx) error {
	email := middleware.AuthedEmail(c)

	if err := h.requireUser(c, email); err != nil {
		return err
	}

	if err := h.store.FinishTraining(c.Context(), email, time.Now().UTC()); err != nil {
		return err
	}

	rid, _ := c.Locals(middleware.ReqIDKey).(string)
	log := telemetry.L().With().Str("req_id", rid).Logger()
	log.Info().Str("email", email).Msg("training_completed")
	return c.JSON(fiber.Map{
		"message": "Training completed ✅",
	})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	email := middleware.AuthedEmail(c)

	u, err := h.store.GetUserByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}
	return c.JSON(fiber.Map{
		"completed_slides": u.CompletedSlides,
		"total_login_time": u.TotalLoginTime,
		"login_count":      u.LoginCount,
		"status":           u.Status,
	})
}

func (h *Handler) requireUser(c *fiber.Ctx, email string) error {
	if _, err := h.store.GetUserByEmail(c.Context(), email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}
	return nil
}
