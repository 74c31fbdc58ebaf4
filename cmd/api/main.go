package main

import (
	"flag"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/shaibinkb16/demo--api/internal/apierr"
	"github.com/shaibinkb16/demo--api/internal/auth"
	"github.com/shaibinkb16/demo--api/internal/cache"
	"github.com/shaibinkb16/demo--api/internal/config"
	"github.com/shaibinkb16/demo--api/internal/db"
	"github.com/shaibinkb16/demo--api/internal/middleware"
	"github.com/shaibinkb16/demo--api/internal/progress"
	"github.com/shaibinkb16/demo--api/internal/quiz"
	mysqldb "github.com/shaibinkb16/demo--api/internal/store/mysql"
	"github.com/shaibinkb16/demo--api/internal/telemetry"
	"github.com/shaibinkb16/demo--api/internal/token"
)

func main() {
	doMigrate := flag.Bool("migrate", false, "run migrations and exit")
	flag.Parse()

	cfg := config.Load()
	sqlxDB := db.MustConnect(cfg.DBDSN)
	rdb := cache.MustConnect(cfg.RedisAddr, cfg.RedisDB)

	tlog := telemetry.Init(telemetry.FromEnv(config.GetEnv))
	tlog.Info().Str("host", cfg.Host).Str("port", cfg.Port).Msg("booting posh-api")

	if *doMigrate {
		db.MustMigrate(sqlxDB)
		log.Println("migrations done")
		return
	}

	st := mysqldb.New(sqlxDB)
	tokens, err := token.NewJWT(cfg.SecretKey, cfg.Algorithm, cfg.TokenTTL)
	if err != nil {
		tlog.Fatal().Err(err).Msg("token setup failed")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: apierr.Handler,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Recover())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.RequestLog())
	app.Use(middleware.SecureHeaders())

	ah := auth.NewHandler(st, tokens)
	ph := progress.NewHandler(st)
	qh := quiz.NewHandler(cfg, st, rdb)
	requireAuth := middleware.RequireAuth(tokens)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := st.Ping(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "database not connected")
		}
		return c.JSON(fiber.Map{"status": "ok", "message": "database connected"})
	})

	app.Post("/auth", middleware.RateLimiter(), ah.Authenticate)
	app.Get("/check-email/:email", ah.CheckEmail)

	app.Post("/progress/start", requireAuth, ph.Start)
	app.Post("/progress/end", requireAuth, ph.End)
	app.Post("/progress/finish", requireAuth, ph.Finish)
	app.Get("/progress", requireAuth, ph.Get)

	app.Post("/quiz/submit", requireAuth, qh.Submit)
	app.Get("/quiz/score", requireAuth, qh.Score)
	app.Get("/quiz/leaderboard", qh.Leaderboard)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	log.Fatal(app.Listen(cfg.Host + ":" + cfg.Port))
}
