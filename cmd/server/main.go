package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skyops/instructorhub/internal/guard"
	"github.com/skyops/instructorhub/internal/httpx"
	"github.com/skyops/instructorhub/internal/identity"
	"github.com/skyops/instructorhub/internal/modules/controlpanel"
	"github.com/skyops/instructorhub/internal/modules/oraltest"
	"github.com/skyops/instructorhub/internal/modules/roster"
	"github.com/skyops/instructorhub/internal/modules/sms"
	"github.com/skyops/instructorhub/internal/modules/tasks"
	"github.com/skyops/instructorhub/internal/perm"
	"github.com/skyops/instructorhub/pkg/config"
	"github.com/skyops/instructorhub/pkg/httpserver"
	"github.com/skyops/instructorhub/pkg/jwt"
	"github.com/skyops/instructorhub/pkg/logger"
	"github.com/skyops/instructorhub/pkg/pg"
	redisconn "github.com/skyops/instructorhub/pkg/redis"
)

type appConfig struct {
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppName string `env:"APP_NAME" envDefault:"instructorhub"`

	JWTSigningKey string `env:"JWT_SIGNING_KEY,required"`

	// Allow-list markers are employee ids or emails, comma separated.
	PrivilegedMarkers []string `env:"PERM_PRIVILEGED" envSeparator:","`
	SuperMarkers      []string `env:"PERM_SUPER" envSeparator:","`

	RosterCacheTTL time.Duration `env:"ROSTER_CACHE_TTL" envDefault:"5m"`

	HTTP  httpserver.Config
	PG    pg.Config
	Redis redisconn.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithContextExtractors(instructorExtractor),
	)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		return err
	}

	rdb, err := redisconn.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close redis client", logger.Error(err))
		}
	}()

	tokens, err := jwt.NewFromString(cfg.JWTSigningKey)
	if err != nil {
		return err
	}

	instructors := identity.NewRepository(pool)
	eval := perm.NewEvaluator(perm.NewAllowlist(cfg.PrivilegedMarkers, cfg.SuperMarkers))
	g := guard.New(tokens, instructors, eval, guard.WithLogger(log))

	rosterSvc := roster.NewService(roster.NewPGStorage(pool),
		roster.WithLogger(log),
		roster.WithDayCache(roster.NewRedisDayCache(rdb, cfg.RosterCacheTTL)),
	)
	tasksSvc := tasks.NewService(tasks.NewPGStorage(pool), tasks.WithLogger(log))
	oralSvc := oraltest.NewService(oraltest.NewPGStorage(pool), oraltest.WithLogger(log))
	smsSvc := sms.NewService(sms.NewPGStorage(pool), sms.WithLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthHandler(pg.Healthcheck(pool), redisconn.Healthcheck(rdb)))

	r.Mount("/roster", roster.Router(rosterSvc, g))
	r.Mount("/tasks", tasks.Router(tasksSvc, g))
	r.Mount("/oral-test", oraltest.Router(oralSvc, g))
	r.Mount("/sms", sms.Router(smsSvc, g))
	r.Mount("/control-panel", controlpanel.Router(instructors, g))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// instructorExtractor tags every log record emitted within a guarded
// request with the acting instructor's id.
func instructorExtractor(ctx context.Context) (slog.Attr, bool) {
	grant, ok := guard.GrantFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.InstructorID(grant.UserID), true
}

// healthHandler pings every dependency and reports the first failure.
func healthHandler(checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				httpx.Error(w, httpx.NewHTTPError(http.StatusServiceUnavailable, "unhealthy", err.Error()))
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
