// Command deskd serves the Study Success matching desk.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/idir-jpg/study-success-matching/internal/config"
	"github.com/idir-jpg/study-success-matching/internal/desk"
	"github.com/idir-jpg/study-success-matching/internal/drive"
	"github.com/idir-jpg/study-success-matching/internal/graph"
	"github.com/idir-jpg/study-success-matching/internal/journal"
	"github.com/idir-jpg/study-success-matching/internal/mail"
	"github.com/idir-jpg/study-success-matching/internal/matching"
	"github.com/idir-jpg/study-success-matching/internal/transit"
	"github.com/idir-jpg/study-success-matching/internal/web"
	"github.com/idir-jpg/study-success-matching/pkg/clientip"
	"github.com/idir-jpg/study-success-matching/pkg/httpserver"
	"github.com/idir-jpg/study-success-matching/pkg/logger"
	"github.com/idir-jpg/study-success-matching/pkg/pg"
	"github.com/idir-jpg/study-success-matching/pkg/ratelimiter"
	"github.com/idir-jpg/study-success-matching/pkg/redis"
	"github.com/idir-jpg/study-success-matching/pkg/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("deskd stopped", logger.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.App.Env, cfg.App.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}
	if lvl, _ := cfg.Level(); lvl != nil {
		opts = append(opts, logger.WithLevel(*lvl))
	}
	return logger.New(opts...)
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	var checks []httpserver.Check

	client, err := graph.New(ctx, cfg.Graph)
	switch {
	case err == nil:
		checks = append(checks, httpserver.Check{Name: "graph", Fn: client.Check})
	case errors.Is(err, graph.ErrInvalidConfig):
		log.WarnContext(ctx, "graph client disabled", logger.Component("graph"), logger.Error(err))
		client = nil
	default:
		return err
	}

	var files drive.Source
	if src, err := drive.Open(ctx, cfg.Drive, client); err != nil {
		log.WarnContext(ctx, "file store unavailable, the desk will serve demo data",
			logger.Component("drive"), logger.Error(err))
	} else {
		files = src
	}

	var rdb *goredis.Client
	if cfg.Redis.Enabled() {
		rdb, err = redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(rdb)})
	}

	matcher, err := newMatcher(cfg, rdb, log)
	if err != nil {
		return err
	}

	var store journal.Store
	if cfg.Postgres.Enabled() {
		pool, err := openJournal(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer pool.Close()
		store = journal.NewPostgresStore(pool)
		checks = append(checks, httpserver.Check{Name: "journal", Fn: pg.Healthcheck(pool)})
	} else {
		store = journal.NewMemoryStore(cfg.App.JournalCapacity)
	}

	dispatcher, err := newDispatcher(cfg, client, store, log)
	if err != nil {
		return err
	}

	opts := []desk.Option{
		desk.WithMatcher(matcher),
		desk.WithJournal(store),
		desk.WithLogger(log),
	}
	if assets, ok := assetsFS(cfg.App.AssetsDir); ok {
		opts = append(opts, desk.WithAssets(assets))
	} else {
		log.WarnContext(ctx, "assets directory missing, emails go out without images",
			logger.Component("desk"), logger.Path(cfg.App.AssetsDir))
	}
	svc := desk.New(files, cfg.Drive.Paths, dispatcher, opts...)
	svc.Load(ctx)

	limits := ratelimiter.NewMemoryStore()
	go limits.RunSweeper(ctx, 10*time.Minute)
	sendLimit, err := ratelimiter.NewBucket(limits, cfg.SendLimit)
	if err != nil {
		return err
	}

	router := web.NewRouter(svc,
		web.WithLogger(log),
		web.WithBasicAuth(cfg.Auth.Users),
		web.WithReadinessChecks(checks...),
		web.WithHistoryLimit(cfg.App.HistoryLimit),
		web.WithSendLimit(sendLimit),
	)
	if len(cfg.Auth.Users) == 0 {
		log.WarnContext(ctx, "AUTH_USERS is empty, the desk is not protected", logger.Component("web"))
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

func newMatcher(cfg config.Config, rdb *goredis.Client, log *slog.Logger) (*matching.Matcher, error) {
	opts := []matching.Option{
		matching.WithParallelism(cfg.Transit.Parallelism),
		matching.WithLocation(cfg.Transit.Location()),
		matching.WithLogger(log),
	}
	if !cfg.Transit.Enabled() {
		log.Warn("GOOGLE_API_KEY is empty, transit durations are disabled", logger.Component("transit"))
		return matching.New(opts...), nil
	}

	directions, err := transit.NewDirectionsEstimator(cfg.Transit.GoogleAPIKey, transit.WithLanguage(cfg.Transit.Language))
	if err != nil {
		return nil, err
	}
	var est transit.Estimator = directions
	switch cfg.Transit.Cache {
	case config.CacheRedis:
		est = transit.NewCachedEstimator(directions, transit.NewRedisCache(rdb, cfg.Transit.CacheTTL))
	case config.CacheMemory, "":
		est = transit.NewCachedEstimator(directions, transit.NewLRUCache(cfg.Transit.CacheSize, cfg.Transit.CacheTTL))
	}
	return matching.New(append(opts, matching.WithEstimator(est))...), nil
}

func openJournal(ctx context.Context, cfg config.Config, log *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	if err := journal.Migrate(ctx, pool, cfg.Postgres.MigrationsTable, log); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func newDispatcher(cfg config.Config, client *graph.Client, store journal.Store, log *slog.Logger) (*mail.Dispatcher, error) {
	dir := mail.DefaultDirectory()
	if cfg.Mail.DirectoryPath != "" {
		loaded, err := mail.LoadDirectory(cfg.Mail.DirectoryPath)
		if err != nil {
			return nil, err
		}
		dir = loaded
	}

	var sender mail.Sender
	switch cfg.Mail.Provider {
	case config.ProviderPostmark:
		pm, err := mail.NewPostmarkSender(cfg.Mail.Postmark)
		if err != nil {
			return nil, err
		}
		sender = pm
	case config.ProviderDev:
		sender = mail.NewDevSender(cfg.Mail.DevDir)
	default:
		if client != nil {
			sender = mail.NewGraphSender(client)
			break
		}
		if cfg.Production() {
			return nil, fmt.Errorf("%w: MAIL_PROVIDER=graph needs TENANT_ID and CLIENT_ID", config.ErrInvalidConfig)
		}
		log.Warn("graph client disabled, emails are written to disk",
			logger.Component("mail"), logger.Path(cfg.Mail.DevDir))
		sender = mail.NewDevSender(cfg.Mail.DevDir)
	}

	return mail.NewDispatcher(sender, dir,
		mail.WithTestAddress(cfg.Mail.TestAddress),
		mail.WithJournal(store),
		mail.WithLogger(log),
	), nil
}

// assetsFS opens dir when it exists.
func assetsFS(dir string) (fs.FS, bool) {
	if dir == "" {
		return nil, false
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, false
	}
	return os.DirFS(dir), true
}
