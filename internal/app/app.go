package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/karlmarxlive/artchaos-bot/internal/admission"
	"github.com/karlmarxlive/artchaos-bot/internal/bot"
	"github.com/karlmarxlive/artchaos-bot/internal/config"
	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/karlmarxlive/artchaos-bot/internal/events"
	"github.com/karlmarxlive/artchaos-bot/internal/handler"
	"github.com/karlmarxlive/artchaos-bot/internal/identity"
	"github.com/karlmarxlive/artchaos-bot/internal/middleware"
	"github.com/karlmarxlive/artchaos-bot/internal/notification"
	"github.com/karlmarxlive/artchaos-bot/internal/repository"
	"github.com/karlmarxlive/artchaos-bot/internal/repository/memory"
	"github.com/karlmarxlive/artchaos-bot/internal/router"
	"github.com/karlmarxlive/artchaos-bot/internal/scheduler"
	"github.com/karlmarxlive/artchaos-bot/internal/service"
	"github.com/karlmarxlive/artchaos-bot/internal/service/ports"
	"github.com/pressly/goose/v3"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"
)

const migrationsDir = "migrations"

// bookingStore is what the Postgres and in-memory ledgers both provide.
type bookingStore interface {
	ports.BookingRepo
	admission.BookingReader
	ListFutureBookings(ctx context.Context, now time.Time) ([]*domain.Booking, error)
	MarkReminded(ctx context.Context, id string, lead time.Duration) error
}

type App struct {
	cfg        *config.Config
	log        logger.Logger
	loc        *time.Location
	db         *dbpg.DB
	users      ports.UserRepo
	bookings   bookingStore
	publisher  *events.Publisher
	httpServer *http.Server
	scheduler  *scheduler.Scheduler
	bot        *bot.Bot
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		"ArtChaos",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	if app.loc, err = cfg.Studio.Location(); err != nil {
		return nil, err
	}

	if err = app.initStorage(); err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	if err = app.initServices(); err != nil {
		app.closeResources()
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initStorage() error {
	if a.cfg.Storage.Driver == config.StorageDriverMemory {
		store := memory.NewStore(a.loc)
		a.users = memory.NewUserRepo(store)
		a.bookings = memory.NewBookingRepo(store)
		a.log.Warn("using in-memory storage, data is lost on restart")
		return nil
	}

	if err := a.runMigrations(); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	if err := a.initDB(); err != nil {
		return err
	}

	a.users = repository.NewUserRepo(a.db)
	a.bookings = repository.NewBookingRepo(a.db, a.loc)
	return nil
}

func (a *App) initDB() error {
	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	db.Master.SetConnMaxLifetime(a.cfg.Postgres.ConnMaxLifetime)

	if err := db.Master.PingContext(context.Background()); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	return nil
}

func (a *App) initEvents() (*events.BookingEvents, error) {
	if a.cfg.RabbitMQ.URL == "" {
		a.log.Info("rabbitmq url is empty, booking events disabled")
		return events.NewBookingEvents(nil, a.log), nil
	}

	pub, err := events.NewPublisher(a.cfg.RabbitMQ.URL, a.cfg.RabbitMQ.Exchange)
	if err != nil {
		return nil, err
	}
	a.publisher = pub

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "rabbitmq connected",
		logger.String("exchange", a.cfg.RabbitMQ.Exchange),
	)
	return events.NewBookingEvents(pub, a.log), nil
}

func (a *App) initServices() error {
	leads, err := a.cfg.Scheduler.Leads()
	if err != nil {
		return err
	}
	adminIDs, err := a.cfg.Admin.AdminIDs()
	if err != nil {
		return err
	}
	admins := identity.NewAdmins(adminIDs)

	bookingEvents, err := a.initEvents()
	if err != nil {
		return fmt.Errorf("init events: %w", err)
	}

	n, err := notification.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Scheduler.SendTimeout, a.loc, a.log)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	a.scheduler = scheduler.New(
		a.bookings,
		n,
		scheduler.Config{
			Leads:       leads,
			Interval:    a.cfg.Scheduler.Interval,
			SendTimeout: a.cfg.Scheduler.SendTimeout,
			Retry:       a.cfg.Scheduler.RetryStrategy(),
		},
		a.log,
		scheduler.WithFormatter(notification.ReminderFormatter(a.loc)),
		scheduler.WithObserver(bookingEvents),
	)

	checker := admission.NewChecker(a.bookings, a.users, a.loc)
	userService := service.NewUserService(a.users, admins, a.log)
	bookingService := service.NewBookingService(
		checker,
		a.bookings,
		a.scheduler,
		n,
		bookingEvents,
		admins,
		a.loc,
		a.log,
	)

	h := handler.NewHandler(bookingService, userService, a.loc)
	r := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return a.initBot(bookingService, userService)
}

func (a *App) initBot(bookings bot.BookingSvc, users bot.UserSvc) error {
	if a.cfg.Telegram.BotToken == "" || !a.cfg.Telegram.Polling {
		a.log.Info("telegram polling disabled")
		return nil
	}

	slots, err := a.cfg.Studio.Slots()
	if err != nil {
		return err
	}
	durations, err := a.cfg.Studio.BookingDurations()
	if err != nil {
		return err
	}

	api, err := tgbotapi.NewBotAPI(a.cfg.Telegram.BotToken)
	if err != nil {
		return fmt.Errorf("create telegram bot: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "telegram bot authorized",
		logger.String("username", api.Self.UserName),
	)

	a.bot = bot.New(api, bookings, users, bot.Options{
		TimeSlots:       slots,
		Durations:       durations,
		DaysAhead:       a.cfg.Studio.BookingDays,
		ConversationTTL: a.cfg.Studio.ConversationTTL,
	}, a.loc, a.log)

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.scheduler.Start(ctx)

	if a.bot != nil {
		go a.bot.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case runErr = <-errCh:
		stop()
	}

	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	var firstErr error
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		firstErr = fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	a.scheduler.Stop()

	if err := a.closeResources(); err != nil && firstErr == nil {
		firstErr = err
	}

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return firstErr
}

func (a *App) closeResources() error {
	var firstErr error

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			firstErr = fmt.Errorf("close rabbitmq: %w", err)
		}
	}

	if a.db != nil {
		if err := a.db.Master.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close db: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")
	}

	return firstErr
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}
