package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/Ptt-Alertor/logrus"
	"github.com/google/gops/agent"
	"github.com/julienschmidt/httprouter"
	"github.com/robfig/cron/v3"

	"github.com/Ptt-Alertor/bank-api/admin"
	"github.com/Ptt-Alertor/bank-api/config"
	"github.com/Ptt-Alertor/bank-api/connections"
	"github.com/Ptt-Alertor/bank-api/controllers/api"
	"github.com/Ptt-Alertor/bank-api/jobs"
	"github.com/Ptt-Alertor/bank-api/metrics"
	"github.com/Ptt-Alertor/bank-api/middleware"
	"github.com/Ptt-Alertor/bank-api/models/bank"
	"github.com/Ptt-Alertor/bank-api/models/ledger"
	"github.com/Ptt-Alertor/bank-api/models/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid Configuration")
	}
	setupLogging(cfg)

	banks := bank.NewStore(bank.Seed(), metrics.BankListener{})
	users := user.NewStore(nil)
	adminServer := admin.NewServer(cfg.AdminAddr)
	closeSinks := startSinks(cfg, banks, adminServer)

	api.Setup(banks, users)
	router := httprouter.New()
	api.Routes(router)

	log.Info("Start Jobs")
	c := startJobs(cfg, banks, users)

	// gops agent
	if cfg.GopsAddr != "" {
		if err := agent.Listen(agent.Options{Addr: cfg.GopsAddr, ShutdownCleanup: true}); err != nil {
			log.Fatal(err)
		}
	}

	// Admin Server
	go func() {
		log.WithField("addr", adminServer.BindAddress()).Info("Admin Server Start")
		if err := adminServer.Listen(); err != nil {
			log.WithError(err).Error("Admin Server Stopped")
		}
	}()

	// Web Server
	log.WithField("addr", cfg.HTTPAddr).Info("Web Server Start")
	srv := http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: middleware.RequestID(middleware.AccessLog(middleware.CORS(router))),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServer", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown Web Server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Web Server Shutdown Failed")
	}
	if err := adminServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Admin Server Shutdown Failed")
	}
	<-c.Stop().Done()
	closeSinks()
	log.Info("Web Server Was Been Shutdown")
}

func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}

// startSinks subscribes the optional Redis mirror and Postgres ledger to the
// bank store and returns a func that drains and closes them. The ledger is
// readable at /ledger/{account_number} on the admin server.
func startSinks(cfg *config.Config, banks *bank.Store, adminServer *admin.Server) func() {
	var closers []func()

	if cfg.RedisHost != "" {
		pool := connections.RedisPool(cfg)
		if err := connections.PingRedis(pool); err != nil {
			log.WithError(err).Error("Redis unreachable, mirror will retry per event")
		}
		rs := bank.NewRedisSync(pool)
		banks.Subscribe(rs)
		closers = append(closers, rs.Close, connections.CloseRedis)
		log.WithField("addr", cfg.RedisAddr()).Info("Redis Mirror Enabled")
	}

	if cfg.PGHost != "" {
		ctx := context.Background()
		pool, err := connections.Postgres(ctx, cfg)
		if err != nil {
			log.WithError(err).Fatal("Unable to Connect Ledger Database")
		}
		pg := ledger.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			log.WithError(err).Fatal("Ledger Migration Failed")
		}
		rec := ledger.NewRecorder(pg)
		banks.Subscribe(rec)
		adminServer.AddHandler("/ledger/{account_number}", ledger.ListHandler(pg))
		closers = append(closers, rec.Close, connections.ClosePostgres)
		log.WithField("host", cfg.PGHost).Info("Ledger Enabled")
	}

	return func() {
		for _, c := range closers {
			c()
		}
	}
}

func startJobs(cfg *config.Config, banks *bank.Store, users *user.Store) *cron.Cron {
	c := cron.New()
	if _, err := c.AddJob(cfg.ReportSpec, jobs.NewReporter(banks, users)); err != nil {
		log.WithError(err).Fatal("Invalid REPORT_SPEC")
	}
	c.Start()
	return c
}
