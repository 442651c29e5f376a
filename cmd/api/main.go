package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/repaart-dev/ops-console/backend/internal/config"
	"github.com/repaart-dev/ops-console/backend/internal/domain"
	"github.com/repaart-dev/ops-console/backend/internal/feed"
	"github.com/repaart-dev/ops-console/backend/internal/handler"
	"github.com/repaart-dev/ops-console/backend/internal/repository"
	"github.com/repaart-dev/ops-console/backend/internal/scheduler"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * crear logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * cargar configuracion
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("no se pudo cargar la configuracion", "error", err)
		return
	}

	/**********************************************
	 * conectar con la base de datos
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("no se pudo crear el pool de conexiones", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open no conecta todavia, hay que hacer ping explicitamente
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("no se pudo conectar con la base de datos", "error", err)
		return
	}

	/**********************************************
	 * crear repository
	 **********************************************/
	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * asegurar que existe el administrador inicial
	 **********************************************/
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdmin.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("no se pudo generar el hash del administrador inicial", "error", err)
		return
	}
	initialAdmin := &domain.User{
		Username:     cfg.InitialAdmin.Username,
		PasswordHash: string(passwordHash),
		FullName:     cfg.InitialAdmin.FullName,
		Email:        cfg.InitialAdmin.Email,
		Role:         domain.RoleAdministrator,
		FranchiseID:  cfg.InitialAdmin.FranchiseID,
	}
	if err := repo.CreateUser(context.Background(), initialAdmin); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "users_username_key":
				// ya existe el administrador inicial, no hay nada que hacer
			default:
				logger.Error("no se pudo crear el administrador inicial", "error", err)
				return
			}
		default:
			logger.Error("no se pudo crear el administrador inicial", "error", err)
			return
		}
	}

	/**********************************************
	 * conectar con rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("no se pudo conectar con rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("no se pudo abrir el canal", "error", err)
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		"notification_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("no se pudo declarar la cola", "error", err)
		return
	}

	/**********************************************
	 * conectar con redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	/**********************************************
	 * montar el nucleo de planificacion
	 **********************************************/
	fd := feed.New(repo, rdb, logger)
	store := feed.NewStore(repo, fd)
	publisher := scheduler.NewPublisher(store, store, logger)

	auditCfg := scheduler.AuditConfig{
		SlackHours:         cfg.Audit.SlackHours,
		CoverageFloorHours: cfg.Audit.CoverageFloorHours,
		OvertimePenalty:    cfg.Audit.OvertimePenalty,
		UnderusePenalty:    cfg.Audit.UnderusePenalty,
		OptimalThreshold:   cfg.Audit.OptimalThreshold,
		WarningThreshold:   cfg.Audit.WarningThreshold,
		CostPerHour:        cfg.Audit.CostPerHour,
		SocialSecurityPct:  cfg.Audit.SocialSecurityPct,
		CoveragePenalty:    cfg.Audit.CoveragePenalty,
		MinRidersPerDay:    cfg.Audit.MinRidersPerDay,
	}

	sessions := scheduler.NewManager(fd, fd, publisher, auditCfg, time.Local, logger)
	defer sessions.Close()

	/**********************************************
	 * crear handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, repo, ch, rdb, fd, sessions)
	if err != nil {
		logger.Error("no se pudo crear el handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * arrancar el servidor HTTP
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("arrancando el servidor...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("no se pudo arrancar el servidor", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("apagando el servidor...")

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("no se pudo apagar el servidor", slog.String("error", err.Error()))
	}
	logger.Info("servidor apagado correctamente")
}
