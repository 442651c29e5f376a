package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/repaart-dev/ops-console/backend/internal/config"
	"github.com/repaart-dev/ops-console/backend/internal/repository"
	"github.com/repaart-dev/ops-console/backend/internal/seed"
	"github.com/repaart-dev/ops-console/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var franchiseID string

	flag.IntVar(&op, "op", 0, "operacion a ejecutar (1: insertar usuarios aleatorios, 2: insertar repartidores aleatorios, 3: insertar datos de demostracion)")
	flag.IntVar(&n, "n", 5, "numero de registros a insertar")
	flag.StringVar(&franchiseID, "franchise-id", "franquicia-demo", "franquicia sobre la que insertar")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("no se pudo cargar la configuracion", slog.String("error", err.Error()))
		os.Exit(1)
	}

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

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no se ha indicado ninguna operacion")
	case 1:
		if n <= 0 {
			slog.Error("el numero de usuarios no es valido")
			return
		}

		cnt := 0
		for range n {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, franchiseID, "repaart.es")
			if err != nil {
				slog.Error("no se pudo generar el usuario aleatorio", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(context.Background(), user); err != nil {
				slog.Error("no se pudo insertar el usuario", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("usuarios insertados", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			slog.Error("el numero de repartidores no es valido")
			return
		}

		cnt := 0
		for range n {
			rider := utils.GenerateRandomRider(franchiseID)
			if err := repo.CreateRider(context.Background(), rider); err != nil {
				slog.Error("no se pudo insertar el repartidor", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("repartidores insertados", slog.Int("count", cnt))
	case 3:
		seed.SeedDemoData(context.Background(), cfg, repo)
	default:
		slog.Error("la operacion indicada no es valida")
	}
}
