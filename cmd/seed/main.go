package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/config"
	"github.com/grafiki-ochrony/guard-roster/backend/internal/repository"
	"github.com/grafiki-ochrony/guard-roster/backend/internal/seed"
	"github.com/grafiki-ochrony/guard-roster/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var year int
	var month int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random employees, 2: insert random sites, 3: insert random days off, 4: import employees from CSV)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.IntVar(&year, "year", time.Now().Year(), "target year for random days off")
	flag.IntVar(&month, "month", int(time.Now().Month()), "target month for random days off")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not touch the network, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("invalid employee count")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				employee := utils.GenerateRandomEmployee()
				if err := repo.CreateEmployee(employee); err != nil {
					slog.Error("unable to insert employee", slog.String("error", err.Error()))
					cnt--
					continue
				}
			}
			slog.Info("random employees inserted", slog.Int("count", cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("invalid site count")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				site := utils.GenerateRandomSite()
				if err := repo.CreateSite(site); err != nil {
					slog.Error("unable to insert site", slog.String("error", err.Error()))
					cnt--
					continue
				}
			}
			slog.Info("random sites inserted", slog.Int("count", cnt))
		}
	case 3:
		if n <= 0 {
			slog.Error("invalid day off count")
		} else {
			employees, err := repo.GetAllEmployees()
			if err != nil {
				slog.Error("unable to load employees", slog.String("error", err.Error()))
				return
			}
			if len(employees) == 0 {
				slog.Error("no employees to assign days off to")
				return
			}

			cnt := 0
			for _, employee := range employees {
				for i := 0; i < n; i++ {
					dayOff := utils.GenerateRandomDayOff(employee.ID, year, month)
					if err := repo.AddDayOff(dayOff); err != nil {
						slog.Error("unable to insert day off", slog.String("error", err.Error()))
						continue
					}
					cnt++
				}
			}
			slog.Info("random days off inserted", slog.Int("count", cnt))
		}
	case 4:
		seed.SeedEmployeesFromCSV(repo, cfg.Seed.EmployeesCSV)
	default:
		slog.Error("unknown operation", slog.Int("op", op))
	}
}
