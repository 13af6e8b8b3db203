package main

import (
	"context"
	"fmt"
	"time"

	"github.com/boredclicker/bored"
	"github.com/boredclicker/bored/catalog"
	"github.com/boredclicker/bored/inmem"
	"github.com/boredclicker/bored/persistent"
	"github.com/boredclicker/bored/transport/rest"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/buntdb"
)

func loadCatalog(cfg config) ([]bored.Activity, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(cfg.CatalogFile)
}

// openStore builds the configured activity store and fills it with the catalog.
// Returned func releases store resources.
func openStore(ctx context.Context, cfg config, activities []bored.Activity) (bored.ActivityStore, func(), error) {
	switch cfg.Store {
	case StoreBuntdb:
		bdb, err := buntdb.Open(cfg.BuntdbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open buntdb: %w", err)
		}
		store := &persistent.CatalogStore{Buntdb: bdb}
		if err = store.CreateIndexes(); err != nil {
			bdb.Close()
			return nil, nil, err
		}
		if err = store.Load(activities); err != nil {
			bdb.Close()
			return nil, nil, err
		}
		return store, func() { bdb.Close() }, nil
	case StorePostgres:
		db, err := persistent.PgOpen(ctx, cfg.PostgresDsn)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		store := &persistent.ActivityStore{DB: db}
		if err = store.Seed(ctx, activities); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	default:
		store, err := inmem.NewActivityStore(activities)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func newSelector(seed uint64) bored.Selector {
	if seed == 0 {
		return bored.NewRandomSelector(nil)
	}
	return bored.NewSeededSelector(seed)
}

func newServer(cfg config, resolver *bored.Resolver) *fiber.App {
	server := fiber.New(fiber.Config{
		DisableStartupMessage: !cfg.Debug,
		ErrorHandler:          rest.ErrorHandler,
	})
	server.Use(rest.LogHandler())

	api := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: rest.ErrorHandler,
	})
	api.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowOrigins}))

	activityController := rest.ActivityController{Resolver: resolver}
	api.Get("/status", monitor.New())
	activityController.InstallTo(api)

	server.Mount("/api/", api)
	server.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	server.Use(rest.NotFoundHandler)
	return server
}

func listenAndServe(server *fiber.App, addr string) func() error {
	go func() {
		if err := server.Listen(addr); err != nil {
			logrus.WithError(err).Errorln("Listen failed.")
		}
	}()
	return server.Shutdown
}
