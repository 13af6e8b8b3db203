package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/boredclicker/bored/catalog"
	"github.com/boredclicker/bored/persistent"
	"github.com/ory/dockertest"
	"github.com/ory/dockertest/docker"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	_ "github.com/uptrace/bun/driver/pgdriver"
)

// Starts disposable postgres, seeds activity table and runs `go test` of
// given package against it. Usage: go run ./testenv [./persistent/...]

func main() {
	flag.Parse()

	logrus.Println("Starting postgres db container")
	shutdownPgDb, err := createTestPgDb()
	if err != nil {
		logrus.WithError(err).Fatalln("Could not create test database.")
	}

	path := "./..."
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	logrus.WithField("path", path).Println("Running tests...")
	ok := runTests(path)

	logrus.Println("Tests done. Shutting down test db.")
	shutdownPgDb()
	if !ok {
		os.Exit(1)
	}
}

func runTests(path string) bool {
	c := exec.Command("go", "test", path)
	c.Env = os.Environ()
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		logrus.WithError(err).Errorln("Test command failed.")
		return false
	}
	return true
}

// Start postgres docker container and export its datasource.
// Returns shutdown func OR error.
func createTestPgDb() (func(), error) {
	psgPassB := make([]byte, 30)
	if _, err := rand.Read(psgPassB); err != nil {
		return nil, fmt.Errorf("password generate: %w", err)
	}
	psgPass := base32.StdEncoding.EncodeToString(psgPassB)

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("docker connect: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "14.1",
		Env:        []string{"POSTGRES_PASSWORD=" + psgPass},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return nil, fmt.Errorf("resource start: %w", err)
	}
	resource.Expire(120)
	shutdownResource := func() {
		if err := pool.Purge(resource); err != nil {
			logrus.WithError(err).Warningln("Could not purge resource.")
		}
	}

	var pgDsn string
	pool.MaxWait = 30 * time.Second
	err = pool.Retry(func() error {
		pgDsn = fmt.Sprintf("postgresql://postgres:%s@localhost:%s/postgres?sslmode=disable",
			psgPass, resource.GetPort("5432/tcp"))
		sqldb, err := sql.Open("pg", pgDsn)
		if err != nil {
			return fmt.Errorf("sql open: %w", err)
		}
		defer sqldb.Close()

		if err = sqldb.Ping(); err != nil {
			return fmt.Errorf("sqldb ping: %w", err)
		}
		db := bun.NewDB(sqldb, pgdialect.New())
		return seedActivities(context.Background(), db)
	})
	if err != nil {
		shutdownResource()
		return nil, fmt.Errorf("database connect: %w", err)
	}

	persistent.SetTestEnvDsn(pgDsn)
	return shutdownResource, nil
}

func seedActivities(ctx context.Context, db *bun.DB) error {
	activities, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("default catalog: %w", err)
	}
	store := &persistent.ActivityStore{DB: db}
	if err = store.Seed(ctx, activities); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logrus.WithField("activities", len(activities)).Debugln("Seeded activity table.")
	return nil
}
