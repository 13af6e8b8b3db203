package main

import (
	"context"
	"flag"
	"io"
	"log/syslog"
	"os"
	"os/signal"
	"time"

	"github.com/boredclicker/bored"
	"github.com/sirupsen/logrus"
	logrusys "github.com/sirupsen/logrus/hooks/syslog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func setupLogger(verbose bool, logFile string) {
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.Stamp,
		FullTimestamp:   true,
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if logFile != "" {
		logrus.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}))
	}

	syslogHook, err := logrusys.NewSyslogHook("", "", syslog.LOG_USER, "bored")
	if err != nil {
		// containers usually have no syslog daemon
		logrus.WithError(err).Warningln("Could not create syslog hook.")
		return
	}
	logrus.AddHook(syslogHook)
}

func awaitInterruption() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}

func main() {
	flag.Parse()
	cfg, err := loadConfig(flag.Args()...)
	if err != nil {
		logrus.WithError(err).Fatalln("Could not load config.")
	}
	setupLogger(cfg.Debug, cfg.LogFile)
	logrus.Infoln("Starting activity service.")

	activities, err := loadCatalog(cfg)
	if err != nil {
		logrus.WithError(err).Fatalln("Could not load catalog.")
	}
	logrus.WithField("activities", len(activities)).
		WithField("store", cfg.Store).
		Infoln("Opening store.")
	store, closeStore, err := openStore(context.Background(), cfg, activities)
	if err != nil {
		logrus.WithError(err).Fatalln("Could not open store.")
	}
	defer closeStore()

	resolver := &bored.Resolver{Store: store, Selector: newSelector(cfg.RandomSeed)}

	logrus.WithField("address", cfg.Address).Infoln("Starting listening... To shut down use ^C")
	shutdown := listenAndServe(newServer(cfg, resolver), cfg.Address)

	awaitInterruption()

	logrus.Infoln("Shutting down...")
	if err = shutdown(); err != nil {
		logrus.WithError(err).Warningln("Fiber shutdown failed.")
	}
}
