package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"

	"bikeshare/explorer/config"
	"bikeshare/explorer/session"
	"bikeshare/loader"
	"bikeshare/publisher"
	"bikeshare/statistics"
	"bikeshare/utils"
)

// InitLogger Receives the log level to be set in logrus as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	customFormatter := &logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   false,
	}
	logrus.SetFormatter(customFormatter)
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(level)
	return nil
}

func main() {
	explorerConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[explorer] error loading config: %s", err)
	}

	if err := InitLogger(explorerConfig.LogLevel); err != nil {
		log.Fatalf("%s", err)
	}

	reportPublisher, err := publisher.New(explorerConfig.Publisher)
	if err != nil {
		log.Errorf("[explorer] error creating report publisher: %s", err.Error())
		return
	}
	defer func() {
		if err := reportPublisher.Close(); err != nil {
			log.Errorf("[explorer] error closing report publisher: %s", err.Error())
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	explorerSession := session.NewSession(
		loader.NewLoader(explorerConfig.Loader),
		statistics.NewEngine(explorerConfig.ConcurrentStatistics),
		reportPublisher,
		os.Stdin,
		os.Stdout,
		explorerConfig.PageSize,
	)

	done := make(chan error, 1)
	go func() {
		done <- explorerSession.Run(ctx)
	}()

	signalChannel := utils.GetSignalChannel()
	select {
	case err := <-done:
		if err != nil {
			log.Errorf("[explorer] session ended with error: %s", err.Error())
		}
	case sig := <-signalChannel:
		log.Infof("[explorer] signal %s received, closing", sig)
		cancel()
	}

	log.Debug("[explorer] Finish main.go")
}
