package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gegedenice/star-harvest/config"
	"github.com/gegedenice/star-harvest/logging"
	"github.com/gegedenice/star-harvest/sink"
	"github.com/gegedenice/star-harvest/starharvester"
	"github.com/gegedenice/star-harvest/utils"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded .env file")
	}

	fs := flag.NewFlagSet("star-harvest", flag.ExitOnError)
	listSets := fs.Bool("list-sets", false, "list the sets of the endpoint and exit")
	cfg, err := config.LoadWithFlags(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "star-harvest: %v\n", err)
		os.Exit(2)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	runID := uuid.NewString()
	logger := logging.ForRun(runID)
	logger.WithField("config", cfg.String()).Debug("configuration loaded")

	ctx := context.Background()
	if *listSets {
		err = printSets(ctx, cfg, logger)
	} else {
		err = harvest(ctx, cfg, runID, logger)
	}
	if err != nil {
		logger.WithFields(errorFields(err)).Error("harvest failed")
		os.Exit(1)
	}
}

func newFetcher(cfg *config.Config) *starharvester.HTTPFetcher {
	return starharvester.NewHTTPFetcher(cfg.OAI.BaseURL, cfg.HTTP.UserAgent, cfg.HTTP.Timeout, cfg.HTTP.Retries)
}

func printSets(ctx context.Context, cfg *config.Config, logger *log.Entry) error {
	harvester := starharvester.InitializeHarvester(newFetcher(cfg), nil, starharvester.Options{
		Delay:  cfg.Harvest.Delay(),
		Logger: logger,
	})
	sets, err := harvester.ListSets(ctx)
	if err != nil {
		return err
	}
	for _, set := range sets {
		fmt.Printf("%s\t%s\n", set.SetSpec, set.SetName)
	}
	return nil
}

func harvest(ctx context.Context, cfg *config.Config, runID string, logger *log.Entry) (err error) {
	rows, err := openSinks(ctx, cfg, runID, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	opts := starharvester.Options{
		MetadataPrefix:  cfg.OAI.MetadataPrefix,
		Set:             cfg.OAI.SetSpec,
		MaxPages:        cfg.Harvest.MaxPages,
		MaxContributors: cfg.Harvest.MaxContributors,
		Delay:           cfg.Harvest.Delay(),
		Logger:          logger,
	}

	if cfg.RedisEnabled() {
		redisWrapper, err := utils.InitializeCentralRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.KeyPrefix, runID)
		if err != nil {
			return err
		}
		defer redisWrapper.Close()
		logger.WithField("key", redisWrapper.PagesKey()).Info("Archiving raw pages to redis")
		opts.Archive = redisWrapper
	}

	harvester := starharvester.InitializeHarvester(newFetcher(cfg), rows, opts)
	stats, err := harvester.Run(ctx)
	if err != nil {
		logger.WithFields(log.Fields{
			"pages": stats.Pages,
			"seen":  stats.Seen,
			"kept":  stats.Kept,
		}).Warn("Harvest interrupted, rows written so far are kept")
		return err
	}

	fmt.Printf("Done. Seen=%d, kept(Open Access)=%d, output=%s\n", stats.Seen, stats.Kept, cfg.Output.CSVPath)
	return nil
}

// openSinks opens the CSV file and any configured database mirror. On
// failure, whatever was already opened is closed.
func openSinks(ctx context.Context, cfg *config.Config, runID string, logger *log.Entry) (sink.Multi, error) {
	csvSink, err := sink.OpenCSV(cfg.Output.CSVPath, cfg.Harvest.MaxContributors)
	if err != nil {
		return nil, err
	}
	sinks := sink.Multi{csvSink}

	if cfg.MongoEnabled() {
		mongoSink, err := sink.OpenMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection, runID)
		if err != nil {
			sinks.Close()
			return nil, err
		}
		logger.WithFields(log.Fields{"database": cfg.Mongo.Database, "collection": cfg.Mongo.Collection}).Info("Mirroring rows to mongodb")
		sinks = append(sinks, mongoSink)
	}

	if cfg.PostgresEnabled() {
		pgSink, err := sink.OpenPostgres(ctx, cfg.Postgres.URL, cfg.Postgres.Table, runID)
		if err != nil {
			sinks.Close()
			return nil, err
		}
		logger.WithField("table", cfg.Postgres.Table).Info("Mirroring rows to postgres")
		sinks = append(sinks, pgSink)
	}

	return sinks, nil
}

func errorFields(err error) log.Fields {
	fields := log.Fields{"error": err}

	var transportErr *starharvester.TransportError
	var parseErr *starharvester.ParseError
	var protocolErr *starharvester.ProtocolError
	switch {
	case errors.As(err, &transportErr):
		fields["kind"] = "transport"
		fields["url"] = transportErr.URL
		if transportErr.StatusCode != 0 {
			fields["status"] = transportErr.StatusCode
		}
	case errors.As(err, &parseErr):
		fields["kind"] = "parse"
	case errors.As(err, &protocolErr):
		fields["kind"] = "protocol"
		fields["code"] = protocolErr.Code
	}
	return fields
}
