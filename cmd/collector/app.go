package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"review_collector/internal/collector"
	"review_collector/internal/publisher"
	"review_collector/internal/service"
	"review_collector/internal/storage/postgres"
)

var errNoDatabase = errors.New("database is not configured: set DATABASE_URL or database.url")

// app holds the dependencies shared by the commands.
type app struct {
	db        *sqlx.DB
	gateway   *postgres.Gateway
	publisher *publisher.RabbitMQ
	shoes     *service.ShoeService
	collect   *service.CollectService
}

func (c *cli) openGateway(ctx context.Context) (*sqlx.DB, *postgres.Gateway, error) {
	dsn := c.cfg.Database.DSN()
	if dsn == "" {
		return nil, nil, errNoDatabase
	}

	db, err := postgres.Open(dsn, postgres.PoolConfig{
		ConnectTimeout:  c.cfg.Database.ConnectTimeout,
		MaxOpenConns:    c.cfg.Database.MaxOpenConns,
		MaxIdleConns:    c.cfg.Database.MaxIdleConns,
		ConnMaxLifetime: c.cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, err
	}

	gateway := postgres.NewGateway(db, c.logger, postgres.WithQueryTimeout(c.cfg.Database.QueryTimeout))

	if err := gateway.Ping(ctx); err != nil {
		c.logger.Warn("database is unreachable, persistence calls will fail", "error", err)
	} else {
		c.logger.Debug("connected to database")
	}

	return db, gateway, nil
}

// newApp wires the services. The publisher is only connected when
// withEvents is set and RabbitMQ is configured; a failed connection leaves
// event publishing disabled.
func (c *cli) newApp(ctx context.Context, withEvents bool) (*app, error) {
	db, gateway, err := c.openGateway(ctx)
	if err != nil {
		return nil, err
	}

	a := &app{db: db, gateway: gateway}

	var pub service.Publisher
	if withEvents && c.cfg.RabbitMQ.Enabled() {
		rmq, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        c.cfg.RabbitMQ.URL,
			Exchange:   c.cfg.RabbitMQ.Exchange,
			RoutingKey: c.cfg.RabbitMQ.RoutingKey,
			QueueName:  c.cfg.RabbitMQ.QueueName,
		}, c.logger)
		if err != nil {
			c.logger.Warn("source events disabled", "error", err)
		} else {
			a.publisher = rmq
			pub = rmq
		}
	}

	a.shoes = service.NewShoeService(gateway, newFinder(c.cfg, c.logger), c.logger)
	a.collect = service.NewCollectService(
		gateway,
		buildRegistry(c.cfg, c.logger),
		collector.NewAggregator(c.logger),
		pub,
		c.logger,
		c.cfg.Collect,
	)
	return a, nil
}

func (a *app) Close(logger *slog.Logger) {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			logger.Warn("failed to close publisher", "error", err)
		}
	}
	if err := a.db.Close(); err != nil {
		logger.Warn("failed to close database", "error", err)
	}
}
