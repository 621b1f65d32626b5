package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/maydel/storefront/config"
	"github.com/maydel/storefront/internal/adapter/httphandler"
	"github.com/maydel/storefront/internal/adapter/imagehost"
	"github.com/maydel/storefront/internal/adapter/kafka"
	"github.com/maydel/storefront/internal/adapter/storage"
	"github.com/maydel/storefront/internal/core/service"
	"github.com/maydel/storefront/pkg/retry"
	"github.com/maydel/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

const pingAttempts = 5

type App struct {
	ctx        context.Context
	cfg        config.Config
	sqldb      storage.SQLDB
	eventSerde schema.Serde
	producer   kafka.CatalogEventsProducer
	processor  kafka.CatalogTableProcessor
	view       kafka.CatalogView
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initSerde()
	app.initKafka()
	app.initHTTP()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	sqldb, err := retry.DoWithResult(app.ctx,
		retry.Config{MaxAttempts: pingAttempts},
		func() (storage.SQLDB, error) {
			return storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
		},
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb
}

func (app *App) initSerde() {
	const op = "App.initSerde"

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.Topics.CatalogEvents + "-value"
	eventSerde, err := schema.NewSerdeCatalogEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.eventSerde = eventSerde
}

func (app *App) initKafka() {
	const op = "App.initKafka"

	seedBrokers := app.cfg.Broker.SeedBrokers
	topic := app.cfg.Broker.Topics.CatalogEvents
	group := app.cfg.Broker.Consumers.CatalogTableGroup

	producer, err := kafka.NewCatalogEventsProducer(
		kafka.ProducerClientOpt(app.ctx, seedBrokers, topic),
		kafka.ProducerEncoderOpt(app.eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer

	processor, err := kafka.NewCatalogTableProcessor(
		seedBrokers, topic, group, app.eventSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.processor = processor

	view, err := kafka.NewCatalogView(seedBrokers, group, app.eventSerde)
	if err != nil {
		app.fallDown(op, err)
	}
	app.view = view
}

func (app *App) initHTTP() {
	const op = "App.initHTTP"

	imageHost, err := imagehost.NewCloudinary(
		app.cfg.Cloudinary.URL, app.cfg.Cloudinary.Folder,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	products := storage.NewProductsRepository(app.sqldb)
	variants := storage.NewVariantsRepository(app.sqldb)

	catalog := service.NewCatalog(products)
	admin := service.NewAdmin(products, variants, imageHost, app.producer)

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, catalog, app.view)
	httphandler.RegisterAdmin(mux, admin, app.cfg.AdminToken)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.processor.Run(app.ctx)
	go app.view.Run(app.ctx)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.processor.Close()
	app.producer.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
