package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	config "github.com/davicafu/hexanews/internal/config"

	authorApp "github.com/davicafu/hexanews/internal/author/application"
	authorDomain "github.com/davicafu/hexanews/internal/author/domain"
	authorHttp "github.com/davicafu/hexanews/internal/author/infra/inbound/http"
	authorCache "github.com/davicafu/hexanews/internal/author/infra/outbound/cache"
	authorRepo "github.com/davicafu/hexanews/internal/author/infra/outbound/db/sqlite"
	draftApp "github.com/davicafu/hexanews/internal/draft/application"
	draftHttp "github.com/davicafu/hexanews/internal/draft/infra/inbound/http"
	draftRepo "github.com/davicafu/hexanews/internal/draft/infra/outbound/db/sqlite"
	newsApp "github.com/davicafu/hexanews/internal/news/application"
	newsDomain "github.com/davicafu/hexanews/internal/news/domain"
	newsHttp "github.com/davicafu/hexanews/internal/news/infra/inbound/http"
	newsRepo "github.com/davicafu/hexanews/internal/news/infra/outbound/db/sqlite"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
	chAnalytics "github.com/davicafu/hexanews/internal/shared/infra/analytics/clickhouse"
	"github.com/davicafu/hexanews/internal/shared/infra/auth"
	mongoStore "github.com/davicafu/hexanews/internal/shared/infra/db/mongodb"
	postgresStore "github.com/davicafu/hexanews/internal/shared/infra/db/postgres"
	sqliteStore "github.com/davicafu/hexanews/internal/shared/infra/db/sqlite"
	infraEvents "github.com/davicafu/hexanews/internal/shared/infra/events"
	"github.com/davicafu/hexanews/internal/shared/infra/relayer"
	"github.com/davicafu/hexanews/internal/shared/infra/tx"
	"github.com/davicafu/hexanews/pkg/logger"
)

// ---------------- Main ----------------
func main() {
	logger.Init()          // inicializa zap
	log := logger.Logger() // obtiene logger estructurado
	defer log.Sync()       // flush buffers al salir

	ctx := context.Background()
	cfg := config.LoadConfig()

	// ---------------- Codec y registro ----------------
	// Todo se funde antes de levantar ningún server: sin efectos de
	// orden de import.
	codec := sharedEvents.NewCodec()
	codec.Merge(authorDomain.EventCodec())
	codec.Merge(newsDomain.EventCodec())

	registry := sharedEvents.NewHandlerRegistry()

	// ---------------- DB de negocio ----------------
	db, err := sqliteStore.InitSQLite(cfg.SQLitePath)
	if err != nil {
		log.Fatal("failed to open SQLite", zap.Error(err))
	}
	defer db.Close()

	if err := authorRepo.InitSchema(db); err != nil {
		log.Fatal("failed to init author schema", zap.Error(err))
	}
	if err := draftRepo.InitSchema(db); err != nil {
		log.Fatal("failed to init draft schema", zap.Error(err))
	}
	if err := newsRepo.InitSchema(db); err != nil {
		log.Fatal("failed to init news schema", zap.Error(err))
	}

	authorRepoSQLite := authorRepo.NewAuthorRepoSQLite(db)
	draftRepoSQLite := draftRepo.NewDraftRepoSQLite(db)
	newsRepoSQLite := newsRepo.NewNewsRepoSQLite(db)

	// ---------------- Event store ----------------
	var store sharedEvents.Store
	switch cfg.Database {
	case "postgres":
		pgdb, err := postgresStore.InitPostgres(cfg.PostgresDSN)
		if err != nil {
			log.Fatal("failed to open Postgres", zap.Error(err))
		}
		defer pgdb.Close()
		store = postgresStore.NewEventStorePostgres(pgdb, codec)
		log.Warn("⚠️ Event store en Postgres: el append no comparte transacción con SQLite")
	case "mongodb":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer client.Disconnect(ctx)
		store = mongoStore.NewEventStoreMongoDB(client, cfg.MongoDB, codec)
		log.Warn("⚠️ Event store en MongoDB: el append no comparte transacción con SQLite")
	default:
		store = sqliteStore.NewEventStoreSQLite(db, codec)
	}

	// ---------------- Canales de publicación ----------------
	kafkaChannel := infraEvents.NewKafkaChannel(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	defer kafkaChannel.Close()
	channels := []relayer.PublishChannel{kafkaChannel}

	if cfg.ClickHouseAddr != "" {
		eventLog, err := chAnalytics.NewEventLog(cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			log.Warn("⚠️ ClickHouse no disponible, sin log analítico de eventos", zap.Error(err))
		} else if err := eventLog.InitSchema(); err != nil {
			log.Warn("⚠️ No se pudo crear el esquema en ClickHouse", zap.Error(err))
		} else {
			channels = append(channels, eventLog)
			log.Info("✅ ClickHouse conectado, log analítico de eventos habilitado")
		}
	}

	// ---------------- Publicación de eventos ----------------
	publisher := relayer.NewPublisher(store, channels, cfg.SendBatchSize, log)
	publishServer := relayer.NewPublishServer(publisher, log)

	dispatcher := sharedEvents.NewDispatcher(registry, log)
	txManager := tx.NewSQLManager(db, dispatcher, publishServer.Wake, log)

	// ---------------- Cache ----------------
	var cacheInstance authorDomain.AuthorCache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria:", zap.Error(err))
		cacheInstance = authorCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	} else {
		cacheInstance = authorCache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("✅ Redis conectado, cache habilitado")
	}

	// --------------- Servicios --------------
	authorService := authorApp.NewAuthorService(authorRepoSQLite, cacheInstance, store, txManager, log)
	newsService := newsApp.NewNewsService(newsRepoSQLite, store, txManager, log)
	draftService := draftApp.NewDraftService(draftRepoSQLite, newsService, store, txManager, log)

	// Handlers locales, registrados antes de arrancar nada.
	draftService.RegisterEventHandlers(registry)

	// ---------------- Servers de eventos ----------------
	publishServer.Start()
	defer publishServer.Stop()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaTopic,
		GroupID:  "hexanews-listener",
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	defer reader.Close()

	stream := infraEvents.NewKafkaStream(reader, codec, log)
	listenServer := relayer.NewListenServer(stream, registry, log)
	listenServer.Start()
	defer listenServer.Stop()

	// ---------------- HTTP ----------------
	authorHandler := authorHttp.NewAuthorHandler(authorService)
	draftHandler := draftHttp.NewDraftHandler(draftService)
	newsHandler := newsHttp.NewNewsHandler(newsService)

	router := gin.Default()

	protected := router.Group("/", auth.Middleware(cfg.JWTSecret, log))
	authorHttp.RegisterAuthorRoutes(protected, authorHandler)
	draftHttp.RegisterDraftRoutes(protected, draftHandler)
	newsHttp.RegisterNewsRoutes(router, protected, newsHandler)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Info("🚀 Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
