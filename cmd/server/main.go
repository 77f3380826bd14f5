package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cinema-booking/config"
	"cinema-booking/internal/app"
	"cinema-booking/internal/cache"
	"cinema-booking/internal/handler"
	"cinema-booking/internal/model"
	"cinema-booking/internal/mq"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// TranslateError surfaces unique violations as
	// gorm.ErrDuplicatedKey; the sell path relies on that for the
	// (session, seat) ticket index.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&model.Customer{}, &model.Movie{}, &model.Room{},
		&model.Seat{}, &model.Session{}, &model.Ticket{},
	); err != nil {
		logger.Fatal("failed to migrate schema", zap.Error(err))
	}

	redisCache, err := cache.NewRedisCache(cfg.CacheURL)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	mqConn, err := mq.NewMQConn(cfg.MQURL)
	if err != nil {
		logger.Fatal("failed to connect to rabbitmq", zap.Error(err))
	}
	defer mqConn.Close()

	application := app.New(cfg, db, redisCache, mqConn, logger)
	if err := application.Init(); err != nil {
		logger.Fatal("failed to init app", zap.Error(err))
	}
	defer application.Close()

	r := gin.Default()
	handler.NewBookingHandler(application).Register(r)

	logger.Info("booking engine listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
