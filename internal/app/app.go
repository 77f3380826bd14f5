package app

import (
	"cinema-booking/config"
	"cinema-booking/internal/cache"
	"cinema-booking/internal/mq"
	"cinema-booking/internal/pricing"
	"cinema-booking/internal/repository"
	"cinema-booking/internal/service/domain"
	"cinema-booking/internal/service/workflow"

	"github.com/jonboulle/clockwork"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config

	DB     *gorm.DB
	Cache  *cache.RedisCache
	Logger *zap.Logger
	MQConn *amqp.Connection

	RoomRepo     repository.RoomRepo
	SeatRepo     repository.SeatRepo
	SessionRepo  repository.SessionRepo
	TicketRepo   repository.TicketRepo
	CustomerRepo repository.CustomerRepo
	MovieRepo    repository.MovieRepo

	RoomService    domain.RoomService
	SessionService domain.SessionService
	TicketService  domain.TicketService

	BookingWorkflow *workflow.BookingWorkflow
	EventsWorkflow  *workflow.EventsWorkflow
}

func New(cfg *config.Config, db *gorm.DB, redisCache *cache.RedisCache, mqConn *amqp.Connection, logger *zap.Logger) *App {
	roomRepo := repository.NewRoomRepoGorm(db)
	seatRepo := repository.NewSeatRepoGorm(db)
	sessionRepo := repository.NewSessionRepoGorm(db)
	ticketRepo := repository.NewTicketRepoGorm(db)
	customerRepo := repository.NewCustomerRepoGorm(db)
	movieRepo := repository.NewMovieRepoGorm(db)

	txm := repository.NewTxManager(db)
	calc := pricing.NewCalculator(cfg.Pricing)
	clock := clockwork.NewRealClock()

	roomService := domain.NewRoomService(txm, roomRepo, seatRepo, ticketRepo, cfg.Booking.RowWidth, logger)
	sessionService := domain.NewSessionService(txm, sessionRepo, roomRepo, movieRepo, ticketRepo, calc, logger)
	ticketService := domain.NewTicketService(txm, ticketRepo, seatRepo, sessionRepo, movieRepo, customerRepo, calc, clock, cfg.Booking.CancellationLead, logger)

	bookingWorkflow := workflow.NewBookingWorkflow(ticketService, redisCache, mqConn, logger)
	eventsWorkflow := workflow.NewEventsWorkflow(redisCache, logger)

	return &App{
		Config:          cfg,
		DB:              db,
		Cache:           redisCache,
		Logger:          logger,
		MQConn:          mqConn,
		RoomRepo:        roomRepo,
		SeatRepo:        seatRepo,
		SessionRepo:     sessionRepo,
		TicketRepo:      ticketRepo,
		CustomerRepo:    customerRepo,
		MovieRepo:       movieRepo,
		RoomService:     roomService,
		SessionService:  sessionService,
		TicketService:   ticketService,
		BookingWorkflow: bookingWorkflow,
		EventsWorkflow:  eventsWorkflow,
	}
}

func (app *App) Init() error {
	// seed the redis free-seat counters from the store
	sessions, err := app.SessionService.GetAllSessions()
	if err != nil {
		return err
	}
	sessionFreeSeats := make(map[uint]int)
	for _, session := range sessions {
		total, err := app.SeatRepo.CountByRoom(session.RoomID)
		if err != nil {
			return err
		}
		sold, err := app.TicketRepo.CountActiveBySession(session.ID)
		if err != nil {
			return err
		}
		sessionFreeSeats[session.ID] = int(total - sold)
	}
	if err := app.Cache.Init(sessionFreeSeats); err != nil {
		return err
	}

	// init rabbit mq
	if err := mq.InitQueues(app.MQConn); err != nil {
		return err
	}

	return app.EventsWorkflow.Start(app.MQConn)
}

func (app *App) Close() error {
	sqlDB, err := app.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
