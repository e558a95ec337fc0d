package bootstrap

import (
	"context"
	"log"

	"travelmate-be/internal/config"
	"travelmate-be/internal/controller"
	"travelmate-be/internal/pkg/assets"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/pkg/mailer"
	"travelmate-be/internal/repository/unitofwork"
	"travelmate-be/internal/service"
	pkgCache "travelmate-be/pkg/cache"
	pkgNats "travelmate-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const notificationsTopic = "notifications"

type Container struct {
	// Controllers
	TravelPlanController controller.ITravelPlanController
	BookingController    controller.IBookingController
	ReviewController     controller.IReviewController
	UserController       controller.IUserController
	PaymentController    controller.IPaymentController

	// Background workers (exposed for main.go to run)
	NotifierService service.INotifierService
	SweepScheduler  *service.SweepScheduler

	Logger logger.ILogger
	Cache  *pkgCache.Cache
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.App.ClientURL,
	)

	assetStore, err := assets.NewLocalAssetStore(cfg.App.AssetDir, cfg.App.BaseURL)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize asset store: %v", err)
	}

	// In-process event bus for notifications
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// NATS is best-effort: a nil publisher disables domain events without
	// taking the API down.
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	cache := pkgCache.New(cfg.App.RedisAddr, cfg.App.RedisPassword, cfg.App.RedisDB)
	if err := cache.Ping(context.Background()); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	publisherService := service.NewPublisherService(pubSub, notificationsTopic)
	notifierLogger := logger.NewIsolatedLogger(cfg.App.NotificationLog)
	notifierService := service.NewNotifierService(pubSub, notificationsTopic, emailService, notifierLogger)

	// Domain services
	travelPlanService := service.NewTravelPlanService(uowFactory, publisherService, natsPub, cache, assetStore, sysLogger)
	bookingService := service.NewBookingService(uowFactory, publisherService, natsPub, sysLogger)
	reviewService := service.NewReviewService(uowFactory, sysLogger)
	userService := service.NewUserService(uowFactory, assetStore, sysLogger)

	snapClient := service.NewSnapClient(cfg.Midtrans)
	paymentService := service.NewPaymentService(
		uowFactory,
		snapClient,
		publisherService,
		natsPub,
		sysLogger,
		cfg.Midtrans,
		cfg.App.ClientURL,
	)

	sweepService := service.NewStatusSweepService(uowFactory, sysLogger)
	sweepScheduler := service.NewSweepScheduler(sweepService, cfg.Sweep.Interval, sysLogger)

	return &Container{
		TravelPlanController: controller.NewTravelPlanController(travelPlanService),
		BookingController:    controller.NewBookingController(bookingService),
		ReviewController:     controller.NewReviewController(reviewService),
		UserController:       controller.NewUserController(userService),
		PaymentController:    controller.NewPaymentController(paymentService),

		NotifierService: notifierService,
		SweepScheduler:  sweepScheduler,

		Logger: sysLogger,
		Cache:  cache,
	}
}
