package main

import (
	"log/slog"
	"os"

	"sellflow/internal/ai"
	"sellflow/internal/config"
	"sellflow/internal/domain/model"
	"sellflow/internal/handler"
	"sellflow/internal/infra/db"
	infraRepo "sellflow/internal/infra/repository"
	"sellflow/internal/logger"
	"sellflow/internal/social"
	"sellflow/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	//.envは無くても動く（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg.GoEnv)
	slog.SetDefault(log)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.UserActivity{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.ShippingAddress{},
		&model.Payment{},
		&model.Refund{},
		&model.Conversation{},
		&model.Message{},
		&model.Notification{},
		&model.SocialAccount{},
		&model.SocialPost{},
		&model.DailyAnalytics{},
		&model.ProductAnalytics{},
		&model.ConversionFunnel{},
	); err != nil {
		log.Error("auto migrate failed", "err", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	profileRepo := infraRepo.NewProfileGormRepository(gormDB)
	activityRepo := infraRepo.NewActivityGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	conversationRepo := infraRepo.NewConversationGormRepository(gormDB)
	messageRepo := infraRepo.NewMessageGormRepository(gormDB)
	notificationRepo := infraRepo.NewNotificationGormRepository(gormDB)
	socialAccountRepo := infraRepo.NewSocialAccountGormRepository(gormDB)
	socialPostRepo := infraRepo.NewSocialPostGormRepository(gormDB)
	analyticsRepo := infraRepo.NewAnalyticsGormRepository(gormDB)

	//AIと外部投稿はキーの有無で実装を選ぶ
	var generator ai.ContentGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = ai.NewOpenAIGenerator(cfg.OpenAIAPIKey, log)
	} else {
		log.Info("OPENAI_API_KEY not set, using fallback content generator")
		generator = ai.NewFallbackGenerator()
	}
	publisher := social.NewMockPublisher(log)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, txManager, userRepo, activityRepo)
	profileUC := usecase.NewProfileUsecase(userRepo, profileRepo, activityRepo)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, profileRepo, activityRepo, analyticsRepo, generator, log)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, analyticsRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, activityRepo, log)
	orderUC := usecase.NewOrderUsecase(txManager)
	paymentUC := usecase.NewPaymentUsecase(txManager, paymentRepo)
	refundUC := usecase.NewRefundUsecase(txManager)
	chatUC := usecase.NewChatUsecase(conversationRepo, messageRepo, notificationRepo, generator, log)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)
	socialUC := usecase.NewSocialUsecase(socialAccountRepo, socialPostRepo, productRepo, activityRepo, publisher, log)
	analyticsUC := usecase.NewAnalyticsUsecase(analyticsRepo)

	//Echoとルーティング
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())

	handler.NewAuthHandler(authUC).RegisterRoutes(e)
	handler.NewProfileHandler(profileUC).RegisterRoutes(e, cfg)
	handler.NewProductHandler(productUC).RegisterRoutes(e)
	handler.NewSellerProductHandler(productUC).RegisterRoutes(e, cfg)
	handler.NewCartHandler(cartUC).RegisterRoutes(e, cfg)
	handler.NewOrderHandler(checkoutUC, orderUC).RegisterRoutes(e, cfg)
	handler.NewTrackHandler(orderUC).RegisterRoutes(e)
	handler.NewPaymentHandler(paymentUC).RegisterRoutes(e, cfg)
	handler.NewRefundHandler(refundUC).RegisterRoutes(e, cfg)
	handler.NewChatHandler(chatUC).RegisterRoutes(e, cfg)
	handler.NewNotificationHandler(notificationUC).RegisterRoutes(e, cfg)
	handler.NewSocialHandler(socialUC).RegisterRoutes(e, cfg)
	handler.NewAnalyticsHandler(analyticsUC).RegisterRoutes(e, cfg)

	addr := ":8080"
	if cfg.Port != "" {
		if cfg.Port[0] != ':' {
			addr = ":" + cfg.Port
		} else {
			addr = cfg.Port
		}
	}

	log.Info("starting server", "addr", addr)
	if err := e.Start(addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
