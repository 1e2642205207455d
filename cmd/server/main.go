package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/staffhub/staffing-backend/internal/config"
	"github.com/staffhub/staffing-backend/internal/db"
	httpHandlers "github.com/staffhub/staffing-backend/internal/http/handlers"
	httpRouter "github.com/staffhub/staffing-backend/internal/http/router"
	"github.com/staffhub/staffing-backend/internal/infrastructure/persistence"
	"github.com/staffhub/staffing-backend/internal/logger"
	"github.com/staffhub/staffing-backend/internal/service"
	"github.com/staffhub/staffing-backend/internal/storage"
	orderUC "github.com/staffhub/staffing-backend/internal/usecase/order"
	replyUC "github.com/staffhub/staffing-backend/internal/usecase/reply"
	userUC "github.com/staffhub/staffing-backend/internal/usecase/user"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.Env)

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	photoStorage, err := storage.NewPhotoStorage(cfg.PhotoStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории вне транзакций и менеджер транзакций.
	orderRepo := persistence.NewOrderRepository(dbConn)
	replyRepo := persistence.NewReplyRepository(dbConn)
	userRepo := persistence.NewUserRepository(dbConn)
	notificationRepo := persistence.NewNotificationRepository(dbConn)
	txManager := persistence.NewTxManager(dbConn)

	// Сервисы.
	authService := service.NewAuthService(userRepo, userRepo, userRepo, tokenManager)
	notificationService := service.NewNotificationService(notificationRepo)
	defer notificationService.Stop()

	// Сценарии.
	createOrder := orderUC.NewCreateOrderUseCase(txManager, notificationService)
	getOrder := orderUC.NewGetOrderUseCase(orderRepo, replyRepo)
	filterOrders := orderUC.NewFilterOrdersUseCase(orderRepo)
	takeOrder := orderUC.NewTakeOrderUseCase(txManager, notificationService)
	approveOrder := orderUC.NewApproveOrderUseCase(txManager, notificationService)
	disapproveOrder := orderUC.NewDisapproveOrderUseCase(txManager, notificationService)
	changeOrderStatus := orderUC.NewChangeOrderStatusUseCase(txManager, notificationService)

	submitReply := replyUC.NewSubmitReplyUseCase(txManager, notificationService, cfg.ReplyCutoff)
	approveReply := replyUC.NewApproveReplyUseCase(txManager, notificationService)
	disapproveReply := replyUC.NewDisapproveReplyUseCase(txManager, notificationService)
	payReply := replyUC.NewPayReplyUseCase(txManager)
	getReply := replyUC.NewGetReplyUseCase(replyRepo)
	filterReplies := replyUC.NewFilterRepliesUseCase(replyRepo, orderRepo)

	changeUserStatus := userUC.NewChangeUserStatusUseCase(txManager, notificationService)
	getUser := userUC.NewGetUserUseCase(userRepo)
	filterUsers := userUC.NewFilterUsersUseCase(userRepo)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	orderHandler := httpHandlers.NewOrderHandler(createOrder, getOrder, filterOrders, takeOrder, approveOrder, disapproveOrder, changeOrderStatus, replyRepo)
	replyHandler := httpHandlers.NewReplyHandler(submitReply, approveReply, disapproveReply, payReply, getReply, filterReplies)
	userHandler := httpHandlers.NewUserHandler(getUser, filterUsers, changeUserStatus, userRepo, userRepo)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService)
	photoHandler := httpHandlers.NewPhotoHandler(photoStorage)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	engine := httpRouter.SetupRouter(cfg, authHandler, orderHandler, replyHandler, userHandler, notificationHandler, photoHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
