package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/listeners"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/metrics"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
	"gearguard/pkg/websocket"
)

type Loggers struct {
	Main         *zap.Logger
	Auth         *zap.Logger
	Request      *zap.Logger
	Notification *zap.Logger
}

// NewLoggers derives one named logger per subsystem from base.
func NewLoggers(base *zap.Logger) *Loggers {
	return &Loggers{
		Main:         base,
		Auth:         base.Named("auth"),
		Request:      base.Named("request"),
		Notification: base.Named("notification"),
	}
}

// Deps are the long-lived objects owned by main.
type Deps struct {
	DB     *pgxpool.Pool
	Redis  *redis.Client
	JWT    service.JWTService
	Bus    *eventbus.Bus
	Hub    *websocket.Hub
	Config *config.Config
}

func InitRouter(e *echo.Echo, deps Deps, loggers *Loggers) {
	loggers.Main.Info("InitRouter: building routes")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(deps.JWT, loggers.Auth)
	cfg := deps.Config

	// repositories
	cacheRepo := repositories.NewRedisCacheRepository(deps.Redis)
	userRepo := repositories.NewUserRepository(deps.DB, loggers.Main)
	teamRepo := repositories.NewTeamRepository(deps.DB, loggers.Main)
	equipmentRepo := repositories.NewEquipmentRepository(deps.DB, loggers.Main)
	categoryRepo := repositories.NewCategoryRepository(deps.DB, loggers.Main)
	workCenterRepo := repositories.NewWorkCenterRepository(deps.DB, loggers.Main)
	requestRepo := repositories.NewMaintenanceRequestRepository(deps.DB, loggers.Request)
	trackingLogRepo := repositories.NewTrackingLogRepository(deps.DB, loggers.Request)
	requirementRepo := repositories.NewRequirementRepository(deps.DB, loggers.Request)
	notificationRepo := repositories.NewNotificationRepository(deps.DB, loggers.Notification)
	reportRepo := repositories.NewReportRepository(deps.DB, loggers.Main)

	// services
	base := services.NewBaseService(cacheRepo, loggers.Main)
	requestBase := services.NewBaseService(cacheRepo, loggers.Request)

	notificationService := services.NewNotificationService(services.NewBaseService(cacheRepo, loggers.Notification), notificationRepo, deps.Bus)
	wsNotifications := services.NewWebSocketNotificationService(deps.Hub, loggers.Notification)
	listeners.NewNotificationListener(wsNotifications, loggers.Notification).Register(deps.Bus)

	roles := services.NewRoleDirectory(base, userRepo, cfg.Lifecycle.RoleCacheTTL)
	lifecycle := services.NewRequestLifecycleService(
		requestBase, requestRepo, equipmentRepo, teamRepo, userRepo, trackingLogRepo, requirementRepo,
		roles, notificationService, services.StagePolicy{Strict: cfg.Lifecycle.StrictTransitions},
	)
	equipmentService := services.NewEquipmentService(base, equipmentRepo, teamRepo, categoryRepo, lifecycle, notificationService)
	teamService := services.NewTeamService(base, teamRepo, userRepo, requestRepo, equipmentRepo)
	userService := services.NewUserService(base, userRepo, teamRepo, requestRepo, roles, notificationService)
	categoryService := services.NewCategoryService(base, categoryRepo, equipmentRepo, requestRepo)
	workCenterService := services.NewWorkCenterService(base, workCenterRepo, requestRepo)
	boardService := services.NewBoardService(requestBase, lifecycle, requestRepo, equipmentRepo, trackingLogRepo, requirementRepo)
	reportService := services.NewReportService(base, reportRepo)
	authService := services.NewAuthService(userRepo, cacheRepo, deps.JWT, loggers.Auth, cfg.Auth)
	importer := services.NewEquipmentImporter(equipmentService, loggers.Main)

	// routers
	runAuthRouter(api, controllers.NewAuthController(authService, loggers.Auth), authMW)

	secureGroup := api.Group("", authMW.Auth)
	runRequestRouter(secureGroup, controllers.NewRequestController(lifecycle, loggers.Request), authMW)
	runEquipmentRouter(secureGroup, controllers.NewEquipmentController(equipmentService, boardService, importer, loggers.Main), authMW)
	runTeamRouter(secureGroup, controllers.NewTeamController(teamService, loggers.Main), authMW)
	runUserRouter(secureGroup, controllers.NewUserController(userService, loggers.Main), authMW)
	runCatalogRouter(secureGroup,
		controllers.NewCategoryController(categoryService, loggers.Main),
		controllers.NewWorkCenterController(workCenterService, loggers.Main),
		authMW,
	)
	runNotificationRouter(secureGroup, controllers.NewNotificationController(notificationService, loggers.Notification), authMW)
	runBoardRouter(secureGroup, controllers.NewBoardController(boardService, loggers.Request))
	runReportRouter(secureGroup, controllers.NewReportController(reportService, loggers.Main), authMW)

	wsCtrl := controllers.NewWebSocketController(deps.Hub, loggers.Notification)
	e.GET("/ws", wsCtrl.ServeWs, authMW.Auth)
	metrics.Register(e, "/metrics")

	loggers.Main.Info("InitRouter: routes ready")
}
