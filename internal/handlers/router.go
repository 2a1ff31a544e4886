package handlers

import (
	"car-catalog-api/internal/middleware"
	"car-catalog-api/internal/repository"
	"car-catalog-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig carries what the router needs from the process configuration
type RouterConfig struct {
	CORSAllowedOrigin string
	NotFoundStatus    int
	Debug             bool
}

// NewRouter wires the HTTP surface on top of repo
func NewRouter(repo repository.CarRepository, cfg RouterConfig, logger *zap.Logger) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	carService := service.NewCarService(repo, logger)
	carHandler := NewCarHandler(carService, cfg.NotFoundStatus, logger)
	rootHandler := NewRootHandler()
	healthHandler := NewHealthHandler(repo)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigin))

	router.GET("/", rootHandler.Hello)
	router.GET("/names", rootHandler.Names)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cars := router.Group("/cars")
	{
		cars.GET("", carHandler.ListCars)
		cars.POST("", carHandler.CreateCar)
		cars.GET("/year/:year", carHandler.CarsByYear)
		cars.GET("/price/:price", carHandler.CarsByMaxPrice)
		cars.GET("/:id", carHandler.GetCar)
	}

	return router
}
