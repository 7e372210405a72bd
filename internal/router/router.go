package router

import (
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/aula-api/api/swagger"
	"github.com/noah-isme/aula-api/internal/handler"
	internalmiddleware "github.com/noah-isme/aula-api/internal/middleware"
	"github.com/noah-isme/aula-api/internal/service"
	"github.com/noah-isme/aula-api/pkg/config"
	"github.com/noah-isme/aula-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/aula-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/aula-api/pkg/middleware/requestid"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Students *service.StudentService
	Weather  *service.WeatherService
	Export   *service.ExportService
	Metrics  *service.MetricsService
}

// New builds the gin engine with middleware, API routes and the SPA fallback.
func New(cfg *config.Config, svc Services, logr *zap.Logger) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(svc.Metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	studentHandler := handler.NewStudentHandler(svc.Students, svc.Export)
	weatherHandler := handler.NewWeatherHandler(svc.Weather)
	metricsHandler := handler.NewMetricsHandler(svc.Metrics)
	staticHandler := handler.NewStaticHandler(cfg.PublicDir)

	r.GET("/weather", weatherHandler.Current)

	api := r.Group("/api")
	api.GET("/health", metricsHandler.Health)
	api.GET("/students", studentHandler.List)
	api.POST("/students", studentHandler.Create)
	api.GET("/students/export", studentHandler.Export)

	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(staticHandler.Serve)

	return r
}
