package apiroutes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/signit/go-signit-server/api"
	"github.com/signit/go-signit-server/api/interceptors"
	"github.com/signit/go-signit-server/global"
	"github.com/signit/go-signit-server/metrics"
	"github.com/signit/go-signit-server/repository"
	"github.com/signit/go-signit-server/services"
	"github.com/signit/go-signit-server/types"
)

// REST API routes
func ConfigRoutes(router *gin.Engine, userDir *repository.UserDirectory, env *types.Environment) *gin.Engine {
	// init metrics
	if global.Conf.Prometheus.Enabled {

		metrics.InitMetrics()

		authorized := router.Group("/metrics", gin.BasicAuth(gin.Accounts{
			global.Conf.Prometheus.Username: global.Conf.Prometheus.Password,
		}))

		authorized.GET("", gin.WrapH(promhttp.Handler()))
	}

	// SERVICE definitions
	userService := services.NewUserService(userDir)
	tokenService := services.NewAccessTokenService(services.NewRedisCache(env.RedisClient), false)
	envelopeService := services.NewEnvelopeService(tokenService, false)

	// API definitions
	accountApi := api.NewUserAccountApi(userService)
	envelopeApi := api.NewEnvelopeApi(envelopeService)
	healthApi := api.NewHealthCheckApi()

	// PUBLIC API (registration and login issue the session cookie)
	publicApi := router.Group("/user", metrics.MetricsMiddleware(), interceptors.RateLimitMiddleware())
	{
		publicApi.POST("/", accountApi.Register)
		publicApi.POST("/login", accountApi.Login)
	}

	// SESSION AUTHENTICATED API
	envelopeRoutes := router.Group("/envelope", metrics.MetricsMiddleware(), interceptors.SessionMiddleware())
	{
		envelopeRoutes.POST("/", envelopeApi.CreateEmbeddedEnvelope)
	}

	router.GET("/api/healthcheck", healthApi.HealthCheck)

	return router
}
