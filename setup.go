package main

import (
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/signit/go-signit-server/global"
	"github.com/signit/go-signit-server/repository"
)

// newAPIRouter creates the gin engine with recovery and CORS
func newAPIRouter(conf *global.Config) *gin.Engine {
	if conf.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(conf.Cors.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = conf.Cors.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	return router
}

// initRedis connects the shared redis client (token cache) and
// configures the rate limiter on a separate database
func initRedis(conf global.Config) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Host + ":" + strconv.Itoa(conf.Redis.Port),
		Username: conf.Redis.Username,
		Password: conf.Redis.Password,
		DB:       0,
	})

	rateLimitClient := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Host + ":" + strconv.Itoa(conf.Redis.Port),
		Username: conf.Redis.Username,
		Password: conf.Redis.Password,
		DB:       1,
	})
	global.RateLimiter = redis_rate.NewLimiter(rateLimitClient)

	return redisClient
}

// ConfigUserDirectory connects the host platforms user directory
func ConfigUserDirectory(conf *global.Config) *repository.UserDirectory {
	dirUrl := conf.CouchDB.Scheme + "://" + conf.CouchDB.Host + ":" + strconv.Itoa(conf.CouchDB.Port)
	userDir, err := repository.NewUserDirectory(dirUrl, conf.CouchDB.Username, conf.CouchDB.Password, false)
	if err != nil {
		panic(err)
	}
	return userDir
}
