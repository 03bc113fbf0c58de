package main

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/signit/go-signit-server/apiroutes"
	"github.com/signit/go-signit-server/global"
	"github.com/signit/go-signit-server/types"
)

func loadServerSessionKeys(conf global.Config) {
	serverKeysBytes, err := os.ReadFile(conf.Session.ServerKeysPath)
	if err != nil {
		panic(err)
	}
	var serverKeysJson types.ServerKeys
	err = json.Unmarshal(serverKeysBytes, &serverKeysJson)
	if err != nil {
		panic(err)
	}
	decodedPrivBytes, err := base64.StdEncoding.DecodeString(serverKeysJson.PrivateKey)
	if err != nil {
		panic(fmt.Sprintf("Failed to decode servers private key %s", err.Error()))
	}
	// The public key is the last 32 bytes of the private key
	publicKeyBytes := decodedPrivBytes[32:]

	global.PublicKey = ed25519.PublicKey(publicKeyBytes)
	global.PrivateKey = ed25519.PrivateKey(decodedPrivBytes)
	global.SessionKeysCreated = serverKeysJson.Created
}

func main() {
	var (
		configFile string
	)
	// configuration file optional path. Default: current dir with filename conf.yaml
	flag.StringVar(&configFile, "c", "conf.yaml", "Configuration file path.")
	flag.StringVar(&configFile, "config", "conf.yaml", "Configuration file path.")
	flag.Usage = usage
	flag.Parse()

	// loading configuration file
	err := global.LoadConfig(configFile)
	if err != nil {
		global.Logger.Log(err, "conf.yaml failed to load")
		panic("Failed to load conf.yaml")
	}

	// loads session signing keys into global variables
	loadServerSessionKeys(global.Conf)

	redisClient := initRedis(global.Conf)
	defer redisClient.Close()

	env := types.NewEnvironment(redisClient)

	// init routing (for RESTful API endpoints)
	router := newAPIRouter(&global.Conf)

	userDir := ConfigUserDirectory(&global.Conf)

	// configure routes
	router = apiroutes.ConfigRoutes(router, userDir, env)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", global.Conf.Host, global.Conf.Port),
		Handler: router,
	}

	// server wait to shutdown monitoring channels
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		global.Logger.Log("Server is ready to handle requests at", global.Conf.Port)
		if serveErr := srv.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			panic(fmt.Sprintf("%v\n", serveErr))
		}
	}()

	<-quit
	global.Logger.Log("msg", "shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if shutdownErr := srv.Shutdown(ctx); shutdownErr != nil {
		global.Logger.Log("msg", "forced shutdown", "err", shutdownErr.Error())
	}
}

// usage will print out the flag options for the server.
func usage() {
	usageStr := `Usage: signit-server [options]
	Server Options:
	-c, --config <file>              Configuration file path
`
	fmt.Printf("%s\n", usageStr)
	os.Exit(0)
}
