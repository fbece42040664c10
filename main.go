/* main.go
 * The "main" method for running the league API server. Configuration is read from the environment and .env, see
 * `config/config.go` for the variables
 * Usage: go run main.go -port=3000 -db="axe_throwing"
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"axe-throwing-api/api/api"
	"axe-throwing-api/api/store"
	"axe-throwing-api/config"
	"axe-throwing-api/web"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	//Flags
	envPtr := flag.String("env", ".env", "Path of the .env file to load")
	portPtr := flag.Int("port", 0, "Port to listen on, overrides PORT")
	dbPtr := flag.String("db", "", "Database name, overrides MONGODB_DB")
	levelPtr := flag.String("log-level", "", "Log level (debug, info, warn, error), overrides LOG_LEVEL")

	flag.Parse()

	cfg, err := config.Load(*envPtr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *portPtr != 0 {
		cfg.Port = *portPtr
	}
	if *dbPtr != "" {
		cfg.DBName = *dbPtr
	}
	if *levelPtr != "" {
		level, err := zerolog.ParseLevel(*levelPtr)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -log-level flag")
		}
		cfg.LogLevel = level
	}

	logger := cfg.NewLogger(os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	s, err := store.NewStore(ctx, cfg.DBName, cfg.MongoURI)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from db")
		}
	}()

	a := api.NewAPI(s, clock.New(), logger)
	server := web.NewServer(web.Config{
		Addr:   cfg.Addr(),
		API:    a,
		Logger: logger,
	})

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Start the web server
	serveErr := make(chan error, 1)
	wg.Add(1)
	go func() {
		serveErr <- server.ListenAndServe(shutdown, wg)
	}()

	// Catch ctrl-c and SIGTERM so the server and db connection shut down properly
	sigChannel := make(chan os.Signal, 2)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-sigChannel:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serveErr:
		if err != nil {
			logger.Error().Err(err).Msg("web server stopped")
			exitCode = 1
		}
	}
	close(shutdown)

	if err := waitTimeout(wg, 15*time.Second); err != nil {
		logger.Warn().Msg("timed out waiting for proper shutdown")
		exitCode = 255
	}
	logger.Info().Msg("server shutdown")

	if exitCode != 0 {
		// os.Exit skips deferred calls
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = s.Disconnect(ctx)
		cancel()
		os.Exit(exitCode)
	}
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
