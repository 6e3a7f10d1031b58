package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"

	"github.com/gw0212/maplink-manager/internal/app"
	"github.com/gw0212/maplink-manager/internal/config"
	"github.com/gw0212/maplink-manager/internal/logger"
	"github.com/rs/zerolog/log"
)

var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

func writeHeapProfile(path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to create heap profile")
		return
	}
	defer f.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Error().Err(err).Msg("Failed to write heap profile")
	}
}

func main() {
	cfg := config.NewConfig()

	logger.InitLogger(cfg.LogLevel)

	if cfg.MaxProcs > 0 {
		runtime.GOMAXPROCS(cfg.MaxProcs)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.NewApp(cfg)
	err := application.Run(ctx)

	if *memprofile != "" {
		writeHeapProfile(*memprofile)
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Error running application")
	}
}
