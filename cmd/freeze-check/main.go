package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mikey/frozen-screen-detector/internal/adapters/monitor"
	"github.com/mikey/frozen-screen-detector/internal/core"
	"github.com/mikey/frozen-screen-detector/internal/di"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: freeze-check [flags] <stream-url>")
		os.Exit(1)
	}
	url := flag.Arg(0)

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(func(logger *zap.Logger, service *core.FreezeDetectionService) {
		defer logger.Sync()

		logger.Debug("Checking stream", zap.String("url", url))

		startTime := time.Now()
		result := service.CheckStream(context.Background(), url)
		logger.Debug("Check finished", zap.Duration("duration", time.Since(startTime)))

		monitor.PrintResult(result, flags.Verbose)

		if result.IsFrozen {
			os.Exit(2)
		}
	}); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}
