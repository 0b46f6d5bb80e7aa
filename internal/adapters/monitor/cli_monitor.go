package monitor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mikey/frozen-screen-detector/internal/core"
	"go.uber.org/zap"
)

// CliMonitor reads stream URLs from standard input, one per line, and
// prints a verdict for each. Intended for manual diagnostics and shell
// pipelines.
type CliMonitor struct {
	service *core.FreezeDetectionService
	logger  *zap.Logger
	verbose bool
}

// NewCliMonitor creates a new CLI monitor
func NewCliMonitor(service *core.FreezeDetectionService, logger *zap.Logger, verbose bool) (*CliMonitor, error) {
	return &CliMonitor{
		service: service,
		logger:  logger,
		verbose: verbose,
	}, nil
}

// Start consumes URLs from stdin until EOF
func (m *CliMonitor) Start() error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		url := strings.TrimSpace(scanner.Text())
		if url == "" {
			continue
		}

		result := m.service.CheckStream(context.Background(), url)
		PrintResult(result, m.verbose)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// Stop is a no-op for the CLI monitor
func (m *CliMonitor) Stop() error {
	return nil
}

// PrintResult renders a detection result for terminal consumption
func PrintResult(result *core.DetectionResult, verbose bool) {
	fmt.Printf("URL: %s\n", result.URL)
	fmt.Printf("Frozen: %t\n", result.IsFrozen)
	if result.Reason != "" {
		fmt.Printf("Reason: %s\n", result.Reason)
	}
	if verbose {
		fmt.Printf("Category: %s\n", result.Category)
		fmt.Printf("Changed frames: %d\n", result.FramesExtracted)
		fmt.Printf("Elapsed: %v\n", result.Elapsed)
		fmt.Printf("Processing ID: %s\n", result.ProcessingID)
	}
	fmt.Printf("\n")
}
