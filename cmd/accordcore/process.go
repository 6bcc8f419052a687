package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	httpadapter "github.com/PSmerkol/AccordPreprocTools/internal/adapter/http"
	kafkaadapter "github.com/PSmerkol/AccordPreprocTools/internal/adapter/kafka"
	"github.com/PSmerkol/AccordPreprocTools/internal/config"
	"github.com/PSmerkol/AccordPreprocTools/internal/fixture"
	"github.com/PSmerkol/AccordPreprocTools/internal/observability"
	"github.com/PSmerkol/AccordPreprocTools/internal/odim"
	"github.com/PSmerkol/AccordPreprocTools/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	inDir       string
	outDir      string
	publishFlag bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process every fixture bundle in a directory through dealiasing and superobing.",
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().StringVar(&inDir, "in", "", "directory of *.json fixture bundles (see cmd/genfixture)")
	processCmd.Flags().StringVar(&outDir, "out", "", "directory to write processed ODIM-H5 output files")
	processCmd.Flags().BoolVar(&publishFlag, "publish", true, "publish a ProcessingSummary event per file to Kafka")
	_ = processCmd.MarkFlagRequired("in")
	_ = processCmd.MarkFlagRequired("out")
}

func runProcess(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	logger := observability.NewLogger(settings)
	metrics := observability.NewMetrics()

	var publisher pipeline.SummaryPublisher
	if publishFlag {
		p := kafkaadapter.NewPublisher(settings, logger)
		defer p.Close()
		publisher = p
	}

	driver := pipeline.New(settings, logger, metrics, publisher)
	srv := httpadapter.NewServer(settings.HTTPAddr, driver, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("read input dir: %w", err)
	}

	var failures int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := processOne(ctx, driver, filepath.Join(inDir, entry.Name()), outDir); err != nil {
			logger.Error("file processing failed", "file", entry.Name(), "error", err)
			failures++
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	if failures > 0 {
		return fmt.Errorf("%d file(s) failed to process", failures)
	}
	return nil
}

func processOne(ctx context.Context, driver *pipeline.Driver, inPath, outDir string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	v, err := fixture.DecodeVolume(data)
	if err != nil {
		return fmt.Errorf("decode fixture: %w", err)
	}

	fileID := strings.TrimSuffix(filepath.Base(inPath), ".json")
	outPath := filepath.Join(outDir, fileID+".h5")

	out, err := odim.CreateHDF5File(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := driver.ProcessFile(ctx, fileID, v, out); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
