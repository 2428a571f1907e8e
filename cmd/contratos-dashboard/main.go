package main

import (
	"fmt"
	"os"

	"github.com/nurpe/contratos-dashboard/internal/config"
	"github.com/nurpe/contratos-dashboard/internal/excel"
	"github.com/nurpe/contratos-dashboard/internal/gateway"
	httphandler "github.com/nurpe/contratos-dashboard/internal/http"
	"github.com/nurpe/contratos-dashboard/internal/logger"
	"github.com/nurpe/contratos-dashboard/internal/notify"
	"github.com/nurpe/contratos-dashboard/internal/pdf"
	"github.com/nurpe/contratos-dashboard/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	gw := gateway.New(cfg.Backend, log)
	contractService := service.NewContractService(gw, pdf.NewGenerator(), excel.NewGenerator(), cfg, log)

	scanner := notify.NewScanner(contractService, cfg.Notify.WindowDays, cfg.Notify.CronSpec, log)
	if err := scanner.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start expiry scanner")
	}
	defer scanner.Stop()

	handler := httphandler.NewHandler(contractService, scanner, log)
	router := httphandler.NewRouter(handler, cfg, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().
		Str("addr", addr).
		Str("backend", cfg.Backend.BaseURL).
		Int("warning_window_days", cfg.Contracts.WarningWindowDays).
		Msg("starting contratos dashboard")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
