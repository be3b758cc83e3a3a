package main

import (
	"log/slog"

	"github.com/stmtx/statement-extractor/internal/domain/statement/coercer"
	"github.com/stmtx/statement-extractor/internal/domain/statement/handler"
	"github.com/stmtx/statement-extractor/internal/domain/statement/locator"
	"github.com/stmtx/statement-extractor/internal/domain/statement/service"
	"github.com/stmtx/statement-extractor/pkg/config"
	"github.com/stmtx/statement-extractor/pkg/pdftext"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	Renderer *pdftext.Renderer

	StatementService *service.Service

	StatementHandler *handler.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	deps.initServices()
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initServices initializes the renderer and the extraction service
func (d *Dependencies) initServices() {
	d.Renderer = pdftext.NewRenderer()

	markers := locator.MarkerSet{
		Section:      d.Config.Markers.Section,
		ColumnHeader: d.Config.Markers.ColumnHeader,
		Subtotal:     d.Config.Markers.Subtotal,
		NextSection:  d.Config.Markers.NextSection,
		BuyKeyword:   d.Config.Markers.BuyKeyword,
		SellKeyword:  d.Config.Markers.SellKeyword,
	}
	opts := coercer.Options{
		StrictFieldOrder:    d.Config.Markers.StrictFieldOrder,
		RejectUnknownAction: d.Config.Markers.RejectUnknownAction,
	}

	d.StatementService = service.New(d.Renderer, markers, opts, d.Logger)

	d.Logger.Info("services initialized")
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() {
	d.StatementHandler = handler.New(
		d.StatementService,
		d.Config.Server.MaxUploadBytes,
		d.Logger,
	)

	d.Logger.Info("handlers initialized")
}
