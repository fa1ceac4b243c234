package server

import (
	"github.com/google/wire"

	"github.com/reviewalyze/reviewalyze/internal/biz"
	"github.com/reviewalyze/reviewalyze/internal/data"
	"github.com/reviewalyze/reviewalyze/internal/service"
)

// ProviderSet wires the dashboard service together.
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Data providers
	data.NewAnalysisClient,
	wire.Bind(new(biz.AnalysisRepo), new(*data.AnalysisClient)),

	// UseCase providers
	biz.NewAnalyzeUseCase,

	// Service providers
	service.NewDashboardService,
)
