//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/skylens/photogenic-sky/internal/bootstrap"
	"github.com/skylens/photogenic-sky/internal/domain/sensor"
	"github.com/skylens/photogenic-sky/internal/infra/astro"
	"github.com/skylens/photogenic-sky/internal/infra/config"
	httpiface "github.com/skylens/photogenic-sky/internal/interface/http"
	"github.com/skylens/photogenic-sky/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSensorConfig,
		provideGeocoder,
		provideWeatherClient,
		provideLocationRepository,
		provideSnapshotStore,
		provideCollector,
		astro.NewCalculator,
		sensor.NewService,
		wire.Bind(new(sensor.SunCalculator), new(*astro.Calculator)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
