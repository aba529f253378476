package components

import (
	"maspatas/internal/pkg/clock"
	"maspatas/internal/usecase"
	"maspatas/internal/usecase/commands"
	"maspatas/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSaleQueries,
		queries.NewCatalogQueries,
		queries.NewUserQueries,
		queries.NewInventoryQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewSaleUseCase,
		commands.NewCatalogCommands,
		commands.NewInventoryCommands,
		commands.NewMaintenanceCommands,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
