package bootstrap

import (
	"maspatas/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	MaintenanceModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
