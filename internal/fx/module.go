package fx

import "go.uber.org/fx"

var coreModules = fx.Options(
	ConfigModule,
	InfrastructureModule,
	EventsModule,
	DomainModule,
)

// AppModule reúne os módulos da API HTTP
var AppModule = fx.Options(
	coreModules,
	RoutesModule,
	ServerModule,
	SchedulerModule,
)

// WorkerAppModule reúne os módulos do worker de ingestão
var WorkerAppModule = fx.Options(
	coreModules,
	WorkerModule,
)
