package router

import (
	"github.com/emartsoft/login-service/internal/application"
	"github.com/emartsoft/login-service/internal/container"
	"github.com/emartsoft/login-service/internal/infrastructure/elastic"
	pginfra "github.com/emartsoft/login-service/internal/infrastructure/postgres"
	handlers "github.com/emartsoft/login-service/internal/interface/http"
	"github.com/emartsoft/login-service/internal/router/modules"
	"github.com/emartsoft/login-service/pkg/helpers"
)

func buildAuthModule() *modules.AuthModule {
	repo := pginfra.NewAccountRepository(container.GetPGPool())
	audit := elastic.NewAuditIndexer(
		container.GetES(),
		container.GetConfig().ESAuditIndex,
		container.GetLogger(),
	)

	service := application.NewService(
		repo,
		helpers.NewBcryptHasher(0),
		container.GetJWT(),
		container.GetLogger(),
		container.GetRedis(),
		container.GetRabbitPub(),
		audit,
	)

	handler := handlers.NewAuthHandler(service, container.GetLogger())

	return modules.NewAuthModule(handler, container.GetJWT())
}

// InitModules initializes all application modules and registers them
// with the router registry. Called once during startup.
func InitModules(r *Registry) {
	r.Add(buildAuthModule())
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
