package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/notekit/notekit/backend/go-services/handlers"
	"github.com/notekit/notekit/backend/go-services/internal/assist"
	"github.com/notekit/notekit/backend/go-services/internal/config"
	"github.com/notekit/notekit/backend/go-services/internal/database"
	"github.com/notekit/notekit/backend/go-services/internal/note/handler"
	"github.com/notekit/notekit/backend/go-services/internal/note/repository"
	"github.com/notekit/notekit/backend/go-services/internal/note/service"
	"github.com/notekit/notekit/backend/go-services/internal/oidc"
	"github.com/notekit/notekit/backend/go-services/pkg/logger"
	"github.com/notekit/notekit/backend/go-services/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, migrate bool) (repository.Repository, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		if migrate {
			sqlDB := database.SQLFromPool(pool)
			applied, err := database.ApplyMigrations(ctx, sqlDB, database.DialectPostgres)
			_ = sqlDB.Close()
			if err != nil {
				pool.Close()
				return nil, nil, err
			}
			logMigrations(applied)
		}
		return repository.NewPostgresRepo(pool), pool.Close, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if migrate {
			applied, err := database.ApplyMigrations(ctx, db, database.DialectSQLite)
			if err != nil {
				_ = db.Close()
				return nil, nil, err
			}
			logMigrations(applied)
		}
		return repository.NewSQLiteRepo(db), func() { _ = db.Close() }, nil

	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		repo, err := repository.NewMongoRepo(ctx, client.Database(cfg.MongoDB.Database).Collection("notes"))
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		return repo, closeFn, nil

	case config.DriverMemory:
		logger.Warnf("using in-memory note store; notes are lost on restart")
		return repository.NewMemoryRepo(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown DATABASE_DRIVER %q", cfg.Database.Driver)
}

func logMigrations(applied []string) {
	if len(applied) == 0 {
		logger.Debugf("schema up to date")
		return
	}
	for _, v := range applied {
		logger.Infof("applied migration %s", v)
	}
}

// newVerifier picks the gateway verifier: OIDC when an issuer is configured,
// HMAC when only a shared secret is. Nil means the identity header is trusted as-is.
func newVerifier(ctx context.Context, cfg *config.Config) (middleware.Verifier, error) {
	switch {
	case cfg.Auth.OIDCIssuer != "":
		v, err := oidc.NewVerifier(ctx, cfg.Auth.OIDCIssuer, cfg.Auth.OIDCClientID)
		if err != nil {
			return nil, err
		}
		logger.Infof("auth gateway: OIDC verifier for issuer %s", cfg.Auth.OIDCIssuer)
		return v, nil
	case cfg.Auth.JWTSecret != "":
		v, err := oidc.NewHMACVerifier(cfg.Auth.JWTSecret)
		if err != nil {
			return nil, err
		}
		logger.Infof("auth gateway: HS256 verifier")
		return v, nil
	}
	logger.Infof("auth gateway disabled; trusting %s from upstream", cfg.Auth.IdentityHeader)
	return nil, nil
}

func newRouter(cfg *config.Config, notes service.Service, assistant *assist.Client, ver middleware.Verifier) *gin.Engine {
	header := cfg.Auth.IdentityHeader

	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(cfg.Server.CORSOrigin, header), middleware.RequestLogger(header))

	handlers.RegisterHealth(r, notes, assistant.Configured)
	handlers.RegisterSwagger(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	if ver != nil {
		api.Use(middleware.GatewayMiddleware(ver, header))
	}
	handler.RegisterRoutes(api, notes, assistant, header)
	return r
}
