// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	userstore "github.com/edcenterhq/edcenter/internal/app/store/users"
	"github.com/edcenterhq/edcenter/internal/app/system/timeouts"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// EdCenter uses it to apply configured database timeouts and to create
// the bootstrap admin account when one is configured and no user with
// that email exists yet.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  time.Duration(appCfg.DBTimeoutShortSecs) * time.Second,
		Medium: time.Duration(appCfg.DBTimeoutMediumSecs) * time.Second,
		Long:   time.Duration(appCfg.DBTimeoutLongSecs) * time.Second,
		Batch:  time.Duration(appCfg.DBTimeoutBatchSecs) * time.Second,
	})

	users := userstore.New(deps.MongoDatabase)
	return users.EnsureAdmin(ctx, appCfg.AdminEmail, appCfg.AdminName, appCfg.AdminPassword, logger)
}
