package di

import (
	"net/http"

	"markbase-backend/application/services"
	"markbase-backend/infrastructure/config"
	"markbase-backend/pkg/auth"
	"markbase-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	BookmarkService *services.BookmarkService
	TempService     *services.TempBookmarkService
	JWTValidator    *auth.JWTValidator
	Metrics         *observability.Metrics
	Handler         http.Handler
}
