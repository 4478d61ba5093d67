package wire

import (
	"salon-sync/internal/adaptor"
	"salon-sync/pkg/middleware"
	"salon-sync/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSync(
	r chi.Router,
	syncHandler *adaptor.SyncHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// POST /api/sync - Trigger one sync pass on demand
	r.Post("/api/sync", syncHandler.TriggerSync)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/sync", func(r chi.Router) {
		r.Use(middleware.Admin(config.Admin.TokenHash, log))

		// POST /api/admin/sync/retry-failed - Requeue failed bookings (admin)
		r.Post("/retry-failed", syncHandler.RetryFailed)
	})
}
