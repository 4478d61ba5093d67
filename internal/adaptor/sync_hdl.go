package adaptor

import (
	"net/http"

	"salon-sync/internal/dto/response"
	"salon-sync/internal/usecase"
	"salon-sync/pkg/utils"

	"go.uber.org/zap"
)

type SyncHandler struct {
	service usecase.SyncService
	log     *zap.Logger
}

func NewSyncHandler(service usecase.SyncService, log *zap.Logger) *SyncHandler {
	return &SyncHandler{
		service: service,
		log:     log.With(zap.String("handler", "sync")),
	}
}

// TriggerSync handles POST /api/sync
func (h *SyncHandler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SyncPending(r.Context()); err != nil {
		h.log.Error("Sync pass failed", zap.Error(err))
		utils.ResponseInternalError(w, "Sync pass failed")
		return
	}

	utils.ResponseAccepted(w, "sync pass complete", nil)
}

// RetryFailed handles POST /api/admin/sync/retry-failed (admin only)
func (h *SyncHandler) RetryFailed(w http.ResponseWriter, r *http.Request) {
	requeued, err := h.service.RetryFailed(r.Context())
	if err != nil {
		h.log.Error("Retry failed bookings failed", zap.Error(err))
		utils.ResponseInternalError(w, "Retry failed bookings failed")
		return
	}

	utils.ResponseSuccess(w, "success", response.SyncResultResponse{Requeued: requeued})
}
