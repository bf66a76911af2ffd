package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/api/middleware"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/api/responses"
	pkgerrors "github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/errors"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/logger"
)

// requireStore writes a 403 and returns false when the request carries no tenant.
func requireStore(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (uuid.UUID, bool) {
	storeID := middleware.StoreIDFromContext(r.Context())
	if storeID == uuid.Nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "store context missing"))
		return uuid.Nil, false
	}
	return storeID, true
}
