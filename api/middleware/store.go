package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/api/responses"
	pkgerrors "github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/errors"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/logger"
)

// StoreHeader carries the tenant of storefront and admin pricing requests.
const StoreHeader = "X-Store-Id"

// StoreContext resolves the tenant from StoreHeader and rejects requests without one.
func StoreContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(StoreHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "store context missing"))
				return
			}
			storeID, err := uuid.Parse(raw)
			if err != nil || storeID == uuid.Nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "store context invalid"))
				return
			}

			ctx := WithStoreID(r.Context(), storeID)
			if logg != nil {
				ctx = logg.WithStoreID(ctx, storeID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
