package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/api/responses"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/api/validators"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/catalog"
	pkgerrors "github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/errors"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/logger"
)

// ProductPrice returns the price of a product at ?quantity=N along with the next-tier hint.
func ProductPrice(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		storeID, ok := requireStore(w, r, logg)
		if !ok {
			return
		}

		productID, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "productId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		quantity, err := validators.ParseQueryInt(r, "quantity", 1, 1, maxQuantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, productID.String())
		}

		price, err := svc.QuoteProductPrice(ctx, storeID, productID, quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, price)
	}
}
