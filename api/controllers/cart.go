package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/api/responses"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/api/validators"
	cartsvc "github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/cart"
	pkgerrors "github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/errors"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/logger"
)

type quoteCartRequest struct {
	Items []quoteCartItemPayload `json:"items" validate:"required,min=1,max=200,dive"`
}

type quoteCartItemPayload struct {
	ProductID uuid.UUID      `json:"product_id" validate:"required"`
	Quantity  int            `json:"quantity" validate:"gte=0,max=100000"`
	Bundle    map[string]int `json:"bundle,omitempty" validate:"omitempty,dive,gte=0,max=100000"`
}

func (p quoteCartRequest) toInput() cartsvc.QuoteCartInput {
	items := make([]cartsvc.QuoteCartItem, 0, len(p.Items))
	for _, item := range p.Items {
		line := cartsvc.QuoteCartItem{ProductID: item.ProductID, Quantity: item.Quantity}
		if item.Bundle != nil {
			line.Bundle = &cartsvc.Bundle{Composition: item.Bundle}
		}
		items = append(items, line)
	}
	return cartsvc.QuoteCartInput{Items: items}
}

// CartQuote prices the submitted cart lines for the current store.
func CartQuote(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		storeID, ok := requireStore(w, r, logg)
		if !ok {
			return
		}

		var payload quoteCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.QuoteCart(r.Context(), storeID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
