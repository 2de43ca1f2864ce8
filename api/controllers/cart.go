package controllers

import (
	"net/http"

	"github.com/literllyHimm/Cinewave/api/middleware"
	"github.com/literllyHimm/Cinewave/api/responses"
	"github.com/literllyHimm/Cinewave/api/validators"
	cartsvc "github.com/literllyHimm/Cinewave/internal/cart"
	"github.com/literllyHimm/Cinewave/internal/catalog"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
	"github.com/literllyHimm/Cinewave/pkg/logger"
)

type addCartItemPayload struct {
	MediaType string       `json:"media_type"`
	Item      catalog.Item `json:"item" validate:"required"`
}

// CartItems returns the device's cart.
func CartItems(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		cart, err := svc.Items(ctx, middleware.DeviceIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if cart.Lines == nil {
			cart.Lines = []cartsvc.Line{}
		}
		responses.WriteSuccess(w, cart)
	}
}

// CartAdd puts an item in the device's cart.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload addCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		deviceID := middleware.DeviceIDFromContext(ctx)
		if err := svc.Add(ctx, deviceID, catalog.MediaType(payload.MediaType), payload.Item); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"id": payload.Item.ID})
	}
}

// CartRemove drops an item from the device's cart.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		itemID, err := int64Param(r, "itemID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		deviceID := middleware.DeviceIDFromContext(ctx)
		if err := svc.Remove(ctx, deviceID, itemID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": itemID})
	}
}

// CartClear empties the device's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		deviceID := middleware.DeviceIDFromContext(ctx)
		if err := svc.Clear(ctx, deviceID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// CartCheckout purchases the cart's not-yet-owned items.
func CartCheckout(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		uid := middleware.UserIDFromContext(ctx)
		deviceID := middleware.DeviceIDFromContext(ctx)
		result, err := svc.Checkout(ctx, uid, deviceID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
