package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/literllyHimm/Cinewave/api/middleware"
	cartsvc "github.com/literllyHimm/Cinewave/internal/cart"
	"github.com/literllyHimm/Cinewave/internal/catalog"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
)

type stubCartService struct {
	cart        cartsvc.Cart
	checkout    cartsvc.CheckoutResult
	checkoutErr error
	lastUID     string
	lastDevice  string
}

func (s *stubCartService) Items(_ context.Context, deviceID string) (cartsvc.Cart, error) {
	s.lastDevice = deviceID
	return s.cart, nil
}

func (s *stubCartService) Add(_ context.Context, deviceID string, _ catalog.MediaType, _ catalog.Item) error {
	s.lastDevice = deviceID
	return nil
}

func (s *stubCartService) Remove(_ context.Context, deviceID string, _ int64) error {
	s.lastDevice = deviceID
	return nil
}

func (s *stubCartService) Clear(_ context.Context, deviceID string) error {
	s.lastDevice = deviceID
	return nil
}

func (s *stubCartService) Checkout(_ context.Context, uid, deviceID string) (cartsvc.CheckoutResult, error) {
	s.lastUID = uid
	s.lastDevice = deviceID
	return s.checkout, s.checkoutErr
}

func TestCartItemsUsesDeviceContext(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{}
	r := httptest.NewRequest("GET", "/cart", nil)
	r = r.WithContext(middleware.WithDeviceID(r.Context(), "dev-1"))
	w := httptest.NewRecorder()
	CartItems(svc, nil)(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.lastDevice != "dev-1" {
		t.Fatalf("device id not forwarded, got %q", svc.lastDevice)
	}
	if !strings.Contains(w.Body.String(), `"lines":[]`) {
		t.Fatalf("empty cart should serialize with an empty lines array: %s", w.Body.String())
	}
}

func TestCartAddDecodesPayload(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{}
	body := `{"media_type":"movie","item":{"id":42,"title":"Heat"}}`
	r := httptest.NewRequest("POST", "/cart", strings.NewReader(body))
	r = r.WithContext(middleware.WithDeviceID(r.Context(), "dev-1"))
	w := httptest.NewRecorder()
	CartAdd(svc, nil)(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCartCheckoutForwardsIdentity(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{}
	r := httptest.NewRequest("POST", "/cart/checkout", nil)
	ctx := middleware.WithUser(r.Context(), "uid-1", "a@b.com", "Ada")
	ctx = middleware.WithDeviceID(ctx, "dev-1")
	w := httptest.NewRecorder()
	CartCheckout(svc, nil)(w, r.WithContext(ctx))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.lastUID != "uid-1" || svc.lastDevice != "dev-1" {
		t.Fatalf("identity not forwarded: uid=%q device=%q", svc.lastUID, svc.lastDevice)
	}
}

func TestCartCheckoutMapsStateConflict(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{checkoutErr: pkgerrors.New(pkgerrors.CodeStateConflict, "everything in the cart is already purchased")}
	r := httptest.NewRequest("POST", "/cart/checkout", nil)
	w := httptest.NewRecorder()
	CartCheckout(svc, nil)(w, r.WithContext(middleware.WithUser(r.Context(), "uid-1", "", "")))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}
