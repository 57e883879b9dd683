// Package api exposes the order workflow over HTTP. Routes address
// entities by publicId only; internal row keys never appear in a URL
// or a response body. Callers are untrusted (QR-driven mobile
// lookups), so every precondition is re-checked by the service layer
// regardless of what the client claims.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/giftdesk/internal/app"
	"github.com/example/giftdesk/internal/core/claim"
	"github.com/example/giftdesk/internal/core/order"
	"github.com/example/giftdesk/internal/ports/primary"
	"github.com/example/giftdesk/internal/ports/secondary"
)

// Server holds the HTTP handlers for the order workflow.
type Server struct {
	orders primary.OrderService
	gifts  primary.GiftService
}

// NewServer creates an HTTP server over the given services.
func NewServer(orders primary.OrderService, gifts primary.GiftService) *Server {
	return &Server{orders: orders, gifts: gifts}
}

// Routes builds the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/orders", s.handleCreateOrder)
	r.Get("/orders/{publicId}", s.handleGetOrder)
	r.Post("/orders/{publicId}/confirm", s.handleConfirmOrder)
	r.Get("/gifts/{publicId}", s.handleGetGift)

	return r
}

type createOrderReq struct {
	ApplicantPublicID string   `json:"applicantPublicId"`
	GiftPublicIDs     []string `json:"giftPublicIds"`
	OrderCode         string   `json:"orderId"`
	ConfirmationCode  string   `json:"confirmationCode"`
}

type confirmOrderReq struct {
	ApproverPublicID string `json:"approverPublicId"`
}

type orderResp struct {
	PublicID      string   `json:"publicId"`
	OrderCode     string   `json:"orderId"`
	ApplicantID   string   `json:"applicantPublicId"`
	GiftIDs       []string `json:"giftPublicIds"`
	ConfirmedByID string   `json:"confirmedByPublicId,omitempty"`
	ConfirmedAt   string   `json:"confirmedAt,omitempty"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"createdAt"`
}

type giftResp struct {
	PublicID    string `json:"publicId"`
	OwnerID     string `json:"ownerPublicId"`
	ApplicantID string `json:"applicantPublicId,omitempty"`
	OrderID     string `json:"orderPublicId,omitempty"`
}

func toOrderResp(o *primary.Order) orderResp {
	return orderResp{
		PublicID:      o.PublicID,
		OrderCode:     o.OrderCode,
		ApplicantID:   o.ApplicantID,
		GiftIDs:       o.GiftIDs,
		ConfirmedByID: o.ConfirmedByID,
		ConfirmedAt:   o.ConfirmedAt,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}

type errorResp struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// partialClaimResp is the distinct envelope for a confirmation that
// completed the order but could not claim every gift. It is never the
// plain order payload: consumers must see the anomaly.
type partialClaimResp struct {
	Error         string   `json:"error"`
	Kind          string   `json:"kind"`
	OrderPublicID string   `json:"orderPublicId"`
	ClaimedGifts  []string `json:"claimedGifts"`
	FailedGifts   []string `json:"failedGifts"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid JSON body")
		return
	}

	resp, err := s.orders.CreateOrder(r.Context(), primary.CreateOrderRequest{
		ApplicantPublicID: req.ApplicantPublicID,
		GiftPublicIDs:     req.GiftPublicIDs,
		OrderCode:         req.OrderCode,
		ConfirmationCode:  req.ConfirmationCode,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResp(resp.Order))
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.GetOrder(r.Context(), chi.URLParam(r, "publicId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResp(o))
}

func (s *Server) handleConfirmOrder(w http.ResponseWriter, r *http.Request) {
	var req confirmOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid JSON body")
		return
	}
	if req.ApproverPublicID == "" {
		writeError(w, http.StatusBadRequest, "validation", "approverPublicId is required")
		return
	}

	o, err := s.orders.ConfirmOrder(r.Context(), chi.URLParam(r, "publicId"), req.ApproverPublicID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResp(o))
}

func (s *Server) handleGetGift(w http.ResponseWriter, r *http.Request) {
	g, err := s.gifts.GetGift(r.Context(), chi.URLParam(r, "publicId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, giftResp{
		PublicID:    g.PublicID,
		OwnerID:     g.OwnerID,
		ApplicantID: g.ApplicantID,
		OrderID:     g.OrderID,
	})
}

// writeServiceError maps domain errors onto the HTTP taxonomy.
func writeServiceError(w http.ResponseWriter, err error) {
	var pcf *order.PartialClaimFailure
	if errors.As(err, &pcf) {
		writeJSON(w, http.StatusConflict, partialClaimResp{
			Error:         pcf.Error(),
			Kind:          "partial_claim_failure",
			OrderPublicID: pcf.OrderID,
			ClaimedGifts:  pcf.Claimed,
			FailedGifts:   pcf.Failed,
		})
		return
	}

	var validation *app.ValidationError
	var duplicate *order.DuplicateGiftError
	var selfApproval *order.SelfApprovalError
	var alreadyClaimed *claim.AlreadyClaimedError
	switch {
	case errors.As(err, &validation), errors.Is(err, order.ErrEmptyBundle), errors.As(err, &duplicate):
		writeError(w, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, secondary.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, order.ErrAlreadyConfirmedOrNotFound),
		errors.As(err, &selfApproval),
		errors.As(err, &alreadyClaimed):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorResp{Error: msg, Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
