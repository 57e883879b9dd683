// Package primary defines the primary ports (driving interfaces) of
// the application. UI flows, the CLI and the HTTP boundary depend on
// these interfaces; the app package implements them.
package primary

import "context"

// OrderService defines the primary port for order operations.
type OrderService interface {
	// CreateOrder validates a gift bundle and persists a PENDING order
	// for it. The referenced gifts are not mutated.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error)

	// ConfirmOrder flips a PENDING order to COMPLETE and cascades the
	// claim onto every gift in the bundle. Preconditions are checked
	// server-side and are not trusted from the client. When some gifts
	// cannot be claimed the order stays COMPLETE and the error is a
	// *order.PartialClaimFailure naming the exceptions.
	ConfirmOrder(ctx context.Context, orderPublicID, approverPublicID string) (*Order, error)

	// GetOrder retrieves an order by publicId.
	GetOrder(ctx context.Context, publicID string) (*Order, error)

	// GetOrderByCode retrieves an order by its business-level code.
	GetOrderByCode(ctx context.Context, orderCode string) (*Order, error)

	// ListOrders lists orders with optional filters.
	ListOrders(ctx context.Context, filters OrderFilters) ([]*Order, error)

	// Reconcile reports COMPLETE orders whose gifts contradict the
	// confirmed claim, for manual correction.
	Reconcile(ctx context.Context) ([]*ReconciliationRow, error)
}

// CreateOrderRequest contains parameters for creating an order.
type CreateOrderRequest struct {
	ApplicantPublicID string
	GiftPublicIDs     []string
	OrderCode         string
	ConfirmationCode  string
}

// CreateOrderResponse contains the result of creating an order.
type CreateOrderResponse struct {
	OrderPublicID string
	Order         *Order
}

// Order is the external view of an order. All references are publicIds.
type Order struct {
	PublicID         string
	OrderCode        string
	ApplicantID      string
	GiftIDs          []string
	ConfirmationCode string
	ConfirmedByID    string
	ConfirmedAt      string
	Status           string
	CreatedAt        string
}

// OrderFilters contains filter options for listing orders.
type OrderFilters struct {
	Status string
	Limit  int
}

// ReconciliationRow names one gift whose claim contradicts a COMPLETE
// order it belongs to.
type ReconciliationRow struct {
	OrderPublicID   string
	GiftPublicID    string
	WantApplicantID string
	GotApplicantID  string
	GotOrderID      string
}
