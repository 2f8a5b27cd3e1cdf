package service

import (
	"checkout-service/internal/entity"
	"checkout-service/internal/notifier"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// ErrOrderCreation is the only error CreateOrder returns once the request is valid.
var ErrOrderCreation = errors.New("order creation failed")

const eventTimeout = 2 * time.Second

// Deps wires an OrderService. Orders and Notifications are required; the rest
// may be nil and the matching step is skipped.
type Deps struct {
	Orders        OrderStore
	Products      ProductNameReader
	Notifications NotificationStore
	NameCache     NameCache
	Events        EventWriter
	Dispatcher    Dispatcher

	Recipients   []string
	StoreName    string
	CurrencySign string

	Clock          func() time.Time
	NewOrderNumber func() string
	NewID          func() string
}

// OrderService runs the checkout pipeline: identity, total, persistence, then
// best-effort enrichment, notification and the owner ledger.
type OrderService struct {
	orders        OrderStore
	products      ProductNameReader
	notifications NotificationStore
	cache         NameCache
	events        EventWriter
	dispatcher    Dispatcher

	recipients   []string
	storeName    string
	currencySign string

	now            func() time.Time
	newOrderNumber func() string
	newID          func() string
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(deps Deps) *OrderService {
	s := &OrderService{
		orders:         deps.Orders,
		products:       deps.Products,
		notifications:  deps.Notifications,
		cache:          deps.NameCache,
		events:         deps.Events,
		dispatcher:     deps.Dispatcher,
		recipients:     deps.Recipients,
		storeName:      deps.StoreName,
		currencySign:   deps.CurrencySign,
		now:            deps.Clock,
		newOrderNumber: deps.NewOrderNumber,
		newID:          deps.NewID,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newOrderNumber == nil {
		s.newOrderNumber = NewOrderNumber
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// NewOrderNumber returns ORD- followed by a ULID: a millisecond timestamp and
// 80 random bits, so concurrent checkouts do not collide.
func NewOrderNumber() string {
	return "ORD-" + ulid.Make().String()
}

// CreateOrder persists the order and its line items, then attempts notification
// and writes the owner ledger entry. Only validation and persistence failures
// are returned; everything after persistence degrades silently into logs.
func (s *OrderService) CreateOrder(ctx context.Context, req *entity.CheckoutRequest) (*entity.CheckoutResult, error) {
	if err := ValidateItems(req.Items); err != nil {
		return nil, err
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.DefaultPaymentMethod
	}
	paymentStatus := normalizePaymentStatus(req.PaymentStatus)

	logger.Info().
		Int("items_count", len(req.Items)).
		Str("total_amount", req.TotalAmount.String()).
		Str("payment_method", paymentMethod).
		Str("guest_email", req.GuestEmail).
		Msg("Received order request")

	identity := NormalizeIdentity(req.UserID)
	if identity.Foreign() {
		logger.Warn().Str("identity_token", identity.Token).Msg("Identity token is not an internal id, storing as guest order")
	}

	total, mismatch := ReconcileTotal(req.Items, req.TotalAmount)
	order := s.newOrder(req, identity, total, paymentMethod, paymentStatus)
	if mismatch {
		logger.Warn().
			Str("order_number", order.OrderNumber).
			Str("calculated", total.String()).
			Str("provided", req.TotalAmount.String()).
			Msg("Total amount mismatch, using calculated total")
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("Error creating order")
		return nil, fmt.Errorf("%w: %w", ErrOrderCreation, err)
	}

	// The order exists from here on. Request cancellation must not cut the
	// remaining steps short, and none of them may fail the call.
	ctx = context.WithoutCancel(ctx)

	names := s.resolveProductNames(ctx, order.Items)
	summary := s.summarize(order, req, names)
	delivery := s.notify(ctx, summary)
	s.recordOwnerNotification(ctx, summary, delivery.Outcomes)

	// last, so an unreachable broker cannot delay the ledger write
	s.publishOrderEvent(ctx, order, "created")

	logger.Info().
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("customer", summary.CustomerName).
		Str("total", total.String()).
		Int("items_count", len(order.Items)).
		Bool("guest", identity.Guest()).
		Bool("email_sent", delivery.Sent()).
		Msg("Order created successfully")

	outcomes := delivery.Outcomes
	if outcomes == nil {
		outcomes = []entity.DeliveryOutcome{}
	}

	return &entity.CheckoutResult{
		Success:         true,
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
		PaymentMethod:   order.PaymentMethod,
		CustomerName:    summary.CustomerName,
		EmailSent:       delivery.Sent(),
		ProcessedUserID: order.UserID,
		Notifications:   outcomes,
	}, nil
}

// GetOrder returns an order with its line items.
func (s *OrderService) GetOrder(ctx context.Context, orderNumber string) (*entity.Order, error) {
	order, err := s.orders.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting order %s", orderNumber)
		return nil, err
	}
	return order, nil
}

// ListOwnerNotifications returns ledger entries, newest first.
func (s *OrderService) ListOwnerNotifications(ctx context.Context, unreadOnly bool, limit int) ([]entity.OwnerNotification, error) {
	notifications, err := s.notifications.ListNotifications(ctx, unreadOnly, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing owner notifications")
		return nil, err
	}
	return notifications, nil
}

// SetOwnerNotificationRead toggles the read flag of one ledger entry.
func (s *OrderService) SetOwnerNotificationRead(ctx context.Context, id string, read bool) error {
	if err := s.notifications.SetRead(ctx, id, read); err != nil {
		logger.Error().Err(err).Msgf("Error updating owner notification %s", id)
		return err
	}
	return nil
}

func (s *OrderService) newOrder(req *entity.CheckoutRequest, identity Identity, total decimal.Decimal, paymentMethod, paymentStatus string) *entity.Order {
	shipping := req.ShippingAddress
	if identity.Token != "" {
		shipping.OriginalIdentityToken = identity.Token
	}

	billing := shipping
	if req.BillingAddress != nil {
		billing = *req.BillingAddress
	}

	order := &entity.Order{
		ID:              s.newID(),
		UserID:          identity.UserID,
		OrderNumber:     s.newOrderNumber(),
		TotalAmount:     total,
		Status:          orderStatusFor(paymentStatus),
		PaymentStatus:   paymentStatus,
		PaymentMethod:   paymentMethod,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Items:           make([]entity.OrderItem, 0, len(req.Items)),
		CreatedAt:       s.now().UTC(),
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, entity.OrderItem{
			ID:        s.newID(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return order
}

func (s *OrderService) summarize(order *entity.Order, req *entity.CheckoutRequest, names map[string]string) notifier.Summary {
	items := make([]entity.NamedItem, len(order.Items))
	for i, item := range order.Items {
		name, ok := names[item.ProductID]
		if !ok {
			name = entity.UnknownProductName
		}
		items[i] = entity.NamedItem{
			ProductID: item.ProductID,
			Name:      name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: item.LineTotal(),
		}
	}

	return notifier.Summary{
		StoreName:       s.storeName,
		CurrencySign:    s.currencySign,
		OrderNumber:     order.OrderNumber,
		OrderDate:       order.CreatedAt,
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   order.PaymentStatus,
		CustomerName:    customerName(req),
		CustomerEmail:   customerEmail(req),
		CustomerPhone:   order.ShippingAddress.Phone,
		ShippingAddress: order.ShippingAddress,
		Items:           items,
		Total:           order.TotalAmount,
	}
}

func (s *OrderService) notify(ctx context.Context, summary notifier.Summary) notifier.Result {
	if s.dispatcher == nil {
		return notifier.Result{}
	}

	msg, err := notifier.Render(summary, s.recipients)
	if err != nil {
		logger.Error().Err(err).Str("order_number", summary.OrderNumber).Msg("Error rendering order notification")
		return notifier.Result{}
	}

	result := s.dispatcher.Dispatch(ctx, msg)
	if !result.Sent() {
		logger.Error().Str("order_number", summary.OrderNumber).Int("channels", len(result.Outcomes)).Msg("Order notification not delivered by any channel")
	}
	return result
}

func (s *OrderService) recordOwnerNotification(ctx context.Context, summary notifier.Summary, delivery []entity.DeliveryOutcome) {
	n := &entity.OwnerNotification{
		ID:            s.newID(),
		Type:          entity.NotificationTypeNewOrder,
		OrderNumber:   summary.OrderNumber,
		CustomerName:  summary.CustomerName,
		CustomerEmail: summary.CustomerEmail,
		TotalAmount:   summary.Total,
		Details: entity.NotificationDetails{
			Items:           summary.Items,
			ShippingAddress: summary.ShippingAddress,
			PaymentMethod:   summary.PaymentMethod,
			PaymentStatus:   summary.PaymentStatus,
			OrderDate:       summary.OrderDate,
			Delivery:        delivery,
		},
		IsRead:    false,
		CreatedAt: s.now().UTC(),
	}

	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		logger.Error().Err(err).Str("order_number", summary.OrderNumber).Msg("Error storing owner notification")
		return
	}
	logger.Info().Str("order_number", summary.OrderNumber).Msg("Owner notification stored")
}

func (s *OrderService) publishOrderEvent(ctx context.Context, order *entity.Order, key string) {
	if s.events == nil {
		return
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("Error encoding order event")
		return
	}

	// order.created.ORD-...
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order.%s.%s", key, order.OrderNumber)),
		Value: orderJSON,
	}

	ctx, cancel := context.WithTimeout(ctx, eventTimeout)
	defer cancel()
	if err := s.events.WriteMessages(ctx, msg); err != nil {
		logger.Warn().Err(err).Str("order_number", order.OrderNumber).Msg("Error publishing order event")
	}
}

func normalizePaymentStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", entity.PaymentStatusPaid:
		return entity.PaymentStatusPaid
	default:
		return entity.PaymentStatusPending
	}
}

func orderStatusFor(paymentStatus string) string {
	if paymentStatus == entity.PaymentStatusPaid {
		return entity.OrderStatusConfirmed
	}
	return entity.OrderStatusPending
}

func customerName(req *entity.CheckoutRequest) string {
	if req.GuestName != "" {
		return req.GuestName
	}
	return strings.TrimSpace(req.ShippingAddress.FirstName + " " + req.ShippingAddress.LastName)
}

func customerEmail(req *entity.CheckoutRequest) string {
	if req.GuestEmail != "" {
		return req.GuestEmail
	}
	return req.ShippingAddress.Email
}
