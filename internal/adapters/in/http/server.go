package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	enqueueHandler interface {
		Handle(ctx context.Context, cmd commands.CreateQueuedOrderCommand) (commands.CreateQueuedOrderResult, error)
	}
	changeStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error
	}
	changeDeliveryTypeHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeDeliveryTypeCommand) error
	}
	setPositionHandler interface {
		Handle(ctx context.Context, cmd commands.SetQueuePositionCommand) error
	}
	setEstimateHandler interface {
		Handle(ctx context.Context, cmd commands.SetEstimatedDeliveryTimeCommand) error
	}
	normalizeHandler interface {
		Handle(ctx context.Context, cmd commands.NormalizeQueueCommand) (int, error)
	}
	getOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderDetails, error)
	}
	getQueueHandler interface {
		Handle(ctx context.Context, query queries.GetActiveQueueQuery) ([]queries.QueuedOrder, error)
	}
	auditHandler interface {
		Handle(ctx context.Context, query queries.AuditQueueQuery) (queries.AuditReport, error)
	}
	eventSubscriber interface {
		Subscribe(buffer int) (<-chan order.StatusChanged, func())
	}
)

// Handlers bundles the use cases the HTTP API exposes.
type Handlers struct {
	Enqueue            enqueueHandler
	ChangeStatus       changeStatusHandler
	ChangeDeliveryType changeDeliveryTypeHandler
	SetPosition        setPositionHandler
	SetEstimate        setEstimateHandler
	Normalize          normalizeHandler
	GetOrder           getOrderHandler
	GetQueue           getQueueHandler
	Audit              auditHandler
	Events             eventSubscriber
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
	}
}

// EnqueueOrder handles POST /api/v1/orders/{orderId}/queue.
func (s *Server) EnqueueOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.EnqueueOrderJSONRequestBody
	if err := s.bind(ctx, &body); err != nil {
		return s.badRequest(ctx, err)
	}

	id, err := toOrderID(orderId)
	if err != nil {
		return s.mutationFailed(ctx, err)
	}
	deliveryType, err := order.ParseDeliveryType(string(body.DeliveryType))
	if err != nil {
		return s.mutationFailed(ctx, err)
	}
	var payload []byte
	if body.Payload != nil {
		if payload, err = json.Marshal(*body.Payload); err != nil {
			return s.badRequest(ctx, err)
		}
	}

	cmd, err := commands.NewCreateQueuedOrderCommand(id, deliveryType, payload)
	if err != nil {
		return s.mutationFailed(ctx, err)
	}
	result, err := s.handlers.Enqueue.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mutationFailed(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.QueuePlacement{
		Position:              result.Position,
		EstimatedDeliveryTime: result.EstimatedDeliveryTime,
	})
}

// ChangeOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.ChangeOrderStatusJSONRequestBody
	if err := s.bind(ctx, &body); err != nil {
		return s.badRequest(ctx, err)
	}

	id, err := toOrderID(orderId)
	if err != nil {
		return s.mutationFailed(ctx, err)
	}
	status, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return s.mutationFailed(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, status)
	if err != nil {
		return s.mutationFailed(ctx, err)
	}
	if err = s.handlers.ChangeStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mutationFailed(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeDeliveryType handles PUT /api/v1/orders/{orderId}/delivery-type.
func (s *Server) ChangeDeliveryType(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.ChangeDeliveryTypeJSONRequestBody
	if err := s.bind(ctx, &body); err != nil {
		return s.badRequest(ctx, err)
	}

	id, err := toOrderID(orderId)
	if err != nil {
		return s.mutationFailed(ctx, err)
	}
	deliveryType, err := order.ParseDeliveryType(string(body.DeliveryType))
	if err != nil {
		return s.mutationFailed(ctx, err)
	}

	cmd, err := commands.NewChangeDeliveryTypeCommand(id, deliveryType)
	if err != nil {
		return s.mutationFailed(ctx, err)
	}
	if err = s.handlers.ChangeDeliveryType.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mutationFailed(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetQueuePosition handles PUT /api/v1/orders/{orderId}/position.
func (s *Server) SetQueuePosition(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.SetQueuePositionJSONRequestBody
	if err := s.bind(ctx, &body); err != nil {
		return s.badRequest(ctx, err)
	}

	id, err := toOrderID(orderId)
	if err != nil {
		return s.mutationFailed(ctx, err)
	}
	cmd, err := commands.NewSetQueuePositionCommand(id, body.Position, body.Operator)
	if err != nil {
		return s.mutationFailed(ctx, err)
	}
	if err = s.handlers.SetPosition.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mutationFailed(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetEstimatedDeliveryTime handles PUT /api/v1/orders/{orderId}/estimate.
func (s *Server) SetEstimatedDeliveryTime(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.SetEstimatedDeliveryTimeJSONRequestBody
	if err := s.bind(ctx, &body); err != nil {
		return s.badRequest(ctx, err)
	}

	id, err := toOrderID(orderId)
	if err != nil {
		return s.mutationFailed(ctx, err)
	}
	cmd, err := commands.NewSetEstimatedDeliveryTimeCommand(id, body.EstimatedDeliveryTime, body.Operator)
	if err != nil {
		return s.mutationFailed(ctx, err)
	}
	if err = s.handlers.SetEstimate.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mutationFailed(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// NormalizeQueue handles POST /api/v1/queue/normalize.
func (s *Server) NormalizeQueue(ctx echo.Context) error {
	var body servers.NormalizeQueueJSONRequestBody
	if err := s.bind(ctx, &body); err != nil {
		return s.badRequest(ctx, err)
	}

	cmd, err := commands.NewNormalizeQueueCommand(body.Operator)
	if err != nil {
		return s.mutationFailed(ctx, err)
	}
	renumbered, err := s.handlers.Normalize.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mutationFailed(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.NormalizeQueueResult{Renumbered: renumbered})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := toOrderID(orderId)
	if err != nil {
		return s.readFailed(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.readFailed(ctx, err)
	}

	details, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.readFailed(ctx, err)
	}

	response := servers.Order{
		Id:                    details.ID.Bytes(),
		Status:                servers.OrderStatus(details.Status.String()),
		DeliveryType:          servers.DeliveryType(details.DeliveryType.String()),
		QueuePosition:         details.QueuePosition,
		EstimatedDeliveryTime: details.EstimatedDeliveryTime,
		CreatedAt:             details.CreatedAt,
		UpdatedAt:             details.UpdatedAt,
		DeliveredAt:           details.DeliveredAt,
	}
	if len(details.Payload) > 0 {
		var payload map[string]interface{}
		if json.Unmarshal(details.Payload, &payload) == nil {
			response.Payload = &payload
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetQueue handles GET /api/v1/queue.
func (s *Server) GetQueue(ctx echo.Context, params servers.GetQueueParams) error {
	deliveryType := order.UnknownDeliveryType
	if params.DeliveryType != nil {
		parsed, err := order.ParseDeliveryType(string(*params.DeliveryType))
		if err != nil {
			return s.readFailed(ctx, err)
		}
		deliveryType = parsed
	}
	query, err := queries.NewGetActiveQueueQuery(deliveryType)
	if err != nil {
		return s.readFailed(ctx, err)
	}

	rows, err := s.handlers.GetQueue.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.readFailed(ctx, err)
	}

	response := make([]servers.QueueEntry, len(rows))
	for i, row := range rows {
		response[i] = servers.QueueEntry{
			Id:                    row.ID.Bytes(),
			Status:                servers.OrderStatus(row.Status.String()),
			DeliveryType:          servers.DeliveryType(row.DeliveryType.String()),
			Position:              row.QueuePosition,
			EstimatedDeliveryTime: row.EstimatedDeliveryTime,
			CreatedAt:             row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AuditQueue handles GET /api/v1/queue/audit.
func (s *Server) AuditQueue(ctx echo.Context) error {
	report, err := s.handlers.Audit.Handle(ctx.Request().Context(), queries.NewAuditQueueQuery())
	if err != nil {
		return s.readFailed(ctx, err)
	}

	response := servers.AuditReport{
		ActiveCount: report.ActiveCount,
		Violations:  make([]servers.Violation, len(report.Violations)),
	}
	for i, v := range report.Violations {
		response.Violations[i] = servers.Violation{
			Kind:    servers.ViolationKind(v.Kind),
			OrderId: v.OrderID.Bytes(),
		}
		if v.Kind != queries.MissingPosition {
			position := v.Position
			response.Violations[i].Position = &position
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) bind(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return err
	}
	return ctx.Validate(body)
}

func toOrderID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
