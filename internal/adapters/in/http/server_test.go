package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type MockEnqueue struct{ mock.Mock }

func (m *MockEnqueue) Handle(ctx context.Context, cmd commands.CreateQueuedOrderCommand) (commands.CreateQueuedOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateQueuedOrderResult), args.Error(1)
}

type MockChangeStatus struct{ mock.Mock }

func (m *MockChangeStatus) Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockChangeDeliveryType struct{ mock.Mock }

func (m *MockChangeDeliveryType) Handle(ctx context.Context, cmd commands.ChangeDeliveryTypeCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockSetPosition struct{ mock.Mock }

func (m *MockSetPosition) Handle(ctx context.Context, cmd commands.SetQueuePositionCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockSetEstimate struct{ mock.Mock }

func (m *MockSetEstimate) Handle(ctx context.Context, cmd commands.SetEstimatedDeliveryTimeCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockNormalize struct{ mock.Mock }

func (m *MockNormalize) Handle(ctx context.Context, cmd commands.NormalizeQueueCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockGetOrder struct{ mock.Mock }

func (m *MockGetOrder) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderDetails, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderDetails), args.Error(1)
}

type MockGetQueue struct{ mock.Mock }

func (m *MockGetQueue) Handle(ctx context.Context, query queries.GetActiveQueueQuery) ([]queries.QueuedOrder, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.QueuedOrder), args.Error(1)
}

type MockAudit struct{ mock.Mock }

func (m *MockAudit) Handle(ctx context.Context, query queries.AuditQueueQuery) (queries.AuditReport, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.AuditReport), args.Error(1)
}

type staticSubscriber struct {
	events []order.StatusChanged
}

func (s staticSubscriber) Subscribe(int) (<-chan order.StatusChanged, func()) {
	channel := make(chan order.StatusChanged, len(s.events))
	for _, e := range s.events {
		channel <- e
	}
	close(channel)
	return channel, func() {}
}

type fixture struct {
	enqueue      *MockEnqueue
	changeStatus *MockChangeStatus
	changeType   *MockChangeDeliveryType
	setPosition  *MockSetPosition
	setEstimate  *MockSetEstimate
	normalize    *MockNormalize
	getOrder     *MockGetOrder
	getQueue     *MockGetQueue
	audit        *MockAudit
	events       staticSubscriber
}

func newFixture() *fixture {
	return &fixture{
		enqueue:      new(MockEnqueue),
		changeStatus: new(MockChangeStatus),
		changeType:   new(MockChangeDeliveryType),
		setPosition:  new(MockSetPosition),
		setEstimate:  new(MockSetEstimate),
		normalize:    new(MockNormalize),
		getOrder:     new(MockGetOrder),
		getQueue:     new(MockGetQueue),
		audit:        new(MockAudit),
	}
}

func (f *fixture) router(t *testing.T) *echo.Echo {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpadapter.NewServer(httpadapter.Handlers{
		Enqueue:            f.enqueue,
		ChangeStatus:       f.changeStatus,
		ChangeDeliveryType: f.changeType,
		SetPosition:        f.setPosition,
		SetEstimate:        f.setEstimate,
		Normalize:          f.normalize,
		GetOrder:           f.getOrder,
		GetQueue:           f.getQueue,
		Audit:              f.audit,
		Events:             f.events,
	}, logger)
	e, err := httpadapter.NewRouter(server, logger)
	require.NoError(t, err)
	return e
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.router(t).ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) servers.Error {
	t.Helper()
	var e servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestHealth(t *testing.T) {
	rec := newFixture().do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestEnqueueOrder(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		f := newFixture()
		id := kernel.NewUUID()
		eta := now.Add(time.Hour)
		f.enqueue.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateQueuedOrderCommand) bool {
			return cmd.OrderID() == id &&
				cmd.DeliveryType() == order.Express &&
				string(cmd.Payload()) == `{"product":"gems"}`
		})).Return(commands.CreateQueuedOrderResult{Position: 1, EstimatedDeliveryTime: eta}, nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/orders/"+id.String()+"/queue",
			`{"deliveryType":"Express","payload":{"product":"gems"}}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var placement servers.QueuePlacement
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placement))
		assert.Equal(t, 1, placement.Position)
		assert.True(t, placement.EstimatedDeliveryTime.Equal(eta))
		f.enqueue.AssertExpectations(t)
	})

	t.Run("UnknownDeliveryTypeIsRejectedBeforeTheHandler", func(t *testing.T) {
		f := newFixture()

		rec := f.do(t, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/queue",
			`{"deliveryType":"Overnight"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.enqueue.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("MalformedOrderID", func(t *testing.T) {
		rec := newFixture().do(t, http.MethodPost, "/api/v1/orders/not-a-uuid/queue", `{"deliveryType":"Standard"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChangeOrderStatus_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"Conflict", errs.NewInvalidTransitionError("delivered", "queued"), http.StatusConflict, httpadapter.MutationFailedMessage},
		{"Busy", errs.NewConcurrentModificationError(3), http.StatusServiceUnavailable, httpadapter.MutationFailedMessage},
		{"Broken", errs.NewInconsistentQueueStateError("duplicate position"), http.StatusInternalServerError, httpadapter.MutationFailedMessage},
		{"NotFound", errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.changeStatus.On("Handle", mock.Anything, mock.Anything).Return(tc.err).Once()

			rec := f.do(t, http.MethodPut, "/api/v1/orders/"+kernel.NewUUID().String()+"/status", `{"status":"delivered"}`)

			require.Equal(t, tc.code, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, int32(tc.code), body.Code)
			if tc.message != "" {
				assert.Equal(t, tc.message, body.Message)
			}
		})
	}
}

func TestChangeOrderStatus_PassesStatus(t *testing.T) {
	f := newFixture()
	f.changeStatus.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeOrderStatusCommand) bool {
		return cmd.Status() == order.InProgress
	})).Return(nil).Once()

	rec := f.do(t, http.MethodPut, "/api/v1/orders/"+kernel.NewUUID().String()+"/status", `{"status":"in_progress"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.changeStatus.AssertExpectations(t)
}

func TestChangeDeliveryType(t *testing.T) {
	f := newFixture()
	f.changeType.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeDeliveryTypeCommand) bool {
		return cmd.DeliveryType() == order.Standard
	})).Return(nil).Once()

	rec := f.do(t, http.MethodPut, "/api/v1/orders/"+kernel.NewUUID().String()+"/delivery-type", `{"deliveryType":"Standard"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.changeType.AssertExpectations(t)
}

func TestSetQueuePosition(t *testing.T) {
	t.Run("Moved", func(t *testing.T) {
		f := newFixture()
		f.setPosition.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SetQueuePositionCommand) bool {
			return cmd.Position() == 2 && cmd.Operator() == "alice"
		})).Return(nil).Once()

		rec := f.do(t, http.MethodPut, "/api/v1/orders/"+kernel.NewUUID().String()+"/position", `{"position":2,"operator":"alice"}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		f.setPosition.AssertExpectations(t)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		f := newFixture()
		f.setPosition.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewValueIsOutOfRangeError("position", 9, 1, 3)).Once()

		rec := f.do(t, http.MethodPut, "/api/v1/orders/"+kernel.NewUUID().String()+"/position", `{"position":9,"operator":"alice"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingOperator", func(t *testing.T) {
		f := newFixture()

		rec := f.do(t, http.MethodPut, "/api/v1/orders/"+kernel.NewUUID().String()+"/position", `{"position":1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.setPosition.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("ZeroPosition", func(t *testing.T) {
		rec := newFixture().do(t, http.MethodPut, "/api/v1/orders/"+kernel.NewUUID().String()+"/position", `{"position":0,"operator":"alice"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSetEstimatedDeliveryTime(t *testing.T) {
	f := newFixture()
	eta := now.Add(48 * time.Hour)
	f.setEstimate.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SetEstimatedDeliveryTimeCommand) bool {
		return cmd.EstimatedDeliveryTime().Equal(eta) && cmd.Operator() == "bob"
	})).Return(nil).Once()

	rec := f.do(t, http.MethodPut, "/api/v1/orders/"+kernel.NewUUID().String()+"/estimate",
		`{"estimatedDeliveryTime":"`+eta.Format(time.RFC3339)+`","operator":"bob"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.setEstimate.AssertExpectations(t)
}

func TestNormalizeQueue(t *testing.T) {
	f := newFixture()
	f.normalize.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.NormalizeQueueCommand) bool {
		return cmd.Operator() == "carol"
	})).Return(4, nil).Once()

	rec := f.do(t, http.MethodPost, "/api/v1/queue/normalize", `{"operator":"carol"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var result servers.NormalizeQueueResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 4, result.Renumbered)
}

func TestGetOrder(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		f := newFixture()
		id := kernel.NewUUID()
		position := 3
		eta := now.Add(72 * time.Hour)
		f.getOrder.On("Handle", mock.Anything, mock.Anything).Return(queries.OrderDetails{
			ID:                    id,
			Status:                order.Queued,
			DeliveryType:          order.Standard,
			QueuePosition:         &position,
			EstimatedDeliveryTime: &eta,
			CreatedAt:             now,
			UpdatedAt:             now,
			Payload:               []byte(`{"buyer":"a@b.c"}`),
		}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/orders/"+id.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body servers.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, id.String(), body.Id.String())
		assert.Equal(t, servers.Queued, body.Status)
		assert.Equal(t, servers.Standard, body.DeliveryType)
		require.NotNil(t, body.QueuePosition)
		assert.Equal(t, 3, *body.QueuePosition)
		assert.Nil(t, body.DeliveredAt)
		require.NotNil(t, body.Payload)
		assert.Equal(t, "a@b.c", (*body.Payload)["buyer"])
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newFixture()
		f.getOrder.On("Handle", mock.Anything, mock.Anything).
			Return(queries.OrderDetails{}, errs.NewObjectNotFoundError("order", "x")).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetQueue(t *testing.T) {
	f := newFixture()
	id := kernel.NewUUID()
	f.getQueue.On("Handle", mock.Anything, mock.MatchedBy(func(query queries.GetActiveQueueQuery) bool {
		deliveryType, filtered := query.DeliveryType()
		return filtered && deliveryType == order.Express
	})).Return([]queries.QueuedOrder{{
		ID:                    id,
		Status:                order.InProgress,
		DeliveryType:          order.Express,
		QueuePosition:         1,
		EstimatedDeliveryTime: now.Add(15 * time.Minute),
		CreatedAt:             now,
		UpdatedAt:             now,
	}}, nil).Once()

	rec := f.do(t, http.MethodGet, "/api/v1/queue?deliveryType=Express", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []servers.QueueEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, servers.InProgress, entries[0].Status)
	f.getQueue.AssertExpectations(t)
}

func TestAuditQueue(t *testing.T) {
	f := newFixture()
	id := kernel.NewUUID()
	f.audit.On("Handle", mock.Anything, mock.Anything).Return(queries.AuditReport{
		ActiveCount: 2,
		Violations:  []queries.Violation{{Kind: queries.PositionGap, OrderID: id, Position: 3}},
	}, nil).Once()

	rec := f.do(t, http.MethodGet, "/api/v1/queue/audit", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var report servers.AuditReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 2, report.ActiveCount)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, servers.PositionGap, report.Violations[0].Kind)
	require.NotNil(t, report.Violations[0].Position)
	assert.Equal(t, 3, *report.Violations[0].Position)
}

func TestStreamEvents(t *testing.T) {
	f := newFixture()
	id := kernel.NewUUID()
	f.events = staticSubscriber{events: []order.StatusChanged{{
		OrderID:    id,
		OldStatus:  order.InProgress,
		NewStatus:  order.Delivered,
		OccurredAt: now,
	}}}

	rec := f.do(t, http.MethodGet, "/api/v1/events", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get(echo.HeaderContentType))
	body := rec.Body.String()
	assert.Contains(t, body, "event: status_changed\n")
	assert.Contains(t, body, `"orderId":"`+id.String()+`"`)
	assert.Contains(t, body, `"newStatus":"delivered"`)
}
