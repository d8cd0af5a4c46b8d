package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/promarket/marketplace-api/internal/core/ports"
)

// EventDispatcher accepts payment events for asynchronous processing.
type EventDispatcher interface {
	Enqueue(event ports.PaymentEventInput)
	EnqueueBatch(events []ports.PaymentEventInput)
}

// PaymentHandler accepts out-of-band payment events from gateway integrations
// and hands them to the async pipeline.
type PaymentHandler struct {
	dispatcher EventDispatcher
}

func NewPaymentHandler(dispatcher EventDispatcher) *PaymentHandler {
	return &PaymentHandler{dispatcher: dispatcher}
}

type paymentEventRequest struct {
	InvoiceNumber string    `json:"invoice_number" validate:"required"`
	Status        string    `json:"status"         validate:"required,oneof=sent paid overdue cancelled"`
	Timestamp     time.Time `json:"timestamp"      validate:"required"`
	Source        string    `json:"source"         validate:"required"`
	Reference     string    `json:"reference"`
}

type paymentEventBatchRequest struct {
	Events []paymentEventRequest `json:"events" validate:"required,min=1,max=500,dive"`
}

type acceptedResponse struct {
	Accepted int `json:"accepted"`
}

func toPaymentEventInput(req paymentEventRequest) ports.PaymentEventInput {
	return ports.PaymentEventInput{
		InvoiceNumber: req.InvoiceNumber,
		Status:        req.Status,
		Timestamp:     req.Timestamp,
		Source:        req.Source,
		Reference:     req.Reference,
	}
}

// Receive handles POST /v1/payments/events. The event is validated and queued;
// processing outcome is observable via the invoice status and metrics.
//
// @Summary      Ingest a payment event
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentEventRequest  true  "Payment event"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/payments/events [post]
func (h *PaymentHandler) Receive(c echo.Context) error {
	var req paymentEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.dispatcher.Enqueue(toPaymentEventInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Accepted: 1})
}

// ReceiveBatch handles POST /v1/payments/events/batch. Per-invoice ordering is
// preserved through the sharded queue.
//
// @Summary      Ingest a batch of payment events
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentEventBatchRequest  true  "Payment events"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/payments/events/batch [post]
func (h *PaymentHandler) ReceiveBatch(c echo.Context) error {
	var req paymentEventBatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	events := make([]ports.PaymentEventInput, len(req.Events))
	for i, e := range req.Events {
		events[i] = toPaymentEventInput(e)
	}
	h.dispatcher.EnqueueBatch(events)
	return c.JSON(http.StatusAccepted, acceptedResponse{Accepted: len(events)})
}
