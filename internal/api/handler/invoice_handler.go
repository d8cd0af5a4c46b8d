package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/promarket/marketplace-api/internal/core/ports"
	"github.com/promarket/marketplace-api/internal/metrics"
)

// InvoiceHandler handles HTTP requests for invoice operations. Admin listing
// doubles as the platform transactions view.
type InvoiceHandler struct {
	service ports.InvoiceService
}

func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// Create handles POST /v1/invoices. Totals are computed server-side from the
// line items and tax rate.
//
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInvoiceRequest  true  "Invoice details"
// @Success      201   {object}  invoiceResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Create(c.Request().Context(), actor, toCreateInvoiceInput(req))
	if err != nil {
		return err
	}

	metrics.InvoicesCreatedTotal.WithLabelValues(view.Invoice.Currency).Inc()
	return c.JSON(http.StatusCreated, toInvoiceResponse(view))
}

// Get handles GET /v1/invoices/:number.
//
// @Summary      Get an invoice by number
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        number  path      string  true  "Invoice number (INV-000123)"
// @Success      200     {object}  invoiceResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/invoices/{number} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), actor, c.Param("number"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInvoiceResponse(view))
}

// List handles GET /v1/invoices, scoped to the caller unless the caller is an
// admin.
//
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Rows per page (max 100)"
// @Success      200     {object}  listInvoicesResponse
// @Router       /v1/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), actor, ports.ListInvoicesInput{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	data := make([]invoiceResponse, len(result.Items))
	for i := range result.Items {
		data[i] = toInvoiceResponse(&result.Items[i])
	}
	return c.JSON(http.StatusOK, listInvoicesResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// SetStatus handles PATCH /v1/invoices/:number/status. Marking an invoice paid
// goes through the payment event pipeline, not this endpoint.
//
// @Summary      Transition an invoice status
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        number  path      string                   true  "Invoice number"
// @Param        body    body      setInvoiceStatusRequest  true  "Target status"
// @Success      200     {object}  invoiceResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/invoices/{number}/status [patch]
func (h *InvoiceHandler) SetStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req setInvoiceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.SetStatus(c.Request().Context(), actor, c.Param("number"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInvoiceResponse(view))
}
