package handler

import (
	"time"

	"github.com/promarket/marketplace-api/internal/core/domain"
	"github.com/promarket/marketplace-api/internal/core/ports"
)

type lineItemRequest struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity"    validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price"  validate:"required,gt=0"`
}

type createInvoiceRequest struct {
	ClientID  string            `json:"client_id"  validate:"required"`
	ProjectID string            `json:"project_id"`
	LineItems []lineItemRequest `json:"line_items" validate:"required,min=1,dive"`
	TaxRate   float64           `json:"tax_rate"   validate:"gte=0,lte=1"`
	Currency  string            `json:"currency"   validate:"required,len=3"`
	DueDate   time.Time         `json:"due_date"   validate:"required"`
}

type setInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid overdue cancelled"`
}

// invoiceResponse flattens the stored invoice together with the read-time
// commission split.
type invoiceResponse struct {
	*domain.Invoice
	Commission float64 `json:"commission"`
	NetToPro   float64 `json:"net_to_pro"`
}

type listInvoicesResponse struct {
	Data       []invoiceResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toInvoiceResponse(v *ports.InvoiceView) invoiceResponse {
	return invoiceResponse{
		Invoice:    v.Invoice,
		Commission: v.Commission,
		NetToPro:   v.NetToPro,
	}
}

func toCreateInvoiceInput(req createInvoiceRequest) ports.CreateInvoiceInput {
	items := make([]ports.LineItemInput, len(req.LineItems))
	for i, li := range req.LineItems {
		items[i] = ports.LineItemInput{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		}
	}
	return ports.CreateInvoiceInput{
		ClientID:  req.ClientID,
		ProjectID: req.ProjectID,
		LineItems: items,
		TaxRate:   req.TaxRate,
		Currency:  req.Currency,
		DueDate:   req.DueDate,
	}
}
