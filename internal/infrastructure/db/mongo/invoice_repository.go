package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/promarket/marketplace-api/internal/core/domain"
	"github.com/promarket/marketplace-api/internal/core/ports"
)

const (
	invoicesCollection = "invoices"
	countersCollection = "counters"
	invoiceCounterID   = "invoice_number"
)

type InvoiceRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) *InvoiceRepository {
	return &InvoiceRepository{
		coll:     db.Collection(invoicesCollection),
		counters: db.Collection(countersCollection),
	}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *inv
	doc.ID = ""
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}

	created := *inv
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *InvoiceRepository) FindByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc invoiceDoc
	if err := r.coll.FindOne(ctx, bson.M{"number": number}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *InvoiceRepository) List(ctx context.Context, filter ports.ListInvoicesFilter) ([]*domain.Invoice, int64, error) {
	query := bson.M{}
	if filter.ProID != "" {
		query["pro_id"] = filter.ProID
	}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer cur.Close(ctx)

	var invoices []*domain.Invoice
	for cur.Next(ctx) {
		var doc invoiceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode invoice: %w", err)
		}
		invoices = append(invoices, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate invoices: %w", err)
	}
	return invoices, total, nil
}

// NextSequence atomically increments and returns the invoice counter, creating
// it on first use.
func (r *InvoiceRepository) NextSequence(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var row struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": invoiceCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&row)
	if err != nil {
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}
	return row.Seq, nil
}

func (r *InvoiceRepository) SumPaidBetween(ctx context.Context, proID string, from, to time.Time) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{
		"status":  string(domain.InvoicePaid),
		"paid_at": bson.M{"$gte": from, "$lt": to},
	}
	if proID != "" {
		match["pro_id"] = proID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum paid invoices: %w", err)
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Total float64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("decode revenue sum: %w", err)
		}
		return row.Total, nil
	}
	return 0, cur.Err()
}

func (r *InvoiceRepository) ClientIDsInvoicedBetween(ctx context.Context, proID string, from, to time.Time) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{
		"pro_id":     proID,
		"created_at": bson.M{"$gte": from, "$lt": to},
	}
	raw, err := r.coll.Distinct(ctx, "client_id", query)
	if err != nil {
		return nil, fmt.Errorf("distinct invoiced clients: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// MonthlyRevenue groups paid revenue by calendar month ("YYYY-MM") over the
// trailing months window ending at now.
func (r *InvoiceRepository) MonthlyRevenue(ctx context.Context, proID string, months int, now time.Time) ([]ports.MonthlyRevenuePoint, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	match := bson.M{
		"status":  string(domain.InvoicePaid),
		"paid_at": bson.M{"$gte": from, "$lt": now},
	}
	if proID != "" {
		match["pro_id"] = proID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m",
				"date":   "$paid_at",
			}},
			"revenue": bson.M{"$sum": "$total"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer cur.Close(ctx)

	var points []ports.MonthlyRevenuePoint
	for cur.Next(ctx) {
		var row struct {
			Month   string  `bson:"_id"`
			Revenue float64 `bson:"revenue"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode monthly revenue: %w", err)
		}
		points = append(points, ports.MonthlyRevenuePoint{Month: row.Month, Revenue: row.Revenue})
	}
	return points, cur.Err()
}

// EnsureIndexes creates the invoice lookup and aggregation indexes.
func (r *InvoiceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "pro_id", Value: 1}, {Key: "status", Value: 1}, {Key: "paid_at", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// invoiceDoc mirrors domain.Invoice with a mongo ObjectID primary key.
type invoiceDoc struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty"`
	Number        string                `bson:"number"`
	ProID         string                `bson:"pro_id"`
	ClientID      string                `bson:"client_id"`
	ProjectID     string                `bson:"project_id,omitempty"`
	LineItems     []domain.LineItem     `bson:"line_items"`
	Subtotal      float64               `bson:"subtotal"`
	Tax           float64               `bson:"tax"`
	Total         float64               `bson:"total"`
	Currency      string                `bson:"currency"`
	Status        string                `bson:"status"`
	DueDate       time.Time             `bson:"due_date"`
	PaidAt        *time.Time            `bson:"paid_at,omitempty"`
	StatusHistory []domain.StatusChange `bson:"status_history,omitempty"`
	CreatedAt     time.Time             `bson:"created_at"`
	UpdatedAt     time.Time             `bson:"updated_at"`
}

func (d *invoiceDoc) toDomain() *domain.Invoice {
	return &domain.Invoice{
		ID:            d.ID.Hex(),
		Number:        d.Number,
		ProID:         d.ProID,
		ClientID:      d.ClientID,
		ProjectID:     d.ProjectID,
		LineItems:     d.LineItems,
		Subtotal:      d.Subtotal,
		Tax:           d.Tax,
		Total:         d.Total,
		Currency:      d.Currency,
		Status:        domain.InvoiceStatus(d.Status),
		DueDate:       d.DueDate,
		PaidAt:        d.PaidAt,
		StatusHistory: d.StatusHistory,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
