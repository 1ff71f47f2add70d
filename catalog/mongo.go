package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const productCollection = "products"

// MongoProductStore is a ProductStore backed by a MongoDB collection.
// Product IDs are stored as canonical UUID strings in _id.
type MongoProductStore struct {
	coll *mongo.Collection
}

// NewMongoProductStore creates a product store over db's "products"
// collection.
func NewMongoProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{coll: db.Collection(productCollection)}
}

// productDoc is the BSON shape of a product. Kept separate from Product
// so the wire format can evolve independently of the domain type.
type productDoc struct {
	ID          string    `bson:"_id"`
	SKU         string    `bson:"sku"`
	Slug        string    `bson:"slug"`
	Name        string    `bson:"name"`
	Description string    `bson:"description,omitempty"`
	Category    string    `bson:"category"`
	VendorID    string    `bson:"vendor_id"`
	CostCents   int64     `bson:"cost_cents"`
	PriceCents  int64     `bson:"price_cents"`
	Stock       int       `bson:"stock"`
	ImageKeys   []string  `bson:"image_keys,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func docFromProduct(p Product) productDoc {
	return productDoc{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		VendorID:    p.VendorID.String(),
		CostCents:   p.CostCents,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
		ImageKeys:   p.ImageKeys,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d productDoc) toProduct() (Product, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return Product{}, fmt.Errorf("catalog: invalid product id %q: %w", d.ID, err)
	}
	vendorID, err := uuid.Parse(d.VendorID)
	if err != nil {
		return Product{}, fmt.Errorf("catalog: invalid vendor id %q: %w", d.VendorID, err)
	}
	return Product{
		ID:          id,
		SKU:         d.SKU,
		Slug:        d.Slug,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		VendorID:    vendorID,
		CostCents:   d.CostCents,
		PriceCents:  d.PriceCents,
		Stock:       d.Stock,
		ImageKeys:   d.ImageKeys,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

// List implements ProductStore.
func (s *MongoProductStore) List(ctx context.Context, filter Filter) ([]Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.VendorID != uuid.Nil {
		query["vendor_id"] = filter.VendorID.String()
	}
	if filter.MinPrice > 0 || filter.MaxPrice > 0 {
		price := bson.M{}
		if filter.MinPrice > 0 {
			price["$gte"] = filter.MinPrice
		}
		if filter.MaxPrice > 0 {
			price["$lte"] = filter.MaxPrice
		}
		query["price_cents"] = price
	}
	if filter.InStock {
		query["stock"] = bson.M{"$gt": 0}
	}
	if filter.Query != "" {
		pattern := bson.M{"$regex": filter.Query, "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}

	cursor, err := s.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("catalog: find products: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var out []Product
	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("catalog: decode product: %w", err)
		}
		p, err := doc.toProduct()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate products: %w", err)
	}
	return out, nil
}

// Get implements ProductStore.
func (s *MongoProductStore) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()})
}

// GetBySlug implements ProductStore.
func (s *MongoProductStore) GetBySlug(ctx context.Context, slug string) (Product, error) {
	return s.findOne(ctx, bson.M{"slug": slug})
}

func (s *MongoProductStore) findOne(ctx context.Context, query bson.M) (Product, error) {
	var doc productDoc
	err := s.coll.FindOne(ctx, query).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("catalog: find product: %w", err)
	}
	return doc.toProduct()
}

// Create implements ProductStore.
func (s *MongoProductStore) Create(ctx context.Context, product Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	count, err := s.coll.CountDocuments(ctx, bson.M{"sku": product.SKU})
	if err != nil {
		return fmt.Errorf("catalog: check sku: %w", err)
	}
	if count > 0 {
		return ErrDuplicateSKU
	}

	if _, err := s.coll.InsertOne(ctx, docFromProduct(product)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSKU
		}
		return fmt.Errorf("catalog: insert product: %w", err)
	}
	return nil
}

// Update implements ProductStore.
func (s *MongoProductStore) Update(ctx context.Context, product Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": product.ID.String()}, docFromProduct(product))
	if err != nil {
		return fmt.Errorf("catalog: replace product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete implements ProductStore.
func (s *MongoProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("catalog: delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// EnsureIndexes creates the unique SKU and slug indexes plus the category
// listing index. Call once at startup.
func (s *MongoProductStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("catalog: create indexes: %w", err)
	}
	return nil
}
