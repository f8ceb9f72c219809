package product

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/rubenhtun/luxora-store/internal/logger"
)

// ListOptions narrows the catalog listing. The zero value returns the
// whole catalog in insertion order, which is what the storefront's
// "Featured" ordering is defined as.
type ListOptions struct {
	Category string
}

type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, id string, update UpdateProduct) (*Product, error)
	SoftDelete(ctx context.Context, id string) error
}

type repository struct {
	collection *mongo.Collection
}

func NewRepository(collection *mongo.Collection) Repository {
	return &repository{collection: collection}
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"is_deleted": false}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list products", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *repository) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	values, err := r.collection.Distinct(ctx, "category", bson.M{"is_deleted": false})
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list categories", zap.Error(err))
		return nil, err
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}

	return categories, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var p Product
	err = r.collection.FindOne(ctx, bson.M{"_id": objID, "is_deleted": false}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()
	p.IsDeleted = false

	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert product",
			zap.String("name", p.Name),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (r *repository) Update(ctx context.Context, id string, update UpdateProduct) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.OriginalPrice != nil {
		set["original_price"] = *update.OriginalPrice
	}
	if update.Rating != nil {
		set["rating"] = *update.Rating
	}
	if update.Reviews != nil {
		set["reviews"] = *update.Reviews
	}
	if update.InStock != nil {
		set["in_stock"] = *update.InStock
	}
	if update.StockQuantity != nil {
		set["stock_quantity"] = *update.StockQuantity
	}

	if len(set) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	after := options.After
	var p Product
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID, "is_deleted": false},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&p)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": objID, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true}},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
