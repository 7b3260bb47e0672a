package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tienda-api/internal/models"
)

type ProductRepository struct {
	collection *mongo.Collection
	categories *mongo.Collection
}

func NewProductRepository(collection, categories *mongo.Collection) *ProductRepository {
	return &ProductRepository{
		collection: collection,
		categories: categories,
	}
}

// Create crea un nuevo producto. La referencia a la categoría se guarda
// tal cual, sin validar que exista.
func (r *ProductRepository) Create(ctx context.Context, create *models.ProductCreate) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	categoryID, err := primitive.ObjectIDFromHex(create.CategoryID)
	if err != nil {
		return nil, ErrInvalidID
	}

	now := time.Now()
	product := &models.Product{
		ID:          primitive.NewObjectID(),
		Name:        create.Name,
		Description: create.Description,
		Price:       create.Price,
		ImageURL:    create.ImageURL,
		CategoryID:  categoryID,
		Stock:       create.Stock,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// FindAll lista productos con su categoría resuelta
func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.findProducts(ctx, bson.M{})
}

// FindByID obtiene un producto por ID con su categoría resuelta
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := r.populate(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByCategory lista los productos de una categoría
func (r *ProductRepository) FindByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, ErrInvalidID
	}
	return r.findProducts(ctx, bson.M{"category": objID})
}

// Update actualiza un producto y devuelve el documento resultante.
// Si la actualización toca el stock, la disponibilidad se recalcula en el
// mismo $set para que ambos campos no se desfasen.
func (r *ProductRepository) Update(ctx context.Context, id string, update *models.ProductUpdate) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.ImageURL != nil {
		set["image_url"] = *update.ImageURL
	}
	if update.CategoryID != nil {
		categoryID, err := primitive.ObjectIDFromHex(*update.CategoryID)
		if err != nil {
			return nil, ErrInvalidID
		}
		set["category"] = categoryID
	}
	if update.Stock != nil {
		stock, available := models.ApplyStockDelta(*update.Stock, 0)
		set["stock"] = stock
		set["is_available"] = available
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := r.populate(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete elimina un producto y devuelve el documento borrado. Las
// referencias en wishlists y whitelists quedan colgantes.
func (r *ProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// AdjustStock aplica un delta al inventario de un producto. Stock y
// disponibilidad se persisten juntos en una sola escritura del documento;
// dos ajustes concurrentes sobre el mismo producto pueden pisarse
// (gana la última escritura), límite aceptado del diseño.
func (r *ProductRepository) AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	stock, available := models.ApplyStockDelta(product.Stock, delta)
	now := time.Now()

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{
		"stock":        stock,
		"is_available": available,
		"updated_at":   now,
	}})
	if err != nil {
		return nil, err
	}

	product.Stock = stock
	product.IsAvailable = available
	product.UpdatedAt = now
	return &product, nil
}

func (r *ProductRepository) findProducts(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	ptrs := make([]*models.Product, 0, len(products))
	for i := range products {
		ptrs = append(ptrs, &products[i])
	}
	if err := r.populate(ctx, ptrs...); err != nil {
		return nil, err
	}
	return products, nil
}

// populate resuelve la referencia de categoría de cada producto. Una
// referencia colgante deja el campo en null, nunca produce error.
func (r *ProductRepository) populate(ctx context.Context, products ...*models.Product) error {
	ids := make([]primitive.ObjectID, 0, len(products))
	seen := make(map[primitive.ObjectID]bool, len(products))
	for _, p := range products {
		if !seen[p.CategoryID] {
			seen[p.CategoryID] = true
			ids = append(ids, p.CategoryID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	cursor, err := r.categories.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return err
	}

	byID := make(map[primitive.ObjectID]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	for _, p := range products {
		p.Category = byID[p.CategoryID]
	}
	return nil
}
