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

type WhitelistRepository struct {
	collection *mongo.Collection
	users      *mongo.Collection
	products   *mongo.Collection
}

func NewWhitelistRepository(collection, users, products *mongo.Collection) *WhitelistRepository {
	return &WhitelistRepository{
		collection: collection,
		users:      users,
		products:   products,
	}
}

// Create crea una nueva whitelist. Las referencias de usuario y productos
// se guardan tal cual, sin validar que existan.
func (r *WhitelistRepository) Create(ctx context.Context, create *models.WhitelistCreate) (*models.Whitelist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(create.UserID)
	if err != nil {
		return nil, ErrInvalidID
	}

	productIDs := make([]primitive.ObjectID, 0, len(create.ProductIDs))
	for _, id := range create.ProductIDs {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, ErrInvalidID
		}
		productIDs = append(productIDs, objID)
	}

	status := create.Status
	if status == "" {
		status = models.WhitelistStatusActive
	}

	now := time.Now()
	whitelist := &models.Whitelist{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		ProductIDs: productIDs,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := r.collection.InsertOne(ctx, whitelist); err != nil {
		return nil, err
	}
	return whitelist, nil
}

// FindAll lista todas las whitelists con sus referencias resueltas
func (r *WhitelistRepository) FindAll(ctx context.Context) ([]models.Whitelist, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.findWhitelists(ctx, bson.M{})
}

// FindByID obtiene una whitelist por ID con sus referencias resueltas
func (r *WhitelistRepository) FindByID(ctx context.Context, id string) (*models.Whitelist, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	whitelist, err := r.findRaw(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.populate(ctx, whitelist); err != nil {
		return nil, err
	}
	return whitelist, nil
}

// FindByUser lista las whitelists de un usuario
func (r *WhitelistRepository) FindByUser(ctx context.Context, userID string) ([]models.Whitelist, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidID
	}
	return r.findWhitelists(ctx, bson.M{"user": objID})
}

// FindByProduct lista las whitelists que contienen un producto en
// cualquier posición de su secuencia
func (r *WhitelistRepository) FindByProduct(ctx context.Context, productID string) ([]models.Whitelist, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}
	return r.findWhitelists(ctx, bson.M{"products": objID})
}

// FindByStatus lista las whitelists con un estado exacto
func (r *WhitelistRepository) FindByStatus(ctx context.Context, status string) ([]models.Whitelist, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.findWhitelists(ctx, bson.M{"status": status})
}

// FindByDateRange lista las whitelists creadas dentro del rango
// [startDate, endDate], cerrado en ambos extremos
func (r *WhitelistRepository) FindByDateRange(ctx context.Context, startDate, endDate time.Time) ([]models.Whitelist, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.findWhitelists(ctx, bson.M{"created_at": bson.M{
		"$gte": startDate,
		"$lte": endDate,
	}})
}

// Update actualiza una whitelist y devuelve el documento resultante
func (r *WhitelistRepository) Update(ctx context.Context, id string, update *models.WhitelistUpdate) (*models.Whitelist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{"updated_at": time.Now()}
	if update.UserID != nil {
		userID, err := primitive.ObjectIDFromHex(*update.UserID)
		if err != nil {
			return nil, ErrInvalidID
		}
		set["user"] = userID
	}
	if update.ProductIDs != nil {
		productIDs := make([]primitive.ObjectID, 0, len(update.ProductIDs))
		for _, pid := range update.ProductIDs {
			p, err := primitive.ObjectIDFromHex(pid)
			if err != nil {
				return nil, ErrInvalidID
			}
			productIDs = append(productIDs, p)
		}
		set["products"] = productIDs
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var whitelist models.Whitelist
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&whitelist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWhitelistNotFound
		}
		return nil, err
	}
	return &whitelist, nil
}

// Delete elimina una whitelist y devuelve el documento borrado
func (r *WhitelistRepository) Delete(ctx context.Context, id string) (*models.Whitelist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var whitelist models.Whitelist
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&whitelist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWhitelistNotFound
		}
		return nil, err
	}
	return &whitelist, nil
}

// AddProduct agrega una referencia de producto a la whitelist. A
// diferencia de la wishlist del usuario, aquí se permiten duplicados.
func (r *WhitelistRepository) AddProduct(ctx context.Context, id, productID string) (*models.Whitelist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	productObjID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}

	whitelist, err := r.findRaw(ctx, id)
	if err != nil {
		return nil, err
	}

	whitelist.ProductIDs = append(whitelist.ProductIDs, productObjID)
	return whitelist, r.saveProducts(ctx, whitelist)
}

// RemoveProduct elimina todas las apariciones de una referencia de
// producto. Es idempotente: no falla si la referencia no estaba.
func (r *WhitelistRepository) RemoveProduct(ctx context.Context, id, productID string) (*models.Whitelist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	productObjID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}

	whitelist, err := r.findRaw(ctx, id)
	if err != nil {
		return nil, err
	}

	whitelist.ProductIDs = models.RemoveRef(whitelist.ProductIDs, productObjID)
	return whitelist, r.saveProducts(ctx, whitelist)
}

func (r *WhitelistRepository) findRaw(ctx context.Context, id string) (*models.Whitelist, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var whitelist models.Whitelist
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&whitelist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWhitelistNotFound
		}
		return nil, err
	}
	return &whitelist, nil
}

func (r *WhitelistRepository) findWhitelists(ctx context.Context, filter bson.M) ([]models.Whitelist, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	whitelists := []models.Whitelist{}
	if err := cursor.All(ctx, &whitelists); err != nil {
		return nil, err
	}

	for i := range whitelists {
		if err := r.populate(ctx, &whitelists[i]); err != nil {
			return nil, err
		}
	}
	return whitelists, nil
}

func (r *WhitelistRepository) saveProducts(ctx context.Context, whitelist *models.Whitelist) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": whitelist.ID}, bson.M{"$set": bson.M{
		"products":   whitelist.ProductIDs,
		"updated_at": now,
	}})
	if err == nil {
		whitelist.UpdatedAt = now
	}
	return err
}

// populate resuelve las referencias de usuario y productos. Un usuario
// inexistente queda ausente y los productos inexistentes se omiten;
// ninguna referencia colgante produce error.
func (r *WhitelistRepository) populate(ctx context.Context, whitelist *models.Whitelist) error {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"_id": whitelist.UserID}).Decode(&user)
	switch {
	case err == nil:
		whitelist.User = &user
	case errors.Is(err, mongo.ErrNoDocuments):
		whitelist.User = nil
	default:
		return err
	}

	products, err := resolveProducts(ctx, r.products, whitelist.ProductIDs)
	if err != nil {
		return err
	}
	whitelist.Products = products
	return nil
}
