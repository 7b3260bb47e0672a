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

type UserRepository struct {
	collection *mongo.Collection
	products   *mongo.Collection
}

func NewUserRepository(collection, products *mongo.Collection) *UserRepository {
	return &UserRepository{
		collection: collection,
		products:   products,
	}
}

// Create registra un nuevo usuario. El password debe venir ya hasheado.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Wishlist == nil {
		user.Wishlist = []primitive.ObjectID{}
	}
	if user.RegistrationDate.IsZero() {
		user.RegistrationDate = now
	}

	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	return err
}

// FindAll lista todos los usuarios
func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByID obtiene un usuario por ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

// FindByEmail obtiene un usuario por email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.findOne(ctx, bson.M{"email": email})
}

// Update actualiza un usuario y devuelve el documento resultante.
// Si viene password, debe llegar ya hasheado.
func (r *UserRepository) Update(ctx context.Context, id string, update *models.UserUpdate) (*models.User, error) {
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
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}
	if update.Role != nil {
		set["role"] = *update.Role
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// Delete elimina un usuario y devuelve el documento borrado. Las
// whitelists que lo referencien quedan con la referencia colgante.
func (r *UserRepository) Delete(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var user models.User
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// AddToWishlist agrega una referencia de producto a la wishlist del
// usuario. Si ya estaba presente la operación es un no-op.
func (r *UserRepository) AddToWishlist(ctx context.Context, userID, productID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	productObjID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}

	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if models.ContainsRef(user.Wishlist, productObjID) {
		return user, nil
	}

	user.Wishlist = append(user.Wishlist, productObjID)
	return user, r.saveWishlist(ctx, user)
}

// RemoveFromWishlist elimina una referencia de producto de la wishlist.
// Es idempotente: no falla si la referencia no estaba.
func (r *UserRepository) RemoveFromWishlist(ctx context.Context, userID, productID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	productObjID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}

	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Wishlist = models.RemoveRef(user.Wishlist, productObjID)
	return user, r.saveWishlist(ctx, user)
}

// GetWishlist devuelve los productos de la wishlist resueltos. Las
// referencias colgantes se omiten del resultado.
func (r *UserRepository) GetWishlist(ctx context.Context, userID string) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return resolveProducts(ctx, r.products, user.Wishlist)
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) saveWishlist(ctx context.Context, user *models.User) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"wishlist":   user.Wishlist,
		"updated_at": now,
	}})
	if err == nil {
		user.UpdatedAt = now
	}
	return err
}

// resolveProducts resuelve una secuencia de referencias a productos
// preservando orden y duplicados; los documentos inexistentes se omiten.
func resolveProducts(ctx context.Context, products *mongo.Collection, refs []primitive.ObjectID) ([]models.Product, error) {
	resolved := []models.Product{}
	if len(refs) == 0 {
		return resolved, nil
	}

	ids := make([]primitive.ObjectID, 0, len(refs))
	seen := make(map[primitive.ObjectID]bool, len(refs))
	for _, ref := range refs {
		if !seen[ref] {
			seen[ref] = true
			ids = append(ids, ref)
		}
	}

	cursor, err := products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []models.Product
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	for _, ref := range refs {
		if p, ok := byID[ref]; ok {
			resolved = append(resolved, p)
		}
	}
	return resolved, nil
}
