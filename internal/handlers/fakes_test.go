package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tienda-api/internal/models"
	"tienda-api/internal/repository"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func performRequest(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// fakeProductRepo replica en memoria la semántica del repositorio real,
// reutilizando las mismas funciones de transición del paquete models.
type fakeProductRepo struct {
	products map[string]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*models.Product{}}
}

func (f *fakeProductRepo) add(p *models.Product) *models.Product {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.products[p.ID.Hex()] = p
	return p
}

func (f *fakeProductRepo) Create(ctx context.Context, create *models.ProductCreate) (*models.Product, error) {
	categoryID, err := primitive.ObjectIDFromHex(create.CategoryID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	product := &models.Product{
		Name:        create.Name,
		Description: create.Description,
		Price:       create.Price,
		ImageURL:    create.ImageURL,
		CategoryID:  categoryID,
		Stock:       create.Stock,
		IsAvailable: true,
	}
	return f.add(product), nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) FindByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	out := []models.Product{}
	for _, p := range f.products {
		if p.CategoryID == objID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, id string, update *models.ProductUpdate) (*models.Product, error) {
	p, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Stock != nil {
		p.Stock, p.IsAvailable = models.ApplyStockDelta(*update.Stock, 0)
	}
	f.products[id] = p
	return p, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) (*models.Product, error) {
	p, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	delete(f.products, id)
	return p, nil
}

func (f *fakeProductRepo) AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			return nil, repository.ErrInvalidID
		}
		return nil, repository.ErrProductNotFound
	}
	p.Stock, p.IsAvailable = models.ApplyStockDelta(p.Stock, delta)
	copied := *p
	return &copied, nil
}

type fakeUserRepo struct {
	users    map[string]*models.User
	products map[string]*models.Product
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    map[string]*models.User{},
		products: map[string]*models.Product{},
	}
}

func (f *fakeUserRepo) add(u *models.User) *models.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Wishlist == nil {
		u.Wishlist = []primitive.ObjectID{}
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	f.users[u.ID.Hex()] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	user.RegistrationDate = time.Now()
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, update *models.UserUpdate) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Password != nil {
		u.Password = *update.Password
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) (*models.User, error) {
	u, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	delete(f.users, id)
	return u, nil
}

func (f *fakeUserRepo) AddToWishlist(ctx context.Context, userID, productID string) (*models.User, error) {
	productObjID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Wishlist = models.AppendUnique(u.Wishlist, productObjID)
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) RemoveFromWishlist(ctx context.Context, userID, productID string) (*models.User, error) {
	productObjID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Wishlist = models.RemoveRef(u.Wishlist, productObjID)
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetWishlist(ctx context.Context, userID string) ([]models.Product, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	resolved := []models.Product{}
	for _, ref := range u.Wishlist {
		if p, ok := f.products[ref.Hex()]; ok {
			resolved = append(resolved, *p)
		}
	}
	return resolved, nil
}

type fakeWhitelistRepo struct {
	whitelists map[string]*models.Whitelist
}

func newFakeWhitelistRepo() *fakeWhitelistRepo {
	return &fakeWhitelistRepo{whitelists: map[string]*models.Whitelist{}}
}

func (f *fakeWhitelistRepo) add(w *models.Whitelist) *models.Whitelist {
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	if w.ProductIDs == nil {
		w.ProductIDs = []primitive.ObjectID{}
	}
	if w.Status == "" {
		w.Status = models.WhitelistStatusActive
	}
	f.whitelists[w.ID.Hex()] = w
	return w
}

func (f *fakeWhitelistRepo) Create(ctx context.Context, create *models.WhitelistCreate) (*models.Whitelist, error) {
	userID, err := primitive.ObjectIDFromHex(create.UserID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	productIDs := []primitive.ObjectID{}
	for _, id := range create.ProductIDs {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, repository.ErrInvalidID
		}
		productIDs = append(productIDs, objID)
	}
	w := &models.Whitelist{
		UserID:     userID,
		ProductIDs: productIDs,
		Status:     create.Status,
		CreatedAt:  time.Now(),
	}
	return f.add(w), nil
}

func (f *fakeWhitelistRepo) FindAll(ctx context.Context) ([]models.Whitelist, error) {
	out := []models.Whitelist{}
	for _, w := range f.whitelists {
		out = append(out, *w)
	}
	return out, nil
}

func (f *fakeWhitelistRepo) FindByID(ctx context.Context, id string) (*models.Whitelist, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	w, ok := f.whitelists[id]
	if !ok {
		return nil, repository.ErrWhitelistNotFound
	}
	copied := *w
	return &copied, nil
}

func (f *fakeWhitelistRepo) FindByUser(ctx context.Context, userID string) ([]models.Whitelist, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	out := []models.Whitelist{}
	for _, w := range f.whitelists {
		if w.UserID == objID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeWhitelistRepo) FindByProduct(ctx context.Context, productID string) ([]models.Whitelist, error) {
	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	out := []models.Whitelist{}
	for _, w := range f.whitelists {
		if models.ContainsRef(w.ProductIDs, objID) {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeWhitelistRepo) FindByStatus(ctx context.Context, status string) ([]models.Whitelist, error) {
	out := []models.Whitelist{}
	for _, w := range f.whitelists {
		if w.Status == status {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeWhitelistRepo) FindByDateRange(ctx context.Context, startDate, endDate time.Time) ([]models.Whitelist, error) {
	out := []models.Whitelist{}
	for _, w := range f.whitelists {
		if !w.CreatedAt.Before(startDate) && !w.CreatedAt.After(endDate) {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeWhitelistRepo) Update(ctx context.Context, id string, update *models.WhitelistUpdate) (*models.Whitelist, error) {
	w, ok := f.whitelists[id]
	if !ok {
		return nil, repository.ErrWhitelistNotFound
	}
	if update.Status != nil {
		w.Status = *update.Status
	}
	copied := *w
	return &copied, nil
}

func (f *fakeWhitelistRepo) Delete(ctx context.Context, id string) (*models.Whitelist, error) {
	w, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	delete(f.whitelists, id)
	return w, nil
}

func (f *fakeWhitelistRepo) AddProduct(ctx context.Context, id, productID string) (*models.Whitelist, error) {
	productObjID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	w, ok := f.whitelists[id]
	if !ok {
		return nil, repository.ErrWhitelistNotFound
	}
	w.ProductIDs = append(w.ProductIDs, productObjID)
	copied := *w
	return &copied, nil
}

func (f *fakeWhitelistRepo) RemoveProduct(ctx context.Context, id, productID string) (*models.Whitelist, error) {
	productObjID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	w, ok := f.whitelists[id]
	if !ok {
		return nil, repository.ErrWhitelistNotFound
	}
	w.ProductIDs = models.RemoveRef(w.ProductIDs, productObjID)
	copied := *w
	return &copied, nil
}
