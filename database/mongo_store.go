package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/barrelborn/digital-menu/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// menuItemDocument.ID stays untyped: hand-loaded menu collections carry
// string ids next to ObjectIDs.
type menuItemDocument struct {
	ID           interface{}        `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Description  string             `bson:"description"`
	Price        interface{}        `bson:"price"`
	Category     string             `bson:"category"`
	IsVeg        bool               `bson:"isVeg"`
	Image        string             `bson:"image"`
	IsAvailable  *bool              `bson:"isAvailable,omitempty"`
	RestaurantID interface{}        `bson:"restaurantId,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
	Version      int                `bson:"__v"`
}

type cartItemDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	MenuItemID interface{}        `bson:"menuItemId"`
	Quantity   int                `bson:"quantity"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

type customerDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Phone     string             `bson:"phone"`
	Email     string             `bson:"email,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// MongoStore implements Store on one MongoDB database holding a collection
// per menu category plus the cartitems, users and customers collections.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	loc    *time.Location
}

// NewMongoStore connects and pings the primary. A failure here is fatal for
// the caller: nothing is served without a store.
func NewMongoStore(ctx context.Context, uri, database string, loc *time.Location) (*MongoStore, error) {
	if loc == nil {
		loc = time.UTC
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{client: client, db: client.Database(database), loc: loc}, nil
}

// EnsureIndexes creates the unique keys the atomic upserts rely on. Legacy
// data with duplicates makes this fail; the upserts still work, only the
// race guarantee is weaker.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	unique := map[string]string{
		models.CartItemsCollection: "menuItemId",
		models.CustomersCollection: "phone",
		models.UsersCollection:     "username",
	}
	var errs []error
	for coll, key := range unique {
		_, err := s.db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", coll, key, err))
		}
	}
	return errors.Join(errs...)
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) CollectionNames(ctx context.Context) ([]string, error) {
	all, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for _, n := range all {
		if !models.IsReservedCollection(n) {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *MongoStore) MenuItems(ctx context.Context, collection string) ([]models.MenuItem, error) {
	return s.findMenuItems(ctx, collection, bson.D{})
}

func (s *MongoStore) SearchMenuItems(ctx context.Context, collection, term string) ([]models.MenuItem, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"description": re},
	}}
	return s.findMenuItems(ctx, collection, filter)
}

func (s *MongoStore) findMenuItems(ctx context.Context, collection string, filter interface{}) ([]models.MenuItem, error) {
	cur, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var docs []menuItemDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]models.MenuItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toModel())
	}
	return items, nil
}

func (s *MongoStore) FindMenuItem(ctx context.Context, collection, id string) (*models.MenuItem, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var key interface{} = id
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		key = oid
	}
	var doc menuItemDocument
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	item := doc.toModel()
	return &item, nil
}

func (s *MongoStore) InsertMenuItem(ctx context.Context, collection string, item *models.MenuItem) error {
	available := item.IsAvailable
	doc := menuItemDocument{
		Name:        item.Name,
		Description: item.Description,
		Price:       priceToBSON(item.Price),
		Category:    item.Category,
		IsVeg:       item.IsVeg,
		Image:       item.Image,
		IsAvailable: &available,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(item.RestaurantID); err == nil {
		doc.RestaurantID = oid
	} else if item.RestaurantID != "" {
		doc.RestaurantID = item.RestaurantID
	}

	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid.Hex()
	}
	return nil
}

func (s *MongoStore) ClearCollection(ctx context.Context, collection string) error {
	_, err := s.db.Collection(collection).DeleteMany(ctx, bson.D{})
	return err
}

func (s *MongoStore) CartItems(ctx context.Context) ([]models.CartItem, error) {
	cur, err := s.db.Collection(models.CartItemsCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var docs []cartItemDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]models.CartItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toModel())
	}
	return items, nil
}

func (s *MongoStore) IncrementCartItem(ctx context.Context, menuItemID string, quantity int) (*models.CartItem, error) {
	oid, err := primitive.ObjectIDFromHex(menuItemID)
	if err != nil {
		return nil, ErrInvalidID
	}
	now := time.Now().UTC()
	update := bson.M{
		"$inc":         bson.M{"quantity": quantity},
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc cartItemDocument
	err = s.db.Collection(models.CartItemsCollection).
		FindOneAndUpdate(ctx, bson.M{"menuItemId": oid}, update, opts).
		Decode(&doc)
	if err != nil {
		return nil, err
	}
	item := doc.toModel()
	return &item, nil
}

func (s *MongoStore) DeleteCartItem(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = s.db.Collection(models.CartItemsCollection).DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (s *MongoStore) ClearCart(ctx context.Context) error {
	_, err := s.db.Collection(models.CartItemsCollection).DeleteMany(ctx, bson.D{})
	return err
}

func (s *MongoStore) customerFilter(f models.CustomerFilter) bson.M {
	tz := s.loc.String()
	part := func(op string, v int) bson.M {
		return bson.M{"$eq": bson.A{
			bson.M{op: bson.M{"date": "$createdAt", "timezone": tz}},
			v,
		}}
	}

	var conds bson.A
	if f.Year != 0 {
		conds = append(conds, part("$year", f.Year))
	}
	if f.Month != 0 {
		conds = append(conds, part("$month", f.Month))
	}
	if f.Day != 0 {
		conds = append(conds, part("$dayOfMonth", f.Day))
	}
	if len(conds) == 0 {
		return bson.M{}
	}
	return bson.M{"$expr": bson.M{"$and": conds}}
}

func (s *MongoStore) Customers(ctx context.Context, f models.CustomerFilter) ([]models.Customer, int64, error) {
	coll := s.db.Collection(models.CustomersCollection)
	filter := s.customerFilter(f)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	if f.Limit > 0 {
		opts.SetSkip(int64(f.Offset())).SetLimit(int64(f.Limit))
	}
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var docs []customerDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}
	customers := make([]models.Customer, 0, len(docs))
	for _, d := range docs {
		customers = append(customers, d.toModel())
	}
	return customers, total, nil
}

func (s *MongoStore) CustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var doc customerDocument
	err := s.db.Collection(models.CustomersCollection).FindOne(ctx, bson.M{"phone": phone}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c := doc.toModel()
	return &c, nil
}

func (s *MongoStore) CreateCustomerIfAbsent(ctx context.Context, c *models.Customer) (*models.Customer, bool, error) {
	insert := bson.M{
		"name":      c.Name,
		"createdAt": c.CreatedAt,
		"updatedAt": c.UpdatedAt,
	}
	if c.Email != "" {
		insert["email"] = c.Email
	}
	res, err := s.db.Collection(models.CustomersCollection).UpdateOne(ctx,
		bson.M{"phone": c.Phone},
		bson.M{"$setOnInsert": insert},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, false, err
	}
	stored, err := s.CustomerByPhone(ctx, c.Phone)
	if err != nil {
		return nil, false, err
	}
	return stored, res.UpsertedCount == 1, nil
}

func (s *MongoStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var doc userDocument
	err := s.db.Collection(models.UsersCollection).FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:        doc.ID.Hex(),
		Username:  doc.Username,
		Password:  doc.Password,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *MongoStore) CreateUserIfAbsent(ctx context.Context, u *models.User) (*models.User, error) {
	_, err := s.db.Collection(models.UsersCollection).UpdateOne(ctx,
		bson.M{"username": u.Username},
		bson.M{"$setOnInsert": bson.M{
			"password":  u.Password,
			"createdAt": u.CreatedAt,
			"updatedAt": u.UpdatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return s.UserByUsername(ctx, u.Username)
}

func (d menuItemDocument) toModel() models.MenuItem {
	available := true
	if d.IsAvailable != nil {
		available = *d.IsAvailable
	}
	return models.MenuItem{
		ID:           idString(d.ID),
		Name:         d.Name,
		Description:  d.Description,
		Price:        priceFromBSON(d.Price),
		Category:     d.Category,
		IsVeg:        d.IsVeg,
		Image:        d.Image,
		IsAvailable:  available,
		RestaurantID: idString(d.RestaurantID),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (d cartItemDocument) toModel() models.CartItem {
	return models.CartItem{
		ID:         d.ID.Hex(),
		MenuItemID: idString(d.MenuItemID),
		Quantity:   d.Quantity,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (d customerDocument) toModel() models.Customer {
	return models.Customer{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Phone:     d.Phone,
		Email:     d.Email,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func priceFromBSON(v interface{}) models.Price {
	switch p := v.(type) {
	case float64:
		return models.NumberPrice(p)
	case int32:
		return models.NumberPrice(float64(p))
	case int64:
		return models.NumberPrice(float64(p))
	case string:
		return models.TextPrice(p)
	case primitive.Decimal128:
		f, _ := strconv.ParseFloat(p.String(), 64)
		return models.NumberPrice(f)
	}
	return models.Price{}
}

func priceToBSON(p models.Price) interface{} {
	if p.IsText() {
		return p.Text
	}
	return p.Amount
}
