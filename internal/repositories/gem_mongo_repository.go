package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gemstone/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GemCollection is the collection gems are stored in.
const GemCollection = "gem"

type gemDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Type          string             `bson:"type"`
	Weight        float64            `bson:"weight"`
	Price         float64            `bson:"price"`
	Description   string             `bson:"description"`
	Certification *string            `bson:"certification"`
	Image         *string            `bson:"image"`
	Gallery       []string           `bson:"gallery"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func newGemDocument(g *models.Gem) gemDocument {
	gallery := g.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return gemDocument{
		Name:          g.Name,
		Type:          g.Type,
		Weight:        g.Weight,
		Price:         g.Price,
		Description:   g.Description,
		Certification: g.Certification,
		Image:         g.Image,
		Gallery:       gallery,
		CreatedAt:     g.CreatedAt.UTC(),
		UpdatedAt:     g.UpdatedAt.UTC(),
	}
}

// toModel trusts the stored document only for field values; the identifier
// is stringified here and nowhere else.
func (d gemDocument) toModel() models.Gem {
	gallery := d.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return models.Gem{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Type:          d.Type,
		Weight:        d.Weight,
		Price:         d.Price,
		Description:   d.Description,
		Certification: d.Certification,
		Image:         d.Image,
		Gallery:       gallery,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

// parseObjectID converts the boundary identifier into an ObjectID.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return oid, nil
}

// buildGemFilter translates the listing filter into a Mongo query. User
// input is quoted so it matches literally.
func buildGemFilter(q models.GemQuery) bson.M {
	filter := bson.M{}
	if q.Type != "" {
		filter["type"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(q.Type) + "$", Options: "i"}
	}
	if q.Search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	}
	return filter
}

// buildGemFindOptions carries sort, skip and limit for a listing page. Ties
// fall back to _id, which follows insertion order.
func buildGemFindOptions(q models.GemQuery) *options.FindOptions {
	dir := 1
	if q.Descending() {
		dir = -1
	}
	return options.Find().
		SetSort(bson.D{{Key: q.SortField(), Value: dir}, {Key: "_id", Value: 1}}).
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.Limit))
}

// MongoGemRepository is a MongoDB implementation of GemRepository. Native
// identifiers are ObjectIDs.
type MongoGemRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoGemRepository creates a repository over the gem collection of db.
func NewMongoGemRepository(db *mongo.Database, timeout time.Duration) *MongoGemRepository {
	if timeout <= 0 {
		timeout = queryTimeout
	}
	return &MongoGemRepository{coll: db.Collection(GemCollection), timeout: timeout}
}

func (r *MongoGemRepository) Available() bool { return true }

// List delegates filter, sort, skip and limit to the database.
func (r *MongoGemRepository) List(ctx context.Context, q models.GemQuery) ([]models.Gem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, buildGemFilter(q), buildGemFindOptions(q))
	if err != nil {
		return nil, fmt.Errorf("failed to list gems: %w", err)
	}
	var docs []gemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode gems: %w", err)
	}

	gems := make([]models.Gem, len(docs))
	for i, d := range docs {
		gems[i] = d.toModel()
	}
	return gems, nil
}

// Count is a count-only request over the listing filter.
func (r *MongoGemRepository) Count(ctx context.Context, q models.GemQuery) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, buildGemFilter(q))
	if err != nil {
		return 0, fmt.Errorf("failed to count gems: %w", err)
	}
	return n, nil
}

func (r *MongoGemRepository) GetByID(ctx context.Context, id string) (*models.Gem, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc gemDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("gem with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get gem by ID %s: %w", id, err)
	}
	gem := doc.toModel()
	return &gem, nil
}

func (r *MongoGemRepository) Create(ctx context.Context, gem *models.Gem) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, newGemDocument(gem))
	if err != nil {
		return fmt.Errorf("failed to create gem: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	gem.ID = oid.Hex()
	return nil
}

func (r *MongoGemRepository) CreateMany(ctx context.Context, gems []models.Gem) error {
	if len(gems) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	docs := make([]interface{}, len(gems))
	for i := range gems {
		docs[i] = newGemDocument(&gems[i])
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to create gems: %w", err)
	}
	for i, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(gems) {
			gems[i].ID = oid.Hex()
		}
	}
	return nil
}

func (r *MongoGemRepository) Update(ctx context.Context, gem *models.Gem) error {
	oid, err := parseObjectID(gem.ID)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := newGemDocument(gem)
	set := bson.M{
		"name":          doc.Name,
		"type":          doc.Type,
		"weight":        doc.Weight,
		"price":         doc.Price,
		"description":   doc.Description,
		"certification": doc.Certification,
		"image":         doc.Image,
		"gallery":       doc.Gallery,
		"updated_at":    doc.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update gem: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("gem with ID %s: %w", gem.ID, ErrNotFound)
	}
	return nil
}

func (r *MongoGemRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete gem: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("gem with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *MongoGemRepository) Info(ctx context.Context) (*models.StoreInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db := r.coll.Database()
	info := &models.StoreInfo{Backend: "mongodb", Name: db.Name()}
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return info, fmt.Errorf("failed to list collections: %w", err)
	}
	info.Collections = names
	return info, nil
}

// Close disconnects the client that owns the collection.
func (r *MongoGemRepository) Close(ctx context.Context) error {
	return r.coll.Database().Client().Disconnect(ctx)
}
