package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/pkg/telemetry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
)

// NewMongoStore wires the MongoDB repositories onto db
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Owners: NewMongoOwnerRepository(db),
		Snakes: NewMongoSnakeRepository(db),
		Cages:  NewMongoCageRepository(db),
	}
}

// EnsureMongoIndexes creates the lookup indexes used by the repositories
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(ownersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create owners email index: %w", err)
	}
	if _, err := db.Collection(cagesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "price", Value: 1}, {Key: "square_meters", Value: -1}}},
		{Keys: bson.D{{Key: "bookings.guest_owner_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create cages indexes: %w", err)
	}
	return nil
}

// MongoOwnerRepository implements OwnerRepository on the owners collection
type MongoOwnerRepository struct {
	coll *mongo.Collection
}

// NewMongoOwnerRepository creates a new MongoOwnerRepository
func NewMongoOwnerRepository(db *mongo.Database) *MongoOwnerRepository {
	return &MongoOwnerRepository{coll: db.Collection(ownersCollection)}
}

// Create inserts the owner and assigns its ObjectID
func (r *MongoOwnerRepository) Create(ctx context.Context, owner *domain.Owner) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.mongo.owner.create")
	defer span.End()

	doc, err := newOwnerDocument(owner)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to create owner: %w", err)
	}

	owner.ID = doc.ID.Hex()
	return nil
}

// GetByID finds an owner by id
func (r *MongoOwnerRepository) GetByID(ctx context.Context, id string) (*domain.Owner, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.mongo.owner.get_by_id")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", id))

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// GetByEmail returns the earliest owner registered with email
func (r *MongoOwnerRepository) GetByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.mongo.owner.get_by_email")
	defer span.End()

	return r.findOne(ctx, bson.M{"email": email}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// Update replaces the stored owner document
func (r *MongoOwnerRepository) Update(ctx context.Context, owner *domain.Owner) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.mongo.owner.update")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", owner.ID))

	doc, err := newOwnerDocument(owner)
	if err != nil {
		return err
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to update owner: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOwnerNotFound
	}
	return nil
}

func (r *MongoOwnerRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.Owner, error) {
	var doc ownerDocument
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}
	return doc.toDomain(), nil
}

// MongoSnakeRepository implements SnakeRepository on the snakes collection
type MongoSnakeRepository struct {
	coll *mongo.Collection
}

// NewMongoSnakeRepository creates a new MongoSnakeRepository
func NewMongoSnakeRepository(db *mongo.Database) *MongoSnakeRepository {
	return &MongoSnakeRepository{coll: db.Collection(snakesCollection)}
}

func (r *MongoSnakeRepository) Create(ctx context.Context, snake *domain.Snake) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.mongo.snake.create")
	defer span.End()

	doc := newSnakeDocument(snake)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to create snake: %w", err)
	}

	snake.ID = doc.ID.Hex()
	return nil
}

func (r *MongoSnakeRepository) GetByID(ctx context.Context, id string) (*domain.Snake, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc snakeDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSnakeNotFound
		}
		return nil, fmt.Errorf("failed to find snake: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoSnakeRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Snake, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.mongo.snake.get_by_ids")
	defer span.End()

	if len(ids) == 0 {
		return []*domain.Snake{}, nil
	}
	oids, err := parseObjectIDs(ids)
	if err != nil {
		return nil, err
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list snakes: %w", err)
	}
	var docs []snakeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode snakes: %w", err)
	}

	snakes := make([]*domain.Snake, len(docs))
	for i := range docs {
		snakes[i] = docs[i].toDomain()
	}
	return orderByIDs(ids, snakes, func(s *domain.Snake) string { return s.ID }), nil
}

// MongoCageRepository implements CageRepository on the cages collection
type MongoCageRepository struct {
	coll *mongo.Collection
}

// NewMongoCageRepository creates a new MongoCageRepository
func NewMongoCageRepository(db *mongo.Database) *MongoCageRepository {
	return &MongoCageRepository{coll: db.Collection(cagesCollection)}
}

func (r *MongoCageRepository) Create(ctx context.Context, cage *domain.Cage) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.mongo.cage.create")
	defer span.End()

	doc, err := newCageDocument(cage)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to create cage: %w", err)
	}

	cage.ID = doc.ID.Hex()
	return nil
}

func (r *MongoCageRepository) GetByID(ctx context.Context, id string) (*domain.Cage, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc cageDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCageNotFound
		}
		return nil, fmt.Errorf("failed to find cage: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoCageRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Cage, error) {
	if len(ids) == 0 {
		return []*domain.Cage{}, nil
	}
	oids, err := parseObjectIDs(ids)
	if err != nil {
		return nil, err
	}

	cages, err := r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	return orderByIDs(ids, cages, func(c *domain.Cage) string { return c.ID }), nil
}

// AppendWindow pushes window onto the cage's bookings array
func (r *MongoCageRepository) AppendWindow(ctx context.Context, cageID string, window domain.Booking) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.mongo.cage.append_window")
	defer span.End()
	span.SetAttributes(attribute.String("cage_id", cageID))

	oid, err := parseObjectID(cageID)
	if err != nil {
		return err
	}
	doc, err := newBookingDocument(window)
	if err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"bookings": doc}})
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to append window: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCageNotFound
	}
	return nil
}

// FindCandidates filters on size, venom policy and an open covering window
func (r *MongoCageRepository) FindCandidates(ctx context.Context, q CageQuery) ([]*domain.Cage, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.mongo.cage.find_candidates")
	defer span.End()

	filter := bson.M{
		"square_meters": bson.M{"$gte": q.MinSquareMeters},
		"bookings": bson.M{"$elemMatch": bson.M{
			"check_in_date":  bson.M{"$lte": q.CheckIn},
			"check_out_date": bson.M{"$gte": q.CheckOut},
			"guest_snake_id": nil,
		}},
	}
	if q.RequireDangerous {
		filter["allow_dangerous_snakes"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}, {Key: "square_meters", Value: -1}})
	cages, err := r.find(ctx, filter, opts)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("candidates", len(cages)))
	return cages, nil
}

func (r *MongoCageRepository) FindByGuestOwner(ctx context.Context, ownerID string) ([]*domain.Cage, error) {
	oid, err := parseObjectID(ownerID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"bookings.guest_owner_id": oid})
}

// ReserveWindow writes reserved at bookings.<index> only while the stored
// window still has the dates of expected and no guest snake.
func (r *MongoCageRepository) ReserveWindow(ctx context.Context, cageID string, index int, expected, reserved domain.Booking) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.mongo.cage.reserve_window")
	defer span.End()
	span.SetAttributes(attribute.String("cage_id", cageID), attribute.Int("window_index", index))

	oid, err := parseObjectID(cageID)
	if err != nil {
		return err
	}
	doc, err := newBookingDocument(reserved)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("bookings.%d", index)
	filter := bson.M{
		"_id":                    oid,
		path + ".check_in_date":  expected.CheckIn,
		path + ".check_out_date": expected.CheckOut,
		path + ".guest_snake_id": nil,
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{path: doc}})
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to reserve window: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to check cage: %w", err)
	}
	if n == 0 {
		return domain.ErrCageNotFound
	}
	telemetry.RecordError(span, domain.ErrAvailabilityConflict)
	return domain.ErrAvailabilityConflict
}

func (r *MongoCageRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*domain.Cage, error) {
	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cages: %w", err)
	}
	var docs []cageDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode cages: %w", err)
	}

	cages := make([]*domain.Cage, len(docs))
	for i := range docs {
		cages[i] = docs[i].toDomain()
	}
	return cages, nil
}
