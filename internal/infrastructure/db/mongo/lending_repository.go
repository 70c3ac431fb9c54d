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

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
)

const collectionLendingLog = "lending_log"

// LendingRepository is the Mongo-backed lending log.
type LendingRepository struct {
	col *mongo.Collection
}

func NewLendingRepository(db *mongo.Database) *LendingRepository {
	return &LendingRepository{col: db.Collection(collectionLendingLog)}
}

type mongoLending struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	BookID    string             `bson:"book_id"`
	UserID    string             `bson:"user_id"`
	StartTime time.Time          `bson:"start_time"`
	// EndTime is absent while the loan is outstanding.
	EndTime *time.Time `bson:"end_time,omitempty"`
}

func (ml *mongoLending) toDomain() domain.LendingLogItem {
	item := domain.LendingLogItem{
		ID:        ml.ID.Hex(),
		BookID:    ml.BookID,
		UserID:    ml.UserID,
		StartTime: ml.StartTime,
	}
	if ml.EndTime != nil {
		item.EndTime = *ml.EndTime
	}
	return item
}

func (r *LendingRepository) Insert(ctx context.Context, item *domain.LendingLogItem) (*domain.LendingLogItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoLending{
		BookID:    item.BookID,
		UserID:    item.UserID,
		StartTime: item.StartTime,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert lending record: %w", err)
	}

	created := *item
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *LendingRepository) FindOutstanding(ctx context.Context, userID, bookID string) (*domain.LendingLogItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"user_id":  userID,
		"book_id":  bookID,
		"end_time": bson.M{"$exists": false},
	}

	var ml mongoLending
	if err := r.col.FindOne(ctx, filter).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLendingNotFound
		}
		return nil, fmt.Errorf("find outstanding loan: %w", err)
	}
	item := ml.toDomain()
	return &item, nil
}

func (r *LendingRepository) Close(ctx context.Context, id string, endTime time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrLendingNotFound
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"end_time": endTime}})
	if err != nil {
		return fmt.Errorf("close loan: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLendingNotFound
	}
	return nil
}

func (r *LendingRepository) HistoryByUser(ctx context.Context, userID string, page, size int) ([]domain.LendingLogItem, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count lending history: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetSkip(int64(page * size)).
		SetLimit(int64(size))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("lending history: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.LendingLogItem
	for cursor.Next(ctx) {
		var ml mongoLending
		if err := cursor.Decode(&ml); err != nil {
			return nil, 0, fmt.Errorf("decode lending record: %w", err)
		}
		items = append(items, ml.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("lending history: %w", err)
	}
	return items, total, nil
}

// EnsureIndexes creates the lookup indexes for the lending log.
func (r *LendingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start_time", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "book_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
