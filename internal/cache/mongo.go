package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoDoc struct {
	Key      string    `bson:"key"`
	MasterID int64     `bson:"master_id"`
	NewID    int64     `bson:"new_id"`
	Score    float64   `bson:"score"`
	Matched  bool      `bson:"matched"`
	CachedAt time.Time `bson:"cached_at"`
}

// MongoCache is the L2 decision cache: persistent MongoDB storage with an
// in-memory LRU in front, the same shape as the teacher's
// MongoCacheService.
type MongoCache struct {
	collection *mongo.Collection
	l1         *lru.Cache[string, Decision]
	logger     *zap.Logger

	hits, misses int64
}

// NewMongoCache creates indexes on the decisions collection and returns a
// ready MongoCache, its LRU sized to l1Size entries.
func NewMongoCache(db *mongo.Database, l1Size int, logger *zap.Logger) (*MongoCache, error) {
	l1, err := lru.New[string, Decision](l1Size)
	if err != nil {
		return nil, fmt.Errorf("cache: new lru: %w", err)
	}

	collection := db.Collection("conflation_decisions")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{bson.E{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.Warn("cache: could not create mongo index", zap.Error(err))
	}

	return &MongoCache{collection: collection, l1: l1, logger: logger}, nil
}

func (c *MongoCache) Get(ctx context.Context, key Key) (Decision, bool, error) {
	k := key.string()
	if d, ok := c.l1.Get(k); ok {
		c.hits++
		return d, true, nil
	}

	var doc mongoDoc
	err := c.collection.FindOne(ctx, bson.M{"key": k}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		c.misses++
		return Decision{}, false, nil
	}
	if err != nil {
		return Decision{}, false, fmt.Errorf("cache: mongo find: %w", err)
	}
	c.hits++
	d := Decision{MasterID: doc.MasterID, NewID: doc.NewID, Score: doc.Score, Matched: doc.Matched, CachedAt: doc.CachedAt}
	c.l1.Add(k, d)
	return d, true, nil
}

func (c *MongoCache) Set(ctx context.Context, key Key, d Decision) error {
	k := key.string()
	c.l1.Add(k, d)

	doc := mongoDoc{Key: k, MasterID: d.MasterID, NewID: d.NewID, Score: d.Score, Matched: d.Matched, CachedAt: d.CachedAt}
	opts := options.Replace().SetUpsert(true)
	_, err := c.collection.ReplaceOne(ctx, bson.M{"key": k}, doc, opts)
	if err != nil {
		return fmt.Errorf("cache: mongo replace: %w", err)
	}
	return nil
}

func (c *MongoCache) Delete(ctx context.Context, key Key) error {
	c.l1.Remove(key.string())
	_, err := c.collection.DeleteOne(ctx, bson.M{"key": key.string()})
	if err != nil {
		return fmt.Errorf("cache: mongo delete: %w", err)
	}
	return nil
}

func (c *MongoCache) Clear(ctx context.Context) error {
	c.l1.Purge()
	if _, err := c.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("cache: mongo clear: %w", err)
	}
	c.hits, c.misses = 0, 0
	return nil
}

func (c *MongoCache) Stats(ctx context.Context) (Stats, error) {
	count, err := c.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return Stats{}, fmt.Errorf("cache: mongo count: %w", err)
	}
	total := c.hits + c.misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return Stats{HitRate: hitRate, TotalHits: c.hits, TotalMiss: c.misses, TotalItems: count}, nil
}

func (c *MongoCache) Close() error {
	return nil
}

// WarmUp loads up to limit entries from MongoDB into the L1 LRU.
func (c *MongoCache) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().SetLimit(int64(limit))
	cursor, err := c.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("cache: mongo warm up: %w", err)
	}
	defer cursor.Close(ctx)

	loaded := 0
	for cursor.Next(ctx) {
		var doc mongoDoc
		if err := cursor.Decode(&doc); err != nil {
			c.logger.Warn("cache: skipping unreadable warm-up doc", zap.Error(err))
			continue
		}
		c.l1.Add(doc.Key, Decision{MasterID: doc.MasterID, NewID: doc.NewID, Score: doc.Score, Matched: doc.Matched, CachedAt: doc.CachedAt})
		loaded++
	}
	c.logger.Info("cache: warmed up", zap.Int("loaded", loaded))
	return nil
}

var _ Cache = (*MongoCache)(nil)
