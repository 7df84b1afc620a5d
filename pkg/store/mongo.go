package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orbifold/cytoconv/pkg/cache"
	"github.com/orbifold/cytoconv/pkg/cyto"
	cerrors "github.com/orbifold/cytoconv/pkg/errors"
)

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// Default database and collection names.
const (
	DefaultMongoDatabase   = "cytoconv"
	DefaultMongoCollection = "graphs"
)

// graphDocument is the stored form of a graph. The graph itself is kept as
// its JSON encoding so attribute values round-trip with JSON semantics.
type graphDocument struct {
	ID        string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	Nodes     int       `bson:"nodes"`
	Edges     int       `bson:"edges"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps graphs in a MongoDB collection, one document per graph.
type MongoStore struct {
	client *mongo.Client // nil when built from a collection
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "connect to mongodb")
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(fmt.Errorf("%w: %w", cache.ErrNetwork, err))
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, cerrors.Wrap(cerrors.ErrCodeNetwork, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// NewMongoStoreFromCollection wraps an existing collection. Close does not
// disconnect its client.
func NewMongoStoreFromCollection(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) Save(ctx context.Context, g *cyto.Graph) error {
	if err := checkGraph(g); err != nil {
		return err
	}
	data, err := encodeGraph(g)
	if err != nil {
		return err
	}

	doc := graphDocument{
		ID:        g.ID,
		Payload:   string(data),
		Nodes:     g.NodeCount(),
		Edges:     g.EdgeCount(),
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": g.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeNetwork, err, "save graph %q", g.ID)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*cyto.Graph, error) {
	if err := cerrors.ValidateGraphID(id); err != nil {
		return nil, err
	}

	var doc graphDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeNetwork, err, "get graph %q", id)
	}
	return decodeGraph(id, []byte(doc.Payload))
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := cerrors.ValidateGraphID(id); err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeNetwork, err, "delete graph %q", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetProjection(bson.M{"payload": 0}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeNetwork, err, "list graphs")
	}

	var docs []graphDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeNetwork, err, "list graphs")
	}

	out := make([]Summary, 0, len(docs))
	for _, d := range docs {
		out = append(out, Summary{ID: d.ID, Nodes: d.Nodes, Edges: d.Edges, UpdatedAt: d.UpdatedAt})
	}
	return out, nil
}

// Close disconnects the client created by [NewMongoStore].
func (s *MongoStore) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
