package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/missingred/portfolio/internal/domain"
	"github.com/missingred/portfolio/internal/observability"
)

const chatsCollection = "chats"

type Store struct {
	client *mongo.Client
	chats  *mongo.Collection
}

type chatDoc struct {
	ID        string       `bson:"_id"`
	CreatedAt time.Time    `bson:"createdAt"`
	Messages  []messageDoc `bson:"messages"`
}

type messageDoc struct {
	Role string `bson:"role"`
	Text string `bson:"text"`
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("uri is required for Mongo store")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return &Store{
		client: client,
		chats:  client.Database(database).Collection(chatsCollection),
	}, nil
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

func (d chatDoc) toSession() domain.Session {
	msgs := make([]domain.Message, 0, len(d.Messages))
	for _, m := range d.Messages {
		role, err := domain.ParseRole(m.Role)
		if err != nil {
			role = domain.RoleAssistant
		}
		msgs = append(msgs, domain.Message{Role: role, Text: m.Text})
	}
	return domain.Session{ID: domain.SessionID(d.ID), CreatedAt: d.CreatedAt, Messages: msgs}
}

// CreateSession upserts with an update pipeline so createdAt is stamped
// by the server ($$NOW, MongoDB 4.2+), never by the process clock. An
// upsert that matches an existing document leaves it untouched.
func (s *Store) CreateSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	if id == "" {
		id = domain.SessionID(uuid.NewString())
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "createdAt", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$createdAt", "$$NOW"}}}},
			{Key: "messages", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$messages", bson.A{}}}}},
		}}},
	}
	res, err := s.chats.UpdateOne(ctx, bson.M{"_id": string(id)}, pipeline, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("mongo CreateSession %s: %w", id, domain.ErrSessionExists)
		}
		return nil, fmt.Errorf("mongo CreateSession: %w", err)
	}
	if res.UpsertedCount == 0 {
		return nil, fmt.Errorf("mongo CreateSession %s: %w", id, domain.ErrSessionExists)
	}

	return s.GetSession(ctx, id)
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	var doc chatDoc
	err := s.chats.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("mongo GetSession %s: %w", id, domain.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("mongo GetSession: %w", err)
	}

	sess := doc.toSession()
	return &sess, nil
}

func (s *Store) ListSessions(ctx context.Context) ([]domain.Session, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.chats.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo ListSessions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Session
	for cursor.Next(ctx) {
		var doc chatDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode chatDoc: %w", err)
		}
		out = append(out, doc.toSession())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongo ListSessions: %w", err)
	}
	return out, nil
}

// AppendMessage uses $push, which the server applies atomically.
func (s *Store) AppendMessage(ctx context.Context, id domain.SessionID, msg domain.Message) error {
	if !msg.Role.Valid() {
		return fmt.Errorf("mongo AppendMessage %s: %w: %q", id, domain.ErrInvalidRole, msg.Role)
	}

	update := bson.M{"$push": bson.M{"messages": messageDoc{Role: string(msg.Role), Text: msg.Text}}}
	res, err := s.chats.UpdateOne(ctx, bson.M{"_id": string(id)}, update)
	if err != nil {
		return fmt.Errorf("mongo AppendMessage: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mongo AppendMessage %s: %w", id, domain.ErrSessionNotFound)
	}
	return nil
}

// WatchSessions re-lists the collection on every change stream event.
// Change streams need a replica set; on a standalone server the watch
// fails up front.
func (s *Store) WatchSessions(ctx context.Context) (<-chan []domain.Session, error) {
	stream, err := s.chats.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, fmt.Errorf("mongo WatchSessions: %w", err)
	}

	initial, err := s.ListSessions(ctx)
	if err != nil {
		_ = stream.Close(context.Background())
		return nil, err
	}

	out := make(chan []domain.Session)
	log := observability.LoggerFromContext(ctx).WithField("collection", chatsCollection)

	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		snap := initial
		for {
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}

			if !stream.Next(ctx) {
				if err := stream.Err(); err != nil && ctx.Err() == nil {
					log.WithError(err).Error("mongo change stream stopped")
				}
				return
			}

			snap, err = s.ListSessions(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.WithError(err).Error("failed to reload sessions")
				}
				return
			}
		}
	}()

	return out, nil
}
