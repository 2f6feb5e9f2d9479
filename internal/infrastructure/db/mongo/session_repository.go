package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionCollection = "portal_sessions"

// SessionRepository stores one document per session:
//
//	{ _id: <sid>, values: { userRole, token }, updated_at: <date> }
//
// A TTL index on updated_at expires idle sessions.
type SessionRepository struct {
	coll *mongo.Collection
	ttl  time.Duration
	now  func() time.Time
}

type sessionDoc struct {
	ID        string            `bson:"_id"`
	Values    map[string]string `bson:"values"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

// NewSessionRepository returns a repository on the portal_sessions collection.
func NewSessionRepository(db *mongo.Database, ttl time.Duration) *SessionRepository {
	return &SessionRepository{coll: db.Collection(sessionCollection), ttl: ttl, now: time.Now}
}

// EnsureIndexes creates the expiry index. It is a no-op when ttl is zero.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	if r.ttl <= 0 {
		return nil
	}
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetName("session_ttl").SetExpireAfterSeconds(int32(r.ttl.Seconds())),
	})
	if err != nil {
		return fmt.Errorf("create session ttl index: %w", err)
	}
	return nil
}

func (r *SessionRepository) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	var doc sessionDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if doc.Values == nil {
		doc.Values = map[string]string{}
	}
	return doc.Values, nil
}

// Apply upserts the session in a single update, which MongoDB applies atomically per document.
func (r *SessionRepository) Apply(ctx context.Context, sessionID string, set map[string]string, remove []string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": sessionID},
		sessionUpdate(set, remove, r.now()),
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

func sessionUpdate(set map[string]string, remove []string, now time.Time) bson.M {
	setDoc := bson.M{"updated_at": now}
	for k, v := range set {
		setDoc["values."+k] = v
	}
	update := bson.M{"$set": setDoc}

	unset := bson.M{}
	for _, k := range remove {
		if _, overwritten := set[k]; overwritten {
			continue
		}
		unset["values."+k] = ""
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}
