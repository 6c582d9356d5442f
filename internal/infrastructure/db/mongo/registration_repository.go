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

	"github.com/communityhub/events-api/internal/core/domain"
)

// RegistrationRepository keeps one document per (user_id, event_id). Seats
// are reserved on the event document first, so the capacity check and the
// increment are a single server-side operation.
type RegistrationRepository struct {
	coll *mongo.Collection
	evts *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{
		coll: db.Collection(collectionRegistrations),
		evts: db.Collection(collectionEvents),
	}
}

type mongoRegistration struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	EventID   string             `bson:"event_id"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mr *mongoRegistration) toDomain() *domain.Registration {
	return &domain.Registration{
		ID:        mr.ID.Hex(),
		UserID:    mr.UserID,
		EventID:   mr.EventID,
		Status:    domain.RegistrationStatus(mr.Status),
		CreatedAt: mr.CreatedAt.UTC(),
	}
}

// seatFilter matches an approved event that still has room.
func seatFilter(oid primitive.ObjectID) bson.M {
	return bson.M{
		"_id":    oid,
		"status": string(domain.StatusApproved),
		"$or": bson.A{
			bson.M{"capacity": nil},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$registered_count", "$capacity"}}},
		},
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	oid, err := objectID(reg.EventID)
	if err != nil {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.evts.UpdateOne(ctx, seatFilter(oid), bson.M{"$inc": bson.M{"registered_count": 1}})
	if err != nil {
		return fmt.Errorf("reserve seat: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.explainNoSeat(ctx, oid, reg.UserID, reg.EventID)
	}

	doc := mongoRegistration{
		UserID:    reg.UserID,
		EventID:   reg.EventID,
		Status:    string(reg.Status),
		CreatedAt: reg.CreatedAt,
	}
	ins, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		// Give the seat back whichever way the insert failed.
		if _, relErr := r.evts.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"registered_count": -1}}); relErr != nil {
			return fmt.Errorf("release seat after failed insert: %w", relErr)
		}
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}

	reg.ID = ins.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// explainNoSeat turns a failed reservation into the most specific reason.
func (r *RegistrationRepository) explainNoSeat(ctx context.Context, oid primitive.ObjectID, userID, eventID string) error {
	var me mongoEvent
	if err := r.evts.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("find event: %w", err)
	}
	if me.Status != string(domain.StatusApproved) {
		return domain.ErrEventNotApproved
	}
	exists, err := r.Exists(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrAlreadyRegistered
	}
	return domain.ErrEventFull
}

func (r *RegistrationRepository) Delete(ctx context.Context, userID, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return releaseSeat(ctx, r.coll, r.evts, userID, eventID)
}

// releaseSeat deletes one registration and decrements its event's counter.
func releaseSeat(ctx context.Context, regs, evts *mongo.Collection, userID, eventID string) error {
	res, err := regs.DeleteOne(ctx, bson.M{"user_id": userID, "event_id": eventID})
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotRegistered
	}

	oid, err := objectID(eventID)
	if err != nil {
		return nil
	}
	_, err = evts.UpdateOne(ctx,
		bson.M{"_id": oid, "registered_count": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"registered_count": -1}},
	)
	if err != nil {
		return fmt.Errorf("release seat: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID, "event_id": eventID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return n > 0, nil
}

func (r *RegistrationRepository) CountActive(ctx context.Context, eventID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return r.list(ctx, bson.M{"event_id": eventID})
}

func (r *RegistrationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoRegistration
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}
	out := make([]*domain.Registration, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *RegistrationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "event_id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
