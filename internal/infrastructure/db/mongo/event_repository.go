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

// EventRepository implements ports.EventRepository using MongoDB. Each event
// document carries registered_count, the seat counter registrations reserve
// against.
type EventRepository struct {
	coll *mongo.Collection
	regs *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{
		coll: db.Collection(collectionEvents),
		regs: db.Collection(collectionRegistrations),
	}
}

type mongoEvent struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Date            string             `bson:"date"`
	Time            string             `bson:"time"`
	Location        string             `bson:"location"`
	OrganizerID     string             `bson:"organizer_id"`
	Capacity        *int               `bson:"capacity"`
	ImageURL        *string            `bson:"image_url"`
	Status          string             `bson:"status"`
	RegisteredCount int64              `bson:"registered_count"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (me *mongoEvent) toDomain() *domain.Event {
	return &domain.Event{
		ID:          me.ID.Hex(),
		Title:       me.Title,
		Description: me.Description,
		Date:        me.Date,
		Time:        me.Time,
		Location:    me.Location,
		OrganizerID: me.OrganizerID,
		Capacity:    me.Capacity,
		ImageURL:    me.ImageURL,
		Status:      domain.EventStatus(me.Status),
		CreatedAt:   me.CreatedAt.UTC(),
		UpdatedAt:   me.UpdatedAt.UTC(),
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEvent{
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		OrganizerID: e.OrganizerID,
		Capacity:    e.Capacity,
		ImageURL:    e.ImageURL,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	e.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEvent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EventRepository) List(ctx context.Context, f domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.OrganizerID != "" {
		filter["organizer_id"] = f.OrganizerID
	}

	sort := bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	if f.ByStartTime {
		sort = bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoEvent
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	out := make([]*domain.Event, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *EventRepository) Update(ctx context.Context, id string, p domain.EventPatch, at time.Time) (*domain.Event, error) {
	set := bson.M{"updated_at": at}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Date != nil {
		set["date"] = *p.Date
	}
	if p.Time != nil {
		set["time"] = *p.Time
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	// Get yields nil for an explicit null, stored as BSON null.
	if p.Capacity.Set {
		set["capacity"] = p.Capacity.Get()
	}
	if p.ImageURL.Set {
		set["image_url"] = p.ImageURL.Get()
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	return r.findAndSet(ctx, id, bson.M{}, set)
}

// TransitionStatus is a single conditional FindOneAndUpdate on the current
// status. A miss is resolved into not-found or not-pending afterwards.
func (r *EventRepository) TransitionStatus(ctx context.Context, id string, from, to domain.EventStatus, at time.Time) (*domain.Event, error) {
	e, err := r.findAndSet(ctx, id, bson.M{"status": string(from)}, bson.M{"status": string(to), "updated_at": at})
	if errors.Is(err, domain.ErrEventNotFound) {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return nil, findErr
		}
		return nil, domain.ErrNotPending
	}
	return e, err
}

func (r *EventRepository) findAndSet(ctx context.Context, id string, cond, set bson.M) (*domain.Event, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	for k, v := range cond {
		filter[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var me mongoEvent
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return me.toDomain(), nil
}

// Delete removes the event's registrations first, so a failure part way
// leaves the event in place and the call can be repeated. A second sweep
// after the event is gone catches a registration whose seat was reserved
// just before the delete.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return domain.ErrEventNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.regs.DeleteMany(ctx, bson.M{"event_id": id}); err != nil {
		return fmt.Errorf("delete event registrations: %w", err)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}

	if _, err := r.regs.DeleteMany(ctx, bson.M{"event_id": id}); err != nil {
		return fmt.Errorf("sweep event registrations: %w", err)
	}
	return nil
}

func (r *EventRepository) CountByOrganizer(ctx context.Context, organizerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"organizer_id": organizerID})
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}}},
		{Keys: bson.D{{Key: "organizer_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
