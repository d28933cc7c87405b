package mongo

import (
	"context"
	"time"

	"fitpulse/internal/domain/entity"
	domainerrors "fitpulse/internal/domain/errors"
	"fitpulse/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const messagesCollection = "messages"

// messageDocument mirrors the 'messages' collection. User ids are stored as
// their canonical string form so the collection stays readable in shells.
type messageDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	SenderID   string             `bson:"sender_id"`
	ReceiverID string             `bson:"receiver_id"`
	Content    string             `bson:"content"`
	Read       bool               `bson:"read"`
	CreatedAt  time.Time          `bson:"created_at"`
}

// messageRepository implements the domain.MessageRepository interface.
type messageRepository struct {
	coll *mongo.Collection
}

// NewMessageRepository is the constructor for messageRepository. It ensures
// the indexes backing the two query shapes: per-participant history and
// unread lookups per sender/receiver pair.
func NewMessageRepository(db *mongo.Database) repository.MessageRepository {
	coll := db.Collection(messagesCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "receiver_id", Value: 1}, {Key: "read", Value: 1}}},
	})

	return &messageRepository{coll: coll}
}

// Insert persists a new message and fills in its generated ID and timestamp.
func (repo *messageRepository) Insert(ctx context.Context, message *entity.Message) error {
	doc := &messageDocument{
		SenderID:   message.SenderID.String(),
		ReceiverID: message.ReceiverID.String(),
		Content:    message.Content,
		Read:       false,
		CreatedAt:  time.Now().UTC(),
	}

	result, err := repo.coll.InsertOne(ctx, doc)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to insert message")
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.New("unexpected inserted id type")
	}

	message.ID = oid.Hex()
	message.Read = false
	message.CreatedAt = doc.CreatedAt

	return nil
}

// ListByParticipant returns every message where the user is sender or
// receiver, newest first.
func (repo *messageRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	return repo.find(ctx, participantFilter(userID), opts)
}

// ListBetween returns all messages exchanged between the pair, oldest first.
func (repo *messageRepository) ListBetween(ctx context.Context, userID, otherUserID uuid.UUID) ([]*entity.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	return repo.find(ctx, betweenFilter(userID, otherUserID), opts)
}

// participantFilter matches every message the user sent or received.
func participantFilter(userID uuid.UUID) bson.M {
	id := userID.String()

	return bson.M{"$or": []bson.M{
		{"sender_id": id},
		{"receiver_id": id},
	}}
}

// betweenFilter matches the messages exchanged between the pair in either
// direction. The pair is ordered canonically so the same filter comes out no
// matter which participant asks.
func betweenFilter(userID, otherUserID uuid.UUID) bson.M {
	a, b := userID.String(), otherUserID.String()
	if b < a {
		a, b = b, a
	}

	return bson.M{"$or": []bson.M{
		{"sender_id": a, "receiver_id": b},
		{"sender_id": b, "receiver_id": a},
	}}
}

// MarkRead flips the read flag on every unread message sent by senderID to
// receiverID. Calling it again is a no-op.
func (repo *messageRepository) MarkRead(ctx context.Context, senderID, receiverID uuid.UUID) error {
	filter := bson.M{
		"sender_id":   senderID.String(),
		"receiver_id": receiverID.String(),
		"read":        false,
	}
	update := bson.M{"$set": bson.M{"read": true}}

	if _, err := repo.coll.UpdateMany(ctx, filter, update); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to mark messages as read")
	}

	return nil
}

func (repo *messageRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Message, error) {
	cur, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to query messages")
	}
	defer cur.Close(ctx)

	messages := []*entity.Message{}
	for cur.Next(ctx) {
		var doc messageDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "failed to decode message")
		}

		message, err := toMessageDomain(&doc)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	return messages, nil
}

// toMessageDomain converts a stored document to a domain Message entity.
func toMessageDomain(doc *messageDocument) (*entity.Message, error) {
	senderID, err := uuid.Parse(doc.SenderID)
	if err != nil {
		return nil, errors.Wrap(err, "stored sender id is not a uuid")
	}

	receiverID, err := uuid.Parse(doc.ReceiverID)
	if err != nil {
		return nil, errors.Wrap(err, "stored receiver id is not a uuid")
	}

	return &entity.Message{
		ID:         doc.ID.Hex(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    doc.Content,
		Read:       doc.Read,
		CreatedAt:  doc.CreatedAt,
	}, nil
}
