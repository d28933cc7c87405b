package mongo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBetweenFilter_SymmetricInArguments(t *testing.T) {
	userID := uuid.New()
	otherUserID := uuid.New()

	// Either participant fetching the conversation hits the same filter, so
	// both see the identical message set.
	assert.Equal(t, betweenFilter(userID, otherUserID), betweenFilter(otherUserID, userID))
}

func TestBetweenFilter_CoversBothDirections(t *testing.T) {
	userID := uuid.New()
	otherUserID := uuid.New()

	filter := betweenFilter(userID, otherUserID)
	branches, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, branches, 2)

	ids := map[string]string{
		branches[0]["sender_id"].(string): branches[0]["receiver_id"].(string),
		branches[1]["sender_id"].(string): branches[1]["receiver_id"].(string),
	}
	assert.Equal(t, otherUserID.String(), ids[userID.String()])
	assert.Equal(t, userID.String(), ids[otherUserID.String()])
}

func TestParticipantFilter_MatchesSenderAndReceiver(t *testing.T) {
	userID := uuid.New()

	filter := participantFilter(userID)
	branches, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, branches, 2)
	assert.Equal(t, userID.String(), branches[0]["sender_id"])
	assert.Equal(t, userID.String(), branches[1]["receiver_id"])
}

func TestToMessageDomain(t *testing.T) {
	senderID := uuid.New()
	receiverID := uuid.New()
	createdAt := time.Now().UTC().Truncate(time.Millisecond)
	oid := primitive.NewObjectID()

	message, err := toMessageDomain(&messageDocument{
		ID:         oid,
		SenderID:   senderID.String(),
		ReceiverID: receiverID.String(),
		Content:    "see you at the gym",
		Read:       true,
		CreatedAt:  createdAt,
	})
	require.NoError(t, err)
	assert.Equal(t, oid.Hex(), message.ID)
	assert.Equal(t, senderID, message.SenderID)
	assert.Equal(t, receiverID, message.ReceiverID)
	assert.Equal(t, "see you at the gym", message.Content)
	assert.True(t, message.Read)
	assert.Equal(t, createdAt, message.CreatedAt)
}

func TestToMessageDomain_RejectsCorruptIDs(t *testing.T) {
	valid := uuid.New().String()

	_, err := toMessageDomain(&messageDocument{SenderID: "not-a-uuid", ReceiverID: valid})
	assert.Error(t, err)

	_, err = toMessageDomain(&messageDocument{SenderID: valid, ReceiverID: "not-a-uuid"})
	assert.Error(t, err)
}
