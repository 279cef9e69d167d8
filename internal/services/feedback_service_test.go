package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strollapp/stroll-backend/internal/models"
)

func TestCreateFeedback(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	user := seedUser(t, db)
	ctx := context.Background()

	t.Run("defaults applied", func(t *testing.T) {
		feedback, err := svc.Create(ctx, user, CreateFeedbackInput{Content: "love the app"})
		require.NoError(t, err)
		assert.Equal(t, models.DeviceTypeIOS, feedback.DeviceType)
		assert.Equal(t, "1.0.0", feedback.AppVersion)
	})

	t.Run("missing content", func(t *testing.T) {
		_, err := svc.Create(ctx, user, CreateFeedbackInput{DeviceType: models.DeviceTypeAndroid})
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "content")
	})

	t.Run("unknown device type", func(t *testing.T) {
		_, err := svc.Create(ctx, user, CreateFeedbackInput{Content: "hi", DeviceType: "smartwatch"})
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "device_type")
	})
}

func TestListAllIncludesDeletedAuthors(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db)
	user := seedUser(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, user, CreateFeedbackInput{Content: "first"})
	require.NoError(t, err)

	// Feedback outlives the account.
	require.NoError(t, db.Delete(user).Error)

	feedbacks, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, feedbacks, 1)
	assert.Equal(t, user.ID, feedbacks[0].User.ID)
	assert.Equal(t, "Walker", feedbacks[0].User.Nickname)
}
