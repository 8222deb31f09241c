package service

import (
	"testing"

	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSubscriberServiceTest(t *testing.T) SubscriberService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewSubscriberService(repository.NewSubscriberRepository(testDB))
}

func TestSubscriberService_Subscribe_NormalizesEmail(t *testing.T) {
	subscriberService := setupSubscriberServiceTest(t)

	subscriber, err := subscriberService.Subscribe("  Reader@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", subscriber.Email)
}

func TestSubscriberService_Subscribe_Idempotent(t *testing.T) {
	subscriberService := setupSubscriberServiceTest(t)

	first, err := subscriberService.Subscribe("reader@example.com")
	require.NoError(t, err)

	again, err := subscriberService.Subscribe("READER@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	subscribers, err := subscriberService.List()
	require.NoError(t, err)
	assert.Len(t, subscribers, 1)
}

func TestSubscriberService_Subscribe_RejectsInvalidEmail(t *testing.T) {
	subscriberService := setupSubscriberServiceTest(t)

	for _, email := range []string{"", "not-an-email", "missing@"} {
		_, err := subscriberService.Subscribe(email)
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
}

func TestSubscriberService_Delete(t *testing.T) {
	subscriberService := setupSubscriberServiceTest(t)

	subscriber, err := subscriberService.Subscribe("reader@example.com")
	require.NoError(t, err)

	require.NoError(t, subscriberService.Delete(subscriber.ID))

	subscribers, err := subscriberService.List()
	require.NoError(t, err)
	assert.Len(t, subscribers, 0)
}
