package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/marespinozac/comanda/app/models"
)

func TestStatusValid(t *testing.T) {
	for _, s := range models.Statuses {
		assert.True(t, s.Valid(), "status %s", s)
	}
	assert.False(t, models.Status("SHOUTED").Valid())
	assert.False(t, models.Status("").Valid())
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, models.StatusCompleted.Terminal())
	assert.True(t, models.StatusCancelled.Terminal())

	for _, s := range []models.Status{
		models.StatusPending, models.StatusPreparing,
		models.StatusReady, models.StatusDelivered,
	} {
		assert.False(t, s.Terminal(), "status %s", s)
	}
}

func TestOrderAge(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	o := models.Order{CreatedAt: now.Add(-7*time.Minute - 40*time.Second)}
	assert.Equal(t, 7, o.Age(now))

	// clock skew must not produce negative ages
	o = models.Order{CreatedAt: now.Add(2 * time.Minute)}
	assert.Equal(t, 0, o.Age(now))
}

func TestRoleValid(t *testing.T) {
	for _, r := range models.Roles {
		assert.True(t, r.Valid(), "role %s", r)
	}
	assert.False(t, models.Role("INTERN").Valid())
}
