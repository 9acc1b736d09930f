package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromMessage(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	r := FromMessage("remind me to order stock", now)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "remind me to order stock", r.Title)
	assert.Equal(t, now.Add(24*time.Hour), r.DueDate)
	assert.Equal(t, StatusPending, r.Status)
	assert.Equal(t, now, r.CreatedAt)
}
