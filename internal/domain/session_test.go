package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdminSession(t *testing.T) {
	now := time.Date(2025, 12, 25, 9, 0, 0, 0, time.UTC)
	s := AdminSession{Token: "t", ExpiresAt: now.Add(time.Hour)}

	assert.True(t, s.IsComplete())
	assert.False(t, s.ExpiredAt(now))
	assert.False(t, s.ExpiredAt(now.Add(time.Hour)), "истекает только строго после срока")
	assert.True(t, s.ExpiredAt(now.Add(time.Hour+time.Millisecond)))
	assert.Equal(t, time.Hour, s.Remaining(now))
	assert.Zero(t, s.Remaining(now.Add(2*time.Hour)))

	assert.False(t, AdminSession{Token: "t"}.IsComplete())
	assert.Zero(t, AdminSession{ExpiresAt: now.Add(time.Hour)}.Remaining(now))
}
