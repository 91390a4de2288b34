package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"todokeeper/internal/models"
)

func TestSession_SetGetClear(t *testing.T) {
	s := New()

	assert.Nil(t, s.Get())
	assert.False(t, s.Active())

	id := &models.Identity{ID: "u-1", Alias: "alice"}
	s.Set(id)
	assert.Equal(t, id, s.Get())
	assert.True(t, s.Active())

	s.Clear()
	assert.Nil(t, s.Get())
	assert.False(t, s.Active())
}

func TestSession_SetNilClears(t *testing.T) {
	s := New()
	s.Set(&models.Identity{ID: "u-1"})
	s.Set(nil)
	assert.False(t, s.Active())
}
