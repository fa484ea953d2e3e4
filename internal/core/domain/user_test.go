package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "admin@example.com", NormalizeEmail("  Admin@Example.COM "))
}

func TestSession_Expired(t *testing.T) {
	s := NewSession("tok", User{ID: 7, Email: "a@b.c"}, time.Hour, testNow)
	assert.Equal(t, 7, s.UserID)
	assert.False(t, s.Expired(testNow.Add(59*time.Minute)))
	assert.True(t, s.Expired(testNow.Add(time.Hour)))
}
