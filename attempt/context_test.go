// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package attempt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	c := NewContext(3, "POST", true)
	assert.Equal(t, 0, c.Attempt)
	assert.Equal(t, 3, c.MaxAttempts)
	assert.Equal(t, "POST", c.Method)
	assert.True(t, c.ExpectJSON)
	_, ok := c.LastWait()
	assert.False(t, ok)
}

func TestContext_LastWait(t *testing.T) {
	c := NewContext(3, "GET", false)
	t.Run("set", func(t *testing.T) {
		c.SetLastWait(5 * time.Second)
		wait, ok := c.LastWait()
		assert.True(t, ok)
		assert.Equal(t, 5*time.Second, wait)
	})
	t.Run("negative values are recorded", func(t *testing.T) {
		c.SetLastWait(-time.Second)
		wait, ok := c.LastWait()
		assert.True(t, ok)
		assert.Equal(t, -time.Second, wait)
	})
	t.Run("clear", func(t *testing.T) {
		c.ClearLastWait()
		wait, ok := c.LastWait()
		assert.False(t, ok)
		assert.Equal(t, time.Duration(0), wait)
	})
}

func TestContext_Exhausted(t *testing.T) {
	c := NewContext(2, "GET", false)
	assert.False(t, c.Exhausted())
	c.Attempt = 1
	assert.False(t, c.Exhausted())
	c.Attempt = 2
	assert.True(t, c.Exhausted())
	c.Attempt = 3
	assert.True(t, c.Exhausted())
}
