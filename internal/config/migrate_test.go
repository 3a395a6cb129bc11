package config

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeTracker struct {
	database.Driver
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestWithDriverClosesDriverOnFailure(t *testing.T) {
	driver := &closeTracker{}

	m, err := withDriver(driver, func(database.Driver) (*migrate.Migrate, error) {
		return nil, errors.New("no migrations table")
	})
	require.Error(t, err)
	assert.Nil(t, m)
	assert.Contains(t, err.Error(), "no migrations table")
	assert.True(t, driver.closed)
}

func TestWithDriverKeepsDriverOnSuccess(t *testing.T) {
	driver := &closeTracker{}
	want := &migrate.Migrate{}

	m, err := withDriver(driver, func(d database.Driver) (*migrate.Migrate, error) {
		assert.Same(t, driver, d)
		return want, nil
	})
	require.NoError(t, err)
	assert.Same(t, want, m)
	assert.False(t, driver.closed)
}
