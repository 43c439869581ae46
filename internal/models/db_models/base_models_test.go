package db_models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseModelBeforeCreate_MintsIDAndTimestamps(t *testing.T) {
	var m BaseModel
	require.NoError(t, m.BeforeCreate(nil))

	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Positive(t, m.CreatedAt)
	assert.Equal(t, m.CreatedAt, m.UpdatedAt)
}

func TestBaseModelBeforeCreate_KeepsAssignedID(t *testing.T) {
	id := uuid.New()
	m := BaseModel{ID: id}
	require.NoError(t, m.BeforeCreate(nil))

	assert.Equal(t, id, m.ID)
}

func TestBaseModelBeforeUpdate_BumpsUpdatedAt(t *testing.T) {
	var m BaseModel
	require.NoError(t, m.BeforeUpdate(nil))

	assert.Positive(t, m.UpdatedAt)
}
