package student

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceImpl_CreateStudent(t *testing.T) {
	t.Run("should fill defaults for id, timezone and activity duration", func(t *testing.T) {
		// given
		service := NewService(NewStubRepository())

		// when
		created, err := service.CreateStudent(context.Background(), Student{DisplayName: "Alex"})

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, "UTC", created.Settings.Timezone)
		assert.Equal(t, 60, created.Settings.ActivityMinutes)
	})

	t.Run("should keep explicit settings", func(t *testing.T) {
		// given
		service := NewService(NewStubRepository())

		// when
		created, err := service.CreateStudent(context.Background(), Student{
			DisplayName: "Alex",
			Settings:    Settings{Timezone: "America/Chicago", ActivityMinutes: 45},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "America/Chicago", created.Settings.Timezone)
		assert.Equal(t, 45, created.Settings.ActivityMinutes)
	})
}

func TestServiceImpl_GetCurrentStudent(t *testing.T) {
	t.Run("should resolve the student from the context", func(t *testing.T) {
		// given
		repo := NewStubRepository()
		service := NewService(repo)
		created, err := service.CreateStudent(context.Background(), Student{DisplayName: "Alex"})
		require.NoError(t, err)
		ctx := WithStudent(context.Background(), created)

		// when
		current, err := service.GetCurrentStudent(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, created.Id, current.Id)
	})

	t.Run("should return error when context has no student", func(t *testing.T) {
		// given
		service := NewService(NewStubRepository())

		// when
		_, err := service.GetCurrentStudent(context.Background())

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current student")
	})
}
