package guard_test

import (
	"errors"
	"sync"
	"testing"

	"ordering/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("address must be created via NewStreetAddress")

	t.Run("constructed guard passes with custom and nil errors", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("copies keep the constructed flag", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		copied := g

		require.NoError(t, copied.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type city struct {
		name  string
		guard guard.ConstructorGuard
	}
	errCityNotConstructed := errors.New("city must be created via newCity")

	newCity := func(name string) (city, error) {
		if name == "" {
			return city{}, errors.New("city name is required")
		}
		return city{name: name, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor output validates", func(t *testing.T) {
		c, err := newCity("Lisbon")

		require.NoError(t, err)
		require.NoError(t, c.guard.Validate(errCityNotConstructed))
	})

	t.Run("literal bypassing the constructor is rejected", func(t *testing.T) {
		c := city{name: "Lisbon"}

		assert.Equal(t, errCityNotConstructed, c.guard.Validate(errCityNotConstructed))
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.NoError(t, g.Validate(validationError))
			}
		}()
	}
	wg.Wait()
}
