package gallery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuenta-regresiva/backend/internal/models"
	"github.com/cuenta-regresiva/backend/internal/testutil"
)

func TestCheckMinimum(t *testing.T) {
	assert.NoError(t, CheckMinimum(10, 10))
	assert.NoError(t, CheckMinimum(12, 10))

	err := CheckMinimum(9, 10)
	require.ErrorIs(t, err, ErrInsufficientPhotos)
	assert.Contains(t, err.Error(), "have 9, need 10")
}

func TestSlot(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, models.SlotLeft},
		{3, models.SlotLeft},
		{4, models.SlotRight},
		{6, models.SlotRight},
		{7, models.SlotCenter},
		{12, models.SlotCenter},
		{0, models.SlotCenter},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slot(tt.n), "photo %d", tt.n)
	}
}

func TestBuild(t *testing.T) {
	t.Run("full gallery", func(t *testing.T) {
		store := testutil.NewMockStorageWithPhotos("", 12)
		store.AddFile("airplane.png", []byte("plane"))

		g := Build(store, "", Options{URLPrefix: "/api/photos/", Exclude: []string{"airplane.png"}})

		assert.True(t, g.Available)
		assert.Empty(t, g.Message)
		assert.Equal(t, 12, g.Count)
		require.Len(t, g.Photos, 12)
		assert.Equal(t, "photo1.jpg", g.Photos[0].Name)
		assert.Equal(t, "/api/photos/photo1.jpg", g.Photos[0].URL)
		assert.Equal(t, models.SlotLeft, g.Photos[0].Slot)
		assert.Equal(t, "photo10.jpg", g.Photos[9].Name, "numeric, not lexical, order")
		assert.Equal(t, models.SlotCenter, g.Photos[11].Slot)
	})

	t.Run("city folder", func(t *testing.T) {
		store := testutil.NewMockStorageWithPhotos("Monterrey", 10)

		g := Build(store, "Monterrey", Options{URLPrefix: "/api/photos/"})

		assert.True(t, g.Available)
		assert.Equal(t, "/api/photos/Monterrey/photo4.jpg", g.Photos[3].URL)
		assert.Equal(t, models.SlotRight, g.Photos[3].Slot)
	})

	t.Run("insufficient photos", func(t *testing.T) {
		store := testutil.NewMockStorageWithPhotos("", 9)
		store.AddFile("airplane.png", []byte("plane"))

		g := Build(store, "", Options{Exclude: []string{"airplane.png"}, Message: "need more photos"})

		assert.False(t, g.Available)
		assert.Equal(t, 9, g.Count)
		assert.Equal(t, 10, g.Required)
		assert.Equal(t, "need more photos", g.Message)
		assert.Empty(t, g.Photos)
	})

	t.Run("missing folder", func(t *testing.T) {
		store := testutil.NewMockStorageWithPhotos("", 12)

		g := Build(store, "Atlantis", Options{Message: "no photos"})

		assert.False(t, g.Available)
		assert.Equal(t, 0, g.Count)
		assert.Equal(t, "no photos", g.Message)
	})

	t.Run("unnumbered images", func(t *testing.T) {
		store := testutil.NewMockStorage()
		for i := 1; i <= 10; i++ {
			store.AddFile(fmt.Sprintf("IMG_%04d.jpg", i), []byte("jpeg"))
		}

		g := Build(store, "", Options{Message: "need more photos"})

		assert.False(t, g.Available)
		assert.Equal(t, 0, g.Count)
		assert.Equal(t, "need more photos", g.Message)
		assert.Empty(t, g.Photos)
	})

	t.Run("custom minimum", func(t *testing.T) {
		store := testutil.NewMockStorageWithPhotos("", 3)

		g := Build(store, "", Options{Required: 3})

		assert.True(t, g.Available)
		assert.Len(t, g.Photos, 3)
	})
}
