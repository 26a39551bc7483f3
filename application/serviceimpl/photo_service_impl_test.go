package serviceimpl

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"catsofasia/domain/dto"
	"catsofasia/domain/models"
	"catsofasia/domain/services"
	"catsofasia/infrastructure/postgres"
)

func newPhotoService(t *testing.T) (services.PhotoService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewPhotoService(
		postgres.NewPhotoRepository(db),
		postgres.NewCoordinatesRepository(db),
		postgres.NewLocationRepository(db),
		fakeImages{},
	)
	return svc, db
}

func validInput() dto.AddPhotoInput {
	return dto.AddPhotoInput{
		ID:        uuid.NewString(),
		Filename:  "IMG_1234.jpg",
		SHA256:    "a3f5c1d2e4b6a8c0d2e4f6a8b0c2d4e6f8a0b2c4d6e8f0a2b4c6d8e0f2a4b6c8",
		Latitude:  13.7563,
		Longitude: 100.5018,
		Altitude:  2,
		City:      "Bangkok",
		Country:   "Thailand",
		TZOffset:  intPtr(420),
		Timestamp: time.Date(2023, 7, 14, 10, 30, 0, 0, time.UTC),
		Raw:       json.RawMessage(`{"Make":"Apple","Model":"iPhone 14"}`),
	}
}

func TestAddPhoto(t *testing.T) {
	svc, db := newPhotoService(t)

	input := validInput()
	result, err := svc.AddPhoto(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, input.ID, result.ID)

	var photo models.Photo
	require.NoError(t, db.Preload("Coordinates.Location").First(&photo, "sha256 = ?", input.SHA256).Error)
	assert.Equal(t, input.Filename, photo.Filename)
	require.NotNil(t, photo.Coordinates)
	assert.Equal(t, input.Latitude, photo.Coordinates.Latitude)
	assert.Equal(t, "Bangkok", photo.Coordinates.Location.City)
	assert.Equal(t, 420, photo.Coordinates.Location.TZOffset)

	var raw models.RawMetadata
	require.NoError(t, db.First(&raw, "photo_sha256 = ?", input.SHA256).Error)
	assert.JSONEq(t, `{"Make":"Apple","Model":"iPhone 14"}`, string(raw.Metadata))
}

func TestAddPhotoDuplicateHash(t *testing.T) {
	svc, _ := newPhotoService(t)

	input := validInput()
	_, err := svc.AddPhoto(context.Background(), input)
	require.NoError(t, err)

	dup := validInput()
	dup.ID = uuid.NewString()
	_, err = svc.AddPhoto(context.Background(), dup)
	assert.ErrorIs(t, err, services.ErrPhotoExists)
}

func TestAddPhotoValidation(t *testing.T) {
	svc, _ := newPhotoService(t)

	cases := []struct {
		name   string
		mutate func(*dto.AddPhotoInput)
	}{
		{"bad sha256", func(in *dto.AddPhotoInput) { in.SHA256 = "not-hex" }},
		{"latitude out of range", func(in *dto.AddPhotoInput) { in.Latitude = 91 }},
		{"longitude out of range", func(in *dto.AddPhotoInput) { in.Longitude = -181 }},
		{"missing country", func(in *dto.AddPhotoInput) { in.Country = "" }},
		{"missing tzoffset", func(in *dto.AddPhotoInput) { in.TZOffset = nil }},
		{"bad id", func(in *dto.AddPhotoInput) { in.ID = "not-a-uuid" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := svc.AddPhoto(context.Background(), input)
			assert.ErrorIs(t, err, services.ErrInvalidInput)
		})
	}
}

func TestAddPhotoReusesCoordinates(t *testing.T) {
	svc, db := newPhotoService(t)

	first := validInput()
	_, err := svc.AddPhoto(context.Background(), first)
	require.NoError(t, err)

	second := validInput()
	second.ID = uuid.NewString()
	second.SHA256 = "b4f5c1d2e4b6a8c0d2e4f6a8b0c2d4e6f8a0b2c4d6e8f0a2b4c6d8e0f2a4b6c8"
	second.Filename = "IMG_1235.jpg"
	_, err = svc.AddPhoto(context.Background(), second)
	require.NoError(t, err)

	var coordCount int64
	require.NoError(t, db.Model(&models.Coordinates{}).Count(&coordCount).Error)
	assert.EqualValues(t, 1, coordCount, "same point must share one coordinates row")

	var locCount int64
	require.NoError(t, db.Model(&models.Location{}).Count(&locCount).Error)
	assert.EqualValues(t, 1, locCount)
}

func TestAddPhotoKeepsFirstTZOffset(t *testing.T) {
	svc, db := newPhotoService(t)

	first := validInput()
	_, err := svc.AddPhoto(context.Background(), first)
	require.NoError(t, err)

	second := validInput()
	second.ID = uuid.NewString()
	second.SHA256 = "c4f5c1d2e4b6a8c0d2e4f6a8b0c2d4e6f8a0b2c4d6e8f0a2b4c6d8e0f2a4b6c8"
	second.Latitude = 13.8
	second.TZOffset = intPtr(480)
	_, err = svc.AddPhoto(context.Background(), second)
	require.NoError(t, err)

	var location models.Location
	require.NoError(t, db.First(&location, "city = ?", "Bangkok").Error)
	assert.Equal(t, 420, location.TZOffset, "the first ingest fixes the offset")
}

func TestExists(t *testing.T) {
	svc, _ := newPhotoService(t)

	input := validInput()
	_, err := svc.AddPhoto(context.Background(), input)
	require.NoError(t, err)

	exists, err := svc.Exists(context.Background(), input.SHA256)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.Exists(context.Background(), "0000000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListAll(t *testing.T) {
	svc, _ := newPhotoService(t)

	input := validInput()
	_, err := svc.AddPhoto(context.Background(), input)
	require.NoError(t, err)

	views, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, input.ID, view.ID)
	assert.Equal(t, "Bangkok", view.City)
	assert.Equal(t, "Thailand", view.Country)
	assert.Equal(t, input.Latitude, view.Latitude)
	require.Len(t, view.URLs, 5)
	assert.Equal(t, "https://cdn.test/"+input.ID+"/desktop", view.URLs["desktop"])
}

func TestFindNear(t *testing.T) {
	svc, _ := newPhotoService(t)

	// Bangkok city center, a point ~15km out, and Chiang Mai.
	points := []struct {
		sha  string
		lat  float64
		lng  float64
		city string
	}{
		{"1111111111111111111111111111111111111111111111111111111111111111", 13.7563, 100.5018, "Bangkok"},
		{"2222222222222222222222222222222222222222222222222222222222222222", 13.88, 100.57, "Bangkok"},
		{"3333333333333333333333333333333333333333333333333333333333333333", 18.7883, 98.9853, "Chiang Mai"},
	}
	for _, p := range points {
		input := validInput()
		input.ID = uuid.NewString()
		input.SHA256 = p.sha
		input.Latitude = p.lat
		input.Longitude = p.lng
		input.City = p.city
		_, err := svc.AddPhoto(context.Background(), input)
		require.NoError(t, err)
	}

	nearby, err := svc.FindNear(context.Background(), 13.7563, 100.5018, 10, 25)
	require.NoError(t, err)
	require.Len(t, nearby, 2, "Chiang Mai is outside the 25km radius")

	assert.Equal(t, points[0].sha, nearby[0].SHA256)
	assert.Equal(t, points[1].sha, nearby[1].SHA256)
	assert.Less(t, nearby[0].DistanceKm, nearby[1].DistanceKm)
	assert.InDelta(t, 0, nearby[0].DistanceKm, 0.001)

	// Limit truncates after ordering.
	nearby, err = svc.FindNear(context.Background(), 13.7563, 100.5018, 1, 25)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, points[0].sha, nearby[0].SHA256)
}
