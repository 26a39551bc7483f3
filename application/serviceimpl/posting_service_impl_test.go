package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"catsofasia/domain/models"
	"catsofasia/domain/services"
	"catsofasia/infrastructure/postgres"
)

type postingFixture struct {
	db         *gorm.DB
	platform   models.Platform
	downloader *fakeDownloader
	publisher  *fakePublisher
	svc        services.PostingService
}

func newPostingFixture(t *testing.T) *postingFixture {
	t.Helper()
	db := newTestDB(t)

	platform := models.Platform{Name: "Mastodon", ProfileURL: "https://mastodon.example/@cats"}
	require.NoError(t, db.Create(&platform).Error)

	downloader := &fakeDownloader{data: []byte("jpegbytes")}
	publisher := &fakePublisher{}

	svc := NewPostingService(
		postgres.NewPhotoRepository(db),
		postgres.NewPlatformRepository(db),
		postgres.NewPostRepository(db),
		fakeImages{},
		downloader,
		publisher,
	)

	return &postingFixture{
		db:         db,
		platform:   platform,
		downloader: downloader,
		publisher:  publisher,
		svc:        svc,
	}
}

func (f *postingFixture) seedPhoto(t *testing.T, sha string, ts time.Time) models.Photo {
	t.Helper()

	location := models.Location{City: "Bangkok", Country: "Thailand", TZOffset: 420}
	require.NoError(t, f.db.FirstOrCreate(&location, models.Location{City: "Bangkok", Country: "Thailand"}).Error)

	coords := models.Coordinates{Latitude: 13.7563, Longitude: 100.5018, LocationID: location.ID}
	require.NoError(t, f.db.FirstOrCreate(&coords, models.Coordinates{Latitude: 13.7563, Longitude: 100.5018}).Error)

	photo := models.Photo{
		ID:            uuid.New(),
		Filename:      "cat.jpg",
		SHA256:        sha,
		Timestamp:     ts,
		CoordinatesID: &coords.ID,
	}
	require.NoError(t, f.db.Create(&photo).Error)
	return photo
}

func (f *postingFixture) markPosted(t *testing.T, sha string) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.Post{PhotoSHA256: sha, PlatformID: f.platform.ID}).Error)
}

func TestPickUnusedExhausted(t *testing.T) {
	f := newPostingFixture(t)

	photo := f.seedPhoto(t, "1111111111111111111111111111111111111111111111111111111111111111", time.Now())
	f.markPosted(t, photo.SHA256)

	_, err := f.svc.PickUnused(context.Background(), "mastodon")
	assert.ErrorIs(t, err, services.ErrNoContentRemaining)
}

func TestPickUnusedSkipsPosted(t *testing.T) {
	f := newPostingFixture(t)

	posted := f.seedPhoto(t, "1111111111111111111111111111111111111111111111111111111111111111", time.Now())
	f.markPosted(t, posted.SHA256)
	unposted := f.seedPhoto(t, "2222222222222222222222222222222222222222222222222222222222222222", time.Now())

	// Repeated picks must never surface the posted photo.
	for i := 0; i < 20; i++ {
		photo, err := f.svc.PickUnused(context.Background(), "mastodon")
		require.NoError(t, err)
		assert.Equal(t, unposted.SHA256, photo.SHA256)
	}
}

func TestPickUnusedUnknownPlatform(t *testing.T) {
	f := newPostingFixture(t)
	f.seedPhoto(t, "1111111111111111111111111111111111111111111111111111111111111111", time.Now())

	_, err := f.svc.PickUnused(context.Background(), "friendster")
	assert.ErrorIs(t, err, services.ErrPlatformNotFound)
}

func TestPostRandomUnused(t *testing.T) {
	f := newPostingFixture(t)

	ts := time.Date(2023, 7, 14, 10, 30, 0, 0, time.UTC)
	photo := f.seedPhoto(t, "1111111111111111111111111111111111111111111111111111111111111111", ts)

	require.NoError(t, f.svc.PostRandomUnused(context.Background(), "mastodon"))

	assert.Equal(t, "https://cdn.test/"+photo.ID.String()+"/desktop", f.downloader.lastURL)
	assert.Equal(t, []byte("jpegbytes"), f.publisher.uploadedData)
	assert.Equal(t, "cat.jpg", f.publisher.uploadedFilename)
	assert.Equal(t, []string{"media-1"}, f.publisher.statusMediaIDs)
	assert.Equal(t,
		"Another fine feline, captured in Bangkok, Thailand on Friday, July 14 2023 #CatsOfAsia #CatsOfMastodon",
		f.publisher.statusText)

	var count int64
	require.NoError(t, f.db.Model(&models.Post{}).Where("photo_sha256 = ?", photo.SHA256).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// The ledger row makes the pool empty.
	err := f.svc.PostRandomUnused(context.Background(), "mastodon")
	assert.ErrorIs(t, err, services.ErrNoContentRemaining)
}

func TestPostRandomUnusedUploadFailure(t *testing.T) {
	f := newPostingFixture(t)
	photo := f.seedPhoto(t, "1111111111111111111111111111111111111111111111111111111111111111", time.Now())
	f.publisher.uploadErr = assert.AnError

	err := f.svc.PostRandomUnused(context.Background(), "mastodon")
	require.Error(t, err)

	// No ledger row: the photo stays in the pool.
	var count int64
	require.NoError(t, f.db.Model(&models.Post{}).Where("photo_sha256 = ?", photo.SHA256).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRenderStatusTimezone(t *testing.T) {
	// 22:00 UTC on July 14 is already July 15 in Bangkok (+420 min).
	photo := &models.Photo{
		Timestamp: time.Date(2023, 7, 14, 22, 0, 0, 0, time.UTC),
		Coordinates: &models.Coordinates{
			Location: models.Location{City: "Bangkok", Country: "Thailand", TZOffset: 420},
		},
	}

	text := renderStatus(photo)
	assert.Equal(t,
		"Another fine feline, captured in Bangkok, Thailand on Saturday, July 15 2023 #CatsOfAsia #CatsOfMastodon",
		text)
}

func TestRenderStatusWithoutCoordinates(t *testing.T) {
	photo := &models.Photo{
		Timestamp: time.Date(2023, 7, 14, 10, 30, 0, 0, time.UTC),
	}

	text := renderStatus(photo)
	assert.Equal(t,
		"Another fine feline, captured in an undisclosed location on Friday, July 14 2023 #CatsOfAsia #CatsOfMastodon",
		text)
}
