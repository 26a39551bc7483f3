package serviceimpl

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"catsofasia/domain/models"
	"catsofasia/domain/services"
	"catsofasia/infrastructure/mastodon"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Location{},
		&models.Coordinates{},
		&models.Photo{},
		&models.RawMetadata{},
		&models.Platform{},
		&models.Post{},
		&models.User{},
	))

	return db
}

// fakeGeocoder returns canned components and counts calls.
type fakeGeocoder struct {
	components []services.AddressComponent
	err        error
	calls      int
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) ([]services.AddressComponent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.components, nil
}

// fakeImages builds deterministic delivery URLs.
type fakeImages struct{}

func (fakeImages) DeliveryURL(photoID uuid.UUID, variant string) string {
	return "https://cdn.test/" + photoID.String() + "/" + variant
}

func (f fakeImages) DeliveryURLs(photoID uuid.UUID) map[string]string {
	urls := make(map[string]string)
	for _, variant := range []string{"desktop", "mobile", "popup", "favorite", "smol"} {
		urls[variant] = f.DeliveryURL(photoID, variant)
	}
	return urls
}

// fakeDownloader returns fixed bytes and records the requested URL.
type fakeDownloader struct {
	data    []byte
	err     error
	lastURL string
}

func (f *fakeDownloader) Download(ctx context.Context, url string) ([]byte, string, error) {
	f.lastURL = url
	if f.err != nil {
		return nil, "", f.err
	}
	return f.data, "image/jpeg", nil
}

// fakePublisher records uploaded media and created statuses.
type fakePublisher struct {
	uploadErr error
	statusErr error

	uploadedFilename string
	uploadedData     []byte
	statusText       string
	statusMediaIDs   []string
}

func (f *fakePublisher) UploadMedia(ctx context.Context, filename string, data []byte, description string) (*mastodon.Media, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploadedFilename = filename
	f.uploadedData = data
	return &mastodon.Media{ID: "media-1"}, nil
}

func (f *fakePublisher) CreateStatus(ctx context.Context, text string, mediaIDs []string) (*mastodon.Status, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	f.statusText = text
	f.statusMediaIDs = mediaIDs
	return &mastodon.Status{ID: "status-1"}, nil
}

func intPtr(v int) *int {
	return &v
}
