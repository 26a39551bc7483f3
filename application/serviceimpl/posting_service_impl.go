package serviceimpl

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"catsofasia/domain/models"
	"catsofasia/domain/repositories"
	"catsofasia/domain/services"
	"catsofasia/infrastructure/mastodon"
	"catsofasia/pkg/logger"
)

const statusTemplate = "Another fine feline, captured in %s on %s #CatsOfAsia #CatsOfMastodon"

// MediaDownloader fetches photo binaries from the CDN.
type MediaDownloader interface {
	Download(ctx context.Context, url string) ([]byte, string, error)
}

// StatusPublisher posts a media attachment plus status text to a
// social platform.
type StatusPublisher interface {
	UploadMedia(ctx context.Context, filename string, data []byte, description string) (*mastodon.Media, error)
	CreateStatus(ctx context.Context, text string, mediaIDs []string) (*mastodon.Status, error)
}

type postingService struct {
	photoRepo    repositories.PhotoRepository
	platformRepo repositories.PlatformRepository
	postRepo     repositories.PostRepository
	images       ImageURLBuilder
	downloader   MediaDownloader
	publisher    StatusPublisher
}

func NewPostingService(
	photoRepo repositories.PhotoRepository,
	platformRepo repositories.PlatformRepository,
	postRepo repositories.PostRepository,
	images ImageURLBuilder,
	downloader MediaDownloader,
	publisher StatusPublisher,
) services.PostingService {
	return &postingService{
		photoRepo:    photoRepo,
		platformRepo: platformRepo,
		postRepo:     postRepo,
		images:       images,
		downloader:   downloader,
		publisher:    publisher,
	}
}

// PickUnused samples uniformly over the full unposted candidate set,
// so every remaining photo has equal odds regardless of insertion
// order.
func (s *postingService) PickUnused(ctx context.Context, platformName string) (*models.Photo, error) {
	platform, err := s.platformRepo.GetByName(ctx, platformName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up platform: %w", err)
	}
	if platform == nil {
		return nil, fmt.Errorf("%w: %s", services.ErrPlatformNotFound, platformName)
	}

	candidates, err := s.photoRepo.ListUnposted(ctx, platform.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unposted photos: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w for platform %s", services.ErrNoContentRemaining, platform.Name)
	}

	photo := candidates[rand.IntN(len(candidates))]
	return &photo, nil
}

func (s *postingService) PostRandomUnused(ctx context.Context, platformName string) error {
	platform, err := s.platformRepo.GetByName(ctx, platformName)
	if err != nil {
		return fmt.Errorf("failed to look up platform: %w", err)
	}
	if platform == nil {
		return fmt.Errorf("%w: %s", services.ErrPlatformNotFound, platformName)
	}

	photo, err := s.PickUnused(ctx, platform.Name)
	if err != nil {
		return err
	}

	imageURL := s.images.DeliveryURL(photo.ID, "desktop")
	data, _, err := s.downloader.Download(ctx, imageURL)
	if err != nil {
		logger.PostingError("download", "failed to download photo from CDN", err, map[string]interface{}{
			"photo_id": photo.ID.String(),
			"url":      imageURL,
		})
		return fmt.Errorf("failed to download photo: %w", err)
	}

	media, err := s.publisher.UploadMedia(ctx, photo.Filename, data, "A cat.")
	if err != nil {
		logger.PostingError("upload_media", "failed to upload media", err, map[string]interface{}{
			"photo_id": photo.ID.String(),
		})
		return fmt.Errorf("failed to upload media: %w", err)
	}

	text := renderStatus(photo)
	status, err := s.publisher.CreateStatus(ctx, text, []string{media.ID})
	if err != nil {
		logger.PostingError("create_status", "failed to create status", err, map[string]interface{}{
			"photo_id": photo.ID.String(),
			"media_id": media.ID,
		})
		return fmt.Errorf("failed to create status: %w", err)
	}

	post := &models.Post{
		PhotoSHA256: photo.SHA256,
		PlatformID:  platform.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		// The status is already out; the missing ledger row means this
		// photo can be picked again. Surface the error so the run is
		// investigated.
		logger.PostingError("record_post", "status published but post row failed", err, map[string]interface{}{
			"photo_id":  photo.ID.String(),
			"status_id": status.ID,
		})
		return fmt.Errorf("failed to record post: %w", err)
	}

	logger.Posting("post_published", "published photo", map[string]interface{}{
		"photo_id":  photo.ID.String(),
		"platform":  platform.Name,
		"status_id": status.ID,
	})

	return nil
}

// renderStatus formats the status text with the capture date rendered
// in the timezone that was in effect where the photo was taken.
func renderStatus(photo *models.Photo) string {
	place := "an undisclosed location"
	captured := photo.Timestamp

	if photo.Coordinates != nil {
		place = photo.Coordinates.Location.String()
		zone := time.FixedZone("local", photo.Coordinates.Location.TZOffset*60)
		captured = captured.In(zone)
	}

	return fmt.Sprintf(statusTemplate, place, captured.Format("Monday, January 2 2006"))
}
