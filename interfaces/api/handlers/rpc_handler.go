package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"catsofasia/domain/dto"
	"catsofasia/domain/services"
	"catsofasia/infrastructure/cloudflare"
	"catsofasia/interfaces/api/rpc"
	"catsofasia/pkg/utils"
)

// RPCHandler exposes the uploader surface as JSON-RPC methods on a
// single POST endpoint.
type RPCHandler struct {
	dispatcher *rpc.Dispatcher
	photos     services.PhotoService
	locations  services.LocationService
	auth       services.AuthService
	images     *cloudflare.ImagesClient
}

func NewRPCHandler(svcs *Services, images *cloudflare.ImagesClient) *RPCHandler {
	h := &RPCHandler{
		dispatcher: rpc.NewDispatcher(),
		photos:     svcs.PhotoService,
		locations:  svcs.LocationService,
		auth:       svcs.AuthService,
		images:     images,
	}

	h.dispatcher.Register("photo_exists", h.photoExists)
	h.dispatcher.Register("get_location", h.getLocation)
	h.dispatcher.Register("get_closest_photos", h.getClosestPhotos)
	h.dispatcher.Register("create_upload_url", h.privileged(h.createUploadURL))
	h.dispatcher.Register("add_photo", h.privileged(h.addPhoto))

	return h
}

// Handle is the single RPC endpoint.
func (h *RPCHandler) Handle(c *fiber.Ctx) error {
	resp := h.dispatcher.Dispatch(c, c.Body())
	return c.JSON(resp)
}

// privileged wraps a method so it requires a valid CSRF token and an
// authenticated user. The CSRF check runs first: a missing or stale
// token is Forbidden even when the caller is not logged in at all.
func (h *RPCHandler) privileged(method rpc.HandlerFunc) rpc.HandlerFunc {
	return func(c *fiber.Ctx, params rpc.Params) (interface{}, *rpc.Error) {
		token := c.Get("X-CSRF-Token")
		ok, err := h.auth.ValidateCSRFToken(c.UserContext(), token)
		if err != nil {
			return nil, rpc.NewError(rpc.CodeInternalError, "csrf validation failed")
		}
		if !ok {
			return nil, rpc.NewError(rpc.CodeForbidden, "missing or invalid csrf token")
		}

		if _, err := utils.GetUserFromContext(c); err != nil {
			return nil, rpc.NewError(rpc.CodeUnauthorized, "authentication required")
		}

		return method(c, params)
	}
}

func (h *RPCHandler) photoExists(c *fiber.Ctx, params rpc.Params) (interface{}, *rpc.Error) {
	var p struct {
		SHA256 string `json:"sha256"`
	}
	if err := params.Bind(&p); err != nil {
		return nil, err
	}
	if p.SHA256 == "" {
		return nil, rpc.NewError(rpc.CodeInvalidParams, "sha256 is required")
	}

	exists, err := h.photos.Exists(c.UserContext(), p.SHA256)
	if err != nil {
		return nil, rpc.NewError(rpc.CodeInternalError, "existence check failed")
	}
	return exists, nil
}

func (h *RPCHandler) getLocation(c *fiber.Ctx, params rpc.Params) (interface{}, *rpc.Error) {
	var p struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := params.Bind(&p); err != nil {
		return nil, err
	}
	if p.Latitude == nil || p.Longitude == nil {
		return nil, rpc.NewError(rpc.CodeInvalidParams, "latitude and longitude are required")
	}

	resolution, err := h.locations.Resolve(c.UserContext(), *p.Latitude, *p.Longitude)
	if err != nil {
		return nil, rpc.NewError(rpc.CodeInternalError, "location resolution failed")
	}
	return resolution, nil
}

func (h *RPCHandler) getClosestPhotos(c *fiber.Ctx, params rpc.Params) (interface{}, *rpc.Error) {
	var p struct {
		Latitude      *float64 `json:"latitude"`
		Longitude     *float64 `json:"longitude"`
		Limit         int      `json:"limit"`
		MaxDistanceKm float64  `json:"max_distance_km"`
	}
	if err := params.Bind(&p); err != nil {
		return nil, err
	}
	if p.Latitude == nil || p.Longitude == nil {
		return nil, rpc.NewError(rpc.CodeInvalidParams, "latitude and longitude are required")
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.MaxDistanceKm <= 0 {
		p.MaxDistanceKm = 25
	}

	nearby, err := h.photos.FindNear(c.UserContext(), *p.Latitude, *p.Longitude, p.Limit, p.MaxDistanceKm)
	if err != nil {
		return nil, rpc.NewError(rpc.CodeInternalError, "proximity search failed")
	}
	return nearby, nil
}

func (h *RPCHandler) createUploadURL(c *fiber.Ctx, params rpc.Params) (interface{}, *rpc.Error) {
	ticket, err := h.images.CreateUploadURL(c.UserContext())
	if err != nil {
		return nil, rpc.NewError(rpc.CodeInternalError, "failed to create upload url")
	}
	return ticket, nil
}

func (h *RPCHandler) addPhoto(c *fiber.Ctx, params rpc.Params) (interface{}, *rpc.Error) {
	var input dto.AddPhotoInput
	if err := params.Bind(&input); err != nil {
		return nil, err
	}

	result, err := h.photos.AddPhoto(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return nil, rpc.NewError(rpc.CodeInvalidParams, err.Error())
		case errors.Is(err, services.ErrPhotoExists):
			return nil, rpc.NewError(rpc.CodeConflict, "photo already exists")
		case errors.Is(err, services.ErrCoordinatesConflict):
			return nil, rpc.NewError(rpc.CodeConflict, "coordinates conflict, retry the request")
		default:
			return nil, rpc.NewError(rpc.CodeInternalError, "ingestion failed")
		}
	}
	return result, nil
}
