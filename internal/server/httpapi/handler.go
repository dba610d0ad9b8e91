package httpapi

import (
	"errors"
	"net/http"

	"github.com/neogulmap/zonemap/internal/common"
	"github.com/neogulmap/zonemap/internal/logging"
	"github.com/neogulmap/zonemap/internal/server/httpapi/errcode"
	"github.com/neogulmap/zonemap/internal/server/services"
)

// Handler carries the services behind the HTTP surface.
type Handler struct {
	zones  *services.ZoneService
	users  *services.UserService
	images *services.ImageService
	logger logging.Logger
}

func NewHandler(zones *services.ZoneService, users *services.UserService,
	images *services.ImageService, logger logging.Logger) *Handler {
	return &Handler{
		zones:  zones,
		users:  users,
		images: images,
		logger: logger.With("component", "http"),
	}
}

// writeZoneError maps service errors from zone operations onto the code
// table.
func (h *Handler) writeZoneError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		WriteError(w, r, errcode.ZoneNotFound)
	case errors.Is(err, common.ErrConflict):
		WriteError(w, r, errcode.ZoneAlreadyExists)
	case errors.Is(err, common.ErrEmptyUpload):
		WriteError(w, r, errcode.FileUploadError)
	case errors.Is(err, common.ErrFileTooLarge):
		WriteError(w, r, errcode.FileSizeTooLarge)
	case errors.Is(err, common.ErrUnsupportedFileType):
		WriteError(w, r, errcode.FileTypeInvalid)
	default:
		h.logger.Error(r.Context(), "zone operation failed", "error", err.Error())
		WriteError(w, r, errcode.InternalServerError)
	}
}

// writeUserError maps service errors from account operations onto the
// code table.
func (h *Handler) writeUserError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		WriteError(w, r, errcode.UserNotFound)
	case errors.Is(err, common.ErrConflict):
		WriteError(w, r, errcode.EmailDuplication)
	case errors.Is(err, common.ErrEmptyUpload):
		WriteError(w, r, errcode.ProfileImageRequired)
	case errors.Is(err, common.ErrFileTooLarge):
		WriteError(w, r, errcode.ProfileImageTooLarge)
	case errors.Is(err, common.ErrUnsupportedFileType):
		WriteError(w, r, errcode.ProfileImageInvalidType)
	default:
		h.logger.Error(r.Context(), "user operation failed", "error", err.Error())
		WriteError(w, r, errcode.InternalServerError)
	}
}
