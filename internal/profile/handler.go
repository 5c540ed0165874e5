// File: internal/profile/handler.go
package profile

import (
	"errors"
	"strings"

	"krikins_backend/internal/common"
	"krikins_backend/internal/config"
	"krikins_backend/internal/filestorage"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20 // portrait uploads are capped at 10 MB

// Handler struct holds dependencies for profile handlers.
type Handler struct {
	service Service
	storage *filestorage.FileStorageService
	cfg     *config.Config
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service Service, storage *filestorage.FileStorageService, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		storage: storage,
		cfg:     cfg,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for profile operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	profileGroup := router.Group("/profiles")
	{
		profileGroup.POST("", h.saveProfile)
		profileGroup.GET("", h.listProfiles)
		profileGroup.GET("/:id", h.getProfile)
		profileGroup.PUT("/:id", h.updateProfile)
		profileGroup.DELETE("/:id", h.deleteProfile)
		profileGroup.POST("/image", h.uploadImage)
	}
}

// saveProfile persists the payload as a new record when it carries no id and
// as an update of the named record otherwise.
func (h *Handler) saveProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Save profile: invalid payload", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request body: "+err.Error()))
		return
	}

	saved, created, err := h.service.SaveProfile(c.Request.Context(), req.ID, req.ProfileRequest)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if created {
		common.RespondCreated(c, "Profile saved successfully.", ToProfileResponse(saved))
		return
	}
	common.RespondOK(c, "Profile updated successfully.", ToProfileResponse(saved))
}

func (h *Handler) listProfiles(c *gin.Context) {
	profiles, err := h.service.ListProfiles(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = ToProfileResponse(&profiles[i])
	}
	common.RespondOK(c, "Profiles retrieved successfully.", responses)
}

func (h *Handler) getProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid profile ID format."))
		return
	}
	p, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile retrieved successfully.", ToProfileResponse(p))
}

func (h *Handler) updateProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid profile ID format."))
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update profile: invalid payload", zap.Error(err), zap.String("profileID", id.String()))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request body: "+err.Error()))
		return
	}

	saved, _, err := h.service.SaveProfile(c.Request.Context(), &id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile updated successfully.", ToProfileResponse(saved))
}

func (h *Handler) deleteProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid profile ID format."))
		return
	}
	if err := h.service.DeleteProfile(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

// uploadImage accepts a portrait image in the "image" multipart field and
// returns the URL the editor should store on the profile. In inline mode the
// bytes come back as a data URI; in disk mode they are written to local
// storage and a public URL is returned.
func (h *Handler) uploadImage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		h.logger.Warn("Upload image: failed to parse multipart form", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid upload or file too large."))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Missing 'image' file field."))
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		common.RespondWithError(c, common.ErrUnprocessableEntity.WithDetails("Only image uploads are accepted."))
		return
	}

	var imageURL string
	switch h.cfg.UploadMode {
	case config.UploadModeDisk:
		relPath, err := h.storage.SaveUploadedImage(fileHeader, "uploads")
		if err != nil {
			h.logger.Error("Upload image: failed to store file", zap.Error(err))
			common.RespondWithError(c, common.ErrInternalServer.WithDetails("Could not store the uploaded image."))
			return
		}
		imageURL = strings.TrimSuffix(h.cfg.ImagePublicBaseURL, "/") + "/" + relPath
	default:
		imageURL, err = h.storage.EncodeDataURI(fileHeader)
		if err != nil {
			h.logger.Error("Upload image: failed to encode data URI", zap.Error(err))
			common.RespondWithError(c, common.ErrUnprocessableEntity.WithDetails("Could not read the uploaded image."))
			return
		}
	}

	common.RespondOK(c, "Image uploaded successfully.", gin.H{"image_url": imageURL})
}
