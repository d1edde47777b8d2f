package handlers

import (
	"movie-catalog/internal/apperror"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UploadHandler struct {
	storage services.ObjectStorage
	logger  *logrus.Logger
}

func NewUploadHandler(storage services.ObjectStorage, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		storage: storage,
		logger:  logger,
	}
}

// GetPresignedURL godoc
// @Summary Get presigned URL for file upload
// @Description Generate a presigned URL for uploading an avatar or image to MinIO/S3. Store the returned public_url on the profile afterwards.
// @Tags upload
// @Produce json
// @Security BearerAuth
// @Param filename query string true "Filename"
// @Success 200 {object} utils.StandardResponse{data=services.PresignedUpload}
// @Failure 400 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /upload/presign [get]
func (h *UploadHandler) GetPresignedURL(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return apperror.FieldError("filename", "This field is required.")
	}

	upload, err := h.storage.PresignUpload(c.UserContext(), filename)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate presigned URL")
		return apperror.Internal("failed to generate presigned URL", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated successfully", upload)
}
