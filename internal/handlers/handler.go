package handlers

import (
	"strconv"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/pagination"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorHandler renders every error returned by a handler as the standard
// envelope.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := apperror.As(err); ok {
			code := appErr.Status()
			if code >= fiber.StatusInternalServerError {
				log.WithError(err).WithFields(logrus.Fields{
					"method":     c.Method(),
					"path":       c.Path(),
					"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
				}).Error("Request failed")
				return utils.ErrorResponse(c, code, "Internal server error")
			}
			return utils.ErrorWithFieldsResponse(c, code, appErr.Message, appErr.Fields)
		}

		if e, ok := err.(*fiber.Error); ok {
			return utils.ErrorResponse(c, e.Code, e.Message)
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
		}).Error("Request error")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperror.FieldError("id", "A valid integer is required.")
	}
	return uint(id), nil
}

func pageRequest(c *fiber.Ctx, policy pagination.Policy) (pagination.Request, error) {
	return policy.Resolve(c.Query("page"), c.Query("page_size"))
}

// paginated checks that the requested page exists and renders it with meta.
func paginated(c *fiber.Ctx, page pagination.Request, total int64, message string, data interface{}) error {
	if err := page.Check(total); err != nil {
		return err
	}
	meta := utils.CreatePaginationMeta(page.Page, page.Size, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, message, data, meta)
}

// decoder parses the JSON body. An empty body leaves the target untouched.
func decoder(c *fiber.Ctx) services.Decoder {
	return func(v any) error {
		if len(c.Body()) == 0 {
			return nil
		}
		if err := c.BodyParser(v); err != nil {
			return apperror.Validation("Invalid request body", nil)
		}
		return nil
	}
}
