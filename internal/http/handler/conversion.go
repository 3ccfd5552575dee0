package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"marcapi/internal/marc"
	"marcapi/internal/service"
)

// ConvertRecord serves one Pergamum catalogue entry in the given MARC format.
//
// @Summary Convert a Pergamum record
// @Description mrc is ISO 2709 and mrk the mnemonic text form, both sent as {id}.{ext}
// @Description attachments; xml is MARCXML sent inline.
// @Tags pergamum
// @Param url query string true "Pergamum installation base URL"
// @Param id query int true "catalogue entry id (codigo_acervo_temp)"
// @Produce application/marc
// @Produce application/xml
// @Produce text/plain
// @Success 200 {file} file
// @Failure 400 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /pergamum/mrc [get]
// @Router /pergamum/xml [get]
// @Router /pergamum/mrk [get]
func ConvertRecord(convSvc service.ConversionService, format marc.Format) fiber.Handler {
	return func(c *fiber.Ctx) error {
		baseURL := c.Query("url")
		if baseURL == "" {
			return writeError(c, fiber.StatusBadRequest, service.CodeURLRequired, "url query parameter is required")
		}
		id, err := strconv.ParseInt(c.Query("id"), 10, 64)
		if err != nil || id <= 0 {
			return writeError(c, fiber.StatusBadRequest, service.CodeInvalidID, "id must be a positive integer")
		}

		res, err := convSvc.Convert(c.UserContext(), service.ConversionRequest{
			BaseURL: baseURL,
			ID:      id,
			Format:  format,
		})
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, res.ContentType)
		if res.Attachment {
			c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.Filename+`"`)
		}
		return c.Status(fiber.StatusOK).Send(res.Body)
	}
}

// ListConversions pages the conversion log, newest first.
//
// @Summary List conversions
// @Tags conversions
// @Param limit query int false "page size (default 10, max 100)"
// @Param offset query int false "rows to skip"
// @Produce json
// @Success 200 {object} service.ConversionListResult
// @Failure 400 {object} errorPayload
// @Router /conversions [get]
func ListConversions(convSvc service.ConversionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := convSvc.ListConversions(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, service.CodeInternal, "internal server error")
		}
		return c.JSON(res)
	}
}
