package server

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/smokyabdulrahman/salat/internal/api"
	"github.com/smokyabdulrahman/salat/internal/apperr"
)

// MIMEMsgpack is the content type of ?format=msgpack responses.
const MIMEMsgpack = "application/x-msgpack"

// sendSuccess wraps data in the success envelope. JSON is the default;
// format=msgpack encodes the same structure with MessagePack using the JSON
// field names.
func sendSuccess(c *fiber.Ctx, data any) error {
	env := api.Envelope[any]{
		Data: data,
		Meta: &api.Meta{
			RequestID: requestIDOf(c),
			Language:  string(langOf(c)),
		},
	}

	if c.Query("format") == "msgpack" {
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(env); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, MIMEMsgpack)
		return c.Send(buf.Bytes())
	}
	return c.JSON(env)
}

// sendError renders err as an error envelope with its mapped status.
func sendError(c *fiber.Ctx, err error) error {
	ae := apperr.ToAppError(err)
	return c.Status(ae.StatusCode).JSON(api.ErrorEnvelope{
		Error: api.ErrorBody{
			Code:    ae.Code,
			Message: ae.Message,
			Details: ae.Details,
		},
	})
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return apperr.ErrNotFound.Code
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestTimeout:
		return "TIMEOUT"
	}
	if status >= 400 && status < 500 {
		return apperr.ErrInvalidRequest.Code
	}
	return apperr.ErrInternal.Code
}

// errorHandler renders errors that escape the handlers: fiber's own
// (unknown route, bad method), recovered panics and domain errors.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code >= fiber.StatusInternalServerError {
				logger.Error("HTTP Error", zap.String("path", c.Path()), zap.Int("status", fe.Code), zap.Error(err))
			}
			return sendError(c, apperr.New(codeForStatus(fe.Code), fe.Message, fe.Code))
		}

		ae := apperr.ToAppError(err)
		if ae.StatusCode >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", ae.StatusCode),
				zap.Error(err),
			)
		}
		return sendError(c, ae)
	}
}
