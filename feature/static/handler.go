package static

import (
	"errors"
	"net/http"
	"path"

	"devserve/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for static files.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes routes every path and method to the responder.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.All("/*", h.HandleFile)
}

// HandleFile answers GET and HEAD requests from the source. Any other
// method gets 501.
func (h *Handler) HandleFile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	method := c.Method()
	if method != fiber.MethodGet && method != fiber.MethodHead {
		c.Set(fiber.HeaderAllow, "GET, HEAD")
		return c.SendStatus(fiber.StatusNotImplemented)
	}
	head := method == fiber.MethodHead

	ctx := c.UserContext()
	res, err := h.service.Resolve(ctx, utils.CopyString(c.Path()))
	if err != nil {
		return h.sendError(c, l, err)
	}

	switch res.Kind {
	case KindRedirect:
		loc := res.Location
		if q := c.Request().URI().QueryString(); len(q) > 0 {
			loc += "?" + string(q)
		}
		return c.Redirect(loc, fiber.StatusMovedPermanently)

	case KindListing:
		body, err := renderListing(res.Path, res.Entries)
		if err != nil {
			return h.sendError(c, l, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		if head {
			return sendHead(c, len(body))
		}
		return c.Status(fiber.StatusOK).Send(body)
	}

	rc, err := h.service.Open(ctx, res.Name)
	if err != nil {
		return h.sendError(c, l, err)
	}

	c.Set(fiber.HeaderContentType, ContentType(res.Name))
	if !res.Entry.ModTime.IsZero() {
		c.Set(fiber.HeaderLastModified, res.Entry.ModTime.UTC().Format(http.TimeFormat))
	}
	if head {
		rc.Close()
		return sendHead(c, int(res.Entry.Size))
	}

	c.Status(fiber.StatusOK)
	c.Response().SetBodyStream(&stream{rc: rc, name: res.Name, logger: l}, int(res.Entry.Size))
	return nil
}

// sendHead writes GET's headers with no body.
func sendHead(c *fiber.Ctx, size int) error {
	c.Status(fiber.StatusOK)
	c.Response().Header.SetContentLength(size)
	c.Response().SkipBody = true
	return nil
}

func (h *Handler) sendError(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := StatusFor(err)
	if status == fiber.StatusInternalServerError {
		l.Error("Failed to serve path", zap.String("path", c.Path()), zap.Error(err))
	} else {
		l.Debug("Request rejected", zap.Int("status", status), zap.Error(err))
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(status).SendString(utils.StatusMessage(status))
}

// StatusFor maps a resolve or source error onto an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// ContentType infers the media type from the file extension.
func ContentType(name string) string {
	if t := utils.GetMIME(path.Ext(name)); t != "" {
		return t
	}
	return fiber.MIMEOctetStream
}
