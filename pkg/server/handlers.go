package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v3"

	"stockmap/pkg/engine/geom"
	"stockmap/pkg/i18n"
	"stockmap/pkg/inventory"
	"stockmap/pkg/warehouse/locator"
	"stockmap/pkg/warehouse/renderer"
	"stockmap/pkg/warehouse/scene"
	"stockmap/pkg/warehouse/scene/svg"
	"stockmap/pkg/warehouse/viewport"
)

// param returns a path parameter with percent-escapes removed
func param(c fiber.Ctx, name string) string {
	v := c.Params(name)
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

func (srv *Server) getLayout(c fiber.Ctx) error {
	return c.JSON(toLayoutDTO(srv.session.Layout()))
}

func (srv *Server) getItem(c fiber.Ctx) error {
	code := param(c, "code")
	if srv.items == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(errorDTO{Error: "not_implemented", Message: "item records are not available"})
	}
	rec, ok, err := srv.items.Get(c.Context(), code)
	if err != nil {
		log.Printf("[SERVER] Item %s lookup failed: %v", code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorDTO{Error: "internal", Message: err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(errorDTO{
			Error:   "not_found",
			Kind:    locator.ItemNotFound.String(),
			Message: i18n.Get("ITEM_NOT_FOUND", code),
		})
	}
	return c.JSON(rec)
}

// putItem creates or replaces an item record, e.g. after it was put away
func (srv *Server) putItem(c fiber.Ctx) error {
	if srv.items == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(errorDTO{Error: "not_implemented", Message: "item records are not available"})
	}
	var req itemRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badBody(c, err)
	}
	rec, err := inventory.NewRecord(param(c, "code"), req.Name, req.Quantity, req.Location)
	if err != nil {
		return badBody(c, err)
	}
	if err := srv.items.Put(c.Context(), *rec); err != nil {
		log.Printf("[SERVER] Item %s store failed: %v", rec.Code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorDTO{Error: "internal", Message: err.Error()})
	}
	log.Printf("[SERVER] Item %s stored at %s/%s/%s", rec.Code, rec.Location.SectorID, rec.Location.ShelfID, rec.Location.SlotName)
	return c.JSON(rec)
}

func (srv *Server) locate(c fiber.Ctx) error {
	code := param(c, "code")
	res, err := srv.session.Locate(c.Context(), code)
	if err != nil {
		return locateError(c, err)
	}
	return c.JSON(toLocateDTO(res, srv.session.View()))
}

// locateError maps locate failures to HTTP responses
func locateError(c fiber.Ctx, err error) error {
	if errors.Is(err, locator.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(errorDTO{Error: "invalid_input", Message: i18n.Get("INVALID_INPUT")})
	}
	var le *locator.Error
	if errors.As(err, &le) {
		return c.Status(fiber.StatusNotFound).JSON(errorDTO{
			Error:       "not_found",
			Kind:        le.Kind.String(),
			Message:     le.Message(),
			Suggestions: le.Suggestions,
		})
	}
	log.Printf("[SERVER] Locate failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(errorDTO{Error: "internal", Message: err.Error()})
}

func (srv *Server) viewResponse(c fiber.Ctx) error {
	s := srv.session
	st := s.Interaction()
	return c.JSON(viewDTO{
		View:          s.View(),
		Viewport:      s.Viewport(),
		Zoom:          renderer.ZoomLabel(s.View()),
		Visible:       s.VisibleWorld(),
		HoveredShelf:  st.HoveredShelfID,
		SelectedShelf: st.SelectedShelfID(),
		Marker:        s.Marker(),
	})
}

func (srv *Server) getView(c fiber.Ctx) error {
	return srv.viewResponse(c)
}

func badBody(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorDTO{Error: "invalid_body", Message: err.Error()})
}

func (srv *Server) resize(c fiber.Ctx) error {
	var req resizeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badBody(c, err)
	}
	if err := srv.session.Resize(geom.Sz(req.Width, req.Height)); err != nil {
		if errors.Is(err, viewport.ErrInvalidDimensions) {
			return badBody(c, err)
		}
		return err
	}
	return srv.viewResponse(c)
}

func (srv *Server) zoom(c fiber.Ctx) error {
	var req zoomRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badBody(c, err)
	}
	var dir viewport.Direction
	switch req.Direction {
	case "in":
		dir = viewport.ZoomIn
	case "out":
		dir = viewport.ZoomOut
	default:
		return badBody(c, errors.New(`direction must be "in" or "out"`))
	}
	if req.X != nil && req.Y != nil {
		srv.session.Wheel(geom.Pt(*req.X, *req.Y), dir)
	} else {
		srv.session.ZoomCenter(dir)
	}
	return srv.viewResponse(c)
}

func (srv *Server) pan(c fiber.Ctx) error {
	var req panRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badBody(c, err)
	}
	srv.session.PanBy(geom.Pt(req.DX, req.DY))
	return srv.viewResponse(c)
}

func (srv *Server) reset(c fiber.Ctx) error {
	if err := srv.session.ResetView(); err != nil {
		return badBody(c, err)
	}
	return srv.viewResponse(c)
}

func (srv *Server) selectShelf(c fiber.Ctx) error {
	id := param(c, "id")
	shelf, ok := srv.session.SelectShelf(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(errorDTO{
			Error:   "not_found",
			Kind:    locator.ShelfNotFound.String(),
			Message: i18n.Get("UNKNOWN_SHELF", id),
		})
	}
	return c.JSON(shelfDetailDTO{
		Shelf:  toShelfDTO(shelf),
		Detail: renderer.ShelfDetail(srv.session.Layout(), shelf),
	})
}

func (srv *Server) dismissSelection(c fiber.Ctx) error {
	srv.session.DismissSelection()
	return c.SendStatus(fiber.StatusNoContent)
}

func (srv *Server) dismissMarker(c fiber.Ctx) error {
	srv.session.DismissMarker()
	return c.SendStatus(fiber.StatusNoContent)
}

func (srv *Server) mapSVG(c fiber.Ctx) error {
	doc, err := svg.Render(srv.session.Viewport(), srv.session.Frame(), scene.DefaultPalette)
	if err != nil {
		log.Printf("[SERVER] Render error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorDTO{Error: "render", Message: err.Error()})
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(doc)
}
