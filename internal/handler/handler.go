// Package handler is the presentation boundary: it binds requests,
// invokes the engine and renders every outcome as a
// (success, message) pair. Domain error kinds map to statuses here;
// anything unrecognized is reported as an opaque failure.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cinema-booking/internal/app"
	"cinema-booking/internal/model"
	"cinema-booking/internal/service"
)

type BookingHandler struct {
	app *app.App
}

func NewBookingHandler(app *app.App) *BookingHandler {
	return &BookingHandler{
		app: app,
	}
}

func (h *BookingHandler) Register(r *gin.Engine) {
	r.POST("/rooms", h.HandleCreateRoom)
	r.GET("/rooms/:id", h.HandleGetRoom)
	r.PUT("/rooms/:id/layout", h.HandleRegenerateLayout)
	r.GET("/rooms/:id/seats", h.HandleRoomSeats)
	r.GET("/rooms/:id/sessions", h.HandleSessionsByRoom)

	r.POST("/sessions", h.HandleCreateSession)
	r.GET("/sessions/:id", h.HandleGetSession)
	r.PUT("/sessions/:id", h.HandleUpdateSession)
	r.DELETE("/sessions/:id", h.HandleDeleteSession)
	r.GET("/sessions/:id/seats", h.HandleSessionSeats)
	r.GET("/sessions/:id/availability", h.HandleSessionAvailability)
	r.GET("/movies/:id/sessions", h.HandleSessionsByMovie)

	r.POST("/tickets", h.HandleSellTicket)
	r.DELETE("/tickets/:id", h.HandleCancelTicket)
	r.POST("/tickets/:id/checkin", h.HandleCheckIn)
	r.GET("/tickets/:id/qr", h.HandleTicketQR)
}

func (h *BookingHandler) HandleCreateRoom(ctx *gin.Context) {
	var input model.CreateRoomInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badRequest(ctx, err)
		return
	}
	room, err := h.app.RoomService.CreateRoom(&input)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ok(ctx, http.StatusCreated, "room created", room)
}

func (h *BookingHandler) HandleGetRoom(ctx *gin.Context) {
	id, err := idParam(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	room, err := h.app.RoomService.GetRoomByID(id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ok(ctx, http.StatusOK, "room", room)
}

func (h *BookingHandler) HandleRegenerateLayout(ctx *gin.Context) {
	id, err := idParam(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	var input model.UpdateRoomLayoutInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badRequest(ctx, err)
		return
	}
	room, err := h.app.RoomService.RegenerateLayout(id, &input)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ok(ctx, http.StatusOK, "room layout regenerated", room)
}

func (h *BookingHandler) HandleCreateSession(ctx *gin.Context) {
	var input model.CreateSessionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badRequest(ctx, err)
		return
	}
	session, err := h.app.SessionService.CreateSession(&input)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ok(ctx, http.StatusCreated, "session scheduled", session)
}

func (h *BookingHandler) HandleGetSession(ctx *gin.Context) {
	id, err := idParam(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	session, err := h.app.SessionService.GetSessionByID(id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ok(ctx, http.StatusOK, "session", session)
}

func (h *BookingHandler) HandleUpdateSession(ctx *gin.Context) {
	id, err := idParam(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	var input model.UpdateSessionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badRequest(ctx, err)
		return
	}
	session, err := h.app.SessionService.UpdateSession(id, &input)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ok(ctx, http.StatusOK, "session updated", session)
}

func (h *BookingHandler) HandleDeleteSession(ctx *gin.Context) {
	id, err := idParam(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	if err := h.app.SessionService.DeleteSession(id); err != nil {
		h.fail(ctx, err)
		return
	}
	ok(ctx, http.StatusOK, "session deleted", nil)
}

func (h *BookingHandler) HandleSessionsByMovie(ctx *gin.Context) {
	id, err := idParam(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	sessions, err := h.app.SessionService.GetSessionsByMovieID(id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ok(ctx, http.StatusOK, "sessions", sessions)
}

func (h *BookingHandler) HandleSessionsByRoom(ctx *gin.Context) {
	id, err := idParam(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	sessions, err := h.app.SessionService.GetSessionsByRoomID(id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ok(ctx, http.StatusOK, "sessions", sessions)
}

func (h *BookingHandler) HandleRoomSeats(ctx *gin.Context) {
	id, err := idParam(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	seats, err := h.app.RoomService.ListSeats(id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ok(ctx, http.StatusOK, "seats", seats)
}

func (h *BookingHandler) HandleSessionSeats(ctx *gin.Context) {
	id, err := idParam(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	session, err := h.app.SessionService.GetSessionByID(id)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	var cached []model.SessionSeat
	if hit, err := h.app.Cache.GetSeatMap(session.ID, &cached); err == nil && hit {
		ok(ctx, http.StatusOK, "seats", cached)
		return
	}

	seats, err := h.app.TicketService.SessionSeats(session.ID)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	if err := h.app.Cache.SetSeatMap(session.ID, seats); err != nil {
		h.app.Logger.Warn("seat map not cached", zap.Uint("session_id", session.ID), zap.Error(err))
	}
	ok(ctx, http.StatusOK, "seats", seats)
}

// HandleSessionAvailability serves the cached free-seat counter,
// falling back to a store count when the counter is missing.
func (h *BookingHandler) HandleSessionAvailability(ctx *gin.Context) {
	id, err := idParam(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	session, err := h.app.SessionService.GetSessionByID(id)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	free, cached, err := h.app.Cache.FreeSeats(session.ID)
	if err != nil || !cached {
		if err != nil {
			h.app.Logger.Warn("free-seat counter unavailable", zap.Uint("session_id", session.ID), zap.Error(err))
		}
		total, err := h.app.SeatRepo.CountByRoom(session.RoomID)
		if err != nil {
			h.fail(ctx, err)
			return
		}
		sold, err := h.app.TicketRepo.CountActiveBySession(session.ID)
		if err != nil {
			h.fail(ctx, err)
			return
		}
		free = int(total - sold)
	}
	ok(ctx, http.StatusOK, "availability", gin.H{"sessionId": session.ID, "freeSeats": free})
}

func (h *BookingHandler) HandleSellTicket(ctx *gin.Context) {
	var input model.SellTicketInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		badRequest(ctx, err)
		return
	}
	ticket, err := h.app.BookingWorkflow.Sell(&input)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ok(ctx, http.StatusCreated, "ticket sold", ticket)
}

func (h *BookingHandler) HandleCancelTicket(ctx *gin.Context) {
	id, err := idParam(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	if err := h.app.BookingWorkflow.Cancel(id); err != nil {
		h.fail(ctx, err)
		return
	}
	ok(ctx, http.StatusOK, "ticket cancelled", nil)
}

func (h *BookingHandler) HandleCheckIn(ctx *gin.Context) {
	id, err := idParam(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	ticket, err := h.app.BookingWorkflow.CheckIn(id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ok(ctx, http.StatusOK, "ticket checked in", ticket)
}

func (h *BookingHandler) HandleTicketQR(ctx *gin.Context) {
	id, err := idParam(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	pngBytes, err := h.app.TicketService.TicketQR(id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "image/png", pngBytes)
}

func idParam(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func ok(ctx *gin.Context, status int, message string, data any) {
	ctx.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": err.Error(),
	})
}

// fail maps the error taxonomy to statuses. ErrConflict is matched
// before ErrNotAllowed since conflicts wrap the not-allowed kind.
func (h *BookingHandler) fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, service.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, service.ErrNotAllowed):
		ctx.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
	default:
		h.app.Logger.Error("unexpected failure", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal failure, please try again later",
		})
	}
}
