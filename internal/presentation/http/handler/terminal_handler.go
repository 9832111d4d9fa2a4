package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/application/service"
	"github.com/sokoerp/pos-api/internal/presentation/http/dto/request"
	"github.com/sokoerp/pos-api/internal/presentation/http/dto/response"
)

// TerminalHandler handles POS terminal HTTP requests
type TerminalHandler struct {
	terminalService *service.TerminalService
}

// NewTerminalHandler creates a new terminal handler
func NewTerminalHandler(terminalService *service.TerminalService) *TerminalHandler {
	return &TerminalHandler{terminalService: terminalService}
}

// Create handles creating a terminal
func (h *TerminalHandler) Create(c *gin.Context) {
	var req request.TerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	terminal, err := h.terminalService.CreateTerminal(c.Request.Context(), &service.TerminalInput{
		Name:        req.Name,
		Location:    req.Location,
		WarehouseID: req.WarehouseID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Terminal created successfully", terminal)
}

// Get handles retrieving a terminal
func (h *TerminalHandler) Get(c *gin.Context) {
	terminalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	terminal, err := h.terminalService.GetTerminal(c.Request.Context(), terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Terminal retrieved successfully", terminal)
}

// Update handles updating a terminal
func (h *TerminalHandler) Update(c *gin.Context) {
	terminalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	var req request.TerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	terminal, err := h.terminalService.UpdateTerminal(c.Request.Context(), terminalID, &service.TerminalInput{
		Name:        req.Name,
		Location:    req.Location,
		WarehouseID: req.WarehouseID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Terminal updated successfully", terminal)
}

// Delete handles deleting a terminal
func (h *TerminalHandler) Delete(c *gin.Context) {
	terminalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	if err := h.terminalService.DeleteTerminal(c.Request.Context(), terminalID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing terminals
func (h *TerminalHandler) List(c *gin.Context) {
	terminals, err := h.terminalService.ListTerminals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Terminals retrieved successfully", terminals)
}
