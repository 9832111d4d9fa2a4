package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/application/service"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	"github.com/sokoerp/pos-api/internal/domain/repository"
	"github.com/sokoerp/pos-api/internal/presentation/http/dto/request"
	"github.com/sokoerp/pos-api/internal/presentation/http/dto/response"
	"github.com/sokoerp/pos-api/pkg/pagination"
)

// SaleHandler handles POS sale HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles committing a sale
func (h *SaleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items := make([]service.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Discount:  item.Discount,
		})
	}

	payments := make([]service.SalePaymentInput, 0, len(req.Payments))
	for _, p := range req.Payments {
		payments = append(payments, service.SalePaymentInput{
			ProviderType: enum.ProviderType(p.ProviderType),
			Amount:       p.Amount,
			Reference:    p.Reference,
			Metadata:     p.Metadata,
		})
	}

	discountType := enum.DiscountTypeFixed
	if req.DiscountType != "" {
		discountType = enum.DiscountType(req.DiscountType)
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		SessionID:    req.SessionID,
		CashierID:    *userID,
		CustomerName: req.CustomerName,
		Items:        items,
		Discount:     req.Discount,
		DiscountType: discountType,
		Payments:     payments,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed", sale)
}

// Void handles voiding a sale
func (h *SaleHandler) Void(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	// The body is optional: a void without a reason is still a valid void.
	var req request.VoidSaleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	sale, err := h.saleService.VoidSale(c.Request.Context(), &service.VoidSaleInput{
		SaleID:   saleID,
		VoidedBy: *userID,
		Reason:   req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale voided", sale)
}

// Get handles retrieving a sale with its items and payments
func (h *SaleHandler) Get(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if sessionIDStr := c.Query("session_id"); sessionIDStr != "" {
		if sessionID, err := uuid.Parse(sessionIDStr); err == nil {
			params.SessionID = &sessionID
		}
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.SaleStatus(statusStr)
		if status.IsValid() {
			params.Status = &status
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}
