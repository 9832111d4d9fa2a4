package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/application/service"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	"github.com/sokoerp/pos-api/internal/presentation/http/dto/request"
	"github.com/sokoerp/pos-api/internal/presentation/http/dto/response"
	"github.com/sokoerp/pos-api/pkg/payment"
)

// ProviderHandler handles payment provider settings HTTP requests
type ProviderHandler struct {
	providerService *service.ProviderService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(providerService *service.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

func toPaymentConfig(req request.ProviderConfigRequest) payment.Config {
	return payment.Config{
		APIKey:        req.APIKey,
		SecretKey:     req.SecretKey,
		WebhookSecret: req.WebhookSecret,
		ShortCode:     req.ShortCode,
		Passkey:       req.Passkey,
		SandboxMode:   req.SandboxMode,
		Extra:         req.Extra,
	}
}

// Configure handles registering a provider for the organization
func (h *ProviderHandler) Configure(c *gin.Context) {
	var req request.ConfigureProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	provider, err := h.providerService.ConfigureProvider(c.Request.Context(), &service.ConfigureProviderInput{
		ProviderType: enum.ProviderType(req.ProviderType),
		DisplayName:  req.DisplayName,
		ForPOS:       req.ForPOS,
		ForEcommerce: req.ForEcommerce,
		Config:       toPaymentConfig(req.Config),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment provider configured", provider)
}

// Update handles updating a provider configuration
func (h *ProviderHandler) Update(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid provider ID")
		return
	}

	var req request.UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateProviderInput{
		DisplayName:  req.DisplayName,
		ForPOS:       req.ForPOS,
		ForEcommerce: req.ForEcommerce,
	}
	if req.Config != nil {
		cfg := toPaymentConfig(*req.Config)
		input.Config = &cfg
	}

	provider, err := h.providerService.UpdateProvider(c.Request.Context(), providerID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment provider updated", provider)
}

// Toggle handles activating or deactivating a provider
func (h *ProviderHandler) Toggle(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid provider ID")
		return
	}

	var req request.ToggleProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	provider, err := h.providerService.ToggleProvider(c.Request.Context(), providerID, *req.IsActive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment provider updated", provider)
}

// Delete handles removing a provider configuration
func (h *ProviderHandler) Delete(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid provider ID")
		return
	}

	if err := h.providerService.DeleteProvider(c.Request.Context(), providerID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing configured providers
func (h *ProviderHandler) List(c *gin.Context) {
	// channel=POS narrows to active providers usable at the terminal
	if channelStr := c.Query("channel"); channelStr != "" {
		channel := enum.PaymentChannel(channelStr)
		if !channel.IsValid() {
			response.BadRequest(c, "Invalid channel, expected POS or ECOMMERCE")
			return
		}

		providers, err := h.providerService.ListProvidersForChannel(c.Request.Context(), channel)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Payment providers retrieved successfully", providers)
		return
	}

	providers, err := h.providerService.ListProviders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment providers retrieved successfully", providers)
}

// Available handles listing provider types not yet configured
func (h *ProviderHandler) Available(c *gin.Context) {
	available, err := h.providerService.AvailableProviders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Available providers retrieved successfully", available)
}

// CheckoutURL handles creating a hosted checkout session
func (h *ProviderHandler) CheckoutURL(c *gin.Context) {
	var req request.CheckoutURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.providerService.GetCheckoutURL(
		c.Request.Context(),
		enum.ProviderType(req.ProviderType),
		req.Amount,
		req.ReturnURL,
		req.Metadata,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Checkout session created", session)
}
