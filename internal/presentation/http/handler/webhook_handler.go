package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sokoerp/pos-api/internal/application/service"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	"github.com/sokoerp/pos-api/internal/domain/repository"
	infraRepo "github.com/sokoerp/pos-api/internal/infrastructure/repository"
	"github.com/sokoerp/pos-api/internal/presentation/http/dto/response"
)

// WebhookHandler receives payment provider callbacks. Webhooks arrive
// unauthenticated; the organization comes from the URL slug and trust comes
// from the provider's signature verification, never from the request itself.
type WebhookHandler struct {
	providerService *service.ProviderService
	orgRepo         repository.OrganizationRepository
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(providerService *service.ProviderService, orgRepo repository.OrganizationRepository) *WebhookHandler {
	return &WebhookHandler{
		providerService: providerService,
		orgRepo:         orgRepo,
	}
}

// HandlePayment handles POST /webhooks/payments/:slug/:type
func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	org, err := h.orgRepo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if org == nil {
		response.NotFound(c, "Organization not found")
		return
	}

	providerType := enum.ProviderType(c.Param("type"))

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "Unable to read payload")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		signature = c.GetHeader("X-Webhook-Signature")
	}

	ctx := infraRepo.WithOrg(c.Request.Context(), org.ID)
	result, err := h.providerService.HandleWebhook(ctx, providerType, payload, signature)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Webhook processed", gin.H{
		"event_type": result.EventType,
	})
}
