package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aradsms/compose_service/internal/compose_service/domain"
	"github.com/aradsms/compose_service/internal/compose_service/middleware"
)

// ComposeApplication is the part of app.Application the handler needs.
type ComposeApplication interface {
	SearchContacts(ctx context.Context, query string) ([]domain.Record, error)
	CreateNewContact(ctx context.Context, email string) (domain.Record, error)
	ListContactableInboxOptions(ctx context.Context, contactID int64) ([]domain.ContactableInboxOption, error)
	StartConversation(ctx context.Context, req domain.OutboundMessageRequest) (domain.Record, error)
}

// ComposeHandler exposes contact lookup and conversation composition over HTTP.
type ComposeHandler struct {
	app                  ComposeApplication
	portal               domain.PortalConfig
	directUploadsEnabled bool
	logger               *slog.Logger
	validate             *validator.Validate
}

func NewComposeHandler(app ComposeApplication, portal domain.PortalConfig, directUploadsEnabled bool, logger *slog.Logger, validate *validator.Validate) *ComposeHandler {
	return &ComposeHandler{
		app:                  app,
		portal:               portal,
		directUploadsEnabled: directUploadsEnabled,
		logger:               logger,
		validate:             validate,
	}
}

// RegisterRoutes mounts the handler. Every route expects AuthMiddleware upstream.
func (h *ComposeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/contacts/search", h.SearchContacts)
	r.Post("/contacts", h.CreateContact)
	r.Get("/contacts/{contactID}/contactable_inboxes", h.ListContactableInboxes)

	r.Post("/conversations", h.StartConversation)

	r.Get("/portals/{portalSlug}/url", h.GetPortalURL)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Default().Error("Failed to write JSON response", "error", err)
		}
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// mapDomainErrorToHTTPStatus converts transport failures to HTTP status codes.
// Anything the backend did not classify is reported as a gateway failure.
func mapDomainErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (h *ComposeHandler) respondWithDomainError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	code := mapDomainErrorToHTTPStatus(err)
	h.logger.WarnContext(r.Context(), "Request failed", "operation", operation, "status_code", code, "error", err)
	respondWithError(w, code, err.Error())
}

func (h *ComposeHandler) SearchContacts(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	contacts, err := h.app.SearchContacts(r.Context(), query)
	if err != nil {
		h.respondWithDomainError(w, r, "search_contacts", err)
		return
	}
	respondWithJSON(w, http.StatusOK, ContactListResponse{Payload: contacts})
}

func (h *ComposeHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var reqDTO CreateContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	contact, err := h.app.CreateNewContact(ctx, reqDTO.Email)
	if err != nil {
		h.respondWithDomainError(w, r, "create_contact", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, ContactResponse{Contact: contact})
}

func (h *ComposeHandler) ListContactableInboxes(w http.ResponseWriter, r *http.Request) {
	contactID, err := strconv.ParseInt(chi.URLParam(r, "contactID"), 10, 64)
	if err != nil || contactID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	options, err := h.app.ListContactableInboxOptions(r.Context(), contactID)
	if err != nil {
		h.respondWithDomainError(w, r, "list_contactable_inboxes", err)
		return
	}
	respondWithJSON(w, http.StatusOK, InboxOptionsResponse{Payload: options})
}

func (h *ComposeHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	authUser, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "AuthenticatedUser not found in context for StartConversation")
		respondWithError(w, http.StatusUnauthorized, "User authentication details not found")
		return
	}

	var reqDTO StartConversationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	conversation, err := h.app.StartConversation(ctx, reqDTO.toDomain(authUser.ID, h.directUploadsEnabled))
	if err != nil {
		h.respondWithDomainError(w, r, "start_conversation", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, domain.CamelizeKeys(conversation))
}

func (h *ComposeHandler) GetPortalURL(w http.ResponseWriter, r *http.Request) {
	portalSlug := chi.URLParam(r, "portalSlug")
	q := r.URL.Query()

	url := h.portal.BuildPortalURL(portalSlug)
	if article := q.Get("article"); article != "" {
		url = h.portal.BuildPortalArticleURL(portalSlug, q.Get("category"), q.Get("locale"), article)
	}
	respondWithJSON(w, http.StatusOK, PortalURLResponse{URL: url})
}
