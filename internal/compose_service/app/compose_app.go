package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/aradsms/compose_service/internal/compose_service/domain"
)

// Application orchestrates contact lookup and conversation composition on top
// of a ContactTransport. It holds no mutable state and is safe for concurrent use.
type Application struct {
	transport domain.ContactTransport
	logger    *slog.Logger
}

// NewApplication creates a new Application instance.
func NewApplication(transport domain.ContactTransport, logger *slog.Logger) *Application {
	return &Application{
		transport: transport,
		logger:    logger.With("component", "compose_app"),
	}
}

// --- Contact Methods ---

// SearchContacts searches contacts by email and returns them with camelCase keys.
func (a *Application) SearchContacts(ctx context.Context, query string) ([]domain.Record, error) {
	start := time.Now()
	expr := domain.GenerateContactQuery(domain.ContactQuery{Query: query})

	resp, err := a.transport.Filter(ctx, 0, domain.DefaultContactSortKey, expr)
	if err != nil {
		observeOperation("search_contacts", start, err)
		a.logger.ErrorContext(ctx, "Contact search failed", "error", err)
		return nil, err
	}
	observeOperation("search_contacts", start, nil)

	var records []domain.Record
	if resp != nil {
		records = resp.Data.Payload
	}
	contacts := domain.CamelizeRecords(records)
	a.logger.DebugContext(ctx, "Contact search completed", "result_count", len(contacts))
	return contacts, nil
}

// CreateNewContact creates a contact named after the local part of the email.
func (a *Application) CreateNewContact(ctx context.Context, email string) (domain.Record, error) {
	start := time.Now()
	attrs := domain.NewContactAttributes{
		Name:  domain.GetCapitalizedNameFromEmail(email),
		Email: email,
	}

	resp, err := a.transport.Create(ctx, attrs)
	if err != nil {
		observeOperation("create_contact", start, err)
		a.logger.ErrorContext(ctx, "Failed to create contact", "error", err)
		return nil, err
	}
	observeOperation("create_contact", start, nil)

	var contact domain.Record
	if resp != nil {
		contact = resp.Data.Payload.Contact
	}
	a.logger.InfoContext(ctx, "Contact created", "contact_id", contact["id"])
	return contact, nil
}

// --- Inbox Methods ---

// FetchContactableInboxes lists the inboxes through which a contact can be reached.
func (a *Application) FetchContactableInboxes(ctx context.Context, contactID int64) ([]domain.ContactableInbox, error) {
	start := time.Now()
	resp, err := a.transport.GetContactableInboxes(ctx, contactID)
	if err != nil {
		observeOperation("fetch_contactable_inboxes", start, err)
		a.logger.ErrorContext(ctx, "Failed to fetch contactable inboxes", "error", err, "contact_id", contactID)
		return nil, err
	}
	observeOperation("fetch_contactable_inboxes", start, nil)
	if resp == nil {
		return []domain.ContactableInbox{}, nil
	}
	return domain.ProcessContactableInboxes(resp.Data.Payload), nil
}

// ListContactableInboxOptions returns the contact's inboxes as labelled
// selection options.
func (a *Application) ListContactableInboxOptions(ctx context.Context, contactID int64) ([]domain.ContactableInboxOption, error) {
	inboxes, err := a.FetchContactableInboxes(ctx, contactID)
	if err != nil {
		return nil, err
	}
	return domain.BuildContactableInboxesList(inboxes), nil
}

// --- Conversation Methods ---

// StartConversation composes the channel-specific payload and hands it to the
// transport. Failures are returned as is; nothing is retried.
func (a *Application) StartConversation(ctx context.Context, req domain.OutboundMessageRequest) (domain.Record, error) {
	start := time.Now()
	payload := domain.ComposeOutboundMessage(req)
	logger := a.logger.With("inbox_id", payload.InboxID, "assignee_id", payload.AssigneeID)

	resp, err := a.transport.CreateConversation(ctx, payload)
	if err != nil {
		observeOperation("start_conversation", start, err)
		logger.ErrorContext(ctx, "Failed to start conversation", "error", err)
		return nil, err
	}
	observeOperation("start_conversation", start, nil)

	var conversation domain.Record
	if resp != nil {
		conversation = resp.Data.Payload
	}
	logger.InfoContext(ctx, "Conversation started", "conversation_id", conversation["id"])
	return conversation, nil
}
