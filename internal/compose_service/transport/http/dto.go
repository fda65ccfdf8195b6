package http

import "github.com/aradsms/compose_service/internal/compose_service/domain"

// CreateContactRequestDTO is the body of POST /contacts.
type CreateContactRequestDTO struct {
	Email string `json:"email" validate:"required,email"`
}

// AttachmentDTO references an uploaded file. BlobSignedID is used when direct
// uploads are enabled, File otherwise.
type AttachmentDTO struct {
	BlobSignedID string `json:"blobSignedId"`
	File         string `json:"file"`
}

// StartConversationRequestDTO is the body of POST /conversations.
type StartConversationRequestDTO struct {
	InboxID        int64           `json:"inboxId" validate:"required,gt=0"`
	SourceID       string          `json:"sourceId"`
	ChannelType    string          `json:"channelType" validate:"required"`
	ContactID      any             `json:"contactId" validate:"required"`
	Message        string          `json:"message"`
	Subject        string          `json:"subject"`
	CcEmails       string          `json:"ccEmails"`
	BccEmails      string          `json:"bccEmails"`
	Attachments    []AttachmentDTO `json:"attachments"`
	TemplateParams map[string]any  `json:"templateParams"`
}

func (d AttachmentDTO) toDomain() domain.AttachmentDescriptor {
	desc := domain.AttachmentDescriptor{BlobSignedID: d.BlobSignedID}
	if d.File != "" {
		desc.Resource = &domain.AttachmentResource{File: d.File}
	}
	return desc
}

func (d StartConversationRequestDTO) toDomain(assigneeID int64, directUploadsEnabled bool) domain.OutboundMessageRequest {
	target := domain.ConversationTarget{
		TargetInbox:     domain.InboxRef{ID: d.InboxID, SourceID: d.SourceID},
		SelectedContact: domain.ContactRef{ID: d.ContactID},
		Message:         d.Message,
		CurrentUser:     domain.UserRef{ID: assigneeID},
	}
	var files []domain.AttachmentDescriptor
	for _, a := range d.Attachments {
		files = append(files, a.toDomain())
	}
	return domain.NewOutboundMessageRequest(target, domain.ChannelType(d.ChannelType), domain.MessageOptions{
		Subject:              d.Subject,
		CcEmails:             d.CcEmails,
		BccEmails:            d.BccEmails,
		AttachedFiles:        files,
		DirectUploadsEnabled: directUploadsEnabled,
		TemplateParams:       d.TemplateParams,
	})
}

// ContactListResponse wraps contact search results.
type ContactListResponse struct {
	Payload []domain.Record `json:"payload"`
}

// ContactResponse wraps a single contact.
type ContactResponse struct {
	Contact domain.Record `json:"contact"`
}

// InboxOptionsResponse wraps the labelled inbox options of a contact.
type InboxOptionsResponse struct {
	Payload []domain.ContactableInboxOption `json:"payload"`
}

// PortalURLResponse carries a help center link.
type PortalURLResponse struct {
	URL string `json:"url"`
}
