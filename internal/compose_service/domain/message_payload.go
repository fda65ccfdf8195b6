package domain

import (
	"math"

	"github.com/spf13/cast"
)

// AttachmentResource is an attachment that was already persisted.
type AttachmentResource struct {
	File string `json:"file"`
}

// AttachmentDescriptor references an attachment either by direct-upload token
// or by persisted resource. Which one is used is decided by the caller.
type AttachmentDescriptor struct {
	BlobSignedID string              `json:"blobSignedId,omitempty"`
	Resource     *AttachmentResource `json:"resource,omitempty"`
}

// InboxRef identifies the inbox a conversation is started on.
type InboxRef struct {
	ID       int64  `json:"id"`
	SourceID string `json:"sourceId"`
}

// ContactRef identifies the selected contact. ID is kept exactly as supplied
// (number or numeric string).
type ContactRef struct {
	ID any `json:"id"`
}

// UserRef identifies the agent composing the message.
type UserRef struct {
	ID int64 `json:"id"`
}

// MessageContent is the "message" object of a payload. Optional keys are
// omitted when empty.
type MessageContent struct {
	Content        string         `json:"content"`
	CcEmails       string         `json:"cc_emails,omitempty"`
	BccEmails      string         `json:"bcc_emails,omitempty"`
	TemplateParams map[string]any `json:"template_params,omitempty"`
}

// MessagePayload is the new-conversation wire payload.
type MessagePayload struct {
	InboxID     int64          `json:"inboxId"`
	SourceID    string         `json:"sourceId"`
	ContactID   any            `json:"contactId"`
	Message     MessageContent `json:"message"`
	AssigneeID  int64          `json:"assigneeId"`
	MailSubject string         `json:"mailSubject,omitempty"`
	Files       []string       `json:"files,omitempty"`
}

// ConversationTarget holds the fields every outbound message needs.
type ConversationTarget struct {
	TargetInbox     InboxRef
	SelectedContact ContactRef
	Message         string
	CurrentUser     UserRef
}

func (t ConversationTarget) payload(contactID any) MessagePayload {
	return MessagePayload{
		InboxID:    t.TargetInbox.ID,
		SourceID:   t.TargetInbox.SourceID,
		ContactID:  contactID,
		Message:    MessageContent{Content: t.Message},
		AssigneeID: t.CurrentUser.ID,
	}
}

// OutboundMessageRequest is either a NewMessageRequest or a
// WhatsAppMessageRequest.
type OutboundMessageRequest interface {
	Payload() MessagePayload
	Target() ConversationTarget
	outbound()
}

// NewMessageRequest is a message on any channel other than WhatsApp.
type NewMessageRequest struct {
	ConversationTarget
	Subject              string
	CcEmails             string
	BccEmails            string
	AttachedFiles        []AttachmentDescriptor
	DirectUploadsEnabled bool
}

// Payload implements OutboundMessageRequest.
func (r NewMessageRequest) Payload() MessagePayload { return PrepareNewMessagePayload(r) }

// Target implements OutboundMessageRequest.
func (r NewMessageRequest) Target() ConversationTarget { return r.ConversationTarget }

func (NewMessageRequest) outbound() {}

// WhatsAppMessageRequest is a template message on a WhatsApp channel.
type WhatsAppMessageRequest struct {
	ConversationTarget
	TemplateParams map[string]any
}

// Payload implements OutboundMessageRequest.
func (r WhatsAppMessageRequest) Payload() MessagePayload { return PrepareWhatsAppMessagePayload(r) }

// Target implements OutboundMessageRequest.
func (r WhatsAppMessageRequest) Target() ConversationTarget { return r.ConversationTarget }

func (WhatsAppMessageRequest) outbound() {}

// MessageOptions are the channel-specific inputs of NewOutboundMessageRequest.
// Fields that do not apply to the selected channel are ignored.
type MessageOptions struct {
	Subject              string
	CcEmails             string
	BccEmails            string
	AttachedFiles        []AttachmentDescriptor
	DirectUploadsEnabled bool
	TemplateParams       map[string]any
}

// NewOutboundMessageRequest picks the request variant for the channel type.
func NewOutboundMessageRequest(target ConversationTarget, channelType ChannelType, opts MessageOptions) OutboundMessageRequest {
	if channelType.Kind() == ChannelKindWhatsApp {
		return WhatsAppMessageRequest{ConversationTarget: target, TemplateParams: opts.TemplateParams}
	}
	return NewMessageRequest{
		ConversationTarget:   target,
		Subject:              opts.Subject,
		CcEmails:             opts.CcEmails,
		BccEmails:            opts.BccEmails,
		AttachedFiles:        opts.AttachedFiles,
		DirectUploadsEnabled: opts.DirectUploadsEnabled,
	}
}

// ComposeOutboundMessage builds the payload for either request variant.
func ComposeOutboundMessage(req OutboundMessageRequest) MessagePayload {
	return req.Payload()
}

// PrepareAttachmentPayload maps descriptors to upload identifiers: the signed
// blob id for direct uploads, the resource file otherwise. A descriptor
// without the selected field yields an empty entry.
func PrepareAttachmentPayload(files []AttachmentDescriptor, directUploadsEnabled bool) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		switch {
		case directUploadsEnabled:
			out = append(out, f.BlobSignedID)
		case f.Resource != nil:
			out = append(out, f.Resource.File)
		default:
			out = append(out, "")
		}
	}
	return out
}

// PrepareNewMessagePayload composes the generic new-conversation payload.
// The contact id is coerced to a number; subject, cc, bcc and files are only
// set when supplied.
func PrepareNewMessagePayload(req NewMessageRequest) MessagePayload {
	p := req.payload(coerceContactID(req.SelectedContact.ID))
	if len(req.AttachedFiles) > 0 {
		p.Files = PrepareAttachmentPayload(req.AttachedFiles, req.DirectUploadsEnabled)
	}
	if req.Subject != "" {
		p.MailSubject = req.Subject
	}
	if req.CcEmails != "" {
		p.Message.CcEmails = req.CcEmails
	}
	if req.BccEmails != "" {
		p.Message.BccEmails = req.BccEmails
	}
	return p
}

// PrepareWhatsAppMessagePayload composes a WhatsApp template payload. Unlike
// PrepareNewMessagePayload the contact id is passed through as supplied.
func PrepareWhatsAppMessagePayload(req WhatsAppMessageRequest) MessagePayload {
	p := req.payload(req.SelectedContact.ID)
	p.Message.TemplateParams = req.TemplateParams
	return p
}

// coerceContactID converts ids like "2" or 2.0 to an int64. Values that are
// not numeric become nil, which serializes as null.
func coerceContactID(id any) any {
	if id == nil {
		return nil
	}
	f, err := cast.ToFloat64E(id)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
		return int64(f)
	}
	return f
}
