package domain

// ContactableInboxAction is the action discriminator of an inbox option.
const ContactableInboxAction = "inbox"

// Inbox is an inbox as reported by the backend.
type Inbox struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email,omitempty"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	ChannelType ChannelType `json:"channelType,omitempty"`
}

// ContactInbox pairs an inbox with the routing token of a contact on it.
type ContactInbox struct {
	Inbox    Inbox  `json:"inbox"`
	SourceID string `json:"sourceId"`
}

// ContactableInbox is the flattened form of a ContactInbox.
type ContactableInbox struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	SourceID    string      `json:"sourceId"`
	Email       string      `json:"email,omitempty"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	ChannelType ChannelType `json:"channelType,omitempty"`
}

// ContactableInboxOption is one entry of an inbox selection list.
type ContactableInboxOption struct {
	ID          int64       `json:"id"`
	Label       string      `json:"label"`
	Action      string      `json:"action"`
	Value       int64       `json:"value"`
	Name        string      `json:"name"`
	Email       string      `json:"email,omitempty"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	ChannelType ChannelType `json:"channelType,omitempty"`
	SourceID    string      `json:"sourceId,omitempty"`
}

// ProcessContactableInboxes flattens {inbox, sourceId} wrappers.
func ProcessContactableInboxes(inboxes []ContactInbox) []ContactableInbox {
	out := make([]ContactableInbox, 0, len(inboxes))
	for _, ci := range inboxes {
		out = append(out, ContactableInbox{
			ID:          ci.Inbox.ID,
			Name:        ci.Inbox.Name,
			SourceID:    ci.SourceID,
			Email:       ci.Inbox.Email,
			PhoneNumber: ci.Inbox.PhoneNumber,
			ChannelType: ci.Inbox.ChannelType,
		})
	}
	return out
}

// BuildContactableInboxesList turns inboxes into labelled selection options.
// A nil slice yields an empty list.
func BuildContactableInboxesList(inboxes []ContactableInbox) []ContactableInboxOption {
	out := make([]ContactableInboxOption, 0, len(inboxes))
	for _, in := range inboxes {
		out = append(out, ContactableInboxOption{
			ID: in.ID,
			Label: GenerateLabelForContactableInboxesList(LabelSource{
				Name:        in.Name,
				Email:       in.Email,
				PhoneNumber: in.PhoneNumber,
				ChannelType: in.ChannelType,
			}),
			Action:      ContactableInboxAction,
			Value:       in.ID,
			Name:        in.Name,
			Email:       in.Email,
			PhoneNumber: in.PhoneNumber,
			ChannelType: in.ChannelType,
			SourceID:    in.SourceID,
		})
	}
	return out
}
