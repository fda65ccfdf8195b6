package domain

import "strings"

// ChannelType is the raw, optionally namespaced channel identifier reported by
// the backend, e.g. "Channel::Email". Any string is accepted.
type ChannelType string

// Channel types that get channel-specific treatment.
const (
	ChannelTypeEmail    ChannelType = "Channel::Email"
	ChannelTypeTwilio   ChannelType = "Channel::TwilioSms"
	ChannelTypeWhatsApp ChannelType = "Channel::Whatsapp"
	ChannelTypeAPI      ChannelType = "Channel::Api"
)

const channelNamespaceSeparator = "::"

// ChannelKind is the closed classification of a ChannelType.
type ChannelKind int

const (
	ChannelKindOther ChannelKind = iota
	ChannelKindEmail
	ChannelKindSMSLike
	ChannelKindWhatsApp
)

func (k ChannelKind) String() string {
	switch k {
	case ChannelKindEmail:
		return "email"
	case ChannelKindSMSLike:
		return "sms"
	case ChannelKindWhatsApp:
		return "whatsapp"
	default:
		return "other"
	}
}

// Kind classifies the channel type. This is the only place raw channel type
// strings are compared; everything downstream switches on the kind.
func (c ChannelType) Kind() ChannelKind {
	switch c {
	case ChannelTypeEmail:
		return ChannelKindEmail
	case ChannelTypeTwilio:
		return ChannelKindSMSLike
	case ChannelTypeWhatsApp:
		return ChannelKindWhatsApp
	default:
		return ChannelKindOther
	}
}

// Label returns the short display label, see ConvertChannelTypeToLabel.
func (c ChannelType) Label() string {
	return ConvertChannelTypeToLabel(string(c))
}

// ConvertChannelTypeToLabel returns the part after the last "::" with its case
// unchanged ("Channel::Whatsapp" -> "Whatsapp"). Unnamespaced input is
// returned as is.
func ConvertChannelTypeToLabel(channelType string) string {
	idx := strings.LastIndex(channelType, channelNamespaceSeparator)
	if idx < 0 {
		return channelType
	}
	return channelType[idx+len(channelNamespaceSeparator):]
}
