package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LabelSource carries the fields needed to label a contact or inbox in a
// selection list. Missing fields are simply empty.
type LabelSource struct {
	Name        string
	Email       string
	PhoneNumber string
	ChannelType ChannelType
}

// NewContactAttributes is the body of a contact creation request.
type NewContactAttributes struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreatedContact is the payload of a contact creation response.
type CreatedContact struct {
	Contact Record `json:"contact"`
}

// GenerateLabelForContactableInboxesList renders "<name> (<address>)" where the
// address depends on the channel kind: the email for email channels, the phone
// number for SMS-like and WhatsApp channels and the channel's short label for
// everything else.
func GenerateLabelForContactableInboxesList(src LabelSource) string {
	var address string
	switch src.ChannelType.Kind() {
	case ChannelKindEmail:
		address = src.Email
	case ChannelKindSMSLike, ChannelKindWhatsApp:
		address = src.PhoneNumber
	default:
		address = src.ChannelType.Label()
	}
	return fmt.Sprintf("%s (%s)", src.Name, address)
}

// GetCapitalizedNameFromEmail derives a display name from the local part of an
// email address: "john.doe@example.com" -> "John.doe".
func GetCapitalizedNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	r, size := utf8.DecodeRuneInString(local)
	if r == utf8.RuneError {
		return local
	}
	return string(unicode.ToUpper(r)) + local[size:]
}
