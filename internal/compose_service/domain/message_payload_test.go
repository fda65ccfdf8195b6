package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseTarget() ConversationTarget {
	return ConversationTarget{
		TargetInbox:     InboxRef{ID: 1, SourceID: "source1"},
		SelectedContact: ContactRef{ID: "2"},
		Message:         "Hello",
		CurrentUser:     UserRef{ID: 3},
	}
}

func TestPrepareAttachmentPayload(t *testing.T) {
	t.Run("DirectUploads", func(t *testing.T) {
		files := []AttachmentDescriptor{{BlobSignedID: "signed1"}}
		assert.Equal(t, []string{"signed1"}, PrepareAttachmentPayload(files, true))
	})

	t.Run("RegularFiles", func(t *testing.T) {
		files := []AttachmentDescriptor{{Resource: &AttachmentResource{File: "file1"}}}
		assert.Equal(t, []string{"file1"}, PrepareAttachmentPayload(files, false))
	})

	t.Run("ModeIsNotInferredFromShape", func(t *testing.T) {
		files := []AttachmentDescriptor{{Resource: &AttachmentResource{File: "file1"}}, {BlobSignedID: "signed2"}}
		assert.Equal(t, []string{"", "signed2"}, PrepareAttachmentPayload(files, true))
		assert.Equal(t, []string{"file1", ""}, PrepareAttachmentPayload(files, false))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, []string{}, PrepareAttachmentPayload(nil, true))
	})
}

func TestPrepareNewMessagePayload(t *testing.T) {
	t.Run("RequiredFieldsOnly", func(t *testing.T) {
		p := PrepareNewMessagePayload(NewMessageRequest{ConversationTarget: baseTarget()})

		assert.Equal(t, MessagePayload{
			InboxID:    1,
			SourceID:   "source1",
			ContactID:  int64(2),
			Message:    MessageContent{Content: "Hello"},
			AssigneeID: 3,
		}, p)

		raw, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"inboxId": 1,
			"sourceId": "source1",
			"contactId": 2,
			"message": {"content": "Hello"},
			"assigneeId": 3
		}`, string(raw))
	})

	t.Run("OptionalFields", func(t *testing.T) {
		p := PrepareNewMessagePayload(NewMessageRequest{
			ConversationTarget:   baseTarget(),
			Subject:              "Test",
			CcEmails:             "cc@test.com",
			BccEmails:            "bcc@test.com",
			AttachedFiles:        []AttachmentDescriptor{{BlobSignedID: "file1"}},
			DirectUploadsEnabled: true,
		})

		raw, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"inboxId": 1,
			"sourceId": "source1",
			"contactId": 2,
			"message": {"content": "Hello", "cc_emails": "cc@test.com", "bcc_emails": "bcc@test.com"},
			"assigneeId": 3,
			"mailSubject": "Test",
			"files": ["file1"]
		}`, string(raw))
	})

	t.Run("EachOptionalFieldIndependently", func(t *testing.T) {
		withSubject := NewMessageRequest{ConversationTarget: baseTarget(), Subject: "S"}
		raw, _ := json.Marshal(PrepareNewMessagePayload(withSubject))
		var m map[string]any
		require.NoError(t, json.Unmarshal(raw, &m))
		assert.Contains(t, m, "mailSubject")
		assert.NotContains(t, m, "files")
		assert.Equal(t, map[string]any{"content": "Hello"}, m["message"])

		withCc := NewMessageRequest{ConversationTarget: baseTarget(), CcEmails: "cc@test.com"}
		raw, _ = json.Marshal(PrepareNewMessagePayload(withCc))
		m = nil
		require.NoError(t, json.Unmarshal(raw, &m))
		assert.NotContains(t, m, "mailSubject")
		assert.Equal(t, map[string]any{"content": "Hello", "cc_emails": "cc@test.com"}, m["message"])
	})

	t.Run("EmptyAttachmentListIsOmitted", func(t *testing.T) {
		p := PrepareNewMessagePayload(NewMessageRequest{ConversationTarget: baseTarget(), AttachedFiles: []AttachmentDescriptor{}})
		assert.Nil(t, p.Files)
	})

	t.Run("ContactIDCoercion", func(t *testing.T) {
		target := baseTarget()
		for in, want := range map[any]any{
			"2":      int64(2),
			2:        int64(2),
			2.0:      int64(2),
			"2.5":    2.5,
			"abc":    nil,
			int64(9): int64(9),
		} {
			target.SelectedContact.ID = in
			assert.Equal(t, want, PrepareNewMessagePayload(NewMessageRequest{ConversationTarget: target}).ContactID, "input %v", in)
		}
		target.SelectedContact.ID = nil
		assert.Nil(t, PrepareNewMessagePayload(NewMessageRequest{ConversationTarget: target}).ContactID)
	})
}

func TestPrepareWhatsAppMessagePayload(t *testing.T) {
	t.Run("TemplateMessage", func(t *testing.T) {
		target := baseTarget()
		target.SelectedContact.ID = 2

		p := PrepareWhatsAppMessagePayload(WhatsAppMessageRequest{
			ConversationTarget: target,
			TemplateParams:     map[string]any{"param1": "value1"},
		})

		assert.Equal(t, MessagePayload{
			InboxID:   1,
			SourceID:  "source1",
			ContactID: 2,
			Message: MessageContent{
				Content:        "Hello",
				TemplateParams: map[string]any{"param1": "value1"},
			},
			AssigneeID: 3,
		}, p)
	})

	t.Run("ContactIDPassesThrough", func(t *testing.T) {
		p := PrepareWhatsAppMessagePayload(WhatsAppMessageRequest{ConversationTarget: baseTarget()})
		assert.Equal(t, "2", p.ContactID)
	})

	t.Run("TemplateParamKeysAreNotRenamed", func(t *testing.T) {
		p := PrepareWhatsAppMessagePayload(WhatsAppMessageRequest{
			ConversationTarget: baseTarget(),
			TemplateParams:     map[string]any{"processed_params": map[string]any{"first_name": "Jo"}},
		})
		raw, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"inboxId": 1,
			"sourceId": "source1",
			"contactId": "2",
			"message": {"content": "Hello", "template_params": {"processed_params": {"first_name": "Jo"}}},
			"assigneeId": 3
		}`, string(raw))
	})
}

func TestNewOutboundMessageRequest(t *testing.T) {
	opts := MessageOptions{
		Subject:        "Subject",
		CcEmails:       "cc@test.com",
		TemplateParams: map[string]any{"name": "greeting"},
	}

	t.Run("WhatsAppVariant", func(t *testing.T) {
		req := NewOutboundMessageRequest(baseTarget(), ChannelTypeWhatsApp, opts)
		wa, ok := req.(WhatsAppMessageRequest)
		require.True(t, ok)
		assert.Equal(t, opts.TemplateParams, wa.TemplateParams)

		p := ComposeOutboundMessage(req)
		assert.Empty(t, p.MailSubject)
		assert.Empty(t, p.Message.CcEmails)
		assert.Equal(t, "2", p.ContactID)
	})

	t.Run("GenericVariant", func(t *testing.T) {
		for _, ct := range []ChannelType{ChannelTypeEmail, ChannelTypeTwilio, ChannelTypeAPI, "Channel::Telegram"} {
			req := NewOutboundMessageRequest(baseTarget(), ct, opts)
			_, ok := req.(NewMessageRequest)
			require.True(t, ok, "channel %s", ct)

			p := ComposeOutboundMessage(req)
			assert.Equal(t, "Subject", p.MailSubject)
			assert.Nil(t, p.Message.TemplateParams)
			assert.Equal(t, int64(2), p.ContactID)
			assert.Equal(t, baseTarget(), req.Target())
		}
	})
}
