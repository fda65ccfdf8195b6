package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortalConfig(t *testing.T) {
	cfg := PortalConfig{
		HostURL:       "https://app.example.com",
		HelpCenterURL: "https://help.example.com",
	}

	t.Run("PortalURL", func(t *testing.T) {
		assert.Equal(t, "https://help.example.com/hc/handbook", cfg.BuildPortalURL("handbook"))
	})

	t.Run("ArticleURL", func(t *testing.T) {
		assert.Equal(t,
			"https://help.example.com/hc/handbook/articles/article-slug",
			cfg.BuildPortalArticleURL("handbook", "culture", "fr", "article-slug"),
		)
	})

	t.Run("FallsBackToHostURL", func(t *testing.T) {
		hostOnly := PortalConfig{HostURL: "https://app.example.com/"}
		assert.Equal(t, "https://app.example.com/hc/handbook", hostOnly.BuildPortalURL("handbook"))
	})
}
