package domain

import "strings"

// PortalConfig holds the hosts used to build help center links.
type PortalConfig struct {
	HostURL       string
	HelpCenterURL string
}

func (c PortalConfig) baseURL() string {
	if c.HelpCenterURL != "" {
		return strings.TrimRight(c.HelpCenterURL, "/")
	}
	return strings.TrimRight(c.HostURL, "/")
}

// BuildPortalURL returns the public URL of a portal.
func (c PortalConfig) BuildPortalURL(portalSlug string) string {
	return c.baseURL() + "/hc/" + portalSlug
}

// BuildPortalArticleURL returns the public URL of an article. Category and
// locale do not take part in the article URL.
func (c PortalConfig) BuildPortalArticleURL(portalSlug, categorySlug, locale, articleSlug string) string {
	return c.BuildPortalURL(portalSlug) + "/articles/" + articleSlug
}
