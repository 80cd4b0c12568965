package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/delizza/mailing-backend/internal/config"
	"github.com/delizza/mailing-backend/internal/models"
)

// Fallback values applied when a campaign carries no override for the token.
const (
	defaultContent  = "Découvrez nos offres"
	defaultProduct  = "Pizza Margherita"
	defaultDiscount = "-20%"
	defaultCTAUrl   = "https://delizza.fr/commander"
	defaultCTAText  = "Commander maintenant"
)

// RenderTemplate substitutes every occurrence of {{key}} in body with the
// matching context value. Tokens with no context entry are left verbatim so
// one missing optional token never fails a whole campaign. Substitution is
// literal: no nesting, no loops, no conditionals. The function is pure and
// safe to call at full throughput inside the batch loop.
func RenderTemplate(body string, context map[string]string) string {
	for key, value := range context {
		body = strings.ReplaceAll(body, "{{"+key+"}}", value)
	}
	return body
}

// buildRenderContext assembles the per-recipient token map: template fields,
// campaign overrides (with fixed fallbacks) and the two recipient-specific
// fields, the unsubscribe URL and the app download URL.
func buildRenderContext(campaign *models.Campaign, template *models.Template, subscriber *models.Subscriber, dispatch config.DispatchConfig) map[string]string {
	context := map[string]string{
		"subject":        template.Subject,
		"content":        defaultContent,
		"product":        defaultProduct,
		"discount":       defaultDiscount,
		"ctaUrl":         defaultCTAUrl,
		"ctaText":        defaultCTAText,
		"bannerUrl":      "",
		"appDownloadUrl": dispatch.AppDownloadURL,
	}
	if template.CTAUrl != "" {
		context["ctaUrl"] = template.CTAUrl
	}
	if template.CTAText != "" {
		context["ctaText"] = template.CTAText
	}
	if template.BannerURL != "" {
		context["bannerUrl"] = template.BannerURL
	}
	for key, value := range campaign.Overrides {
		context[key] = value
	}
	context["unsubUrl"] = fmt.Sprintf("%s?token=%s", dispatch.UnsubscribeBaseURL, url.QueryEscape(subscriber.UnsubscribeToken))
	return context
}
