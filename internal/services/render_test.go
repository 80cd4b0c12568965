package services

import (
	"testing"

	"github.com/delizza/mailing-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRenderTemplateSubstitutesKnownTokens(t *testing.T) {
	out := RenderTemplate("Bonjour {{name}}, profitez de {{discount}} !", map[string]string{
		"name":     "Léo",
		"discount": "-20%",
	})
	assert.Equal(t, "Bonjour Léo, profitez de -20% !", out)
}

func TestRenderTemplateLeavesUnknownTokensVerbatim(t *testing.T) {
	out := RenderTemplate("Hi {{name}}, {{unknown}}", map[string]string{"name": "Leo"})
	assert.Equal(t, "Hi Leo, {{unknown}}", out)
}

func TestRenderTemplateReplacesEveryOccurrence(t *testing.T) {
	out := RenderTemplate("{{product}} + {{product}} = 2x {{product}}", map[string]string{
		"product": "Margherita",
	})
	assert.Equal(t, "Margherita + Margherita = 2x Margherita", out)
}

func TestRenderTemplateIsPure(t *testing.T) {
	body := "{{content}} — {{content}}"
	context := map[string]string{"content": "menu du soir"}

	first := RenderTemplate(body, context)
	second := RenderTemplate(body, context)

	assert.Equal(t, first, second)
	assert.Equal(t, "{{content}} — {{content}}", body)
}

func TestBuildRenderContextDefaultsAndOverrides(t *testing.T) {
	campaign := &models.Campaign{
		ID:      primitive.NewObjectID(),
		Segment: models.SegmentAll,
		Overrides: map[string]string{
			"product":  "Calzone",
			"discount": "-30%",
		},
	}
	template := &models.Template{
		ID:      primitive.NewObjectID(),
		Subject: "Offre de la semaine",
		CTAUrl:  "https://delizza.fr/menu",
	}
	subscriber := &models.Subscriber{
		Email:            "leo@example.com",
		UnsubscribeToken: "tok en+1",
	}

	context := buildRenderContext(campaign, template, subscriber, testDispatchConfig())

	assert.Equal(t, "Calzone", context["product"])
	assert.Equal(t, "-30%", context["discount"])
	assert.Equal(t, defaultContent, context["content"])
	assert.Equal(t, "https://delizza.fr/menu", context["ctaUrl"])
	assert.Equal(t, defaultCTAText, context["ctaText"])
	assert.Equal(t, "Offre de la semaine", context["subject"])
	assert.Equal(t, "https://play.google.com/store/apps/details?id=fr.delizza.app", context["appDownloadUrl"])
	assert.Equal(t, "https://delizza.fr/unsubscribe?token=tok+en%2B1", context["unsubUrl"])
}

func TestBuildRenderContextIsPerRecipient(t *testing.T) {
	campaign := &models.Campaign{ID: primitive.NewObjectID(), Segment: "vip"}
	template := &models.Template{ID: primitive.NewObjectID(), Subject: "s"}

	first := buildRenderContext(campaign, template, &models.Subscriber{UnsubscribeToken: "aaa"}, testDispatchConfig())
	second := buildRenderContext(campaign, template, &models.Subscriber{UnsubscribeToken: "bbb"}, testDispatchConfig())

	assert.NotEqual(t, first["unsubUrl"], second["unsubUrl"])
	assert.Contains(t, first["unsubUrl"], "aaa")
	assert.Contains(t, second["unsubUrl"], "bbb")
}
