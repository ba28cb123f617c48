package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sportify/internal/domain"
)

func TestTemplateRenderer_Render(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	t.Run("moderation request", func(t *testing.T) {
		subject, html, text, err := r.Render("moderation_request", &domain.ModerationRequestEmailData{
			Email:      "root@example.com",
			EventID:    "ev-1",
			EventTitle: "Derby <Night>",
			Request:    "edit",
			Requester:  "alice",
		})
		require.NoError(t, err)
		assert.Equal(t, `[Sportify] Review needed: edit for "Derby <Night>"`, subject)
		assert.Contains(t, html, "Derby &lt;Night&gt;")
		assert.Contains(t, text, "alice submitted a edit")
	})

	t.Run("moderation decision with reason", func(t *testing.T) {
		subject, html, text, err := r.Render("moderation_decision", &domain.ModerationDecisionEmailData{
			Email:      "alice@example.com",
			Username:   "alice",
			EventID:    "ev-1",
			EventTitle: "Derby",
			Decision:   "rejected",
			Reason:     "too vague",
		})
		require.NoError(t, err)
		assert.Equal(t, `[Sportify] "Derby": rejected`, subject)
		assert.Contains(t, html, "Reason: too vague")
		assert.Contains(t, text, "Reason: too vague")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, _, _, err := r.Render("welcome", nil)
		require.Error(t, err)
	})
}
