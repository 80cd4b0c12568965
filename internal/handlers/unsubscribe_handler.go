package handlers

import (
	"errors"
	"net/http"

	"github.com/delizza/mailing-backend/internal/repositories"
	"github.com/delizza/mailing-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UnsubscribeHandler serves the public unsubscribe endpoint. It always
// answers with a rendered page, never a raw error.
type UnsubscribeHandler struct {
	subscriberService services.SubscriberService
	logger            *zap.Logger
}

// NewUnsubscribeHandler creates a new UnsubscribeHandler
func NewUnsubscribeHandler(subscriberService services.SubscriberService, logger *zap.Logger) *UnsubscribeHandler {
	return &UnsubscribeHandler{
		subscriberService: subscriberService,
		logger:            logger,
	}
}

// Unsubscribe handles GET /unsubscribe?token=TOKEN
func (h *UnsubscribeHandler) Unsubscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8", []byte(missingTokenPage))
		return
	}

	err := h.subscriberService.Unsubscribe(c.Request.Context(), token)
	if errors.Is(err, repositories.ErrNotFound) {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
		return
	}
	if err != nil {
		h.logger.Error("unsubscribe failed", zap.Error(err))
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(errorPage))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(confirmationPage))
}

const pageStyle = `
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif;
    text-align: center;
    padding: 50px;
    background-color: #f5f5f5;
  }
  .container {
    max-width: 500px;
    margin: 0 auto;
    background: white;
    padding: 40px;
    border-radius: 16px;
    box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
  }
  h1 { color: #E63946; margin-bottom: 20px; }
  p { color: #5A6C7D; line-height: 1.6; }
  .icon { font-size: 64px; margin-bottom: 20px; }
`

const confirmationPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Désinscription réussie</title>
  <style>` + pageStyle + `</style>
</head>
<body>
  <div class="container">
    <div class="icon">✓</div>
    <h1>Désinscription réussie</h1>
    <p>Vous ne recevrez plus d'emails promotionnels de Pizza Deli'Zza.</p>
    <p>Nous espérons vous revoir bientôt ! 🍕</p>
  </div>
</body>
</html>`

const notFoundPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Abonné non trouvé</title>
  <style>` + pageStyle + `</style>
</head>
<body>
  <div class="container">
    <h1>Abonné non trouvé</h1>
    <p>Ce lien de désinscription n'est pas valide.</p>
  </div>
</body>
</html>`

const missingTokenPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Token manquant</title>
  <style>` + pageStyle + `</style>
</head>
<body>
  <div class="container">
    <h1>Token manquant</h1>
    <p>Ce lien de désinscription est incomplet.</p>
  </div>
</body>
</html>`

const errorPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Erreur</title>
  <style>` + pageStyle + `</style>
</head>
<body>
  <div class="container">
    <h1>Erreur</h1>
    <p>Une erreur est survenue lors de la désinscription. Merci de réessayer plus tard.</p>
  </div>
</body>
</html>`
