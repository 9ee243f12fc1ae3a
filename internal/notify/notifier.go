package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Notificacao é o conteúdo entregue ao morador/solicitante.
type Notificacao struct {
	Titulo   string `json:"titulo"`
	Mensagem string `json:"mensagem"`
	Link     string `json:"link"`
}

// Notifier entrega notificações a um usuário. A entrega é melhor esforço:
// quem chama decide engolir o erro.
type Notifier interface {
	Notify(ctx context.Context, usuarioID uuid.UUID, msg Notificacao) error
}

// WebhookNotifier envia a notificação para um gateway de push/e-mail externo.
type WebhookNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewWebhookNotifier cria notifier apontando para o gateway configurado.
func NewWebhookNotifier(webhookURL string) *WebhookNotifier {
	if webhookURL == "" {
		return nil
	}
	return &WebhookNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

// Notify publica o payload no gateway.
func (n *WebhookNotifier) Notify(ctx context.Context, usuarioID uuid.UUID, msg Notificacao) error {
	if n == nil || n.webhookURL == "" {
		return errors.New("notifier não configurado")
	}

	payload := map[string]any{
		"usuario_id": usuarioID.String(),
		"titulo":     msg.Titulo,
		"mensagem":   msg.Mensagem,
		"link":       msg.Link,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errors.New("gateway de notificação recusou o envio")
	}
	return nil
}

// NoopNotifier descarta notificações (ambiente sem gateway).
type NoopNotifier struct{}

// Notify não faz nada.
func (NoopNotifier) Notify(ctx context.Context, usuarioID uuid.UUID, msg Notificacao) error {
	return nil
}
