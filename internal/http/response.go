package http

import (
	"encoding/json"
	"net/http"
)

// Toda resposta da API carrega o mesmo envelope: um campo data e um
// campo error, nunca ambos preenchidos.
type SuccessEnvelope struct {
	Data  any `json:"data"`
	Error any `json:"error"`
}

type ErrorEnvelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error"`
}

// ErrorBody é o corpo normalizado de falha: código estável para o
// cliente decidir, mensagem legível e detalhes opcionais.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// WriteJSON envelopa data em uma resposta de sucesso.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	encode(w, status, SuccessEnvelope{Data: data})
}

// WriteError envelopa uma falha normalizada.
func WriteError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	encode(w, status, ErrorEnvelope{
		Error: &ErrorBody{Code: code, Message: message, Details: details},
	})
}

func encode(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
