package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadInput representa uma operação de upload simples.
type UploadInput struct {
	Key         string
	Body        []byte
	ContentType string
}

// UploadResult descreve o artefato persistido.
type UploadResult struct {
	URL  string
	ETag string
}

// Uploader define comportamento básico para armazenar anexos.
// O núcleo persiste apenas a URL resultante, nunca os bytes.
type Uploader interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
}

// ChaveAnexoOrdem monta a chave de objeto para anexos de uma ordem de serviço.
func ChaveAnexoOrdem(ordemID uuid.UUID, filename string) string {
	base := path.Base(strings.TrimSpace(filename))
	if base == "" || base == "." || base == "/" {
		base = "anexo"
	}
	return fmt.Sprintf("ordens/%s/%d-%s", ordemID, time.Now().UnixMilli(), base)
}
