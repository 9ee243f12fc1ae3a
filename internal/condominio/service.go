package condominio

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gestaopredial/condominio/internal/util"
)

// Service contém as regras de negócio para resolução e cadastro de condomínios.
type Service struct {
	repo     *Repository
	cache    sync.Map
	cacheTTL time.Duration
}

// cachedCondominio armazena dados no cache em memória.
type cachedCondominio struct {
	cond     Condominio
	expireAt time.Time
}

// NewService cria uma nova instância de Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo, cacheTTL: 2 * time.Minute}
}

// Resolve encontra condomínio pelo slug, com cache curto em memória.
func (s *Service) Resolve(ctx context.Context, slug string) (*Condominio, error) {
	normalized := normalizeSlug(slug)
	if normalized == "" {
		return nil, ErrNotFound
	}

	if v, ok := s.cache.Load(normalized); ok {
		entry := v.(cachedCondominio)
		if time.Now().Before(entry.expireAt) {
			condCopy := entry.cond
			return &condCopy, nil
		}
		s.cache.Delete(normalized)
	}

	cond, err := s.repo.GetBySlug(ctx, normalized)
	if err != nil {
		return nil, err
	}

	s.cache.Store(normalized, cachedCondominio{cond: *cond, expireAt: time.Now().Add(s.cacheTTL)})

	condCopy := *cond
	return &condCopy, nil
}

// Get busca condomínio por id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Condominio, error) {
	return s.repo.GetByID(ctx, id)
}

// Create registra um novo condomínio.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Condominio, error) {
	input.Slug = normalizeSlug(input.Slug)
	if err := util.RequireString(input.Slug, "slug"); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.Nome, "nome"); err != nil {
		return nil, err
	}

	cond, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.cache.Store(cond.Slug, cachedCondominio{cond: *cond, expireAt: time.Now().Add(s.cacheTTL)})
	return cond, nil
}

// List devolve todos os condomínios.
func (s *Service) List(ctx context.Context) ([]Condominio, error) {
	return s.repo.List(ctx)
}

// Deactivate desativa um condomínio e limpa o cache.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.cache.Range(func(key, value any) bool {
		entry := value.(cachedCondominio)
		if entry.cond.ID == id {
			s.cache.Delete(key)
			return false
		}
		return true
	})

	return nil
}

func normalizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
