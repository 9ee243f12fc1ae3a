package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type userRepository interface {
	GetByEmail(ctx context.Context, email string) (*Usuario, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Usuario, error)
	TouchLogin(ctx context.Context, id uuid.UUID) error
}

type redisCommander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Service concentra regras de autenticação e sessões da equipe.
type Service struct {
	repo       userRepository
	redis      redisCommander
	jwt        *JWTManager
	refreshTTL time.Duration
}

// NewService cria novo serviço de autenticação.
func NewService(repo userRepository, redisClient redisCommander, jwtMgr *JWTManager, refreshTTL time.Duration) *Service {
	return &Service{repo: repo, redis: redisClient, jwt: jwtMgr, refreshTTL: refreshTTL}
}

// JWT expõe gerenciador de JWT (útil em middlewares).
func (s *Service) JWT() *JWTManager {
	return s.jwt
}

type refreshState struct {
	Subject string `json:"subject"`
}

// Login autentica usuário da equipe com e-mail e senha.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Warn().Msg("login: usuário não encontrado")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := Verify(password, user.SenhaHash)
	if err != nil || !ok {
		log.Warn().Msg("login: senha inválida")
		return nil, ErrInvalidCredentials
	}

	if !user.Ativo {
		return nil, ErrAccountDisabled
	}

	if err := s.repo.TouchLogin(ctx, user.ID); err != nil {
		log.Warn().Err(err).Msg("login: falha ao registrar último acesso")
	}

	return s.issueSession(ctx, user)
}

// Refresh troca um refresh token válido por nova sessão (rotação).
func (s *Service) Refresh(ctx context.Context, rawRefresh string) (*LoginResult, error) {
	key := RefreshRedisKey(HashRefreshToken(rawRefresh))

	payload, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	var state refreshState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, ErrInvalidRefresh
	}

	subject, err := uuid.Parse(state.Subject)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	user, err := s.repo.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if !user.Ativo {
		return nil, ErrAccountDisabled
	}

	// rotação: o token usado deixa de valer imediatamente
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Msg("refresh: falha ao revogar token anterior")
	}

	return s.issueSession(ctx, user)
}

// Logout revoga a sessão associada ao refresh token.
func (s *Service) Logout(ctx context.Context, rawRefresh string) error {
	key := RefreshRedisKey(HashRefreshToken(rawRefresh))
	return s.redis.Del(ctx, key).Err()
}

// Me devolve o perfil do usuário autenticado.
func (s *Service) Me(ctx context.Context, subject uuid.UUID) (*Profile, error) {
	user, err := s.repo.GetByID(ctx, subject)
	if err != nil {
		return nil, err
	}
	profile := profileOf(user)
	return &profile, nil
}

func (s *Service) issueSession(ctx context.Context, user *Usuario) (*LoginResult, error) {
	roles := []string{user.Papel}

	access, _, err := s.jwt.GenerateAccessToken(user.ID.String(), user.Nome, user.CondominioID.String(), roles)
	if err != nil {
		return nil, err
	}

	rawRefresh, hashed, err := GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	state, err := json.Marshal(refreshState{Subject: user.ID.String()})
	if err != nil {
		return nil, err
	}

	expiry := time.Now().Add(s.refreshTTL)
	if err := s.redis.Set(ctx, RefreshRedisKey(hashed), state, s.refreshTTL).Err(); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:   access,
		RefreshToken:  rawRefresh,
		Subject:       user.ID,
		Roles:         roles,
		Profile:       profileOf(user),
		RefreshExpiry: expiry,
	}, nil
}

func profileOf(user *Usuario) Profile {
	return Profile{
		ID:           user.ID.String(),
		Nome:         user.Nome,
		Email:        user.Email,
		Papel:        user.Papel,
		CondominioID: user.CondominioID.String(),
	}
}
