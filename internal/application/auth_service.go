package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/eventku/auth-api/internal/domain/entity"
	repo "github.com/eventku/auth-api/internal/domain/repository"
	"github.com/eventku/auth-api/pkg/helpers"
	"github.com/eventku/auth-api/pkg/mailer"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrDuplicateUser = errors.New("username or email already registered")
)

// Service implements the registration, login, activation and profile flows.
// Redis, RabbitMQ and Elasticsearch are optional collaborators; the flows
// degrade to direct store access when they are nil.
type Service struct {
	Repo          repo.UserRepository
	Hasher        *helpers.Hasher
	JWT           *helpers.JWTManager
	Redis         *redis.Client
	Logger        *logrus.Logger
	Pub           *helpers.RabbitPublisher
	ES            *elasticsearch.Client
	ESUsersIndex  string
	ActivationURL string
	MailEnabled   bool
}

func NewService(repository repo.UserRepository, hasher *helpers.Hasher, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esUsersIndex, activationURL string, mailEnabled bool) *Service {
	return &Service{
		Repo:          repository,
		Hasher:        hasher,
		JWT:           jwt,
		Redis:         rdb,
		Logger:        logger,
		Pub:           pub,
		ES:            es,
		ESUsersIndex:  esUsersIndex,
		ActivationURL: activationURL,
		MailEnabled:   mailEnabled,
	}
}

const profileCacheTTL = 5 * time.Minute

func profileKey(userID string) string {
	return "user:profile:" + userID
}

// Register validates the candidate and persists a new inactive user with a
// hashed password and a fresh activation code. Validation is atomic: any
// failure aborts before persistence.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if verr := in.Validate(); verr != nil {
		return nil, verr
	}

	code, err := helpers.GenActivationCode()
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Fullname:       in.Fullname,
		Username:       in.Username,
		Email:          in.Email,
		Password:       s.Hasher.Hash(in.Password),
		Role:           entity.RoleUser,
		ActivationCode: code,
		IsActive:       false,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	s.enqueueActivationEmail(ctx, u)
	s.indexUser(ctx, u)
	return u, nil
}

// Login resolves the identifier against username or email among active
// accounts, compares digests and issues a signed token.
func (s *Service) Login(ctx context.Context, identifier, password string) (string, time.Time, error) {
	u, err := s.Repo.FindActiveByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", time.Time{}, ErrUserNotFound
		}
		return "", time.Time{}, err
	}
	if !s.Hasher.Compare(u.Password, password) {
		return "", time.Time{}, ErrWrongPassword
	}
	return s.JWT.Generate(u.ID, u.Role)
}

// Activate exchanges a one-time code for the active flag. An unknown code is
// not an error: the result is a nil record and no mutation, so repeated calls
// with the same bad code are no-ops.
func (s *Service) Activate(ctx context.Context, code string) (*entity.User, error) {
	u, err := s.Repo.Activate(ctx, code)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisDel(ctx, s.Redis, profileKey(u.ID)); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("profile cache invalidation failed")
		}
	}
	s.indexUser(ctx, u)
	return u, nil
}

// GetProfile fetches the record for the authenticated subject, through a
// short-lived redis cache when one is configured.
func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	if s.Redis != nil {
		var cached entity.User
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, profileKey(userID), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileKey(u.ID), u, profileCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("profile cache write failed")
		}
	}
	return u, nil
}

func (s *Service) enqueueActivationEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateActivation,
		Data: map[string]any{
			"Fullname": u.Fullname,
			"Code":     u.ActivationCode,
			"Link":     s.ActivationURL + "?code=" + u.ActivationCode,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("activation email enqueue failed")
	}
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"fullname":   u.Fullname,
		"username":   u.Username,
		"email":      u.Email,
		"role":       u.Role,
		"is_active":  u.IsActive,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

// SearchUsers performs a simple multi_match search on fullname, username and email.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "email^2", "fullname"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
