package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/eventku/auth-api/config"
	"github.com/eventku/auth-api/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Lifecycle of every component is owned by the process entry point; the
// container only holds references for module wiring.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager
	hasher     *helpers.Hasher

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config)    { cfg = c }
func GetConfig() *config.Config     { return cfg }
func SetLogger(l *logrus.Logger)    { logger = l }
func GetLogger() *logrus.Logger     { return logger }
func SetPGPool(p *pgxpool.Pool)     { pgPool = p }
func GetPGPool() *pgxpool.Pool      { return pgPool }
func SetRedis(r *redis.Client)      { redisClient = r }
func GetRedis() *redis.Client       { return redisClient }
func SetJWT(m *helpers.JWTManager)  { jwtManager = m }
func GetJWT() *helpers.JWTManager   { return jwtManager }
func SetHasher(h *helpers.Hasher)   { hasher = h }
func GetHasher() *helpers.Hasher    { return hasher }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
