package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type DocType string

const (
	DocWeights       DocType = "weights"
	DocWeightHistory DocType = "weight_history"
	DocProgress      DocType = "progress"
	DocSchedule      DocType = "schedule"
	DocMeta          DocType = "meta"
	DocSetProgress   DocType = "setprogress"
	DocSharedPlans   DocType = "shared_plans"
	DocPlanRevisions DocType = "plan_revisions"
)

// SharedOwner owns the multi-tenant shared_plans document.
const SharedOwner = "_shared"

const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

var (
	ErrUnknownBackend = errors.New("unknown store backend")
	ErrInvalidOwner   = errors.New("invalid document owner")
)

// Store keeps whole JSON documents per (owner, doc type).
// There is no locking across Load and Save: concurrent writers of the same
// document are last-writer-wins.
type Store interface {
	// Load returns nil, nil when the document does not exist.
	Load(ctx context.Context, owner string, doc DocType) ([]byte, error)
	Save(ctx context.Context, owner string, doc DocType, data []byte) error
	Owners(ctx context.Context, doc DocType) ([]string, error)
	Close() error
}

type NewParams struct {
	Backend    string
	DataDir    string
	SQLitePath string
	// RedisClient is required by the redis backend, the store takes ownership of it.
	RedisClient *redis.Client
	// DBPool is required by the postgres backend, the store takes ownership of it.
	DBPool *pgxpool.Pool
}

func New(ctx context.Context, params NewParams) (Store, error) {
	switch params.Backend {
	case BackendFile, "":
		return NewFileStore(params.DataDir)
	case BackendRedis:
		if params.RedisClient == nil {
			return nil, errors.New("redis store: nil client")
		}
		return NewRedisStore(params.RedisClient), nil
	case BackendPostgres:
		if params.DBPool == nil {
			return nil, errors.New("postgres store: nil db pool")
		}
		return NewPostgresStore(ctx, params.DBPool)
	case BackendSQLite:
		return NewSQLiteStore(ctx, params.SQLitePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, params.Backend)
	}
}

// LoadJSON decodes a document into v. Missing, unreadable and corrupt
// documents leave v at its zero value; it reports whether v was filled.
func LoadJSON(ctx context.Context, s Store, owner string, doc DocType, v any) bool {
	data, err := s.Load(ctx, owner, doc)
	if err != nil {
		log.Errorf("load %s for [%s]: %s", doc, owner, err)
		resetValue(v)
		return false
	}
	if len(data) == 0 {
		resetValue(v)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Warnf("corrupt %s document for [%s], treating as empty: %s", doc, owner, err)
		resetValue(v)
		return false
	}
	return true
}

func SaveJSON(ctx context.Context, s Store, owner string, doc DocType, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", doc, err)
	}
	if err := s.Save(ctx, owner, doc, data); err != nil {
		return fmt.Errorf("save %s for [%s]: %w", doc, owner, err)
	}
	return nil
}

func resetValue(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
	}
}
