package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"qhub/common/redis"
	"qhub/hub_server/config"
	"qhub/hub_server/module_base"
)

const ID = "store"

const connectTimeout = time.Second * 10

// StoreModule owns the mongo client and the per-collection stores. The redis
// cache is optional: when the server is unreachable the module keeps going
// without caching.
type StoreModule struct {
	*module_base.ModuleBase
	client    *mongo.Client
	db        *mongo.Database
	questions IQuestionStore
	responses IResponseStore
	cache     *redis.RedisClient
}

func NewStoreModule() *StoreModule {
	m := &StoreModule{}
	m.ModuleBase = module_base.NewModuleBase(ID, m.dispose)
	return m
}

func (m *StoreModule) Init() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.Config.Mongo.Uri))
	if err != nil {
		return err
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		return err
	}
	m.client = client
	m.db = client.Database(config.Config.Mongo.Db)
	m.questions = NewQuestionStore(m.db.Collection(config.Config.Mongo.QuestionsCollection))
	m.responses = NewResponseStore(m.db.Collection(config.Config.Mongo.ResponsesCollection))
	if config.Config.Redis.Server != "" {
		cache := redis.NewRedisClient(config.Config.Redis.Server, config.Config.Redis.Password, 3)
		if err = cache.Ping(); err != nil {
			m.Logger().Printf("redis at %s unreachable(%s), caching disabled", config.Config.Redis.Server, err.Error())
		} else {
			m.cache = cache
		}
	}
	m.Logger().Printf("connected to %s/%s", config.Config.Mongo.Uri, config.Config.Mongo.Db)
	return nil
}

func (m *StoreModule) Questions() IQuestionStore {
	return m.questions
}

func (m *StoreModule) Responses() IResponseStore {
	return m.responses
}

// Cache returns nil when no redis server is configured or reachable.
func (m *StoreModule) Cache() *redis.RedisClient {
	return m.cache
}

// WatchResponses opens a change stream over the responses collection.
func (m *StoreModule) WatchResponses(ctx context.Context) (IChangeStream, error) {
	coll := m.db.Collection(config.Config.Mongo.ResponsesCollection)
	return coll.Watch(ctx, mongo.Pipeline{})
}

func (m *StoreModule) dispose() error {
	if m.cache != nil {
		if err := m.cache.Close(); err != nil {
			m.Logger().Printf("failed to close redis client: %s", err.Error())
		}
	}
	if m.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}
