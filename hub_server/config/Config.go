package config

import (
	"encoding/json"
	"io/ioutil"
)

var Config ServerConfig

const (
	defaultServerName      = "qhub"
	defaultServerAddress   = "0.0.0.0"
	defaultServerPort      = 8080
	defaultWsPath          = "/ws"
	defaultMongoUri        = "mongodb://localhost:27017"
	defaultMongoDb         = "qhub"
	defaultWriteQueueSize  = 64
	defaultQuestionColl    = "questions"
	defaultResponseColl    = "responses"
	defaultCacheTTLSeconds = 300
)

type ServerConfig struct {
	Server ServerSection `json:"server"`
	Mongo  MongoConfig   `json:"mongo"`
	Redis  RedisConfig   `json:"redis"`
}

type ServerSection struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Port           int    `json:"port"`
	WsPath         string `json:"wsPath"`
	WriteQueueSize int    `json:"writeQueueSize"`
}

type MongoConfig struct {
	Uri                 string `json:"uri"`
	Db                  string `json:"db"`
	QuestionsCollection string `json:"questionsCollection"`
	ResponsesCollection string `json:"responsesCollection"`
}

type RedisConfig struct {
	Server          string `json:"server"`
	Password        string `json:"password"`
	CacheTTLSeconds int    `json:"cacheTTLSeconds"`
}

func init() {
	Config = defaultConfig()
}

func defaultConfig() ServerConfig {
	return ServerConfig{
		Server: ServerSection{
			Name:           defaultServerName,
			Address:        defaultServerAddress,
			Port:           defaultServerPort,
			WsPath:         defaultWsPath,
			WriteQueueSize: defaultWriteQueueSize,
		},
		Mongo: MongoConfig{
			Uri:                 defaultMongoUri,
			Db:                  defaultMongoDb,
			QuestionsCollection: defaultQuestionColl,
			ResponsesCollection: defaultResponseColl,
		},
		Redis: RedisConfig{
			CacheTTLSeconds: defaultCacheTTLSeconds,
		},
	}
}

// Load overlays the config file at path on top of the defaults. An empty path
// keeps the defaults.
func Load(path string) error {
	if path == "" {
		return nil
	}
	stream, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	loaded := defaultConfig()
	if err = json.Unmarshal(stream, &loaded); err != nil {
		return err
	}
	Config = loaded
	return nil
}
