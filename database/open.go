package database

import (
	"github.com/sahilchouksey/unifriend-api/config"
	"github.com/sirupsen/logrus"
)

// Open returns the store selected by DB_DRIVER. Init is not called.
func Open(env *config.EnvironmentVariable, log logrus.FieldLogger) (Storage, error) {
	if env.DB_DRIVER == "memory" {
		log.Warn("Using in-memory storage; data is lost on restart")
		return NewMemoryStore(), nil
	}
	store, err := StartGORM(env, log)
	if err != nil {
		return nil, err
	}
	return store, nil
}
