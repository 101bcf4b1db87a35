package database

import (
	"fmt"
	"luminaops/config"

	"github.com/valkey-io/valkey-go"
)

// EVENTS_CACHE_INDEX is the valkey database used for event pub/sub. Pub/sub is
// not database scoped, the index only keeps any future event keys apart.
const EVENTS_CACHE_INDEX = 3

type CacheClient valkey.Client

type Cache struct {
	Events CacheClient
}

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing events cache")

	address := config.EventsCacheAddress
	port := config.EventsCachePort
	if address == "" || port == 0 {
		return log.Errorf("failed to initialize events cache", "address or port is empty")
	}

	client, err := valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    EVENTS_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create events valkey client", err)
	}

	s.Cache.Events = client
	log.Info("events cache connected", "address", address, "port", port)

	return nil
}
