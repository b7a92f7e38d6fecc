// Package db implements a host base over the tables of a Cassandra keyspace.
package db

import (
	"errors"
	"github.com/gocql/gocql"
	"time"
)

// Db represents a connection to a db
type Db struct {
	session Session
}

type ClusterConfig struct {
	Hosts    []string
	Username string
	Password string
	Timeout  time.Duration
}

// NewDb connects to the cluster
func NewDb(cfg ClusterConfig) (*Db, error) {
	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.PoolConfig.HostSelectionPolicy = NewDefaultHostSelectionPolicy()
	if cfg.Timeout > 0 {
		cluster.Timeout = cfg.Timeout
	}
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("failed to create session")
	}

	return &Db{session: &GoCqlSession{ref: session}}, nil
}

// NewDbWithSession wraps an existing session
func NewDbWithSession(session Session) *Db {
	return &Db{session: session}
}

// Keyspace retrieves the keyspace metadata
func (db *Db) Keyspace(keyspace string) (*gocql.KeyspaceMetadata, error) {
	return db.session.KeyspaceMetadata(keyspace)
}

// Close releases the underlying session, if it holds resources
func (db *Db) Close() {
	if closer, ok := db.session.(interface{ Close() }); ok {
		closer.Close()
	}
}
