// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/unclebandit/smsify-backend/internal/config"
)

// Open connects to postgres and verifies the connection. The caller owns the returned pool.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	logrus.WithFields(logrus.Fields{
		"host": cfg.Host,
		"db":   cfg.DBName,
		"user": cfg.User,
	}).Info("connecting to database")

	conn, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxIdleConns(10)
	conn.SetMaxOpenConns(50)
	conn.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("connected to database")
	return conn, nil
}
