//cmd/seeder/main.go
package main

import (
    "context"
    "database/sql"
    "fmt"
    "os"
    "path/filepath"

    "github.com/sirupsen/logrus"

    "github.com/unclebandit/smsify-backend/internal/config"
    "github.com/unclebandit/smsify-backend/internal/db"
)

func main() {
    cfg, err := config.Load()
    if err != nil {
        logrus.WithError(err).Fatal("failed to load config")
    }
    cfg.ConfigureLogging()

    database, err := db.Open(context.Background(), cfg.Database)
    if err != nil {
        logrus.WithError(err).Fatal("failed to connect to database")
    }
    defer database.Close()

    for _, dir := range []string{"migrations", "seed"} {
        if err := applyDir(context.Background(), database, dir); err != nil {
            logrus.WithError(err).Fatal("seeding failed")
        }
    }

    logrus.Info("database seeding completed successfully")
}

// applyDir executes every .sql file in dir in lexical order.
func applyDir(ctx context.Context, database *sql.DB, dir string) error {
    files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
    if err != nil {
        return err
    }

    for _, file := range files {
        content, err := os.ReadFile(file)
        if err != nil {
            return fmt.Errorf("failed to read %s: %w", file, err)
        }
        if _, err := database.ExecContext(ctx, string(content)); err != nil {
            return fmt.Errorf("failed to execute %s: %w", file, err)
        }
        logrus.WithField("file", file).Info("applied")
    }
    return nil
}
