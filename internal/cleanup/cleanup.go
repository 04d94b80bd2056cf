package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/igotm1lk/slackbot/internal/storage"
)

const screenshotPrefix = "screenshots/"

// Start schedules periodic expiry of old screenshots from the bucket.
// Screenshots only need to outlive the Slack message cache; nothing is meant
// to accumulate.
func Start(store *storage.Service, maxAge time.Duration, log *slog.Logger) {
	log.Info("screenshot cleanup scheduled", "interval", "1h", "max_age", maxAge)
	expireScreenshots(store, maxAge, log)

	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for range ticker.C {
			expireScreenshots(store, maxAge, log)
		}
	}()
}

func expireScreenshots(store *storage.Service, maxAge time.Duration, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	objects, err := store.List(ctx, screenshotPrefix)
	if err != nil {
		log.Error("listing screenshots for cleanup failed", "err", err)
		return
	}

	now := time.Now()
	for _, obj := range objects {
		if now.Sub(obj.LastModified) <= maxAge {
			continue
		}
		if err := store.DeleteFile(ctx, obj.Key); err != nil {
			log.Error("deleting expired screenshot failed", "key", obj.Key, "err", err)
			continue
		}
		log.Info("deleted expired screenshot", "key", obj.Key, "age", now.Sub(obj.LastModified).Round(time.Minute))
	}
}
