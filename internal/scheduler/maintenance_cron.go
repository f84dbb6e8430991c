package cron

import (
	"context"
	"time"

	"github.com/Aslan2004/Social_Network/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// rejectedRequestMaxAge is how long a rejected friend request is kept before
// the nightly purge removes it. Rejected requests are terminal and do not
// block new requests, so they are only audit history.
const rejectedRequestMaxAge = 30 * 24 * time.Hour

// StartMaintenanceJobs schedules background cleanup work.
func StartMaintenanceJobs(friendService *services.FriendService) *cron.Cron {
	c := cron.New()

	// Purge stale rejected friend requests nightly
	c.AddFunc("0 3 * * *", func() {
		_, err := friendService.PurgeStaleRejected(context.Background(), rejectedRequestMaxAge)
		if err != nil {
			logrus.WithError(err).Error("PurgeStaleRejected failed")
		}
	})

	c.Start()
	return c
}
