package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	membershipControllers "github.com/fit-nest-dev/fit-nest-api/controllers/membership"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

// StartMembershipSweep schedules the daily membership expiry check at
// 2 AM server time and returns the scheduler so main can stop it on
// shutdown. The sweep is idempotent, so running it again by hand (or
// via the admin endpoint) is always safe.
func StartMembershipSweep(db *gorm.DB, hub *realtime.Hub) *cron.Cron {
	scheduler := cron.New()

	_, err := scheduler.AddFunc("0 2 * * *", func() {
		log.Println("[CRON] Starting membership expiration sweep...")
		expired, err := membershipControllers.ExpireStale(db, time.Now())
		if err != nil {
			log.Printf("[CRON] ❌ Membership sweep failed: %v", err)
			return
		}
		if expired > 0 {
			hub.Publish(realtime.TopicUsers, map[string]int64{"expired": expired})
		}
		log.Printf("[CRON] ✅ Membership sweep done, %d membership(s) expired", expired)
	})
	if err != nil {
		log.Fatalf("❌ Failed to schedule membership sweep: %v", err)
	}

	scheduler.Start()
	log.Println("⏳ Membership expiry sweep scheduled daily at 02:00")
	return scheduler
}
