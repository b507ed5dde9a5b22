package queue

import "log"

// Notification event kinds emitted by the campaign workflow. Delivery is
// fire-and-forget; the workflow never waits on the sink.
const (
	EventRulesToggled      = "rules_toggled"
	EventReviewGenerated   = "review_generated"
	EventCampaignActivated = "campaign_activated"
	EventValidationFailed  = "validation_failed"
)

// Event is the payload published on the notifications topic. It is the
// backend counterpart of the dashboard's confirmation toast.
type Event struct {
	Kind       string `json:"kind"`
	SessionID  string `json:"session_id,omitempty"`
	CampaignID int    `json:"campaign_id,omitempty"`
	Message    string `json:"message"`
}

// StartNotificationSubscriber logs workflow events as they arrive. A real
// deployment would push these to the operator's UI instead.
func StartNotificationSubscriber(q Queue) {
	err := q.Subscribe(TopicNotifications, func(payload any) error {
		event, ok := payload.(Event)
		if !ok {
			log.Println("⚠️ Invalid notification payload type")
			return nil // no retry
		}
		log.Printf("🔔 [%s] %s\n", event.Kind, event.Message)
		return nil
	})
	if err != nil {
		log.Println("⚠️ Failed to start notification subscriber:", err)
	}
}
