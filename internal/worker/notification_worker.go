package worker

import (
	"github.com/Nikhilkrishnapk/complaint-hub/internal/service"
)

// StartNotificationWorker subscribes the notification service to complaint events.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
