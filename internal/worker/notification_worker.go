package worker

import (
	"github.com/spec-kit/ga-helpdesk/internal/events"
	"github.com/spec-kit/ga-helpdesk/internal/service"
)

// StartNotificationWorker registers the event subscribers that react to
// ticket mutations: notification stubs and report cache invalidation.
func StartNotificationWorker(notificationService *service.NotificationService, reportService *service.ReportService, dispatcher events.Dispatcher) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if reportService != nil {
		reportService.RegisterInvalidation(dispatcher)
	}
}
