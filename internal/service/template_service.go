// internal/service/template_service.go
package service

import (
	"strings"
)

// DefaultNotificationTemplate is the message sent to an executive when an
// assignment lands on their plate.
const DefaultNotificationTemplate = "New assignment: order {order_number} for {customer_name}, due {due_date}"

func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}
