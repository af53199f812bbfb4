package logging

import "strings"

var sensitiveKeys = []string{"token", "secret", "password", "webhook_url", "authorization"}

// webhookPathMarker identifies chat webhook URLs, whose path is a credential.
const webhookPathMarker = "/api/webhooks/"

// ShouldRedact reports whether an attribute must be masked, either because
// its key names a credential or because the value is a webhook URL.
func ShouldRedact(key, value string) bool {
	k := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return strings.Contains(value, webhookPathMarker)
}

// RedactValue masks all but the last four characters of value.
func RedactValue(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
