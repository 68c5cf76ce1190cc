package httpapi

import "net/url"

// messages maps the opaque e=/s= codes used in redirects to display text.
var messages = map[string]string{
	"login_failed":    "Invalid username or password.",
	"unauthorized":    "Please log in to access that page.",
	"signup_disabled": "Registration is currently disabled.",
	"username_exists": "That username is already taken.",
	"missing_fields":  "Please fill in all required fields.",
	"signup_success":  "Account created. You can log in now.",
}

// messageContext turns ?e= and ?s= into "error" and "success" entries.
// Unknown codes are ignored.
func messageContext(q url.Values) map[string]any {
	out := map[string]any{}
	if text, ok := messages[q.Get("e")]; ok {
		out["error"] = text
	}
	if text, ok := messages[q.Get("s")]; ok {
		out["success"] = text
	}
	return out
}
