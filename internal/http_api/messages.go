package http_api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Flash message keys carried in the redirect query string.
const (
	flashDrawTaken         = "draw_taken"
	flashDuplicateCode     = "duplicate_code"
	flashInvalidInput      = "invalid_input"
	flashApplyFailed       = "apply_failed"
	flashWelcome           = "welcome"
	flashBadCredentials    = "bad_credentials"
	flashLoggedOut         = "logged_out"
	flashVerified          = "verified"
	flashPaid              = "paid"
	flashIllegalTransition = "illegal_transition"
	flashNotFound          = "not_found"
	flashActionFailed      = "action_failed"
)

type flashMessage struct {
	Kind string // success, error or info
	Text string
}

// flashTexts of the keys in flashWithID take the application id.
var flashTexts = map[string]flashMessage{
	flashDrawTaken:         {"error", "ይህ የዕጣ ቁጥር አስቀድሞ ተይዟል። እባክዎ ሌላ ቁጥር ይምረጡ።"},
	flashDuplicateCode:     {"error", "ስህተት: ተመሳሳይ የማረጋገጫ ኮድ አስቀድሞ አለ። እባክዎ እንደገና ይሞክሩ።"},
	flashInvalidInput:      {"error", "እባክዎ ሁሉንም መረጃዎች በትክክል ይሙሉ።"},
	flashApplyFailed:       {"error", "ስህተት ተፈጥሯል። እባክዎ እንደገና ይሞክሩ።"},
	flashWelcome:           {"success", "እንኳን ደህና መጡ አስተዳዳሪ!"},
	flashBadCredentials:    {"error", "ትክክል ያልሆነ የተጠቃሚ ስም ወይም የይለፍ ቃል"},
	flashLoggedOut:         {"info", "በተሳካ ሁኔታ ወጥተዋል"},
	flashVerified:          {"success", "Application %d marked as Verified! SMS sent to user."},
	flashPaid:              {"success", "Application %d marked as Paid (Ticket Filled)! SMS sent to user."},
	flashIllegalTransition: {"error", "Application %d cannot move to that status from its current one."},
	flashNotFound:          {"error", "Application %d not found."},
	flashActionFailed:      {"error", "Could not update application %d. Please try again."},
}

var flashWithID = map[string]bool{
	flashVerified:          true,
	flashPaid:              true,
	flashIllegalTransition: true,
	flashNotFound:          true,
	flashActionFailed:      true,
}

// flashURL returns path with the flash key (and application id) in its query.
func flashURL(path, key string, id ...int64) string {
	q := url.Values{}
	q.Set("flash", key)
	if len(id) > 0 {
		q.Set("id", strconv.FormatInt(id[0], 10))
	}
	return path + "?" + q.Encode()
}

// flashFromQuery resolves the flash message of the current request, if any.
func flashFromQuery(c *gin.Context) *flashMessage {
	return resolveFlash(c.Query("flash"), c.Query("id"))
}

func resolveFlash(key, rawID string) *flashMessage {
	msg, ok := flashTexts[key]
	if !ok {
		return nil
	}
	if flashWithID[key] {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return nil
		}
		msg.Text = fmt.Sprintf(msg.Text, id)
	}
	return &msg
}
