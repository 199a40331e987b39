package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference.
//
// # Load Errors (LOAD001-LOAD099, PARSE001-PARSE099)
//
// A failed load always shows one of two fixed Hebrew messages. The code tells
// support which kind of failure happened:
//
//	LOAD001 - Origin unreachable, missing file or non-success HTTP status
//	          Message: שגיאה בטעינת קובץ ה-CSV. אנא בדוק שהקובץ תקין.
//	LOAD002 - File exceeds SOURCE_MAX_FILE_SIZE (same message as LOAD001)
//	LOAD003 - Every load slot busy for SOURCE_LOAD_WAIT; the list is untouched
//	PARSE001 - Malformed CSV: bad quoting or inconsistent column counts
//	          Message: שגיאה בפענוח קובץ ה-CSV. אנא בדוק שהקובץ תקין.
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Unknown filter field
//	REQ002 - Invalid request body or parameters
//	REQ003 - No file in upload form
//	REQ004 - Unsupported export format
//	REQ005 - Load origin outside SOURCE_DATA_DIR
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the application log for the original error.

import (
	"errors"
	"fmt"
	"strings"
)

// Fixed user-facing load failure messages.
const (
	LoadFailedMessage  = "שגיאה בטעינת קובץ ה-CSV. אנא בדוק שהקובץ תקין."
	ParseFailedMessage = "שגיאה בפענוח קובץ ה-CSV. אנא בדוק שהקובץ תקין."
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	loadFailed = UserMessage{
		Message: LoadFailedMessage,
		Action:  "ודא שהקובץ קיים ונגיש ונסה שוב",
		Code:    "LOAD001",
	}
	loadTooLarge = UserMessage{
		Message: LoadFailedMessage,
		Action:  "פצל את הקובץ או הגדל את SOURCE_MAX_FILE_SIZE",
		Code:    "LOAD002",
	}
	parseFailed = UserMessage{
		Message: ParseFailedMessage,
		Action:  "ודא שהקובץ מופרד בפסיקים ושלכל השורות אותו מספר עמודות",
		Code:    "PARSE001",
	}
	defaultMessage = UserMessage{
		Message: "אירעה שגיאה לא צפויה",
		Action:  "נסה שוב מאוחר יותר",
		Code:    "ERR000",
	}
)

// MapLoadError maps an ingestion error to one of the two fixed load messages.
// Returns an empty UserMessage for nil.
func MapLoadError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseFailed
	}
	if errors.Is(err, ErrFileTooLarge) {
		return loadTooLarge
	}
	return loadFailed
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps request error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so specific patterns go first.
var errorPatterns = []errorPattern{
	{
		pattern: "unknown filter field",
		msg: UserMessage{
			Message: "שדה סינון לא מוכר",
			Action:  "השתמש באחד מהשדות: city, type, activity, search, provider, region, category",
			Code:    "REQ001",
		},
	},
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "הבקשה אינה תקינה",
			Action:  "בדוק את הפרמטרים שנשלחו",
			Code:    "REQ002",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "לא נבחר קובץ",
			Action:  "בחר קובץ CSV להעלאה",
			Code:    "REQ003",
		},
	},
	{
		pattern: "unsupported export format",
		msg: UserMessage{
			Message: "פורמט הייצוא אינו נתמך",
			Action:  "בחר csv או xlsx",
			Code:    "REQ004",
		},
	},
	{
		pattern: "origin outside data directory",
		msg: UserMessage{
			Message: "ניתן לטעון רק קבצים מתיקיית הנתונים או כתובת http(s)",
			Action:  "הזן שם קובץ יחסי או כתובת אינטרנט",
			Code:    "REQ005",
		},
	},
	{
		pattern: "too many concurrent loads",
		msg: UserMessage{
			Message: "טעינות רבות מדי מתבצעות כעת",
			Action:  "המתן מספר שניות ונסה שוב",
			Code:    "LOAD003",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "יותר מדי בקשות",
			Action:  "המתן רגע ונסה שוב",
			Code:    "RATE001",
		},
	},
}

// MapError converts any error to a user-friendly message.
//
// Load errors (FetchError, ParseError, ErrFileTooLarge) go through
// MapLoadError; everything else is matched against errorPatterns.
// Returns an empty UserMessage for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var parseErr *ParseError
	var fetchErr *FetchError
	if errors.As(err, &parseErr) || errors.As(err, &fetchErr) || errors.Is(err, ErrFileTooLarge) {
		return MapLoadError(err)
	}

	lower := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(lower, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action", or "" for nil.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
