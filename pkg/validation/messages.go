package validation

import "github.com/goliatone/go-hydrate/pkg/i18n"

var (
	MsgUsernameTaken = i18n.Message{
		ID:      "username.taken",
		Default: "That username is taken. Try another",
	}
	MsgPasswordExceedsLength = i18n.Message{
		ID:      "password_confirmation.exceeds_maxlength",
		Default: "Password confirmation exceeds the maximum password length",
	}
	MsgPasswordMismatch = i18n.Message{
		ID:      "password_confirmation.mismatching",
		Default: "Password confirmation does not match",
	}
)
