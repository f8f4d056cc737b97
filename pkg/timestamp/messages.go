package timestamp

import "github.com/goliatone/go-hydrate/pkg/i18n"

// Message descriptors used while rendering. Locale bundles may override any
// of them by id.
var (
	MsgTodayAt = i18n.Message{ID: "relative_format.today", Default: "Today at {time}"}

	MsgToday       = i18n.Message{ID: "relative_time.today", Default: "today"}
	MsgJustNow     = i18n.Message{ID: "relative_time.just_now", Default: "now"}
	MsgJustNowFull = i18n.Message{ID: "relative_time.full.just_now", Default: "just now"}

	MsgSeconds = i18n.Message{ID: "relative_time.seconds", Default: "{number}s"}
	MsgMinutes = i18n.Message{ID: "relative_time.minutes", Default: "{number}m"}
	MsgHours   = i18n.Message{ID: "relative_time.hours", Default: "{number}h"}
	MsgDays    = i18n.Message{ID: "relative_time.days", Default: "{number}d"}

	MsgSecondsFull = i18n.Message{ID: "relative_time.full.seconds", Default: "{number, plural, one {# second} other {# seconds}} ago"}
	MsgMinutesFull = i18n.Message{ID: "relative_time.full.minutes", Default: "{number, plural, one {# minute} other {# minutes}} ago"}
	MsgHoursFull   = i18n.Message{ID: "relative_time.full.hours", Default: "{number, plural, one {# hour} other {# hours}} ago"}
	MsgDaysFull    = i18n.Message{ID: "relative_time.full.days", Default: "{number, plural, one {# day} other {# days}} ago"}

	MsgFutureSeconds = i18n.Message{ID: "relative_time.future.seconds", Default: "in {number}s"}
	MsgFutureMinutes = i18n.Message{ID: "relative_time.future.minutes", Default: "in {number}m"}
	MsgFutureHours   = i18n.Message{ID: "relative_time.future.hours", Default: "in {number}h"}
	MsgFutureDays    = i18n.Message{ID: "relative_time.future.days", Default: "in {number}d"}

	MsgFutureSecondsFull = i18n.Message{ID: "relative_time.full.future.seconds", Default: "in {number, plural, one {# second} other {# seconds}}"}
	MsgFutureMinutesFull = i18n.Message{ID: "relative_time.full.future.minutes", Default: "in {number, plural, one {# minute} other {# minutes}}"}
	MsgFutureHoursFull   = i18n.Message{ID: "relative_time.full.future.hours", Default: "in {number, plural, one {# hour} other {# hours}}"}
	MsgFutureDaysFull    = i18n.Message{ID: "relative_time.full.future.days", Default: "in {number, plural, one {# day} other {# days}}"}

	MsgMomentsRemaining = i18n.Message{ID: "time_remaining.moments", Default: "Moments remaining"}
	MsgSecondsRemaining = i18n.Message{ID: "time_remaining.seconds", Default: "{number, plural, one {# second} other {# seconds}} left"}
	MsgMinutesRemaining = i18n.Message{ID: "time_remaining.minutes", Default: "{number, plural, one {# minute} other {# minutes}} left"}
	MsgHoursRemaining   = i18n.Message{ID: "time_remaining.hours", Default: "{number, plural, one {# hour} other {# hours}} left"}
	MsgDaysRemaining    = i18n.Message{ID: "time_remaining.days", Default: "{number, plural, one {# day} other {# days}} left"}
)
