package timestamp

import (
	"time"

	"github.com/goliatone/go-hydrate/pkg/i18n"
)

const (
	second = time.Second
	minute = time.Minute
	hour   = time.Hour
	day    = 24 * time.Hour

	justNowWindow = 10 * second
	relativeDays  = 7
	relativeLimit = relativeDays * day
)

// TimeAgoOptions tunes relative phrasing.
type TimeAgoOptions struct {
	// TimeGiven is false for date-only values, which render as "today" on the
	// reference day instead of an hour count.
	TimeGiven bool
	// Short selects compact phrases ("5m") over full ones ("5 minutes ago").
	Short bool
}

type unitMessages struct {
	seconds, minutes, hours, days i18n.Message
}

var (
	pastFull    = unitMessages{MsgSecondsFull, MsgMinutesFull, MsgHoursFull, MsgDaysFull}
	pastShort   = unitMessages{MsgSeconds, MsgMinutes, MsgHours, MsgDays}
	futureFull  = unitMessages{MsgFutureSecondsFull, MsgFutureMinutesFull, MsgFutureHoursFull, MsgFutureDaysFull}
	futureShort = unitMessages{MsgFutureSeconds, MsgFutureMinutes, MsgFutureHours, MsgFutureDays}
	remaining   = unitMessages{MsgSecondsRemaining, MsgMinutesRemaining, MsgHoursRemaining, MsgDaysRemaining}
)

// TimeAgo renders t relative to ctx.Now.
//
// Buckets: date-only values on the reference day read "today", and on other
// days within a week they count calendar days ("in 1 day"); anything within
// ten seconds either way reads "just now"; up to seven days the delta is
// floored to seconds, minutes, hours or days ("5 minutes ago", "in 2 days");
// beyond that a short date is shown, with the year only when it differs from
// ctx.Year.
func TimeAgo(t time.Time, ctx Context, opts TimeAgoOptions) string {
	ctx = ctx.normalize()
	delta := ctx.Now.Sub(t)
	abs := delta
	if abs < 0 {
		abs = -abs
	}

	days := calendarDays(t, ctx.Now, ctx.Location())
	units := pastFull
	switch {
	case (delta < 0 || days < 0) && opts.Short:
		units = futureShort
	case delta < 0 || days < 0:
		units = futureFull
	case opts.Short:
		units = pastShort
	}

	switch {
	case !opts.TimeGiven && days == 0:
		return ctx.Messages.Resolve(MsgToday, nil)
	case !opts.TimeGiven && days > -relativeDays && days < relativeDays:
		if days < 0 {
			days = -days
		}
		return ctx.Messages.Resolve(units.days, i18n.Values{"number": int64(days)})
	case opts.TimeGiven && abs < justNowWindow:
		if opts.Short {
			return ctx.Messages.Resolve(MsgJustNow, nil)
		}
		return ctx.Messages.Resolve(MsgJustNowFull, nil)
	case opts.TimeGiven && abs < relativeLimit:
		return unitPhrase(ctx.Messages, units, abs)
	case t.In(ctx.Location()).Year() == ctx.Year:
		return ctx.Dates.ShortDate(t)
	default:
		return ctx.Dates.ShortDateYear(t)
	}
}

// TimeRemaining renders how long is left until t, e.g. "3 hours left".
// Instants already in the past read "Moments remaining".
func TimeRemaining(t time.Time, ctx Context, timeGiven bool) string {
	ctx = ctx.normalize()
	delta := t.Sub(ctx.Now)

	days := -calendarDays(t, ctx.Now, ctx.Location())
	switch {
	case !timeGiven && days == 0:
		return ctx.Messages.Resolve(MsgToday, nil)
	case !timeGiven && days > 0:
		return ctx.Messages.Resolve(remaining.days, i18n.Values{"number": int64(days)})
	case delta < justNowWindow:
		return ctx.Messages.Resolve(MsgMomentsRemaining, nil)
	default:
		return unitPhrase(ctx.Messages, remaining, delta)
	}
}

// calendarDays returns how many calendar days in loc t lies before now;
// negative when t is on a later day.
func calendarDays(t, now time.Time, loc *time.Location) int {
	ty, tm, td := t.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()
	from := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	to := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / day)
}

func unitPhrase(r *i18n.Resolver, units unitMessages, abs time.Duration) string {
	switch {
	case abs < minute:
		return r.Resolve(units.seconds, i18n.Values{"number": int64(abs / second)})
	case abs < hour:
		return r.Resolve(units.minutes, i18n.Values{"number": int64(abs / minute)})
	case abs < day:
		return r.Resolve(units.hours, i18n.Values{"number": int64(abs / hour)})
	default:
		return r.Resolve(units.days, i18n.Values{"number": int64(abs / day)})
	}
}
