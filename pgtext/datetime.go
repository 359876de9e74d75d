package pgtext

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The range of years the date and timestamp parsers accept. Formatting a year
// outside it produces text no parser reads back.
const (
	MinYear = 1
	MaxYear = 294276
)

// parsedTimestamp is the result of the grammar shared by the date and time
// parsers:
//
//	<timestamp> ::= <date> [ (<space> | T) <time> [ <zone> ] ]
//	<date>      ::= <years> - <months> - <days>
//	<time>      ::= <hours> : <minutes> [ : <seconds> [ . <fraction> ] ]
//	<zone>      ::= Z | UTC | GMT | <sign> <hours> [ [:] <minutes> ] [ . <fraction> ]
//
// A fraction after the zone is the fractional seconds of the time, which is
// where FormatTimestamptz puts it.
type parsedTimestamp struct {
	year   int
	month  time.Month
	day    int
	clock  time.Duration // since midnight
	offset int           // seconds east of UTC
}

func (p parsedTimestamp) date() time.Time {
	return time.Date(p.year, p.month, p.day, 0, 0, 0, 0, time.UTC)
}

func parseTimestampString(s string) (parsedTimestamp, error) {
	if s == "" {
		return parsedTimestamp{}, errors.New("timestamp string is empty")
	}

	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, "epoch") {
		return parsedTimestamp{year: 1970, month: time.January, day: 1}, nil
	}

	end := strings.IndexAny(trimmed, " T")
	if end < 0 {
		end = len(trimmed)
	}

	var p parsedTimestamp
	var err error
	p.year, p.month, p.day, err = parseDatePart(trimmed[:end])
	if err != nil {
		return parsedTimestamp{}, err
	}

	rest := strings.TrimSpace(trimmed[end:])
	if strings.HasPrefix(rest, "T") {
		rest = rest[1:]
	}
	if rest == "" {
		return p, nil
	}

	zoneStart := strings.IndexFunc(rest, func(r rune) bool {
		return !(r >= '0' && r <= '9') && r != ':' && r != '.'
	})
	body, zone := rest, ""
	if zoneStart >= 0 {
		body, zone = strings.TrimSpace(rest[:zoneStart]), strings.TrimSpace(rest[zoneStart:])
	}

	var hasFraction bool
	p.clock, hasFraction, err = parseClock(body)
	if err != nil {
		return parsedTimestamp{}, err
	}

	if zone != "" {
		offset, fraction, err := parseZone(zone)
		if err != nil {
			return parsedTimestamp{}, err
		}
		if fraction != "" {
			if hasFraction {
				return parsedTimestamp{}, fmt.Errorf("unexpected fractional seconds after time zone %q", zone)
			}
			nsec, err := parseFraction(fraction)
			if err != nil {
				return parsedTimestamp{}, err
			}
			p.clock += time.Duration(nsec)
		}
		p.offset = offset
	}

	return p, nil
}

func parseDatePart(s string) (int, time.Month, int, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid date %q: expected <years>-<months>-<days>", s)
	}

	year, err := parseDigits(parts[0], "year")
	if err != nil {
		return 0, 0, 0, err
	}
	month, err := parseDigits(parts[1], "month")
	if err != nil {
		return 0, 0, 0, err
	}
	day, err := parseDigits(parts[2], "day")
	if err != nil {
		return 0, 0, 0, err
	}

	if year < MinYear || year > MaxYear {
		return 0, 0, 0, fmt.Errorf("year %d is out of range", year)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month %d is out of range", month)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if day < 1 || t.Day() != day || t.Month() != time.Month(month) {
		return 0, 0, 0, fmt.Errorf("day %d is out of range for month %d", day, month)
	}

	return year, time.Month(month), day, nil
}

// parseClock parses <hours>:<minutes>[:<seconds>[.<fraction>]].
func parseClock(s string) (d time.Duration, hasFraction bool, err error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false, fmt.Errorf("invalid time %q: expected <hours>:<minutes>:<seconds>", s)
	}

	hour, err := parseDigits(parts[0], "hour")
	if err != nil {
		return 0, false, err
	}
	minute, err := parseDigits(parts[1], "minute")
	if err != nil {
		return 0, false, err
	}

	var second, nsec int
	if len(parts) == 3 {
		secondText, fraction, found := strings.Cut(parts[2], ".")
		second, err = parseDigits(secondText, "second")
		if err != nil {
			return 0, false, err
		}
		if found {
			nsec, err = parseFraction(fraction)
			if err != nil {
				return 0, false, err
			}
			hasFraction = true
		}
	}

	if hour > 23 {
		return 0, false, fmt.Errorf("hour %d is out of range", hour)
	}
	if minute > 59 {
		return 0, false, fmt.Errorf("minute %d is out of range", minute)
	}
	if second > 59 {
		return 0, false, fmt.Errorf("second %d is out of range", second)
	}

	d = time.Duration(hour)*time.Hour +
		time.Duration(minute)*time.Minute +
		time.Duration(second)*time.Second +
		time.Duration(nsec)
	return d, hasFraction, nil
}

// parseFraction converts the digits after a decimal point into nanoseconds.
// Digits beyond nanosecond precision are dropped.
func parseFraction(s string) (int, error) {
	if s == "" {
		return 0, errors.New("missing fractional seconds")
	}
	var nsec int
	for i := 0; i < 9; i++ {
		nsec *= 10
		if i < len(s) {
			c := s[i]
			if c < '0' || c > '9' {
				return 0, fmt.Errorf("invalid fractional seconds %q", s)
			}
			nsec += int(c - '0')
		}
	}
	for i := 9; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid fractional seconds %q", s)
		}
	}
	return nsec, nil
}

// parseZone returns the offset in seconds east of UTC and any trailing
// fractional seconds digits.
func parseZone(s string) (offset int, fraction string, err error) {
	switch strings.ToUpper(s) {
	case "Z", "UTC", "GMT":
		return 0, "", nil
	}

	var sign int
	switch s[0] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return 0, "", fmt.Errorf("invalid time zone %q", s)
	}

	body, fraction, _ := strings.Cut(s[1:], ".")
	var hours, minutes int
	if h, m, found := strings.Cut(body, ":"); found {
		if hours, err = parseDigits(h, "time zone hour"); err != nil {
			return 0, "", err
		}
		if minutes, err = parseDigits(m, "time zone minute"); err != nil {
			return 0, "", err
		}
	} else {
		switch len(body) {
		case 1, 2:
			hours, err = parseDigits(body, "time zone hour")
		case 4:
			if hours, err = parseDigits(body[:2], "time zone hour"); err == nil {
				minutes, err = parseDigits(body[2:], "time zone minute")
			}
		default:
			err = fmt.Errorf("invalid time zone %q", s)
		}
		if err != nil {
			return 0, "", err
		}
	}

	if minutes > 59 {
		return 0, "", fmt.Errorf("time zone minute %d is out of range", minutes)
	}

	return sign * (hours*3600 + minutes*60), fraction, nil
}

func parseDigits(s, field string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("missing %s", field)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid %s %q", field, s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", field, s)
	}
	return n, nil
}

// ParseDate parses a date. Any time or zone component is ignored. The
// literal "epoch" is 1970-01-01. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	p, err := parseTimestampString(s)
	if err != nil {
		return time.Time{}, newParseError("DATE", s, err)
	}
	return p.date(), nil
}

// FormatDate writes the date part of d as YYYY-MM-DD.
func FormatDate(buf FormatBuffer, d time.Time) Nestable {
	appendDate(buf, d.Year(), d.Month(), d.Day())
	// This may be overly conservative; dates may never contain list special
	// characters.
	return NestableMayNeedEscaping
}

// ParseTime parses a time of day, <hours>:<minutes>[:<seconds>[.<fraction>]],
// into the duration since midnight.
func ParseTime(s string) (time.Duration, error) {
	d, _, err := parseClock(strings.TrimSpace(s))
	if err != nil {
		return 0, newParseError("TIME", s, err)
	}
	return d, nil
}

// FormatTime writes a time of day as HH:MM:SS with a fractional seconds
// suffix when t is not a whole second.
func FormatTime(buf FormatBuffer, t time.Duration) Nestable {
	appendClock(buf, t)
	return NestableMayNeedEscaping
}

// ParseTimestamp parses a timestamp without time zone. A zone in the input is
// validated but otherwise ignored. The result is in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	p, err := parseTimestampString(s)
	if err != nil {
		return time.Time{}, newParseError("TIMESTAMP", s, err)
	}
	return p.date().Add(p.clock), nil
}

// FormatTimestamp writes the wall clock of ts as YYYY-MM-DD HH:MM:SS with a
// fractional seconds suffix. The location of ts is ignored.
func FormatTimestamp(buf FormatBuffer, ts time.Time) Nestable {
	appendDate(buf, ts.Year(), ts.Month(), ts.Day())
	buf.WriteByte(' ')
	appendClock(buf, wallClock(ts))
	return NestableMayNeedEscaping
}

// ParseTimestamptz parses a timestamp with time zone. The zone offset is
// applied to the local date and time to produce a UTC instant; an input
// without a zone is taken to be UTC.
func ParseTimestamptz(s string) (time.Time, error) {
	p, err := parseTimestampString(s)
	if err != nil {
		return time.Time{}, newParseError("TIMESTAMPTZ", s, err)
	}
	if p.offset <= -86400 || p.offset >= 86400 {
		return time.Time{}, newParseError("TIMESTAMPTZ", s, errors.New("invalid tz conversion"))
	}
	local := p.date().Add(p.clock)
	return local.Add(-time.Duration(p.offset) * time.Second), nil
}

// FormatTimestamptz writes ts in UTC as YYYY-MM-DD HH:MM:SS+00 followed by
// the fractional seconds suffix.
func FormatTimestamptz(buf FormatBuffer, ts time.Time) Nestable {
	ts = ts.UTC()
	appendDate(buf, ts.Year(), ts.Month(), ts.Day())
	buf.WriteByte(' ')
	appendClock(buf, wallClock(ts).Truncate(time.Second))
	buf.WriteString("+00")
	formatNanos(buf, ts.Nanosecond())
	return NestableMayNeedEscaping
}

func wallClock(ts time.Time) time.Duration {
	return time.Duration(ts.Hour())*time.Hour +
		time.Duration(ts.Minute())*time.Minute +
		time.Duration(ts.Second())*time.Second +
		time.Duration(ts.Nanosecond())
}

func appendDate(buf FormatBuffer, year int, month time.Month, day int) {
	appendPadded(buf, year, 4)
	buf.WriteByte('-')
	appendPadded(buf, int(month), 2)
	buf.WriteByte('-')
	appendPadded(buf, day, 2)
}

func appendClock(buf FormatBuffer, d time.Duration) {
	appendPadded(buf, int(d/time.Hour), 2)
	buf.WriteByte(':')
	appendPadded(buf, int(d/time.Minute%60), 2)
	buf.WriteByte(':')
	appendPadded(buf, int(d/time.Second%60), 2)
	formatNanos(buf, int(d%time.Second))
}

// formatNanos writes nanos as a fractional seconds suffix with trailing zeros
// removed. Nothing is written for zero.
func formatNanos(buf FormatBuffer, nanos int) {
	if nanos <= 0 {
		return
	}
	width := 9
	for nanos%10 == 0 {
		width--
		nanos /= 10
	}
	buf.WriteByte('.')
	appendPadded(buf, nanos, width)
}

func appendPadded(buf FormatBuffer, n, width int) {
	var scratch [20]byte
	digits := strconv.AppendInt(scratch[:0], int64(n), 10)
	for i := len(digits); i < width; i++ {
		buf.WriteByte('0')
	}
	buf.Write(digits)
}
