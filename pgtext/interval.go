package pgtext

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgcopy/cast"
)

const (
	microsecondsPerSecond = 1000000
	microsecondsPerMinute = 60 * microsecondsPerSecond
	microsecondsPerHour   = 60 * microsecondsPerMinute
	microsecondsPerDay    = 24 * microsecondsPerHour
	daysPerMonth          = 30
)

// Interval is a PostgreSQL interval. The three fields are kept separate, as
// PostgreSQL does, because the length of a month or a day is not fixed.
type Interval struct {
	Months       int32
	Days         int32
	Microseconds int64
}

func (iv Interval) String() string {
	var buf bytes.Buffer
	FormatInterval(&buf, iv)
	return buf.String()
}

// DateTimeField is a unit of an interval. It is used to interpret numbers in
// interval input that carry no unit of their own.
type DateTimeField int

const (
	FieldMillennium DateTimeField = iota
	FieldCentury
	FieldDecade
	FieldYear
	FieldMonth
	FieldDay
	FieldHour
	FieldMinute
	FieldSecond
	FieldMillisecond
	FieldMicrosecond
)

func (f DateTimeField) String() string {
	switch f {
	case FieldMillennium:
		return "MILLENNIUM"
	case FieldCentury:
		return "CENTURY"
	case FieldDecade:
		return "DECADE"
	case FieldYear:
		return "YEAR"
	case FieldMonth:
		return "MONTH"
	case FieldDay:
		return "DAY"
	case FieldHour:
		return "HOUR"
	case FieldMinute:
		return "MINUTE"
	case FieldSecond:
		return "SECOND"
	case FieldMillisecond:
		return "MILLISECOND"
	case FieldMicrosecond:
		return "MICROSECOND"
	default:
		return fmt.Sprintf("DateTimeField(%d)", int(f))
	}
}

type unitKind int

const (
	unitMonths unitKind = iota
	unitDays
	unitMicroseconds
)

// intervalUnit describes how one unit of a field maps onto Interval.
type intervalUnit struct {
	kind  unitKind
	scale int64
}

func (f DateTimeField) unit() intervalUnit {
	switch f {
	case FieldMillennium:
		return intervalUnit{unitMonths, 12000}
	case FieldCentury:
		return intervalUnit{unitMonths, 1200}
	case FieldDecade:
		return intervalUnit{unitMonths, 120}
	case FieldYear:
		return intervalUnit{unitMonths, 12}
	case FieldMonth:
		return intervalUnit{unitMonths, 1}
	case FieldDay:
		return intervalUnit{unitDays, 1}
	case FieldHour:
		return intervalUnit{unitMicroseconds, microsecondsPerHour}
	case FieldMinute:
		return intervalUnit{unitMicroseconds, microsecondsPerMinute}
	case FieldMillisecond:
		return intervalUnit{unitMicroseconds, 1000}
	case FieldMicrosecond:
		return intervalUnit{unitMicroseconds, 1}
	default:
		return intervalUnit{unitMicroseconds, microsecondsPerSecond}
	}
}

var intervalUnits = map[string]intervalUnit{
	"millennium": FieldMillennium.unit(), "millennia": FieldMillennium.unit(), "mil": FieldMillennium.unit(), "mils": FieldMillennium.unit(),
	"century": FieldCentury.unit(), "centuries": FieldCentury.unit(), "cent": FieldCentury.unit(), "c": FieldCentury.unit(),
	"decade": FieldDecade.unit(), "decades": FieldDecade.unit(), "dec": FieldDecade.unit(), "decs": FieldDecade.unit(),
	"year": FieldYear.unit(), "years": FieldYear.unit(), "yr": FieldYear.unit(), "yrs": FieldYear.unit(), "y": FieldYear.unit(),
	"month": FieldMonth.unit(), "months": FieldMonth.unit(), "mon": FieldMonth.unit(), "mons": FieldMonth.unit(),
	"week": {unitDays, 7}, "weeks": {unitDays, 7}, "w": {unitDays, 7},
	"day": FieldDay.unit(), "days": FieldDay.unit(), "d": FieldDay.unit(),
	"hour": FieldHour.unit(), "hours": FieldHour.unit(), "hr": FieldHour.unit(), "hrs": FieldHour.unit(), "h": FieldHour.unit(),
	"minute": FieldMinute.unit(), "minutes": FieldMinute.unit(), "min": FieldMinute.unit(), "mins": FieldMinute.unit(), "m": FieldMinute.unit(),
	"second": FieldSecond.unit(), "seconds": FieldSecond.unit(), "sec": FieldSecond.unit(), "secs": FieldSecond.unit(), "s": FieldSecond.unit(),
	"millisecond": FieldMillisecond.unit(), "milliseconds": FieldMillisecond.unit(), "ms": FieldMillisecond.unit(), "msec": FieldMillisecond.unit(), "msecs": FieldMillisecond.unit(),
	"microsecond": FieldMicrosecond.unit(), "microseconds": FieldMicrosecond.unit(), "us": FieldMicrosecond.unit(), "usec": FieldMicrosecond.unit(), "usecs": FieldMicrosecond.unit(),
}

var errIntervalRange = errors.New("interval field value out of range")

// ParseInterval parses an interval. Numbers without a unit are seconds.
func ParseInterval(s string) (Interval, error) {
	return ParseIntervalDisambiguated(s, FieldSecond)
}

// ParseIntervalDisambiguated parses an interval, interpreting numbers that
// carry no unit as d.
//
// The input is a sequence of components separated by spaces:
//
//	<number> [<space>] <unit>         e.g. 3 days, 1.5h
//	[-]<hours>:<minutes>[:<seconds>]  e.g. 04:05:06.789
//	[-]<years>-<months>               e.g. 1-2
//	<number>                          interpreted as d
//
// optionally prefixed by @ and suffixed by "ago", which negates the result.
// Fractional values spill into the next smaller field, with a month being 30
// days and a day 24 hours.
func ParseIntervalDisambiguated(s string, d DateTimeField) (Interval, error) {
	iv, err := parseInterval(s, d)
	if err != nil {
		return Interval{}, newParseError("INTERVAL", s, err)
	}
	return iv, nil
}

type intervalAccumulator struct {
	months, days, micros int64
}

func parseInterval(s string, d DateTimeField) (Interval, error) {
	tokens := strings.Fields(s)
	if len(tokens) > 0 && strings.HasPrefix(tokens[0], "@") {
		if tokens[0] = tokens[0][1:]; tokens[0] == "" {
			tokens = tokens[1:]
		}
	}

	var ago bool
	if len(tokens) > 0 && strings.EqualFold(tokens[len(tokens)-1], "ago") {
		ago = true
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) == 0 {
		return Interval{}, errors.New("interval string is empty")
	}

	var acc intervalAccumulator
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if strings.Contains(tok, ":") {
			micros, err := parseIntervalClock(tok)
			if err != nil {
				return Interval{}, err
			}
			if err := acc.addMicros(micros); err != nil {
				return Interval{}, err
			}
			continue
		}

		if months, ok, err := parseYearMonth(tok); ok {
			if err != nil {
				return Interval{}, err
			}
			if err := acc.addMonths(months); err != nil {
				return Interval{}, err
			}
			continue
		}

		numText, unitText := splitNumberUnit(tok)
		if numText == "" {
			return Interval{}, fmt.Errorf("unexpected %q", tok)
		}
		if unitText == "" && i+1 < len(tokens) {
			if _, ok := intervalUnits[strings.ToLower(tokens[i+1])]; ok {
				unitText = tokens[i+1]
				i++
			}
		}

		unit := d.unit()
		if unitText != "" {
			var ok bool
			unit, ok = intervalUnits[strings.ToLower(unitText)]
			if !ok {
				return Interval{}, fmt.Errorf("unknown unit %q", unitText)
			}
		}

		whole, frac, err := parseIntervalNumber(numText)
		if err != nil {
			return Interval{}, err
		}
		if err := acc.add(whole, frac, unit); err != nil {
			return Interval{}, err
		}
	}

	if ago {
		acc.months, acc.days, acc.micros = -acc.months, -acc.days, -acc.micros
	}

	months, err := cast.Int32("interval months", acc.months)
	if err != nil {
		return Interval{}, err
	}
	days, err := cast.Int32("interval days", acc.days)
	if err != nil {
		return Interval{}, err
	}

	return Interval{Months: months, Days: days, Microseconds: acc.micros}, nil
}

func (acc *intervalAccumulator) add(whole int64, frac float64, unit intervalUnit) error {
	product, err := checkedMul(whole, unit.scale)
	if err != nil {
		return err
	}
	scaled := frac * float64(unit.scale)

	switch unit.kind {
	case unitMonths:
		if err := acc.addMonths(product); err != nil {
			return err
		}
		wholeMonths := math.Trunc(scaled)
		if err := acc.addMonths(int64(wholeMonths)); err != nil {
			return err
		}
		return acc.addFractionalDays((scaled - wholeMonths) * daysPerMonth)
	case unitDays:
		if err := acc.addDays(product); err != nil {
			return err
		}
		return acc.addFractionalDays(scaled)
	default:
		if err := acc.addMicros(product); err != nil {
			return err
		}
		return acc.addMicros(int64(math.Round(scaled)))
	}
}

func (acc *intervalAccumulator) addFractionalDays(days float64) error {
	wholeDays := math.Trunc(days)
	if err := acc.addDays(int64(wholeDays)); err != nil {
		return err
	}
	return acc.addMicros(int64(math.Round((days - wholeDays) * microsecondsPerDay)))
}

func (acc *intervalAccumulator) addMonths(n int64) (err error) {
	acc.months, err = checkedAdd(acc.months, n)
	return err
}

func (acc *intervalAccumulator) addDays(n int64) (err error) {
	acc.days, err = checkedAdd(acc.days, n)
	return err
}

func (acc *intervalAccumulator) addMicros(n int64) (err error) {
	acc.micros, err = checkedAdd(acc.micros, n)
	return err
}

func checkedAdd(a, b int64) (int64, error) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, errIntervalRange
	}
	return c, nil
}

func checkedMul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, errIntervalRange
	}
	return c, nil
}

// splitNumberUnit splits a token such as "10s" or "1.5" into its numeric
// prefix and unit suffix.
func splitNumberUnit(tok string) (number, unit string) {
	i := strings.IndexFunc(tok, func(r rune) bool {
		return !(r >= '0' && r <= '9') && r != '.' && r != '-' && r != '+'
	})
	if i < 0 {
		return tok, ""
	}
	return tok[:i], tok[i:]
}

// parseIntervalNumber splits a signed decimal number into its whole part and
// its fractional part. Both carry the sign of the input.
func parseIntervalNumber(s string) (whole int64, frac float64, err error) {
	sign := int64(1)
	body := s
	switch {
	case strings.HasPrefix(body, "-"):
		sign, body = -1, body[1:]
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	}

	wholeText, fracText, _ := strings.Cut(body, ".")
	if wholeText == "" && fracText == "" {
		return 0, 0, fmt.Errorf("invalid number %q", s)
	}
	if wholeText != "" {
		if whole, err = strconv.ParseInt(wholeText, 10, 64); err != nil || strings.ContainsAny(wholeText, "+-") {
			return 0, 0, fmt.Errorf("invalid number %q", s)
		}
	}
	if fracText != "" {
		if strings.ContainsAny(fracText, "+-") {
			return 0, 0, fmt.Errorf("invalid number %q", s)
		}
		if frac, err = strconv.ParseFloat("0."+fracText, 64); err != nil {
			return 0, 0, fmt.Errorf("invalid number %q", s)
		}
	}

	return sign * whole, float64(sign) * frac, nil
}

// parseYearMonth recognizes the [-]<years>-<months> form. ok is false when tok
// does not have that shape at all.
func parseYearMonth(tok string) (months int64, ok bool, err error) {
	body := strings.TrimPrefix(tok, "-")
	years, monthsText, found := strings.Cut(body, "-")
	if !found || years == "" || strings.ContainsFunc(body, func(r rune) bool {
		return !(r >= '0' && r <= '9') && r != '-'
	}) {
		return 0, false, nil
	}

	y, err := parseDigits(years, "years")
	if err != nil {
		return 0, true, err
	}
	m, err := parseDigits(monthsText, "months")
	if err != nil {
		return 0, true, err
	}
	if m > 11 {
		return 0, true, fmt.Errorf("months %d is out of range", m)
	}

	months = int64(y)*12 + int64(m)
	if strings.HasPrefix(tok, "-") {
		months = -months
	}
	return months, true, nil
}

// parseIntervalClock parses [-]<hours>:<minutes>[:<seconds>[.<fraction>]].
// Unlike a time of day, hours are not limited to 23.
func parseIntervalClock(tok string) (int64, error) {
	body := tok
	negative := false
	switch {
	case strings.HasPrefix(body, "-"):
		negative, body = true, body[1:]
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	}

	parts := strings.Split(body, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", tok)
	}

	hours, err := parseDigits(parts[0], "hours")
	if err != nil {
		return 0, err
	}
	minutes, err := parseDigits(parts[1], "minutes")
	if err != nil {
		return 0, err
	}
	if minutes > 59 {
		return 0, fmt.Errorf("minutes %d is out of range", minutes)
	}

	var seconds, nsec int
	if len(parts) == 3 {
		secondsText, fraction, found := strings.Cut(parts[2], ".")
		if seconds, err = parseDigits(secondsText, "seconds"); err != nil {
			return 0, err
		}
		if seconds > 59 {
			return 0, fmt.Errorf("seconds %d is out of range", seconds)
		}
		if found {
			if nsec, err = parseFraction(fraction); err != nil {
				return 0, err
			}
		}
	}

	micros, err := checkedMul(int64(hours), microsecondsPerHour)
	if err != nil {
		return 0, err
	}
	micros, err = checkedAdd(micros, int64(minutes)*microsecondsPerMinute+int64(seconds)*microsecondsPerSecond+int64(math.Round(float64(nsec)/1000)))
	if err != nil {
		return 0, err
	}
	if negative {
		micros = -micros
	}
	return micros, nil
}

// FormatInterval writes iv in PostgreSQL's "postgres" interval style, e.g.
// "1 year 2 mons 3 days 04:05:06.5" or "-1 days +02:00:00".
func FormatInterval(buf FormatBuffer, iv Interval) Nestable {
	isZero, isBefore := true, false

	appendPart := func(v int64, unit string) {
		if v == 0 {
			return
		}
		if !isZero {
			buf.WriteByte(' ')
		}
		if isBefore && v > 0 {
			buf.WriteByte('+')
		}
		buf.WriteString(strconv.FormatInt(v, 10))
		buf.WriteByte(' ')
		buf.WriteString(unit)
		if v != 1 {
			buf.WriteByte('s')
		}
		isBefore = v < 0
		isZero = false
	}

	appendPart(int64(iv.Months/12), "year")
	appendPart(int64(iv.Months%12), "mon")
	appendPart(int64(iv.Days), "day")

	micros := iv.Microseconds
	if isZero || micros != 0 {
		if !isZero {
			buf.WriteByte(' ')
		}
		switch {
		case micros < 0:
			buf.WriteByte('-')
		case isBefore:
			buf.WriteByte('+')
		}

		abs := uint64(micros)
		if micros < 0 {
			abs = uint64(-micros)
		}
		buf.WriteString(zeroPad(abs/microsecondsPerHour, 2))
		buf.WriteByte(':')
		buf.WriteString(zeroPad(abs/microsecondsPerMinute%60, 2))
		buf.WriteByte(':')
		buf.WriteString(zeroPad(abs/microsecondsPerSecond%60, 2))
		formatNanos(buf, int(abs%microsecondsPerSecond)*1000)
	}

	return NestableMayNeedEscaping
}

func zeroPad(n uint64, width int) string {
	s := strconv.FormatUint(n, 10)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}
