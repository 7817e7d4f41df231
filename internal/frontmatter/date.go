package frontmatter

import "fmt"

// CalendarDate is a validated calendar date. The zero value is not a valid date.
type CalendarDate struct {
	Year  int32
	Month int // 1..12
	Day   int // 1..daysInMonth(Year, Month)
}

// ParseDate parses a strict YYYY-MM-DD literal into a CalendarDate.
//
// The literal must be exactly ten bytes with dashes at fixed positions and
// numeric fields. Month and day ranges are validated against the calendar,
// honoring leap years with the 4/100/400 rule.
func ParseDate(s string) (CalendarDate, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return CalendarDate{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	year, ok := parseDigits(s[0:4])
	if !ok {
		return CalendarDate{}, fmt.Errorf("%w: bad year in %q", ErrInvalidDate, s)
	}
	month, ok := parseDigits(s[5:7])
	if !ok || month < 1 || month > 12 {
		return CalendarDate{}, fmt.Errorf("%w: bad month in %q", ErrInvalidDate, s)
	}
	day, ok := parseDigits(s[8:10])
	if !ok || day < 1 || day > daysInMonth(int32(year), month) {
		return CalendarDate{}, fmt.Errorf("%w: bad day in %q", ErrInvalidDate, s)
	}
	return CalendarDate{Year: int32(year), Month: month, Day: day}, nil
}

// Compare orders dates by (year, month, day). It returns -1, 0, or 1.
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(int(d.Year), int(o.Year))
	case d.Month != o.Month:
		return cmpInt(d.Month, o.Month)
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Before reports whether d is strictly earlier than o.
func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }

// String renders the date back in YYYY-MM-DD form.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Weekday returns the day of week for d, 0 = Sunday.
//
// Uses Sakamoto's variant of the Gauss/Zeller congruence so the result does
// not depend on the system time zone or locale.
func (d CalendarDate) Weekday() int {
	t := [12]int{0, 3, 2, 5, 0, 3, 5, 1, 4, 6, 2, 4}
	y := int(d.Year)
	if d.Month < 3 {
		y--
	}
	w := (y + y/4 - y/100 + y/400 + t[d.Month-1] + d.Day) % 7
	if w < 0 {
		w += 7
	}
	return w
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// RFC822 renders the date at midnight UTC in the RFC 822 form RSS expects,
// e.g. "Mon, 01 Dec 2025 00:00:00 +0000".
func (d CalendarDate) RFC822() string {
	return fmt.Sprintf("%s, %02d %s %04d 00:00:00 +0000",
		weekdayNames[d.Weekday()], d.Day, monthNames[d.Month-1], d.Year)
}

func isLeapYear(year int32) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year int32, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

func parseDigits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
