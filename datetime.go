package defaultjson

import (
	"fmt"
	"time"
)

// ISO-8601 extended layouts for the text forms of date, time and timestamp
// defaults. Fractional seconds are optional on input and written only when
// non-zero, at microsecond resolution.
const (
	isoDateLayout        = "2006-01-02"
	isoTimeLayout        = "15:04:05.999999"
	isoTimestampLayout   = "2006-01-02T15:04:05.999999"
	isoTimestampTzLayout = "2006-01-02T15:04:05.999999Z07:00"
)

const (
	microsPerSecond = int64(1_000_000)
	secondsPerDay   = int64(86_400)
)

func isoDateToDays(s string) (int32, error) {
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return 0, err
	}
	return int32(t.Unix() / secondsPerDay), nil
}

func daysToISODate(days int32) string {
	t := time.Unix(int64(days)*secondsPerDay, 0).UTC()
	return t.Format(isoDateLayout)
}

func isoTimeToMicros(s string) (int64, error) {
	t, err := time.Parse(isoTimeLayout, s)
	if err != nil {
		return 0, err
	}
	sec := int64(t.Hour())*3600 + int64(t.Minute())*60 + int64(t.Second())
	return sec*microsPerSecond + int64(t.Nanosecond())/1000, nil
}

func microsToISOTime(us int64) string {
	frac := us % microsPerSecond
	sec := us / microsPerSecond
	base := fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec/60)%60, sec%60)
	if frac != 0 {
		base += fmt.Sprintf(".%06d", frac)
	}
	return base
}

func isoTimestampToMicros(s string, adjustToUTC bool) (int64, error) {
	layout := isoTimestampLayout
	if adjustToUTC {
		layout = isoTimestampTzLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, err
	}
	// Unix() floors, Nanosecond() is the non-negative offset within the
	// second, so this stays exact on either side of the epoch.
	return t.Unix()*microsPerSecond + int64(t.Nanosecond())/1000, nil
}

func microsToISOTimestamp(us int64, adjustToUTC bool) string {
	t := time.Unix(us/microsPerSecond, (us%microsPerSecond)*1000).UTC()
	base := t.Format(isoTimestampLayout)
	if adjustToUTC {
		return base + "+00:00"
	}
	return base
}
