package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeFormat канонический формат времени слота (HH:MM:SS)
const TimeFormat = "15:04:05"

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается, когда строка не является временем суток
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// inputLayouts допустимые форматы входного времени (24-часовой и 12-часовой)
var inputLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
	"3:04PM",
}

// TimeString время суток без даты и часового пояса в каноническом виде "HH:MM:SS"
type TimeString string

// NewTimeString берёт время суток из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d:00", t.Hour(), t.Minute()))
}

// NewTimeStringFromString разбирает строку времени и приводит её к каноническому виду
func NewTimeStringFromString(s string) (TimeString, error) {
	return NormalizeTime(s)
}

// NewTimeStringFromMinutes строит время из количества минут от полуночи (по модулю суток)
func NewTimeStringFromMinutes(minutes int) TimeString {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return TimeString(fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60))
}

// NormalizeTime приводит отображаемое время ("08:00 AM", "9:05 pm", "14:00") к виду "HH:MM:SS".
// Чистая функция: для любой строки возвращает либо каноническое время, либо ErrInvalidTimeString.
func NormalizeTime(display string) (TimeString, error) {
	value := strings.ToUpper(strings.TrimSpace(display))
	if value == "" {
		return "", ErrInvalidTimeString
	}

	for _, layout := range inputLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return TimeString(t.Format(TimeFormat)), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, display)
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что значение в каноническом формате
func (t TimeString) Validate() error {
	if _, err := time.Parse(TimeFormat, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes прибавляет минуты с переходом через полночь (23:30 + 60 = 00:30)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes), nil
}

// IsBefore строго раньше other (невалидные значения сравниваются как строки)
func (t TimeString) IsBefore(other TimeString) bool {
	return t.compare(other) < 0
}

// IsAfter строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.compare(other) > 0
}

// Equal совпадает ли время с other
func (t TimeString) Equal(other TimeString) bool {
	return t.compare(other) == 0
}

func (t TimeString) compare(other TimeString) int {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return strings.Compare(string(t), string(other))
	}
	return a - b
}

// Value реализует driver.Valuer для записи в колонку TIME
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner: lib/pq отдаёт TIME как time.Time, остальные драйверы - строкой
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = TimeString(v.Format(TimeFormat))
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("types: cannot scan %T into TimeString", src)
	}
}

func (t *TimeString) scanString(s string) error {
	normalized, err := NormalizeTime(s)
	if err != nil {
		return err
	}
	*t = normalized
	return nil
}
