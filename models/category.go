package models

import (
	"database/sql/driver"
	"fmt"
)

// Category is a reminder rule type. The same value is used by eligibility,
// rendering, the sent log and month aggregation.
type Category string

const (
	CategoryBirthday       Category = "BIRTHDAY"
	CategoryShakenTwoMonth Category = "SHAKEN_2M"
	CategoryShakenOneWeek  Category = "SHAKEN_1W"
	CategoryInspection     Category = "INSPECTION_1M"
	CategoryCustom         Category = "CUSTOM"
)

// Categories lists every category in hit order.
var Categories = []Category{
	CategoryBirthday,
	CategoryShakenTwoMonth,
	CategoryShakenOneWeek,
	CategoryInspection,
	CategoryCustom,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryBirthday, CategoryShakenTwoMonth, CategoryShakenOneWeek, CategoryInspection, CategoryCustom:
		return true
	}
	return false
}

// ParseCategory returns an error for anything outside the five known categories.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown reminder category %q", s)
	}
	return c, nil
}

func (c Category) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown reminder category %q", string(c))
	}
	return string(c), nil
}

func (c *Category) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*c = Category(v)
	case []byte:
		*c = Category(v)
	default:
		return fmt.Errorf("cannot scan %T into Category", value)
	}
	return nil
}
