package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// FeesNotAvailable is recorded when a course/trade has no known fee.
const FeesNotAvailable = "N/A"

// Fee is a trade fee. Clients send it either as a string ("1,20,000/yr")
// or as a bare number; both are kept as text.
type Fee string

// UnmarshalJSON accepts a JSON string, number or null.
func (f *Fee) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Fee(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*f = Fee(n.String())
	return nil
}

// Trade is a specialization offered within a course
type Trade struct {
	Name string `json:"name"`
	Fees Fee    `json:"fees,omitempty"`
}

// Course is a program offered by a university, with its trades
type Course struct {
	Name   string  `json:"name"`
	Trades []Trade `json:"trades,omitempty"`
}

// University represents an institution listed on the platform
type University struct {
	ID         string                      `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name       string                      `gorm:"not null" json:"name"`
	Address    string                      `gorm:"type:text;not null" json:"address"`
	Location   string                      `gorm:"type:varchar(255);index" json:"location,omitempty"`
	Type       string                      `gorm:"type:varchar(100);index" json:"type,omitempty"`
	About      string                      `gorm:"type:text" json:"about,omitempty"`
	Rating     *float64                    `gorm:"index" json:"rating,omitempty"`
	Courses    datatypes.JSONSlice[Course] `gorm:"type:jsonb" json:"courses,omitempty"`
	Attributes datatypes.JSONMap           `gorm:"type:jsonb" json:"-"` // extra listing fields (images, website, ...)
	CreatedAt  time.Time                   `json:"createdAt"`
	UpdatedAt  time.Time                   `json:"updatedAt"`
}

// TableName specifies the table name for University
func (University) TableName() string {
	return "universities"
}

type universityDocument University

// MarshalJSON renders the university as a single flat document.
func (u University) MarshalJSON() ([]byte, error) {
	return flattenDocument(universityDocument(u), u.Attributes)
}

// TradeFees returns the fee of the named trade within the named course,
// or FeesNotAvailable when either is missing or the fee is empty.
func (u University) TradeFees(courseName, tradeName string) string {
	for _, course := range u.Courses {
		if course.Name != courseName {
			continue
		}
		for _, trade := range course.Trades {
			if trade.Name == tradeName {
				if trade.Fees == "" {
					return FeesNotAvailable
				}
				return string(trade.Fees)
			}
		}
		return FeesNotAvailable
	}
	return FeesNotAvailable
}
