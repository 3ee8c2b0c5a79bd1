package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestFeeUnmarshal(t *testing.T) {
	var courses []Course
	raw := `[{"name":"B.Tech","trades":[{"name":"CSE","fees":"1,20,000"},{"name":"ME","fees":95000},{"name":"CE","fees":null},{"name":"EE"}]}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &courses))

	trades := courses[0].Trades
	assert.Equal(t, Fee("1,20,000"), trades[0].Fees)
	assert.Equal(t, Fee("95000"), trades[1].Fees)
	assert.Equal(t, Fee(""), trades[2].Fees)
	assert.Equal(t, Fee(""), trades[3].Fees)

	var fee Fee
	assert.Error(t, json.Unmarshal([]byte(`{"amount":1}`), &fee))
}

func TestTradeFees(t *testing.T) {
	university := University{
		Courses: datatypes.JSONSlice[Course]{
			{Name: "B.Tech", Trades: []Trade{{Name: "CSE", Fees: "1,20,000"}, {Name: "ME"}}},
			{Name: "MBA"},
		},
	}

	tests := []struct {
		course, trade, want string
	}{
		{"B.Tech", "CSE", "1,20,000"},
		{"B.Tech", "ME", FeesNotAvailable},
		{"B.Tech", "Civil", FeesNotAvailable},
		{"MBA", "Finance", FeesNotAvailable},
		{"b.tech", "CSE", FeesNotAvailable},
		{"PhD", "CSE", FeesNotAvailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, university.TradeFees(tt.course, tt.trade), "%s/%s", tt.course, tt.trade)
	}
}

func TestUniversityMarshalFlattensAttributes(t *testing.T) {
	university := University{
		ID:         "u1",
		Name:       "Alpha",
		Address:    "Indore",
		Attributes: datatypes.JSONMap{"website": "https://alpha.example", "name": "shadowed"},
	}

	raw, err := json.Marshal(university)
	require.NoError(t, err)

	doc := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "https://alpha.example", doc["website"])
	assert.Equal(t, "Alpha", doc["name"])
	assert.NotContains(t, doc, "Attributes")
	assert.NotContains(t, doc, "courses")
}

func TestProfileMarshalFlattensAttributes(t *testing.T) {
	raw, err := json.Marshal(Profile{ID: "p1", FullName: "Asha", Attributes: datatypes.JSONMap{"city": "Pune"}})
	require.NoError(t, err)

	doc := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "Pune", doc["city"])
	assert.Equal(t, "p1", doc["id"])
}

func TestApplicationStatusIsValid(t *testing.T) {
	for _, status := range ApplicationStatuses {
		assert.True(t, status.IsValid(), status)
	}
	assert.False(t, ApplicationStatus("Bogus").IsValid())
	assert.False(t, ApplicationStatus("pending").IsValid())
	assert.False(t, ApplicationStatus("").IsValid())
}
