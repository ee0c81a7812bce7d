package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want IssueCategory
	}{
		{"road", "Road", CategoryRoad},
		{"garbage", "Garbage", CategoryGarbage},
		{"water", "Water", CategoryWater},
		{"electricity", "Electricity", CategoryElectricity},
		{"other", "Other", CategoryOther},
		{"unknown coerces to other", "Potholes", CategoryOther},
		{"empty coerces to other", "", CategoryOther},
		{"case sensitive", "road", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategory(tt.in))
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   IssueStatus
		wantOK bool
	}{
		{"pending", "Pending", StatusPending, true},
		{"in progress", "In Progress", StatusInProgress, true},
		{"resolved", "Resolved", StatusResolved, true},
		{"unknown rejected", "Closed", "", false},
		{"empty rejected", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseStatus(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleCitizen, ParseRole("citizen"))
	assert.Equal(t, RoleCitizen, ParseRole(""))
	assert.Equal(t, RoleCitizen, ParseRole("superuser"))
}

func TestIssueJSONShape(t *testing.T) {
	lat, lng := 6.9271, 79.8612
	creatorID := primitive.NewObjectID()

	issue := Issue{
		ID:          primitive.NewObjectID(),
		Title:       "Pothole on 5th",
		Description: "Large pothole near the junction",
		Category:    CategoryRoad,
		Location:    &Location{Address: "5th Avenue", Lat: &lat, Lng: &lng},
		Status:      StatusPending,
		CreatedBy:   creatorID,
		Creator:     &UserRef{ID: creatorID, Name: "Asha", Email: "asha@example.com"},
		CreatedAt:   time.Now(),
	}

	encoded, err := json.Marshal(issue)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	// The raw object id stays internal; the resolved creator is exposed
	// under createdBy.
	createdBy, ok := decoded["createdBy"].(map[string]interface{})
	require.True(t, ok, "createdBy should be the resolved reference")
	assert.Equal(t, "Asha", createdBy["name"])
	assert.Equal(t, "asha@example.com", createdBy["email"])

	location, ok := decoded["location"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "5th Avenue", location["address"])
	assert.InDelta(t, lat, location["lat"].(float64), 1e-9)
}

func TestIssueJSONOmitsOptionalFields(t *testing.T) {
	issue := Issue{
		ID:          primitive.NewObjectID(),
		Title:       "Streetlight out",
		Description: "Dark corner",
		Category:    CategoryElectricity,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}

	encoded, err := json.Marshal(issue)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	assert.NotContains(t, decoded, "imageUrl")
	assert.NotContains(t, decoded, "location")
}

func TestUserPasswordHashing(t *testing.T) {
	user := User{Name: "Asha", Email: "asha@example.com", Password: "secret123"}

	require.NoError(t, user.HashPassword())
	assert.NotEqual(t, "secret123", user.Password)

	assert.True(t, user.ComparePassword("secret123"))
	assert.False(t, user.ComparePassword("wrong"))
}

func TestUserJSONHidesPassword(t *testing.T) {
	user := User{Name: "Asha", Email: "asha@example.com", Password: "hashed", Role: RoleCitizen}

	encoded, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "hashed")
}
