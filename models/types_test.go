package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The credential fields live on Customer so invite consumption can be a
// single document write, which means every handler that serializes a
// customer relies on json:"-" to keep them out of responses.
func TestCustomerJSONOmitsCredentialFields(t *testing.T) {
	expiry := time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC)
	customer := Customer{
		ID:                primitive.NewObjectID(),
		Name:              "Ada Lovelace",
		Email:             "ada@example.com",
		Company:           "Analytical Engines Ltd",
		InviteStatus:      InviteStatusInvited,
		StripeCustomerID:  "cus_123",
		PasswordHash:      "$2a$10$abcdefghijklmnopqrstuv",
		InviteToken:       "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef",
		InviteTokenExpiry: &expiry,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	raw, err := json.Marshal(customer)
	assert.NoError(t, err)

	var payload map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &payload))

	assert.NotContains(t, payload, "passwordHash")
	assert.NotContains(t, payload, "inviteToken")
	assert.NotContains(t, payload, "inviteTokenExpiry")

	assert.Equal(t, "Ada Lovelace", payload["name"])
	assert.Equal(t, "ada@example.com", payload["email"])
	assert.Equal(t, string(InviteStatusInvited), payload["inviteStatus"])
}

// The redaction holds through the response envelope: wrapping the customer
// the way handlers do must not resurrect the hidden fields.
func TestCustomerJSONOmitsCredentialFieldsInEnvelope(t *testing.T) {
	customer := Customer{
		Name:         "Grace Hopper",
		Email:        "grace@example.com",
		InviteStatus: InviteStatusSignedUp,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}

	raw, err := json.Marshal(map[string]interface{}{
		"success": true,
		"data":    customer,
	})
	assert.NoError(t, err)

	body := string(raw)
	assert.NotContains(t, body, "passwordHash")
	assert.NotContains(t, body, "$2a$10$")
	assert.Contains(t, body, `"email":"grace@example.com"`)
}

func TestAdminUserJSONOmitsPassword(t *testing.T) {
	raw, err := json.Marshal(AdminUser{
		Name:     "admin",
		Password: "$2a$10$abcdefghijklmnopqrstuv",
	})
	assert.NoError(t, err)

	var payload map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &payload))
	assert.NotContains(t, payload, "password")
	assert.Equal(t, "admin", payload["name"])
}
