package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityakashyap5047/Evix/internal/dto"
	"github.com/adityakashyap5047/Evix/pkg/webhook"
)

func newWebhookFixture(t *testing.T) (*MockUserService, *webhook.Verifier, *gin.Engine) {
	t.Helper()
	secret := "whsec_" + base64.StdEncoding.EncodeToString([]byte("test-signing-key"))
	verifier, err := webhook.NewVerifier(secret, webhook.DefaultTolerance)
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}

	users := NewMockUserService()
	handler := NewWebhookHandler(users, verifier)

	router := gin.New()
	router.POST("/webhooks/users", handler.HandleUserEvent)
	return users, verifier, router
}

func signedWebhookRequest(verifier *webhook.Verifier, payload []byte) *http.Request {
	id := "msg_test"
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/users", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhook.HeaderID, id)
	req.Header.Set(webhook.HeaderTimestamp, timestamp)
	req.Header.Set(webhook.HeaderSignature, verifier.Sign(id, timestamp, payload))
	return req
}

func userCreatedPayload() []byte {
	payload, _ := json.Marshal(dto.UserWebhookEvent{
		Type: "user.created",
		Data: dto.WebhookUserData{
			ID:        "ext-new",
			FirstName: "Ada",
			LastName:  "Lovelace",
			EmailAddresses: []dto.WebhookEmailAddress{
				{EmailAddress: "ada@example.com"},
			},
		},
	})
	return payload
}

func TestWebhookHandler_HandleUserEvent(t *testing.T) {
	t.Run("creates the account", func(t *testing.T) {
		users, verifier, router := newWebhookFixture(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedWebhookRequest(verifier, userCreatedPayload()))

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
		}
		if _, err := users.ResolveExternal(context.Background(), "ext-new"); err != nil {
			t.Errorf("account was not provisioned: %v", err)
		}
	})

	t.Run("tampered payload is rejected", func(t *testing.T) {
		_, verifier, router := newWebhookFixture(t)

		// Sign the genuine payload, deliver a modified one
		req := signedWebhookRequest(verifier, userCreatedPayload())
		tampered := bytes.Replace(userCreatedPayload(), []byte("ext-new"), []byte("ext-evil"), 1)
		req.Body = io.NopCloser(bytes.NewReader(tampered))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("missing signature headers", func(t *testing.T) {
		_, _, router := newWebhookFixture(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhooks/users", bytes.NewReader(userCreatedPayload()))
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("stale timestamp is rejected", func(t *testing.T) {
		_, verifier, router := newWebhookFixture(t)

		payload := userCreatedPayload()
		stale := strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)
		req := httptest.NewRequest(http.MethodPost, "/webhooks/users", bytes.NewReader(payload))
		req.Header.Set(webhook.HeaderID, "msg_test")
		req.Header.Set(webhook.HeaderTimestamp, stale)
		req.Header.Set(webhook.HeaderSignature, verifier.Sign("msg_test", stale, payload))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("other event types are acknowledged", func(t *testing.T) {
		_, verifier, router := newWebhookFixture(t)

		payload, _ := json.Marshal(dto.UserWebhookEvent{
			Type: "user.updated",
			Data: dto.WebhookUserData{ID: "ext-new"},
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedWebhookRequest(verifier, payload))

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("missing user id", func(t *testing.T) {
		_, verifier, router := newWebhookFixture(t)

		payload, _ := json.Marshal(dto.UserWebhookEvent{Type: "user.created"})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedWebhookRequest(verifier, payload))

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
