package breakingnews

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"newspulse-backend/pkg/fcm"

	firebase "firebase.google.com/go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) PushGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: "newspulse-test"},
		option.WithEndpoint(srv.URL), option.WithoutAuthentication())
	require.NoError(t, err)
	client, err := fcm.NewClient(ctx, app)
	require.NoError(t, err)
	return NewFCMGateway(client)
}

func TestFCMGateway_UnregisteredTokenMapsToTokenInvalid(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND",` +
			`"details":[{"@type":"type.googleapis.com/google.firebase.fcm.v1.FcmError","errorCode":"UNREGISTERED"}]}}`))
	})

	err := gw.Send(context.Background(), Notification{TargetToken: "stale", Title: "t", Body: "b"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}

func TestFCMGateway_InvalidArgumentIsNotTokenInvalid(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad field","status":"INVALID_ARGUMENT",` +
			`"details":[{"@type":"type.googleapis.com/google.firebase.fcm.v1.FcmError","errorCode":"INVALID_ARGUMENT"}]}}`))
	})

	err := gw.Send(context.Background(), Notification{TargetToken: "tok", Title: "t", Body: "b"})

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTokenInvalid))
}

func TestFCMGateway_PassesImageAndLink(t *testing.T) {
	var payload struct {
		Message struct {
			Notification struct {
				Image string `json:"image"`
			} `json:"notification"`
			Data map[string]string `json:"data"`
		} `json:"message"`
	}
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"projects/newspulse-test/messages/7"}`))
	})

	n := BuildNotification(Headline{
		Title: "Eclipse tonight",
		URL:   "https://news.example/eclipse",
		Image: "https://img.example/eclipse.jpg",
	}, "tok-1")
	require.NoError(t, gw.Send(context.Background(), n))

	assert.Equal(t, "https://img.example/eclipse.jpg", payload.Message.Notification.Image)
	assert.Equal(t, "https://news.example/eclipse", payload.Message.Data["click_action"])
}
