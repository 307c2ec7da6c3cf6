package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerHash(t *testing.T) {
	for name, want := range map[string]string{
		"Notch": "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48",
		"jeb_":  "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1",
		"simon": "88e16a1019277b15d58faf0541e11910eb756f6",
	} {
		assert.Equal(t, want, ServerHash(name, nil, nil), name)
	}
	assert.Equal(t, ServerHash("Notch", nil, nil), ServerHash("No", []byte("tc"), []byte("h")))
}

func TestMojangJoiner(t *testing.T) {
	id := uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")
	var joined joinRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"id":"069a79f444e94726a5befca90e38aaf5","name":"Notch","skins":[]}`))
	})
	mux.HandleFunc("/join", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if err := json.NewDecoder(r.Body).Decode(&joined); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if joined.ServerID == "bad" {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"ForbiddenOperationException","errorMessage":"Invalid token."}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	j := &MojangJoiner{AccessToken: "token", SessionURL: srv.URL + "/join", ProfileURL: srv.URL + "/profile", HTTP: srv.Client()}
	ctx := context.Background()

	name, got, err := j.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Notch", name)
	assert.Equal(t, id, got)

	require.NoError(t, j.Join(ctx, id, "-7c9d5b"))
	assert.Equal(t, joinRequest{AccessToken: "token", SelectedProfile: "069a79f444e94726a5befca90e38aaf5", ServerID: "-7c9d5b"}, joined)

	err = j.Join(ctx, id, "bad")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, &APIError{Status: http.StatusForbidden, Message: "Invalid token."}, apiErr)

	j.AccessToken = "expired"
	_, _, err = j.Profile(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "client: mojang api: 401 Unauthorized", apiErr.Error())
}
