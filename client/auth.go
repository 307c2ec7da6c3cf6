package client

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultSessionURL = "https://sessionserver.mojang.com/session/minecraft/join"
	DefaultProfileURL = "https://api.minecraftservices.com/minecraft/profile"
)

// ServerHash is the digest the session service expects for a login: the
// SHA-1 of the server id, the shared secret and the server's public key,
// printed as a signed hexadecimal number.
func ServerHash(serverID string, secret, publicKey []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(secret)
	h.Write(publicKey)
	sum := h.Sum(nil)

	n := new(big.Int).SetBytes(sum)
	if sum[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(sum))*8))
	}
	return n.Text(16)
}

// SessionJoiner tells the session service that the account is joining a
// server, so the server can verify it.
type SessionJoiner interface {
	// Profile returns the account's name and id.
	Profile(ctx context.Context) (name string, id uuid.UUID, err error)
	Join(ctx context.Context, id uuid.UUID, serverHash string) error
}

// APIError is a failed request to a Mojang service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: mojang api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("client: mojang api: %d: %s", e.Status, e.Message)
}

// MojangJoiner uses the Mojang session server with a Minecraft access
// token. Empty URLs mean the public services.
type MojangJoiner struct {
	AccessToken string
	HTTP        *http.Client
	SessionURL  string
	ProfileURL  string
}

type joinRequest struct {
	AccessToken     string `json:"accessToken"`
	SelectedProfile string `json:"selectedProfile"`
	ServerID        string `json:"serverId"`
}

func (m *MojangJoiner) Profile(ctx context.Context) (string, uuid.UUID, error) {
	url := m.ProfileURL
	if url == "" {
		url = DefaultProfileURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", uuid.Nil, err
	}
	req.Header.Set("Authorization", "Bearer "+m.AccessToken)
	body, err := m.do(req, http.StatusOK)
	if err != nil {
		return "", uuid.Nil, err
	}

	var data struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", uuid.Nil, fmt.Errorf("client: profile: %w", err)
	}
	id, err := uuid.Parse(data.ID)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("client: profile id %q: %w", data.ID, err)
	}
	return data.Name, id, nil
}

func (m *MojangJoiner) Join(ctx context.Context, id uuid.UUID, serverHash string) error {
	url := m.SessionURL
	if url == "" {
		url = DefaultSessionURL
	}
	payload, err := json.Marshal(joinRequest{
		AccessToken:     m.AccessToken,
		SelectedProfile: strings.ReplaceAll(id.String(), "-", ""),
		ServerID:        serverHash,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = m.do(req, http.StatusNoContent, http.StatusOK)
	return err
}

func (m *MojangJoiner) do(req *http.Request, ok ...int) ([]byte, error) {
	client := m.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	for _, status := range ok {
		if resp.StatusCode == status {
			return body, nil
		}
	}

	var data struct {
		Error        string `json:"error"`
		ErrorMessage string `json:"errorMessage"`
	}
	json.Unmarshal(body, &data)
	msg := data.ErrorMessage
	if msg == "" {
		msg = data.Error
	}
	return nil, &APIError{Status: resp.StatusCode, Message: msg}
}
