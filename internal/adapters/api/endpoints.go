package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
)

type Inventories struct {
	*Resource[domain.Inventory]
}

var _ ports.InventoryMover = (*Inventories)(nil)

type moveItemRequest struct {
	TargetInventoryID string `json:"targetInventoryId"`
	Quantity          int    `json:"quantity"`
}

func (i *Inventories) MoveItem(ctx context.Context, fromID, equipmentID, toID string, quantity int) error {
	endpoint := joinPath("inventory", fromID, "items", equipmentID, "move")
	return i.client.Send(ctx, http.MethodPost, endpoint, moveItemRequest{TargetInventoryID: toID, Quantity: quantity})
}

type Campaigns struct {
	*Resource[domain.Campaign]
}

var _ ports.CampaignRoster = (*Campaigns)(nil)

func (c *Campaigns) AddCharacter(ctx context.Context, campaignID, characterID string) error {
	return c.client.Send(ctx, http.MethodPost, joinPath("campaign", campaignID, "characters", characterID), nil)
}

func (c *Campaigns) RemoveCharacter(ctx context.Context, campaignID, characterID string) error {
	return c.client.Send(ctx, http.MethodDelete, joinPath("campaign", campaignID, "characters", characterID), nil)
}

type Auth struct {
	client *Client
}

var _ ports.AuthBridge = (*Auth)(nil)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	return a.token(ctx, "Auth/login", loginRequest{Username: username, Password: password})
}

func (a *Auth) Register(ctx context.Context, username, email, password string) (string, error) {
	return a.token(ctx, "Auth/register", registerRequest{Username: username, Email: email, Password: password})
}

func (a *Auth) token(ctx context.Context, endpoint string, body any) (string, error) {
	raw, err := a.client.roundTrip(ctx, request{method: http.MethodPost, endpoint: endpoint, body: body, anonymous: true})
	if err != nil {
		return "", err
	}

	resp := decode[tokenResponse](raw)
	if resp == nil || strings.TrimSpace(resp.Token) == "" {
		return "", errors.New("auth response did not include a token")
	}
	return resp.Token, nil
}

type Admin struct {
	client *Client
}

var _ ports.AdminBridge = (*Admin)(nil)

func (a *Admin) CacheInfo(ctx context.Context) (domain.CacheInfo, error) {
	info, err := Do[domain.CacheInfo](ctx, a.client, http.MethodGet, "cache/info", nil)
	if err != nil {
		return domain.CacheInfo{}, err
	}
	if info == nil {
		return domain.CacheInfo{}, nil
	}
	return *info, nil
}

func (a *Admin) ClearCache(ctx context.Context) error {
	return a.client.Send(ctx, http.MethodDelete, "cache", nil)
}

// Backup streams the exported collection into w.
func (a *Admin) Backup(ctx context.Context, collection string, w io.Writer) (int64, error) {
	response, err := a.client.open(ctx, request{method: http.MethodGet, endpoint: joinPath("Backup", collection)})
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()

	n, err := io.Copy(w, response.Body)
	if err != nil {
		return n, fmt.Errorf("write backup: %w", err)
	}
	return n, nil
}

func (a *Admin) Restore(ctx context.Context, collection, filename string, r io.Reader) error {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create upload part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("copy upload: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("close upload: %w", err)
	}

	_, err = a.client.roundTrip(ctx, request{
		method:      http.MethodPost,
		endpoint:    joinPath("Backup", collection, "restore"),
		rawBody:     &body,
		contentType: form.FormDataContentType(),
	})
	return err
}
