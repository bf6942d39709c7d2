package memberapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Member is the API's representation of an account.
type Member struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	Roles       []string `json:"roles"`
}

// CreateMemberInput is the payload for member creation. Creation is a
// public endpoint, so no token is attached.
type CreateMemberInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// UpdateMemberInput patches a member. Nil fields are left untouched.
type UpdateMemberInput struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Password    *string `json:"password,omitempty"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer token. The API expects the
// OAuth-style form encoding with the email in the username field.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", "", strings.NewReader(form.Encode()),
		"application/x-www-form-urlencoded", &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *Client) CreateMember(ctx context.Context, input CreateMemberInput) (*Member, error) {
	var m Member
	if err := c.postJSON(ctx, "/api/members", "", input, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) ListMembers(ctx context.Context, token string) ([]Member, error) {
	var members []Member
	if err := c.do(ctx, http.MethodGet, "/api/members", token, nil, "", &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) GetMember(ctx context.Context, token, id string) (*Member, error) {
	var m Member
	if err := c.do(ctx, http.MethodGet, "/api/members/"+url.PathEscape(id), token, nil, "", &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) UpdateMember(ctx context.Context, token, id string, input UpdateMemberInput) (*Member, error) {
	var m Member
	if err := c.sendJSON(ctx, http.MethodPatch, "/api/members/"+url.PathEscape(id), token, input, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) SetRoles(ctx context.Context, token, id string, roles []string) (*Member, error) {
	var m Member
	if err := c.sendJSON(ctx, http.MethodPut, "/api/members/"+url.PathEscape(id)+"/roles", token, roles, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) DeleteMember(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/members/"+url.PathEscape(id), token, nil, "", nil)
}
