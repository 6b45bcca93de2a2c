package api

import (
	"context"
	"net/url"

	"github.com/atinyakov/storefront/internal/models"
)

// LoginData is the payload of a successful login.
type LoginData struct {
	Token string
}

// Login authenticates with e-mail and password. On success the returned token
// is also attached to every subsequent request. A rejected login is reported
// in the Result, not as an error.
func (c *Client) Login(ctx context.Context, email, password string) (Result[LoginData], error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	var resp struct {
		envelope
		Token string `json:"token"`
	}
	if err := c.post(ctx, "login", form, &resp); err != nil {
		return Result[LoginData]{}, err
	}

	if resp.Success.ok && resp.Token != "" {
		c.SetSessionToken(resp.Token)
		return Result[LoginData]{Success: true, Data: LoginData{Token: resp.Token}}, nil
	}

	msg := resp.message()
	if msg == "" {
		msg = "Login failed"
	}
	return Result[LoginData]{Message: msg}, nil
}

// Register creates a customer account. It does not sign in. Field-level
// validation messages are returned verbatim in Result.Errors.
func (c *Client) Register(ctx context.Context, r models.RegisterRequest) (Ack, error) {
	form := url.Values{}
	form.Set("firstname", r.FirstName)
	form.Set("lastname", r.LastName)
	form.Set("email", r.Email)
	form.Set("telephone", r.Telephone)
	form.Set("password", r.Password)

	var resp envelope
	if err := c.post(ctx, "register", form, &resp); err != nil {
		return Ack{}, err
	}
	return Ack{
		Success: resp.Success.ok,
		Message: resp.message(),
		Errors:  resp.Errors,
	}, nil
}

// Logout ends the server-side session. The local session token is cleared
// whether or not the call succeeds.
func (c *Client) Logout(ctx context.Context) (Ack, error) {
	defer c.SetSessionToken("")

	if err := c.get(ctx, "logout", nil, nil); err != nil {
		return Ack{}, err
	}
	return Ack{Success: true}, nil
}

// Account fetches the signed-in customer's profile.
func (c *Client) Account(ctx context.Context) (Result[models.Customer], error) {
	var resp envelope
	if err := c.get(ctx, "account", nil, &resp); err != nil {
		return Result[models.Customer]{}, err
	}

	res := Result[models.Customer]{Success: resp.Success.ok, Message: resp.message()}
	if res.Success {
		if len(resp.Data) == 0 || string(resp.Data) == "null" {
			res.Success = false
			return res, nil
		}
		if err := decodeInto(resp.Data, &res.Data); err != nil {
			return Result[models.Customer]{}, &TransportError{Endpoint: "account", StatusCode: 200, Err: err}
		}
	}
	return res, nil
}
