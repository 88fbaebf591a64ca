// Package client talks to a widget-remote server.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
)

const widgetsPath = "/v1/widgets"

// Client handles HTTP communication with a widget-remote server.
type Client struct {
	endpoint string
	http     *http.Client
}

// New validates endpoint and returns a client using timeout per request.
func New(endpoint string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: timeout},
	}, nil
}

// Selector picks widgets. Nil fields are not sent.
type Selector struct {
	Label *string
	ID    *string
	Type  *string
}

func (s Selector) encode(q url.Values) {
	if s.Label != nil {
		q.Set("label", *s.Label)
	}
	if s.ID != nil {
		q.Set("id", *s.ID)
	}
	if s.Type != nil {
		q.Set("type", *s.Type)
	}
}

// Action is one remote action.
type Action struct {
	Selector
	Name   string
	Value  *string
	Column *int
}

// Do performs a. A 404 from the server is returned as *HTTPError.
func (c *Client) Do(ctx context.Context, a Action) error {
	q := url.Values{}
	a.Selector.encode(q)
	if a.Name != "" {
		q.Set("action", a.Name)
	}
	if a.Value != nil {
		q.Set("value", *a.Value)
	}
	if a.Column != nil {
		q.Set("column", strconv.Itoa(*a.Column))
	}
	_, err := c.send(ctx, http.MethodPost, widgetsPath, q)
	return err
}

// Widget is one entry of a widget listing.
type Widget struct {
	Class    string
	ID       string
	Label    string
	Kind     string
	Value    string
	Actions  []string
	Items    []string
	Selected []string
}

// Widgets lists the widgets matching s.
func (c *Client) Widgets(ctx context.Context, s Selector) ([]Widget, error) {
	q := url.Values{}
	s.encode(q)
	data, err := c.send(ctx, http.MethodGet, widgetsPath, q)
	if err != nil {
		return nil, err
	}
	out, err := parseWidgets(data)
	if err != nil {
		return nil, &ParseError{Path: widgetsPath, Err: err}
	}
	return out, nil
}

// Version returns the server build version.
func (c *Client) Version(ctx context.Context) (string, error) {
	data, err := c.send(ctx, http.MethodGet, "/version", nil)
	if err != nil {
		return "", err
	}
	v, err := jsonparser.GetString(data, "version")
	if err != nil {
		return "", &ParseError{Path: "/version", Err: err}
	}
	return v, nil
}

func (c *Client) send(ctx context.Context, method, path string, q url.Values) ([]byte, error) {
	target := c.endpoint + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Path: path, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{Path: path, StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// errorMessage extracts the diagnostic from a failure body, which is either
// {"error": "..."} or a plain-text line.
func errorMessage(data []byte) string {
	if msg, err := jsonparser.GetString(data, "error"); err == nil {
		return msg
	}
	return strings.TrimSpace(string(data))
}

func parseWidgets(data []byte) ([]Widget, error) {
	var (
		out     []Widget
		itemErr error
	)
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if err != nil || itemErr != nil {
			return
		}
		if dataType != jsonparser.Object {
			itemErr = fmt.Errorf("unexpected %s in widget list", dataType)
			return
		}
		w := Widget{}
		w.Class, _ = jsonparser.GetString(value, "class")
		w.ID, _ = jsonparser.GetString(value, "id")
		w.Label, _ = jsonparser.GetString(value, "label")
		w.Kind, _ = jsonparser.GetString(value, "kind")
		if raw, vt, _, err := jsonparser.Get(value, "value"); err == nil {
			w.Value = renderValue(raw, vt)
		}
		jsonparser.ArrayEach(value, func(action []byte, _ jsonparser.ValueType, _ int, _ error) {
			w.Actions = append(w.Actions, string(action))
		}, "actions")
		jsonparser.ArrayEach(value, func(item []byte, _ jsonparser.ValueType, _ int, _ error) {
			label, _ := jsonparser.GetString(item, "label")
			w.Items = append(w.Items, label)
			if sel, err := jsonparser.GetBoolean(item, "selected"); err == nil && sel {
				w.Selected = append(w.Selected, label)
			}
		}, "items")
		out = append(out, w)
	})
	if err != nil {
		return nil, err
	}
	if itemErr != nil {
		return nil, itemErr
	}
	return out, nil
}

func renderValue(raw []byte, vt jsonparser.ValueType) string {
	if vt == jsonparser.String {
		if s, err := jsonparser.ParseString(raw); err == nil {
			return s
		}
	}
	return string(raw)
}
