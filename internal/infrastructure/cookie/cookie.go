// Package cookie adapts the request/response cookie store to the session
// client's read/write contract. Render-style contexts get a read-only view;
// request handlers get a mutable view whose writes land on the same
// response that carries the redirect.
package cookie

import (
	"net/http"
	"time"

	"auth-gate/internal/domain"
)

// Options enumerates the recognized cookie attributes.
type Options struct {
	MaxAge   int
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// Reader reads inbound request cookies.
type Reader interface {
	Get(name string) (string, bool)
}

// Writer extends Reader with cookie mutation. Get reflects writes scheduled
// on the same response, so a value set during a credential exchange is
// visible to later reads within the request.
type Writer interface {
	Reader
	Set(name, value string, opts Options) error
	Remove(name string, opts Options) error
}

// ReadOnlyView exposes request cookies to contexts that must not mutate
// them. Set and Remove report ErrReadOnlyCookieContext; a render context
// cannot finalize a sign-in, that responsibility belongs to a request
// handler holding a MutableView.
type ReadOnlyView struct {
	req *http.Request
}

// NewReadOnlyView wraps the inbound request's cookies.
func NewReadOnlyView(req *http.Request) *ReadOnlyView {
	return &ReadOnlyView{req: req}
}

// Get returns the named request cookie value.
func (v *ReadOnlyView) Get(name string) (string, bool) {
	c, err := v.req.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Set is a documented limitation of the read-only view.
func (v *ReadOnlyView) Set(string, string, Options) error {
	return domain.ErrReadOnlyCookieContext
}

// Remove is a documented limitation of the read-only view.
func (v *ReadOnlyView) Remove(string, Options) error {
	return domain.ErrReadOnlyCookieContext
}

// MutableView reads request cookies and writes Set-Cookie headers onto the
// response. Headers are buffered until the handler writes a status, so
// cookies set during an exchange always travel with the redirect.
type MutableView struct {
	req     *http.Request
	resp    http.ResponseWriter
	pending map[string]string
	removed map[string]bool
}

// NewMutableView wraps a request/response pair.
func NewMutableView(req *http.Request, resp http.ResponseWriter) *MutableView {
	return &MutableView{
		req:     req,
		resp:    resp,
		pending: make(map[string]string),
		removed: make(map[string]bool),
	}
}

// Get returns a pending write when one exists, falling back to the inbound
// request cookie.
func (v *MutableView) Get(name string) (string, bool) {
	if v.removed[name] {
		return "", false
	}
	if value, ok := v.pending[name]; ok {
		return value, true
	}
	c, err := v.req.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Set schedules a cookie on the outgoing response.
func (v *MutableView) Set(name, value string, opts Options) error {
	http.SetCookie(v.resp, &http.Cookie{
		Name:     name,
		Value:    value,
		MaxAge:   opts.MaxAge,
		Path:     opts.Path,
		Domain:   opts.Domain,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
		HttpOnly: true,
	})
	delete(v.removed, name)
	v.pending[name] = value
	return nil
}

// Remove schedules an expired empty-value cookie on the outgoing response.
func (v *MutableView) Remove(name string, opts Options) error {
	http.SetCookie(v.resp, &http.Cookie{
		Name:     name,
		Value:    "",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Path:     opts.Path,
		Domain:   opts.Domain,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
		HttpOnly: true,
	})
	delete(v.pending, name)
	v.removed[name] = true
	return nil
}
