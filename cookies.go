package webdriver

import "context"

// GetCookies returns all cookies visible to the current page.
func (s *Session) GetCookies(ctx context.Context) ([]Cookie, error) {
	return do[[]Cookie](ctx, s, getAllCookiesCmd)
}

// GetCookie returns the cookie with the given name. A missing cookie is
// reported by the remote end as ErrNoSuchCookie.
func (s *Session) GetCookie(ctx context.Context, name string) (Cookie, error) {
	return do[Cookie](ctx, s, func(sid string) Command { return getNamedCookieCmd(sid, name) })
}

// AddCookie adds a cookie to the current page's cookie store.
func (s *Session) AddCookie(ctx context.Context, c Cookie) error {
	return s.doVoid(ctx, func(sid string) Command { return addCookieCmd(sid, c) })
}

// DeleteCookie deletes the cookie with the given name. Deleting a cookie
// that does not exist is not an error.
func (s *Session) DeleteCookie(ctx context.Context, name string) error {
	return s.doVoid(ctx, func(sid string) Command { return deleteCookieCmd(sid, name) })
}

// DeleteAllCookies deletes every cookie visible to the current page.
func (s *Session) DeleteAllCookies(ctx context.Context) error {
	return s.doVoid(ctx, deleteAllCookiesCmd)
}
