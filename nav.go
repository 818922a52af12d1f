package webdriver

import "context"

// Navigate loads the given URL in the current top-level browsing context.
func (s *Session) Navigate(ctx context.Context, urlstr string) error {
	return s.doVoid(ctx, func(sid string) Command { return navigateToCmd(sid, urlstr) })
}

// CurrentURL returns the URL of the current page.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	return do[string](ctx, s, getCurrentURLCmd)
}

// Back navigates one step backwards in the session history.
func (s *Session) Back(ctx context.Context) error {
	return s.doVoid(ctx, backCmd)
}

// Forward navigates one step forwards in the session history.
func (s *Session) Forward(ctx context.Context) error {
	return s.doVoid(ctx, forwardCmd)
}

// Refresh reloads the current page.
func (s *Session) Refresh(ctx context.Context) error {
	return s.doVoid(ctx, refreshCmd)
}

// Title returns the current page title.
func (s *Session) Title(ctx context.Context) (string, error) {
	return do[string](ctx, s, getTitleCmd)
}

// PageSource returns the serialized source of the current page.
func (s *Session) PageSource(ctx context.Context) (string, error) {
	return do[string](ctx, s, getPageSourceCmd)
}
