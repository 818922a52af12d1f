// Package webdriver is a W3C WebDriver client for driving remote browsers
// from Go.
//
// A Session is created against a running WebDriver remote end (geckodriver,
// chromedriver, or a Selenium server) and exposes navigation, element
// lookup and interaction, input synthesis, cookies, screenshots, and
// script execution as plain context-aware method calls:
//
//	caps := webdriver.Capabilities{"browserName": "firefox"}
//	s, err := webdriver.New(ctx, "http://localhost:4444", caps)
//	if err != nil {
//		// ...
//	}
//	defer s.Quit(ctx)
//
//	if err := s.Navigate(ctx, "https://www.example.com"); err != nil {
//		// ...
//	}
//	el, err := s.FindElement(ctx, webdriver.ByCSSSelector("input[name=q]"))
//	if err != nil {
//		// ...
//	}
//	err = el.Type(ctx, keys.From("webdriver").Append(keys.Enter))
//
// Compound gestures are composed with an ActionChain and submitted as one
// atomic action command:
//
//	err = s.Chain().
//		KeyDown(keys.Control).
//		SendKeys(keys.From("a")).
//		KeyUp(keys.Control).
//		Perform(ctx)
//
// Always end sessions with Quit. A Session dropped without Quit triggers a
// best-effort, fire-and-forget delete of the remote session whose failure
// is only visible in the error log.
package webdriver
