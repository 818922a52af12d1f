package webdriver

import "net/url"

// Command is one discrete protocol operation: an HTTP method, an endpoint
// path relative to the remote end's base URL, and an optional JSON body.
// Commands are pure data; they perform no I/O. Every session-scoped
// command is built by a constructor that takes the session id, so a
// command can never be dispatched without a resolvable target.
type Command struct {
	method string
	path   string
	body   interface{}
}

// Method returns the HTTP method for the command.
func (c Command) Method() string { return c.method }

// Path returns the endpoint path, relative to the remote end's base URL.
func (c Command) Path() string { return c.path }

// Body returns the request body payload, or nil when the command sends
// none.
func (c Command) Body() interface{} { return c.body }

func get(path string) Command { return Command{method: "GET", path: path} }

func post(path string, body interface{}) Command {
	if body == nil {
		// A number of remote ends reject POST bodies that are not JSON
		// objects, including absent ones.
		body = struct{}{}
	}
	return Command{method: "POST", path: path, body: body}
}

func del(path string) Command { return Command{method: "DELETE", path: path} }

// Session-less commands.

func statusCmd() Command { return get("/status") }

func newSessionCmd(caps Capabilities) Command {
	req := newSessionRequest{Desired: caps}
	req.Capabilities.AlwaysMatch = caps
	return post("/session", req)
}

// Session commands.

func deleteSessionCmd(sid string) Command { return del("/session/" + sid) }

func navigateToCmd(sid, urlstr string) Command {
	return post("/session/"+sid+"/url", map[string]string{"url": urlstr})
}
func getCurrentURLCmd(sid string) Command { return get("/session/" + sid + "/url") }
func backCmd(sid string) Command          { return post("/session/"+sid+"/back", nil) }
func forwardCmd(sid string) Command       { return post("/session/"+sid+"/forward", nil) }
func refreshCmd(sid string) Command       { return post("/session/"+sid+"/refresh", nil) }
func getTitleCmd(sid string) Command      { return get("/session/" + sid + "/title") }
func getPageSourceCmd(sid string) Command { return get("/session/" + sid + "/source") }

func getTimeoutsCmd(sid string) Command { return get("/session/" + sid + "/timeouts") }
func setTimeoutsCmd(sid string, t Timeouts) Command {
	return post("/session/"+sid+"/timeouts", t)
}

// Window commands.

func getWindowHandleCmd(sid string) Command  { return get("/session/" + sid + "/window") }
func closeWindowCmd(sid string) Command      { return del("/session/" + sid + "/window") }
func getWindowHandlesCmd(sid string) Command { return get("/session/" + sid + "/window/handles") }
func switchToWindowCmd(sid string, h WindowHandle) Command {
	return post("/session/"+sid+"/window", map[string]WindowHandle{"handle": h})
}
func newWindowCmd(sid, typ string) Command {
	return post("/session/"+sid+"/window/new", map[string]string{"type": typ})
}
func getWindowRectCmd(sid string) Command { return get("/session/" + sid + "/window/rect") }
func setWindowRectCmd(sid string, r Rect) Command {
	return post("/session/"+sid+"/window/rect", r)
}
func maximizeWindowCmd(sid string) Command {
	return post("/session/"+sid+"/window/maximize", nil)
}
func minimizeWindowCmd(sid string) Command {
	return post("/session/"+sid+"/window/minimize", nil)
}
func fullscreenWindowCmd(sid string) Command {
	return post("/session/"+sid+"/window/fullscreen", nil)
}

// Frame commands. A nil id switches to the top-level browsing context.

func switchToFrameCmd(sid string, id interface{}) Command {
	return post("/session/"+sid+"/frame", map[string]interface{}{"id": id})
}
func switchToParentFrameCmd(sid string) Command {
	return post("/session/"+sid+"/frame/parent", nil)
}

// Element commands.

func findElementCmd(sid string, by By) Command {
	return post("/session/"+sid+"/element", by)
}
func findElementsCmd(sid string, by By) Command {
	return post("/session/"+sid+"/elements", by)
}
func getActiveElementCmd(sid string) Command {
	return get("/session/" + sid + "/element/active")
}
func findElementFromElementCmd(sid, eid string, by By) Command {
	return post("/session/"+sid+"/element/"+eid+"/element", by)
}
func findElementsFromElementCmd(sid, eid string, by By) Command {
	return post("/session/"+sid+"/element/"+eid+"/elements", by)
}
func elementClickCmd(sid, eid string) Command {
	return post("/session/"+sid+"/element/"+eid+"/click", nil)
}
func elementClearCmd(sid, eid string) Command {
	return post("/session/"+sid+"/element/"+eid+"/clear", nil)
}
func elementSendKeysCmd(sid, eid, text string) Command {
	return post("/session/"+sid+"/element/"+eid+"/value", map[string]string{"text": text})
}
func getElementTextCmd(sid, eid string) Command {
	return get("/session/" + sid + "/element/" + eid + "/text")
}
func getElementTagNameCmd(sid, eid string) Command {
	return get("/session/" + sid + "/element/" + eid + "/name")
}
func getElementRectCmd(sid, eid string) Command {
	return get("/session/" + sid + "/element/" + eid + "/rect")
}
func getElementAttributeCmd(sid, eid, name string) Command {
	return get("/session/" + sid + "/element/" + eid + "/attribute/" + url.PathEscape(name))
}
func getElementPropertyCmd(sid, eid, name string) Command {
	return get("/session/" + sid + "/element/" + eid + "/property/" + url.PathEscape(name))
}
func getElementCSSValueCmd(sid, eid, name string) Command {
	return get("/session/" + sid + "/element/" + eid + "/css/" + url.PathEscape(name))
}
func isElementSelectedCmd(sid, eid string) Command {
	return get("/session/" + sid + "/element/" + eid + "/selected")
}
func isElementEnabledCmd(sid, eid string) Command {
	return get("/session/" + sid + "/element/" + eid + "/enabled")
}
func isElementDisplayedCmd(sid, eid string) Command {
	return get("/session/" + sid + "/element/" + eid + "/displayed")
}
func takeElementScreenshotCmd(sid, eid string) Command {
	return get("/session/" + sid + "/element/" + eid + "/screenshot")
}

// Script commands.

func executeScriptCmd(sid, script string, args []interface{}) Command {
	if args == nil {
		args = []interface{}{}
	}
	return post("/session/"+sid+"/execute/sync",
		map[string]interface{}{"script": script, "args": args})
}
func executeAsyncScriptCmd(sid, script string, args []interface{}) Command {
	if args == nil {
		args = []interface{}{}
	}
	return post("/session/"+sid+"/execute/async",
		map[string]interface{}{"script": script, "args": args})
}

// Cookie commands.

func getAllCookiesCmd(sid string) Command { return get("/session/" + sid + "/cookie") }
func getNamedCookieCmd(sid, name string) Command {
	return get("/session/" + sid + "/cookie/" + url.PathEscape(name))
}
func addCookieCmd(sid string, c Cookie) Command {
	return post("/session/"+sid+"/cookie", map[string]Cookie{"cookie": c})
}
func deleteCookieCmd(sid, name string) Command {
	return del("/session/" + sid + "/cookie/" + url.PathEscape(name))
}
func deleteAllCookiesCmd(sid string) Command { return del("/session/" + sid + "/cookie") }

// Alert commands.

func dismissAlertCmd(sid string) Command { return post("/session/"+sid+"/alert/dismiss", nil) }
func acceptAlertCmd(sid string) Command  { return post("/session/"+sid+"/alert/accept", nil) }
func getAlertTextCmd(sid string) Command { return get("/session/" + sid + "/alert/text") }
func sendAlertTextCmd(sid, text string) Command {
	return post("/session/"+sid+"/alert/text", map[string]string{"text": text})
}

// Screenshot and print commands.

func takeScreenshotCmd(sid string) Command { return get("/session/" + sid + "/screenshot") }
func printCmd(sid string, opts *PrintOptions) Command {
	if opts == nil {
		opts = &PrintOptions{}
	}
	return post("/session/"+sid+"/print", opts)
}

// Action commands.

func performActionsCmd(sid string, sources []actionSource) Command {
	return post("/session/"+sid+"/actions", map[string]interface{}{"actions": sources})
}
func releaseActionsCmd(sid string) Command { return del("/session/" + sid + "/actions") }
