package webdriver

import (
	"context"
	"encoding/json"
)

// ExecuteScript injects a snippet of JavaScript into the current page and
// runs it as a function body with the given arguments, returning the raw
// JSON value of the script's return value. Arguments may be any
// JSON-serializable value; *Element arguments are serialized as element
// references and arrive as DOM nodes.
func (s *Session) ExecuteScript(ctx context.Context, script string, args []interface{}) (json.RawMessage, error) {
	return do[json.RawMessage](ctx, s, func(sid string) Command {
		return executeScriptCmd(sid, script, args)
	})
}

// ExecuteAsyncScript is like ExecuteScript, but the script signals
// completion by invoking the callback the remote end appends to its
// argument list; the value passed to that callback is returned.
func (s *Session) ExecuteAsyncScript(ctx context.Context, script string, args []interface{}) (json.RawMessage, error) {
	return do[json.RawMessage](ctx, s, func(sid string) Command {
		return executeAsyncScriptCmd(sid, script, args)
	})
}
