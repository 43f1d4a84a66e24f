// Package plugin loads Lua format hooks for the autoformat engine.
//
// A hook script may define two global functions:
//
//	function should_format(rule, text)
//	  -- return false to leave the keystroke unformatted
//	  return not text:find("^TODO")
//	end
//
//	function on_format(rule, text, before)
//	  -- called after a rule was applied; text is the resulting block text
//	end
//
// Rule names are "header", "bold", "italic" and "inline-code". Each script
// runs in its own sandboxed state (see package lua). A Manager implements
// autoformat.Filter and autoformat.Observer, so it can be passed to
// autoformat.WithFilter and autoformat.WithObserver.
package plugin
