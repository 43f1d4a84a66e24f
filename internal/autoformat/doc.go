// Package autoformat turns markdown typed into an editor block into rich
// formatting as the user types.
//
// The Dispatcher is consulted before every character insertion. It checks
// an ordered list of rules against the current block:
//
//	"#", "##", "###" + space  -> header-one, header-two, header-three
//	"**text**" + any char     -> BOLD over text
//	"*text*"   + any char     -> ITALIC over text
//	"`text`"   + any char     -> code-block
//
// The first rule whose trigger matches and whose transform succeeds handles
// the keystroke. Otherwise the result is Unhandled and the host inserts the
// character itself, then calls OnContentChange so a code-block emptied by
// backspace can revert to a plain block.
//
// # Basic Usage
//
//	d := autoformat.New(autoformat.WithLogger(logger))
//
//	res := d.OnBeforeCharacter(current, " ")
//	if res.IsHandled() {
//	    current = res.State
//	} else {
//	    proposed, _ := current.InsertCharacters(" ")
//	    current = d.OnContentChange(current, proposed)
//	}
//
// # Hooks
//
// A Filter may veto a matched rule and an Observer is told about every
// applied one. The plugin package implements both with Lua scripts. Hooks
// run synchronously inside OnBeforeCharacter and must not call back into the
// Dispatcher.
package autoformat
