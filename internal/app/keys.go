package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/livemark/internal/autoformat"
	"github.com/dshills/livemark/internal/engine"
)

var caretKeys = map[tcell.Key]engine.Direction{
	tcell.KeyLeft:  engine.MoveLeft,
	tcell.KeyRight: engine.MoveRight,
	tcell.KeyUp:    engine.MoveUp,
	tcell.KeyDown:  engine.MoveDown,
	tcell.KeyHome:  engine.MoveLineStart,
	tcell.KeyEnd:   engine.MoveLineEnd,
	tcell.KeyCtrlA: engine.MoveLineStart,
	tcell.KeyCtrlE: engine.MoveLineEnd,
}

// handleKey routes one key event to the editor.
// Returns ErrQuit if the application should exit.
func (app *Application) handleKey(ev *tcell.EventKey) error {
	var (
		action string
		err    error
	)

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyRune:
		action = "type"
		var res autoformat.Result
		res, err = app.editor.TypeCharacter(string(ev.Rune()))
		if err == nil && !res.IsHandled() {
			app.setStatus("")
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		action = "backspace"
		err = app.editor.Backspace()
	case tcell.KeyEnter:
		action = "split"
		err = app.editor.SplitBlock()
	case tcell.KeyCtrlZ:
		action = "undo"
		err = app.editor.Undo()
	case tcell.KeyCtrlY:
		action = "redo"
		err = app.editor.Redo()
	case tcell.KeyCtrlS:
		if err := app.Save(); err != nil {
			app.setStatus(err.Error())
		} else {
			app.setStatus("saved " + app.opts.OutputPath)
		}
		return nil
	default:
		if dir, ok := caretKeys[ev.Key()]; ok {
			app.editor.MoveCaret(dir)
		}
		return nil
	}

	if err != nil {
		cerr := NewComponentError("editor", action, err)
		app.logger.Debug("%v", cerr)
		app.setStatus(cerr.Error())
	}
	return nil
}
