// Package progress carries the event type every long-running service in
// musicbase reports through.
//
// Services accept a Func and emit events as they work; the caller decides
// how to render them:
//
//	renamer := rename.New(settings, func(ev progress.Event) {
//	    fmt.Printf("[%s] %s\n", ev.Level, ev.Message)
//	})
//
// A nil Func is valid and discards every event.
package progress
