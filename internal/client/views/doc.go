// Package views implements the screens of the client as small state machines.
//
// Each view moves through Idle, Loading, Success and Error. Operations block
// until the backend answers, but a result is only applied when it belongs to
// the latest request of a view that is still open; anything else is dropped.
// Background work (the payment lookup debounce and post-success redirects)
// stops when the view is closed.
//
// Views never print. The shell reads Status, Message and the view-specific
// getters after every operation and renders them.
package views
