// Package termview hosts banners inside a terminal UI. It implements
// the statusview host, animator and main-loop contracts on a dedicated
// run-loop goroutine, measures text in character cells, and renders
// banners as lipgloss boxes composited over the embedding program's
// view.
package termview
