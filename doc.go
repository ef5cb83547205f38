// Package statusview presents transient stacked notification banners on
// a host surface. A Coordinator serializes show and hide requests
// through a FIFO queue and per-screen-half animation slots; Host,
// Animator and MainLoop adapters bind the choreography to a concrete
// toolkit. The termview and gtkview packages provide terminal and
// desktop adapters.
package statusview
