package statusview

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// queueSize bounds the number of presentation requests waiting for the
// ordering worker.
const queueSize = 128

// laneKey identifies one stack of banners: a host surface plus the
// anchor they attach to.
type laneKey struct {
	host   Host
	anchor Anchor
}

// Coordinator serializes banner presentation. A single worker goroutine
// drains a FIFO queue of show and hide requests, so banners appear in
// call order; within each screen half (the top anchors together, the
// bottom anchors together) a binary slot additionally ensures only one
// entry or exit animation runs at a time. All geometry mutation happens
// on the main loop; the slot is acquired by the worker and released from
// the animation completion that runs there.
type Coordinator struct {
	logger *slog.Logger
	main   MainLoop
	anim   Animator
	meas   Measurer

	queue  chan func()
	slots  map[Group]chan struct{}
	stopCh chan struct{}
	doneCh chan struct{}

	closeOnce sync.Once

	mu       sync.RWMutex
	lanes    map[laneKey]*lane
	hosts    map[Host]map[*Notification]struct{}
	hiddenCb func(*Notification)
}

// NewCoordinator creates a coordinator and starts its ordering worker.
// A nil measurer falls back to DefaultMeasurer; a nil logger falls back
// to slog.Default. Call Close when done.
func NewCoordinator(main MainLoop, anim Animator, meas Measurer, logger *slog.Logger) *Coordinator {
	if meas == nil {
		meas = DefaultMeasurer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		logger: logger,
		main:   main,
		anim:   anim,
		meas:   meas,
		queue:  make(chan func(), queueSize),
		slots: map[Group]chan struct{}{
			GroupTop:    make(chan struct{}, 1),
			GroupBottom: make(chan struct{}, 1),
		},
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		lanes:  make(map[laneKey]*lane),
		hosts:  make(map[Host]map[*Notification]struct{}),
	}
	go c.run()
	return c
}

// SetHiddenCallback registers a function invoked on the main loop each
// time a banner finishes hiding and has been detached from its host.
func (c *Coordinator) SetHiddenCallback(fn func(*Notification)) {
	c.mu.Lock()
	c.hiddenCb = fn
	c.mu.Unlock()
}

// Close stops the ordering worker and rejects further requests. Banners
// already past the queue finish their animations; Close does not wait
// for them.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() { close(c.stopCh) })
	<-c.doneCh
}

func (c *Coordinator) run() {
	defer close(c.doneCh)
	for {
		select {
		case w := <-c.queue:
			w()
		case <-c.stopCh:
			return
		}
	}
}

func (c *Coordinator) submit(w func()) error {
	select {
	case <-c.stopCh:
		return ErrClosed
	default:
	}
	select {
	case c.queue <- w:
		return nil
	case <-c.stopCh:
		return ErrClosed
	}
}

// acquire blocks until the group's animation slot is free. It reports
// false if the coordinator closed while waiting.
func (c *Coordinator) acquire(g Group) bool {
	select {
	case c.slots[g] <- struct{}{}:
		return true
	case <-c.stopCh:
		return false
	}
}

func (c *Coordinator) release(g Group) {
	select {
	case <-c.slots[g]:
	default:
	}
}

// after schedules fn on the main loop once d has elapsed, unless the
// coordinator closes first.
func (c *Coordinator) after(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		select {
		case <-c.stopCh:
		default:
			c.main.Post(fn)
		}
	})
}

func (c *Coordinator) show(n *Notification) error {
	if n.State() != StateHidden {
		return nil
	}
	if tag := n.opts.Tag; tag != 0 && c.tagActive(n.host, tag) {
		c.logger.Debug("duplicate banner discarded", "tag", tag, "title", n.title)
		return nil
	}
	group := n.opts.Position.Group()
	return c.submit(func() {
		if !c.acquire(group) {
			return
		}
		c.main.Post(func() { c.beginShow(n) })
	})
}

func (c *Coordinator) hide(n *Notification, forced bool) {
	if !n.markHide() {
		return
	}
	if forced {
		c.main.Post(func() { c.beginForceHide(n) })
		return
	}
	group := n.opts.Position.Group()
	err := c.submit(func() {
		if !c.acquire(group) {
			return
		}
		c.main.Post(func() { c.beginHide(n) })
	})
	if err != nil {
		c.logger.Debug("hide dropped, coordinator closed", "id", n.ID())
	}
}

// beginShow attaches the banner and starts its entry animation. Runs on
// the main loop with the group slot held; every early return must give
// the slot back.
func (c *Coordinator) beginShow(n *Notification) {
	group := n.opts.Position.Group()

	if n.State() != StateHidden || n.hideRequested() {
		c.release(group)
		return
	}
	// Re-check under current registry state; the pre-queue check raced
	// with banners that were still animating in.
	if tag := n.opts.Tag; tag != 0 && c.tagActive(n.host, tag) {
		c.logger.Debug("duplicate banner discarded", "tag", tag, "title", n.title)
		c.release(group)
		return
	}

	bounds, insets := n.host.Bounds(), n.host.Insets()
	n.adjustSize(bounds, insets)

	view, err := n.host.Attach(n)
	if err != nil {
		c.logger.Warn("host attach failed", "title", n.title, "error", err)
		c.release(group)
		return
	}
	n.setView(view)
	n.setHoldsSlot(true)

	final := headFrame(n.opts.Position, n.Size(), bounds, insets)

	key := laneKey{host: n.host, anchor: n.opts.Position}
	c.mu.Lock()
	l := c.lanes[key]
	if l == nil {
		l = &lane{anchor: n.opts.Position}
		c.lanes[key] = l
	}
	siblings := l.snapshot()
	l.append(n)
	set := c.hosts[n.host]
	if set == nil {
		set = make(map[*Notification]struct{})
		c.hosts[n.host] = set
	}
	set[n] = struct{}{}
	c.mu.Unlock()

	dist := n.Size().Height + Gap
	for _, s := range siblings {
		if !s.State().active() {
			continue
		}
		s.pushView(dist, true, n.opts.FadeIn)
	}

	c.logger.Debug("banner showing",
		"id", n.ID(),
		"anchor", string(n.opts.Position),
		"width", n.Size().Width,
		"height", n.Size().Height)
	n.showView(final)

	if d := n.opts.SecondsToShow; d > 0 {
		c.after(d, n.Hide)
	}
}

// didShow runs on the main loop when the entry animation completes.
func (c *Coordinator) didShow(n *Notification) {
	if n.takeHoldsSlot() {
		c.release(n.opts.Position.Group())
	}
}

// beginHide starts the exit animation for a visible banner. Runs on the
// main loop with the group slot held.
func (c *Coordinator) beginHide(n *Notification) {
	group := n.opts.Position.Group()
	switch n.State() {
	case StateVisible, StateMovingForward, StateMovingBackward:
	default:
		c.release(group)
		return
	}
	n.setHoldsSlot(true)
	c.willHide(n)
	n.hideView(false)
}

// beginForceHide tears a banner down without waiting for the ordering
// queue, overriding an in-flight entry animation if there is one. Runs
// on the main loop.
func (c *Coordinator) beginForceHide(n *Notification) {
	switch n.State() {
	case StateHidden, StateHiding:
		return
	}
	c.willHide(n)
	n.hideView(true)
}

// willHide removes the banner from its lane and shifts the banners that
// arrived before it back toward the anchor to close the gap. Runs on the
// main loop.
func (c *Coordinator) willHide(n *Notification) {
	key := laneKey{host: n.host, anchor: n.opts.Position}

	c.mu.Lock()
	l := c.lanes[key]
	if l == nil {
		c.mu.Unlock()
		c.logger.Debug("hide for banner with no lane", "id", n.ID())
		return
	}
	i := l.index(n)
	if i < 0 {
		c.mu.Unlock()
		c.logger.Debug("hide for banner not in lane", "id", n.ID())
		return
	}
	earlier := append([]*Notification(nil), l.members[:i]...)
	l.remove(n)
	c.mu.Unlock()

	dist := n.Size().Height + Gap
	for _, s := range earlier {
		if !s.State().active() {
			continue
		}
		s.pushView(dist, false, 0)
	}
}

// didHide runs on the main loop when the exit animation completes. It
// unregisters the banner, detaches its view and releases the group slot
// if this banner still holds it.
func (c *Coordinator) didHide(n *Notification) {
	key := laneKey{host: n.host, anchor: n.opts.Position}

	c.mu.Lock()
	if l := c.lanes[key]; l != nil {
		l.remove(n)
		if len(l.members) == 0 {
			delete(c.lanes, key)
		}
	}
	if set := c.hosts[n.host]; set != nil {
		delete(set, n)
		if len(set) == 0 {
			delete(c.hosts, n.host)
		}
	}
	cb := c.hiddenCb
	c.mu.Unlock()

	if v := n.currentView(); v != nil {
		n.host.Detach(v)
	}
	if n.takeHoldsSlot() {
		c.release(n.opts.Position.Group())
	}

	c.logger.Debug("banner hidden", "id", n.ID())
	if cb != nil {
		cb(n)
	}
}

// tagActive reports whether any registered banner under the host carries
// the tag. Banners count from attach until fully hidden.
func (c *Coordinator) tagActive(h Host, tag int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for m := range c.hosts[h] {
		if m.opts.Tag == tag {
			return true
		}
	}
	return false
}

// Active returns the banners currently registered under the host, oldest
// first.
func (c *Coordinator) Active(h Host) []*Notification {
	c.mu.RLock()
	out := make([]*Notification, 0, len(c.hosts[h]))
	for m := range c.hosts[h] {
		out = append(out, m)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].id.Compare(out[j].id) < 0 })
	return out
}

// ByTag returns the active banners under the host carrying the tag.
func (c *Coordinator) ByTag(h Host, tag int) []*Notification {
	var out []*Notification
	for _, m := range c.Active(h) {
		if m.opts.Tag == tag {
			out = append(out, m)
		}
	}
	return out
}

// ActiveCount returns the number of banners registered across all hosts.
func (c *Coordinator) ActiveCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, set := range c.hosts {
		n += len(set)
	}
	return n
}

// HideAll requests a normal hide for every active banner.
func (c *Coordinator) HideAll() {
	for _, n := range c.allActive() {
		n.Hide()
	}
}

// HideAllIn requests a normal hide for every active banner under the
// host.
func (c *Coordinator) HideAllIn(h Host) {
	for _, n := range c.Active(h) {
		n.Hide()
	}
}

// ForceHideAllIn force-hides every active banner under the host. Useful
// on shutdown, when waiting for queued exit animations is not an option.
func (c *Coordinator) ForceHideAllIn(h Host) {
	for _, n := range c.Active(h) {
		n.ForceHide()
	}
}

func (c *Coordinator) allActive() []*Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*Notification
	for _, set := range c.hosts {
		for m := range set {
			out = append(out, m)
		}
	}
	return out
}
