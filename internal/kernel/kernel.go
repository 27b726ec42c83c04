// Package kernel wires every core package into the single cooperative event
// loop of spec.md §4.6: one goroutine owns all mutable model state; the only
// other goroutines are the per-session PTY readers and the transcript
// watcher, both of which only ever hand off through non-blocking channels
// (spec.md §5). Rendering, raw terminal input, and modal chrome are external
// collaborators per spec.md §1; this package only defines the narrow
// interfaces they must satisfy.
package kernel

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"claudatui/internal/archive"
	"claudatui/internal/bookmarks"
	"claudatui/internal/config"
	"claudatui/internal/conversation"
	"claudatui/internal/errs"
	"claudatui/internal/input"
	"claudatui/internal/loader"
	"claudatui/internal/model"
	"claudatui/internal/ptymgr"
	"claudatui/internal/sidebar"
	"claudatui/internal/status"
	"claudatui/internal/watcher"
)

// InputEvent is one raw event the external input source hands to the
// kernel: either a keystroke or a terminal resize.
type InputEvent struct {
	Resized    bool
	Key        rune
	Rows, Cols int
	Ctrl       bool
	Alt        bool
	Shift      bool
}

// InputSource polls for the next terminal input event with a bounded
// timeout (spec.md §5: "Only the event-loop's 50ms input poll may block").
// Implementations live outside the core (tcell/bubbletea or similar).
type InputSource interface {
	PollEvent(timeout time.Duration) (InputEvent, bool)
}

// Snapshot is everything the external renderer needs for one frame. The
// kernel never renders; it only ever produces this value (spec.md §1
// Non-goals: "does not render terminal output").
type Snapshot struct {
	Items              []sidebar.Item
	SelectedIndex      int
	Mode               input.Mode
	Focus              input.Focus
	LeaderSubmenuTitle string // empty unless Mode == ModeLeader
	DisplayedSessionID string
	DisplayedScreen    ptymgr.ScreenState
	HasDisplayedScreen bool
	DangerousMode      bool
	Toasts             []errs.Toast
}

// Kernel owns the entire in-memory model and drives the event loop.
type Kernel struct {
	cfg       config.Config
	logger    *zap.Logger
	claudeDir string

	ptys         *ptymgr.Manager
	archiveMgr   *archive.Manager
	bookmarksMgr *bookmarks.Manager
	watcher      *watcher.Watcher
	statusEngine *status.Engine
	toasts       *errs.ToastQueue
	machine      *input.Machine

	groups     []*model.ConversationGroup
	ephemerals map[string]model.EphemeralSession

	items         []sidebar.Item
	selectedIndex int

	displayedSessionID string

	archiveFilter sidebar.ArchiveFilter
	hideInactive  bool
	filterQuery   string
	expansion     map[string]int
	collapsed     map[string]bool
	dangerousMode bool

	lastStatusInference time.Time
	quit                bool
}

// New builds a Kernel rooted at claudeDir: it loads archive state, opens the
// bookmarks database, starts the transcript watcher, and performs the
// initial full reload (spec.md §6 external interfaces).
func New(cfg config.Config, logger *zap.Logger, claudeDir string) (*Kernel, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	archiveMgr, err := archive.Load(claudeDir)
	if err != nil {
		return nil, fmt.Errorf("loading archive state: %w", err)
	}

	bookmarksMgr, err := bookmarks.Open(filepath.Join(claudeDir, "claudatui-bookmarks.db"))
	if err != nil {
		return nil, fmt.Errorf("opening bookmarks database: %w", err)
	}

	projectsDir := filepath.Join(claudeDir, "projects")
	w, err := watcher.New(projectsDir)
	if err != nil {
		return nil, fmt.Errorf("starting transcript watcher: %w", err)
	}

	k := &Kernel{
		cfg:           cfg,
		logger:        logger,
		claudeDir:     claudeDir,
		ptys:          ptymgr.NewManager(logger, cfg.ScrollbackLines),
		archiveMgr:    archiveMgr,
		bookmarksMgr:  bookmarksMgr,
		watcher:       w,
		statusEngine:  status.NewEngine(),
		toasts:        errs.NewToastQueue(32),
		machine:       input.NewMachine(),
		ephemerals:    make(map[string]model.EphemeralSession),
		archiveFilter: sidebar.ArchiveFilterActive,
		expansion:     make(map[string]int),
		collapsed:     make(map[string]bool),
		dangerousMode: cfg.DangerousDefault,
	}

	k.reload(time.Now(), true)
	k.applyAutoArchive(time.Now())
	k.rebuildSidebar()
	return k, nil
}

// Close releases the watcher, bookmarks database, and every live PTY.
func (k *Kernel) Close() error {
	k.ptys.CloseAll()
	_ = k.watcher.Close()
	return k.bookmarksMgr.Close()
}

// Done reports whether the quit flag has been set (spec.md §4.6 step 9).
func (k *Kernel) Done() bool { return k.quit }

// Tick runs exactly one iteration of the event loop (spec.md §4.6). input
// may be nil to skip step 8 (used by tests that only want steps 1-7).
func (k *Kernel) Tick(now time.Time, in InputSource) {
	// Step 1: expire chord/Leader/escape timeouts.
	for _, emitted := range k.machine.Tick(now) {
		k.dispatch(emitted, now)
	}

	// Step 2: drain all PTYs.
	k.ptys.ProcessAllOutput()

	// Step 3: refresh is implicit — Snapshot() always reads live state; here
	// we only need the "displayed session changed -> clear selection" rule,
	// which the renderer's Snapshot() caller already observes by comparing
	// DisplayedSessionID across frames. Nothing to do within the kernel
	// itself beyond making sure the field is current.

	// Step 4: cleanup dead sessions; unmatched-ephemeral death forces reload.
	forceReload := false
	for _, id := range k.ptys.CleanupDead() {
		if _, wasEphemeral := k.ephemerals[id]; wasEphemeral {
			delete(k.ephemerals, id)
			forceReload = true
		}
		if k.displayedSessionID == id {
			k.displayedSessionID = ""
		}
	}
	if forceReload {
		k.reload(now, false)
	}

	// Step 5: throttled 1Hz status inference.
	if now.Sub(k.lastStatusInference) >= time.Second {
		k.lastStatusInference = now
		k.runStatusInference(now)
	}

	// Step 6: transcript-watcher drain.
	if k.watcher.TryRecv() {
		k.reload(now, false)
	}

	k.applyAutoArchive(now)
	k.rebuildSidebar()

	// Step 7: render is external; Snapshot() is called by the caller after
	// Tick returns.

	// Step 8: poll for input with a 50ms timeout.
	if in != nil {
		if event, ok := in.PollEvent(k.cfg.InputPollTimeout()); ok {
			k.handleInputEvent(event, now)
		}
	}

	// Step 9: exit if quit-flag set is observed by the caller via Done().
}

func (k *Kernel) handleInputEvent(event InputEvent, now time.Time) {
	if event.Resized {
		k.ptys.ResizeAll(event.Rows, event.Cols)
		return
	}
	if k.handleGlobalBinding(event) {
		return
	}
	for _, emitted := range k.machine.HandleKey(event.Key, now) {
		k.dispatch(emitted, now)
	}
}

// handleGlobalBinding handles the bindings spec.md §4.5 calls out as
// "unaffected by mode": Ctrl+Q quits, Ctrl+Shift+B triggers the (external)
// hot-rebuild action, and Alt+,/Alt+. cycle between project groups with
// live activity. These bypass the Normal/Insert/Leader state machine
// entirely, per the spec's wording.
func (k *Kernel) handleGlobalBinding(event InputEvent) bool {
	switch {
	case event.Ctrl && (event.Key == 'q' || event.Key == 'Q'):
		k.quit = true
		return true
	case event.Ctrl && (event.Key == 'b' || event.Key == 'B'):
		k.toasts.Success("hot-rebuild requested")
		return true
	case event.Alt && event.Key == ',':
		k.cycleProjectGroup(-1)
		return true
	case event.Alt && event.Key == '.':
		k.cycleProjectGroup(1)
		return true
	}
	return false
}

// cycleProjectGroup moves to the previous (dir<0) or next (dir>0) project
// group with non-empty active content, switching into its most-salient
// session: ephemeral first, else the first conversation (in display order)
// whose PTY is alive (spec.md §9's binding resolution of this behavior).
func (k *Kernel) cycleProjectGroup(dir int) {
	active := k.activeGroupIndices()
	if len(active) == 0 {
		return
	}
	cur := k.currentGroupIndex()
	pos := 0
	for i, idx := range active {
		if idx == cur {
			pos = i
			break
		}
	}
	next := active[((pos+dir)%len(active)+len(active))%len(active)]
	k.selectMostSalientInGroup(k.groups[next])
}

func (k *Kernel) activeGroupIndices() []int {
	var out []int
	for i, group := range k.groups {
		if k.groupHasActiveContent(group) {
			out = append(out, i)
		}
	}
	return out
}

func (k *Kernel) groupHasActiveContent(group *model.ConversationGroup) bool {
	projectPath := groupProjectPath(group)
	for _, eph := range k.ephemerals {
		if eph.ProjectPath == projectPath {
			return true
		}
	}
	for _, c := range group.Conversations {
		if ptyID, ok := k.ptys.SessionForConversation(c.SessionID); ok && k.ptys.IsAlive(ptyID) {
			return true
		}
	}
	return false
}

func groupProjectPath(group *model.ConversationGroup) string {
	if len(group.Conversations) > 0 {
		return group.Conversations[0].ProjectPath
	}
	return ""
}

func (k *Kernel) currentGroupIndex() int {
	item, ok := k.selectedItem()
	if !ok {
		return 0
	}
	for i, group := range k.groups {
		if group.Key.String() == item.GroupKey {
			return i
		}
	}
	return 0
}

func (k *Kernel) selectMostSalientInGroup(group *model.ConversationGroup) {
	groupKey := group.Key.String()
	projectPath := groupProjectPath(group)

	for id, eph := range k.ephemerals {
		if eph.ProjectPath != projectPath {
			continue
		}
		k.displayedSessionID = id
		k.machine.EnterInsert(input.FocusTerminal)
		k.selectItemByPredicate(func(it sidebar.Item) bool {
			return it.Kind == sidebar.ItemEphemeralSession && it.EphemeralID == id
		})
		return
	}

	for _, c := range group.Conversations {
		ptyID, ok := k.ptys.SessionForConversation(c.SessionID)
		if !ok || !k.ptys.IsAlive(ptyID) {
			continue
		}
		k.displayedSessionID = ptyID
		k.machine.EnterInsert(input.FocusTerminal)
		sessionID := c.SessionID
		k.selectItemByPredicate(func(it sidebar.Item) bool {
			return it.Kind == sidebar.ItemConversation && it.SessionID == sessionID
		})
		return
	}

	k.selectItemByPredicate(func(it sidebar.Item) bool {
		return it.Kind == sidebar.ItemGroupHeader && it.GroupKey == groupKey
	})
}

func (k *Kernel) selectItemByPredicate(pred func(sidebar.Item) bool) {
	for i, it := range k.items {
		if pred(it) {
			k.selectedIndex = i
			return
		}
	}
}

// Snapshot builds the renderer-facing frame. Per spec.md §4.6 step 3, the
// caller is responsible for clearing any text selection when
// DisplayedSessionID differs from the previous frame's.
func (k *Kernel) Snapshot() Snapshot {
	snap := Snapshot{
		Items:              k.items,
		SelectedIndex:      k.selectedIndex,
		Mode:               k.machine.Mode,
		Focus:              k.machine.Focus,
		LeaderSubmenuTitle: k.machine.LeaderSubmenuTitle(),
		DisplayedSessionID: k.displayedSessionID,
		DangerousMode:      k.dangerousMode,
		Toasts:             k.toasts.Drain(),
	}
	if screen, ok := k.ptys.State(k.displayedSessionID); ok {
		snap.DisplayedScreen = screen.Screen
		snap.HasDisplayedScreen = true
	}
	return snap
}

// reload re-scans the transcript store, rebuilds the grouped model, applies
// archive flags, and reconciles ephemeral sessions against newly discovered
// conversations (spec.md §4.3). full selects the ordering rule (spec.md
// §3): a full reload re-sorts every group by recency, matching
// `original_source/src/app/mod.rs`'s `load_conversations_full` (initial
// load and manual refresh); an incremental reload preserves the previous
// group order and prepends brand-new groups, matching that file's
// `load_conversations_preserve_order` (watcher-triggered and
// unmatched-ephemeral-death reloads).
func (k *Kernel) reload(now time.Time, full bool) {
	entries := loader.ParseAllSessions(k.claudeDir)
	conversations := conversation.BuildConversations(entries)

	for _, c := range conversations {
		if entry, ok := k.archiveMgr.Entry(c.SessionID); ok {
			c.Archived = true
			c.ArchivedAtMS = entry.ArchivedAt.UnixMilli()
		}
	}

	claims := k.ptys.Claims()
	matches := conversation.Reconcile(k.ephemerals, claims, conversations)
	for ephemeralID, convSessionID := range matches {
		if k.ptys.Claim(ephemeralID, convSessionID) {
			delete(k.ephemerals, ephemeralID)
			if k.displayedSessionID == ephemeralID {
				k.displayedSessionID = ephemeralID // internal id unchanged; conversation identity now resolvable via ConversationFor
			}
		}
	}

	if full {
		k.groups = model.GroupConversations(conversations)
	} else {
		k.groups = model.GroupConversationsIncremental(conversations, k.groups)
	}
}

// runStatusInference applies the five-step algorithm (spec.md §4.2) to every
// loaded conversation.
func (k *Kernel) runStatusInference(now time.Time) {
	seen := make(map[string]bool, len(k.groups))
	for _, group := range k.groups {
		for _, c := range group.Conversations {
			seen[c.SessionID] = true
			ptyID, hasPty := k.ptys.SessionForConversation(c.SessionID)
			alive := hasPty && k.ptys.IsAlive(ptyID)
			path := status.TranscriptPath(k.claudeDir, c.ProjectPath, c.SessionID)
			c.Status = k.statusEngine.Infer(c.SessionID, path, alive, now)
		}
	}
}

// applyAutoArchive archives every eligible Idle, not-running conversation
// older than the configured threshold (spec.md §6's auto-archive rule).
func (k *Kernel) applyAutoArchive(now time.Time) {
	for _, group := range k.groups {
		for _, c := range group.Conversations {
			if c.Archived || c.Status != model.StatusIdle {
				continue
			}
			if _, running := k.ptys.SessionForConversation(c.SessionID); running {
				continue
			}
			if k.archiveMgr.ShouldAutoArchive(c.ModifiedAtMS) {
				k.archiveMgr.Archive(c.SessionID, true)
				c.Archived = true
			}
		}
	}
	if err := k.archiveMgr.Save(); err != nil {
		k.logger.Warn("archive save failed", zap.Error(err))
		k.toasts.Failure("failed to save archive state")
	}
}

func (k *Kernel) rebuildSidebar() {
	running := make(map[string]bool)
	for _, group := range k.groups {
		for _, c := range group.Conversations {
			if _, ok := k.ptys.SessionForConversation(c.SessionID); ok {
				running[c.SessionID] = true
			}
		}
	}

	k.items = sidebar.Build(sidebar.Input{
		Groups:            k.groups,
		RunningSessionIDs: running,
		Ephemerals:        k.ephemerals,
		WorkspacePrefixes: k.cfg.WorkspacePrefixes,
		ArchiveFilter:     k.archiveFilter,
		HideInactive:      k.hideInactive,
		FilterQuery:       k.filterQuery,
		Expansion:         k.expansion,
		Collapsed:         k.collapsed,
	})

	k.selectedIndex = clampSelection(k.items, k.selectedIndex)
}

func clampSelection(items []sidebar.Item, idx int) int {
	for _, sel := range selectableIndices(items) {
		if sel == idx {
			return idx
		}
	}
	sel := selectableIndices(items)
	if len(sel) == 0 {
		return 0
	}
	return sel[0]
}

func selectableIndices(items []sidebar.Item) []int {
	var out []int
	for i, it := range items {
		if it.Selectable() {
			out = append(out, i)
		}
	}
	return out
}

// dispatch executes one Emitted action from the input state machine.
func (k *Kernel) dispatch(e input.Emitted, now time.Time) {
	switch e.Kind {
	case input.ActionKindPassThrough:
		if k.displayedSessionID != "" {
			if _, err := k.ptys.Write(k.displayedSessionID, e.Bytes); err != nil {
				k.logger.Debug("pty write failed", zap.String("session", k.displayedSessionID), zap.Error(err))
			}
		}
	case input.ActionKindMoveDown:
		k.moveSelection(1, e.Count)
	case input.ActionKindMoveUp:
		k.moveSelection(-1, e.Count)
	case input.ActionKindExitInsert:
		k.displayedSessionID = ""
	case input.ActionKindCloseSelected:
		k.closeSelected(now)
	case input.ActionKindLeaderCommand:
		k.runLeaderCommand(e.Leader, e.Slot, now)
	case input.ActionKindEnterLeader, input.ActionKindCancelLeader, input.ActionKindEnterInsert, input.ActionKindNone:
		// No kernel-side effect; the state machine already updated Mode/Focus.
	}
}

// moveSelection advances the cursor among selectable items. A plain
// single-step motion (count == 1, i.e. no explicit count-prefix chord) wraps
// at the ends, matching spec.md §8's "repeated down from the last selectable
// cycles to first"; an explicit count-prefixed motion instead clamps,
// matching the boundary scenario "user presses 5, then j: ... clamped at
// the last selectable item". The two invariants only conflict on the
// motion's count, so this is the distinguishing signal available to us.
func (k *Kernel) moveSelection(dir, count int) {
	sel := selectableIndices(k.items)
	if len(sel) == 0 {
		return
	}
	pos := 0
	for i, idx := range sel {
		if idx == k.selectedIndex {
			pos = i
			break
		}
	}
	if count <= 1 {
		pos = ((pos+dir)%len(sel) + len(sel)) % len(sel)
	} else {
		pos += dir * count
		if pos < 0 {
			pos = 0
		}
		if pos >= len(sel) {
			pos = len(sel) - 1
		}
	}
	k.selectedIndex = sel[pos]
}

func (k *Kernel) selectedItem() (sidebar.Item, bool) {
	if k.selectedIndex < 0 || k.selectedIndex >= len(k.items) {
		return sidebar.Item{}, false
	}
	return k.items[k.selectedIndex], true
}

func (k *Kernel) closeSelected(now time.Time) {
	item, ok := k.selectedItem()
	if !ok {
		return
	}
	switch item.Kind {
	case sidebar.ItemEphemeralSession:
		k.closeInternalSession(item.EphemeralID)
	case sidebar.ItemConversation:
		if id, found := k.ptys.SessionForConversation(item.SessionID); found {
			k.closeInternalSession(id)
		}
	}
}

func (k *Kernel) closeInternalSession(id string) {
	if err := k.ptys.CloseSession(id); err != nil {
		k.toasts.Failure("failed to close session")
		return
	}
	delete(k.ephemerals, id)
	if k.displayedSessionID == id {
		k.displayedSessionID = ""
	}
	k.toasts.Success("session closed")
}

// runLeaderCommand executes one which-key leaf action (spec.md §4.5's
// Leader tree; the concrete action set is a supplemented feature per
// SPEC_FULL.md §12).
func (k *Kernel) runLeaderCommand(action input.LeaderAction, slot int, now time.Time) {
	switch action {
	case input.ActionAddConversation:
		k.spawnEphemeralInSelectedProject(now)
	case input.ActionCloseSession:
		k.closeSelected(now)
	case input.ActionArchive:
		k.archiveSelected(true)
	case input.ActionUnarchive:
		k.archiveSelected(false)
	case input.ActionCycleArchiveFilter:
		k.cycleArchiveFilter()
	case input.ActionRefresh:
		k.reload(now, true)
		k.toasts.Success("reloaded")
	case input.ActionYankPath:
		k.yankSelectedPath()
	case input.ActionToggleDangerous:
		k.dangerousMode = !k.dangerousMode
		k.toasts.Success(fmt.Sprintf("dangerous mode: %v", k.dangerousMode))
	case input.ActionBookmarkJump:
		k.jumpToBookmark(slot)
	case input.ActionBookmarkSet:
		k.setBookmark(slot)
	case input.ActionBookmarkDelete:
		k.deleteBookmark(slot)
	case input.ActionSearchOpen, input.ActionNewProject, input.ActionCreateWorktree, input.ActionWorktreeSearch:
		// Modal chrome / worktree creation are external collaborators
		// (spec.md §1); the kernel only exposes the identifiers (selected
		// project path, validated branch name) those modals need.
	}
}

func (k *Kernel) selectedProjectPath() (string, bool) {
	item, ok := k.selectedItem()
	if !ok {
		return "", false
	}
	for _, group := range k.groups {
		if group.Key.String() != item.GroupKey {
			continue
		}
		if len(group.Conversations) > 0 {
			return group.Conversations[0].ProjectPath, true
		}
	}
	return "", false
}

func (k *Kernel) spawnEphemeralInSelectedProject(now time.Time) {
	path, ok := k.selectedProjectPath()
	if !ok {
		k.toasts.Failure("no project selected")
		return
	}
	id, err := k.ptys.Spawn(context.Background(), path, 24, 80, "", k.dangerousMode)
	if err != nil {
		k.toasts.Failure("failed to spawn session")
		return
	}
	k.ephemerals[id] = model.EphemeralSession{ProjectPath: path, CreatedAtMS: now.UnixMilli()}
	k.displayedSessionID = id
	k.machine.EnterInsert(input.FocusTerminal)
	k.toasts.Success("session started")
}

func (k *Kernel) archiveSelected(archived bool) {
	item, ok := k.selectedItem()
	if !ok || item.Kind != sidebar.ItemConversation {
		return
	}
	if archived {
		k.archiveMgr.Archive(item.SessionID, false)
		k.toasts.Success("archived")
	} else {
		k.archiveMgr.Unarchive(item.SessionID)
		k.toasts.Success("unarchived")
	}
	for _, group := range k.groups {
		for _, c := range group.Conversations {
			if c.SessionID == item.SessionID {
				c.Archived = archived
			}
		}
	}
}

func (k *Kernel) cycleArchiveFilter() {
	switch k.archiveFilter {
	case sidebar.ArchiveFilterActive:
		k.archiveFilter = sidebar.ArchiveFilterArchived
	case sidebar.ArchiveFilterArchived:
		k.archiveFilter = sidebar.ArchiveFilterAll
	default:
		k.archiveFilter = sidebar.ArchiveFilterActive
	}
}

// yankSelectedPath resolves the path to copy; clipboard integration itself
// is an external collaborator (spec.md §1), so the kernel only surfaces the
// value via a toast for the caller's clipboard adapter to act on.
func (k *Kernel) yankSelectedPath() {
	path, ok := k.selectedProjectPath()
	if !ok {
		k.toasts.Failure("no path to copy")
		return
	}
	k.toasts.Success("copied: " + path)
}

func (k *Kernel) jumpToBookmark(slot int) {
	b, ok := k.bookmarksMgr.Get(slot)
	if !ok {
		k.toasts.Failure("bookmark slot is empty")
		return
	}
	target := b.SessionID
	if b.TargetKind == bookmarks.TargetProject {
		for i, it := range k.items {
			if it.Kind == sidebar.ItemGroupHeader && it.GroupKey == b.GroupKey {
				k.selectedIndex = i
				return
			}
		}
		k.toasts.Failure("bookmarked project not visible")
		return
	}
	for i, it := range k.items {
		if it.Kind == sidebar.ItemConversation && it.SessionID == target {
			k.selectedIndex = i
			if ptyID, found := k.ptys.SessionForConversation(target); found {
				k.displayedSessionID = ptyID
			}
			return
		}
	}
	k.toasts.Failure("bookmarked conversation not visible")
}

func (k *Kernel) setBookmark(slot int) {
	item, ok := k.selectedItem()
	if !ok {
		return
	}
	var b bookmarks.Bookmark
	switch item.Kind {
	case sidebar.ItemConversation:
		b = bookmarks.Bookmark{Slot: slot, Label: item.SessionID, TargetKind: bookmarks.TargetConversation, SessionID: item.SessionID}
	case sidebar.ItemGroupHeader:
		b = bookmarks.Bookmark{Slot: slot, Label: item.GroupName, TargetKind: bookmarks.TargetProject, GroupKey: item.GroupKey}
	default:
		k.toasts.Failure("nothing bookmarkable selected")
		return
	}
	if err := k.bookmarksMgr.Set(b); err != nil {
		k.toasts.Failure("failed to set bookmark")
		return
	}
	k.toasts.Success("bookmark set")
}

func (k *Kernel) deleteBookmark(slot int) {
	removed, err := k.bookmarksMgr.Remove(slot)
	if err != nil || !removed {
		k.toasts.Failure("bookmark slot is already empty")
		return
	}
	k.toasts.Success("bookmark removed")
}
