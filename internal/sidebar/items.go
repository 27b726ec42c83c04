// Package sidebar builds the sidebar item list as a pure function of the
// conversation model, per spec.md §4.4. No live handles (Manager sessions,
// file descriptors) may be captured by an Item; only identifiers, so the
// action layer resolves them (spec.md §9 "Pure projection for the
// sidebar").
package sidebar

import (
	"strings"

	"github.com/samber/lo"

	"claudatui/internal/model"
)

// ArchiveFilter selects which archived/unarchived conversations are shown.
type ArchiveFilter int

const (
	ArchiveFilterActive ArchiveFilter = iota
	ArchiveFilterArchived
	ArchiveFilterAll
)

// SectionKind distinguishes what a SectionControl item paginates.
type SectionKind int

const (
	SectionConversations SectionKind = iota
	SectionGroups
)

// SectionAction is the action a SectionControl item performs when chosen.
type SectionAction int

const (
	ActionShowMore SectionAction = iota
	ActionShowAll
	ActionShowFewer
	ActionCollapse
)

// ItemKind discriminates the Item union (spec.md §4.4).
type ItemKind int

const (
	ItemWorkspaceSectionHeader ItemKind = iota
	ItemAddWorkspace
	ItemProjectHeader
	ItemGroupHeader
	ItemConversation
	ItemEphemeralSession
	ItemSectionControl
	ItemOtherHeader
)

// Item is one row of the sidebar's flattened, ordered item list. Only the
// fields relevant to Kind are populated.
type Item struct {
	Kind ItemKind

	// ItemProjectHeader
	ProjectKey  string
	ProjectName string
	GroupCount  int

	// ItemGroupHeader / ItemConversation's owning group
	GroupKey  string
	GroupName string

	// ItemConversation
	ConversationIndex int
	SessionID         string

	// ItemEphemeralSession
	EphemeralID string

	// ItemSectionControl
	SectionKeyID string
	Kind2        SectionKind
	Action       SectionAction
	ActionN      int // ShowMore(n) / ShowAll(total) payload
}

// Selectable reports whether an item can receive keyboard focus (spec.md
// §4.4: "WorkspaceSectionHeader is non-selectable; navigation skips it").
func (it Item) Selectable() bool {
	return it.Kind != ItemWorkspaceSectionHeader
}

// PageSize is the default maximum number of conversations (or groups) shown
// under a parent before a SectionControl collapses the overflow.
const PageSize = 3

// Input bundles every signal the builder is a pure function of (spec.md
// §4.4's parameter list).
type Input struct {
	Groups            []*model.ConversationGroup
	RunningSessionIDs map[string]bool // conversation session_id -> PTY alive
	Ephemerals        map[string]model.EphemeralSession
	WorkspacePrefixes []string
	ArchiveFilter     ArchiveFilter
	HideInactive      bool
	FilterQuery       string
	Expansion         map[string]int  // key -> visible count override; absent = PageSize
	Collapsed         map[string]bool // key -> fully collapsed
}

// Build runs the filtering/pagination pipeline of spec.md §4.4 and returns
// the ordered item list. It is a pure function: it never mutates Input and
// captures no state beyond the values passed in.
func Build(in Input) []Item {
	items := []Item{{Kind: ItemWorkspaceSectionHeader}}

	query := strings.ToLower(strings.TrimSpace(in.FilterQuery))
	if query == "" {
		items = append(items, Item{Kind: ItemAddWorkspace})
	}

	for _, bucket := range bucketByWorkspace(in.Groups, in.WorkspacePrefixes) {
		bucketItems, ok := buildProjectBucket(in, bucket, query)
		if !ok {
			continue
		}
		items = append(items, bucketItems...)
	}

	return items
}

// otherProjectKey is the reserved expansion/collapse key for the "not under
// any workspace prefix" bucket (spec.md §4.4's OtherHeader). It is prefixed
// like GroupKey.String()'s variant tags so it can never collide with a real
// project key (one path segment, never containing ':').
const otherProjectKey = "other:"

// projectBucket is one workspace-prefix bucket of ConversationGroups, built
// before filtering so group_count can be computed from the groups that
// actually survive the per-group filtering pipeline.
type projectBucket struct {
	key     string
	name    string
	isOther bool
	groups  []*model.ConversationGroup
}

// bucketByWorkspace partitions groups under the workspace prefix each
// group's representative project path matches (longest prefix wins), or
// under the single "other" bucket when none match. Bucket order follows the
// order groups first appear in (in.Groups is already recency-sorted, so
// this also orders projects by their most recent group's recency).
func bucketByWorkspace(groups []*model.ConversationGroup, prefixes []string) []projectBucket {
	var order []string
	byKey := make(map[string]*projectBucket)

	for _, g := range groups {
		var path string
		if len(g.Conversations) > 0 {
			path = g.Conversations[0].ProjectPath
		}

		key, name, ok := matchWorkspacePrefix(path, prefixes)
		bucketKey := key
		if !ok {
			bucketKey = otherProjectKey
		}

		bucket, exists := byKey[bucketKey]
		if !exists {
			bucket = &projectBucket{key: key, name: name, isOther: !ok}
			byKey[bucketKey] = bucket
			order = append(order, bucketKey)
		}
		bucket.groups = append(bucket.groups, g)
	}

	out := make([]projectBucket, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out
}

// matchWorkspacePrefix finds the longest prefix in prefixes that path lies
// under, and returns the first path segment past that prefix as the project
// key/name. A path equal to a prefix (no segment beneath it) does not match.
func matchWorkspacePrefix(path string, prefixes []string) (key, name string, matched bool) {
	best := ""
	for _, prefix := range prefixes {
		p := strings.TrimRight(prefix, "/")
		if p == "" {
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			if len(p) > len(best) {
				best = p
			}
		}
	}
	if best == "" {
		return "", "", false
	}

	rest := strings.TrimPrefix(strings.TrimPrefix(path, best), "/")
	if rest == "" {
		return "", "", false
	}
	if idx := strings.Index(rest, "/"); idx >= 0 {
		rest = rest[:idx]
	}
	return rest, rest, true
}

// buildProjectBucket runs every group in bucket through buildGroup, then
// wraps the groups that survive with a ProjectHeader/OtherHeader and applies
// §4.4's SectionGroups pagination on top, mirroring buildGroup's own
// per-conversation pagination one level up.
func buildProjectBucket(in Input, bucket projectBucket, query string) ([]Item, bool) {
	var perGroup [][]Item
	for _, g := range bucket.groups {
		groupItems, ok := buildGroup(in, g, query)
		if !ok {
			continue
		}
		perGroup = append(perGroup, groupItems)
	}
	if len(perGroup) == 0 {
		return nil, false
	}

	bucketKey := "project:" + bucket.key
	if bucket.isOther {
		bucketKey = otherProjectKey
	}

	visible := visibleCount(in, bucketKey, len(perGroup))

	var items []Item
	if bucket.isOther {
		items = append(items, Item{Kind: ItemOtherHeader, GroupCount: len(perGroup)})
	} else {
		items = append(items, Item{
			Kind:        ItemProjectHeader,
			ProjectKey:  bucket.key,
			ProjectName: bucket.name,
			GroupCount:  len(perGroup),
		})
	}

	for i := 0; i < visible; i++ {
		items = append(items, perGroup[i]...)
	}

	if control, ok := sectionControl(in, bucketKey, SectionGroups, visible, len(perGroup)); ok {
		items = append(items, control)
	}

	return items, true
}

func buildGroup(in Input, group *model.ConversationGroup, query string) ([]Item, bool) {
	groupKey := group.Key.String()
	groupName := group.DisplayName()

	ephemeralIDs := ephemeralsInGroup(in.Ephemerals, group)
	convs := append([]*model.Conversation{}, group.Conversations...)

	// Step 2: archive filter.
	convs = lo.Filter(convs, func(c *model.Conversation, _ int) bool {
		switch in.ArchiveFilter {
		case ArchiveFilterActive:
			return !c.Archived
		case ArchiveFilterArchived:
			return c.Archived
		default:
			return true
		}
	})

	// Step 3: hide-inactive.
	if in.HideInactive {
		convs = lo.Filter(convs, func(c *model.Conversation, _ int) bool {
			running := in.RunningSessionIDs[c.SessionID]
			return running || c.Status != model.StatusIdle
		})
	}

	// Step 4: plan-implementation hiding.
	anyNonPlanRunning := lo.SomeBy(convs, func(c *model.Conversation) bool {
		return !c.IsPlanImplementation && in.RunningSessionIDs[c.SessionID]
	})
	convs = lo.Filter(convs, func(c *model.Conversation, _ int) bool {
		if !c.IsPlanImplementation {
			return true
		}
		running := in.RunningSessionIDs[c.SessionID]
		return running || !anyNonPlanRunning
	})

	// Step 5: text filter.
	groupMatched := query == "" || strings.Contains(strings.ToLower(groupName), query)
	if query != "" && !groupMatched {
		convs = lo.Filter(convs, func(c *model.Conversation, _ int) bool {
			return strings.Contains(strings.ToLower(c.Title), query) ||
				strings.Contains(strings.ToLower(c.Summary), query)
		})
		ephemeralIDs = nil // ephemerals carry no searchable text of their own
	}

	// Step 1: drop empty groups (re-checked after all filters).
	if len(convs) == 0 && len(ephemeralIDs) == 0 {
		return nil, false
	}

	var items []Item
	items = append(items, Item{Kind: ItemGroupHeader, GroupKey: groupKey, GroupName: groupName})

	for _, ephemeralID := range ephemeralIDs {
		items = append(items, Item{Kind: ItemEphemeralSession, GroupKey: groupKey, EphemeralID: ephemeralID})
	}

	visible := visibleCount(in, groupKey, len(convs))
	for i := 0; i < visible; i++ {
		items = append(items, Item{
			Kind:              ItemConversation,
			GroupKey:          groupKey,
			ConversationIndex: i,
			SessionID:         convs[i].SessionID,
		})
	}

	if control, ok := sectionControl(in, groupKey, SectionConversations, visible, len(convs)); ok {
		items = append(items, control)
	}

	return items, true
}

func ephemeralsInGroup(ephemerals map[string]model.EphemeralSession, group *model.ConversationGroup) []string {
	var ids []string
	for id, eph := range ephemerals {
		if len(group.Conversations) > 0 && eph.ProjectPath == group.Conversations[0].ProjectPath {
			ids = append(ids, id)
		}
	}
	return ids
}

func visibleCount(in Input, key string, total int) int {
	if in.Collapsed[key] {
		return 0
	}
	if n, ok := in.Expansion[key]; ok {
		if n > total {
			return total
		}
		return n
	}
	if total < PageSize {
		return total
	}
	return PageSize
}

// sectionControl decides which SectionControl action (if any) follows a
// paginated list, per spec.md §4.4's expansion-defaults rule.
func sectionControl(in Input, key string, kind SectionKind, visible, total int) (Item, bool) {
	if total <= visible && !in.Collapsed[key] {
		return Item{}, false
	}

	item := Item{Kind: ItemSectionControl, SectionKeyID: key, Kind2: kind}

	switch {
	case in.Collapsed[key]:
		item.Action = ActionShowMore
		item.ActionN = total
	case visible < PageSize:
		// reached only through an Expansion override below PageSize; the
		// default visible count is below PageSize only when total is
		// smaller, handled by the total<=visible branch
		item.Action = ActionShowMore
		item.ActionN = total - visible
	case visible == PageSize && total > PageSize:
		item.Action = ActionShowMore
		item.ActionN = total - visible
	case visible > PageSize && visible < total:
		item.Action = ActionShowAll
		item.ActionN = total
	case visible >= total && visible > PageSize:
		item.Action = ActionShowFewer
	default:
		item.Action = ActionCollapse
	}

	return item, true
}
