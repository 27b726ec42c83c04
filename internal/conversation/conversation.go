// Package conversation turns loader.SessionEntry records into
// model.Conversation values and reconciles them against ephemeral sessions,
// per spec.md §4.3.
package conversation

import (
	"claudatui/internal/loader"
	"claudatui/internal/model"
)

// FromSessionEntry projects a loader.SessionEntry into a model.Conversation.
// Status starts Idle; the status-inference pass mutates it afterward.
// Archive flags are applied separately by the caller (kernel.reload reads
// them from the archive package's Manager), since the
// loader has no notion of archive state (spec.md §6: archive.json is
// core-owned, not part of the transcript store).
func FromSessionEntry(e loader.SessionEntry) *model.Conversation {
	return &model.Conversation{
		SessionID:            e.SessionID,
		Title:                e.FirstPrompt,
		Summary:              e.Summary,
		ModifiedAtMS:         e.ModifiedMS,
		ProjectPath:          e.ProjectPath,
		MessageCount:         e.MessageCount,
		GitBranch:            e.GitBranch,
		IsPlanImplementation: false,
		Status:               model.StatusIdle,
	}
}

// BuildConversations projects every non-temporary entry into a
// model.Conversation, skipping temporary ids (spec.md §4.2 edge cases).
func BuildConversations(entries []loader.SessionEntry) []*model.Conversation {
	out := make([]*model.Conversation, 0, len(entries))
	for _, e := range entries {
		if loader.IsTemporarySessionID(e.SessionID) {
			continue
		}
		out = append(out, FromSessionEntry(e))
	}
	return out
}

// ReconcileCandidate is a claim-eligible (ephemeral, conversation) pairing
// evaluated by Reconcile.
type ReconcileCandidate struct {
	EphemeralID  string
	Ephemeral    model.EphemeralSession
	Conversation *model.Conversation
}

// ClaimMap is the Manager's internal session_id -> optional(conversation
// session_id) map (spec.md §3 invariants). A missing or empty value means
// "ephemeral / not yet matched".
type ClaimMap map[string]string

// IsClaimed reports whether convSessionID is already claimed by some entry
// in claims, enforcing the "claimed by at most one Manager entry" invariant.
func (c ClaimMap) IsClaimed(convSessionID string) bool {
	for _, claimed := range c {
		if claimed == convSessionID {
			return true
		}
	}
	return false
}

// Reconcile runs Ephemeral Reconciliation (spec.md §4.3): for each
// ephemeral session, among conversations sharing its project path, strictly
// newer than its CreatedAtMS, and not already claimed, pick the oldest by
// timestamp ("most plausibly emitted first by that child") and claim it.
//
// Returns the set of (ephemeralID -> conversation.SessionID) matches made
// this pass; callers apply them to the claim map and drop the matched
// ephemeral entries.
func Reconcile(ephemerals map[string]model.EphemeralSession, claims ClaimMap, conversations []*model.Conversation) map[string]string {
	matches := make(map[string]string)

	for ephemeralID, ephemeral := range ephemerals {
		var best *model.Conversation
		for _, c := range conversations {
			if c.ProjectPath != ephemeral.ProjectPath {
				continue
			}
			if c.ModifiedAtMS <= ephemeral.CreatedAtMS {
				continue
			}
			if claims.IsClaimed(c.SessionID) || isAlreadyMatched(matches, c.SessionID) {
				continue
			}
			if best == nil || c.ModifiedAtMS < best.ModifiedAtMS {
				best = c
			}
		}
		if best != nil {
			matches[ephemeralID] = best.SessionID
		}
	}

	return matches
}

func isAlreadyMatched(matches map[string]string, convSessionID string) bool {
	for _, claimed := range matches {
		if claimed == convSessionID {
			return true
		}
	}
	return false
}
