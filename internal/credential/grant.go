package credential

import (
	"context"
	"errors"
	"log/slog"
)

// SlotKey names one grantable credential slot in a user's access-grant
// document.
type SlotKey string

const (
	SlotAgoraSupport SlotKey = "AgoraFarming.support"
	SlotAgoraInfo    SlotKey = "AgoraFarming.info"
	SlotLHCPLSupport SlotKey = "LHCPL.support"
	SlotLHCPLInfo    SlotKey = "LHCPL.info"
	SlotHostinger    SlotKey = "hostinger"
)

// slotRegistry maps each grantable slot to the credential it draws from.
// Adding an organization means adding rows here (and seeding the credential);
// no other code enumerates slots.
var slotRegistry = []struct {
	Slot SlotKey
	Cred Key
}{
	{SlotAgoraSupport, Key{OrgAgoraFarming, "support"}},
	{SlotAgoraInfo, Key{OrgAgoraFarming, "info"}},
	{SlotLHCPLSupport, Key{OrgLHCPL, "support"}},
	{SlotLHCPLInfo, Key{OrgLHCPL, "info"}},
	{SlotHostinger, Key{OrgHostinger, "global"}},
}

// SlotKeys returns the fixed, ordered set of grantable slots.
func SlotKeys() []SlotKey {
	keys := make([]SlotKey, len(slotRegistry))
	for i, e := range slotRegistry {
		keys[i] = e.Slot
	}
	return keys
}

// CredentialKey returns the stored-credential key backing the given slot.
// The second return is false for unknown slots.
func CredentialKey(slot SlotKey) (Key, bool) {
	for _, e := range slotRegistry {
		if e.Slot == slot {
			return e.Cred, true
		}
	}
	return Key{}, false
}

// Slot is one leaf of an access-grant document.
type Slot struct {
	Enabled  bool   `json:"enabled"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccessGrant is a user's access-grant document: for each grantable slot,
// whether it is enabled and the credential values snapshotted into it.
type AccessGrant map[SlotKey]Slot

// Normalize returns a grant containing exactly the registered slots. Slots
// absent from g come back zero-valued; unregistered keys are dropped.
func (g AccessGrant) Normalize() AccessGrant {
	out := make(AccessGrant, len(slotRegistry))
	for _, e := range slotRegistry {
		out[e.Slot] = g[e.Slot]
	}
	return out
}

// Lookup resolves stored credentials during grant materialization.
type Lookup interface {
	GetByKey(ctx context.Context, key Key) (*Credential, error)
}

// Materialize copies current credential values into every enabled slot of
// the requested grant and returns the resulting document. The copy is a
// one-time snapshot: later credential edits do not propagate to grants
// already materialized.
//
// An enabled slot whose backing credential does not exist is left untouched
// rather than rejected. That silence is long-standing observed behavior the
// mobile client relies on; it is logged so operators can spot it.
func Materialize(ctx context.Context, requested AccessGrant, lookup Lookup) (AccessGrant, error) {
	grant := requested.Normalize()

	for _, e := range slotRegistry {
		slot := grant[e.Slot]
		if !slot.Enabled {
			continue
		}

		cred, err := lookup.GetByKey(ctx, e.Cred)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				slog.Debug("no credential for enabled grant slot",
					"slot", string(e.Slot),
					"organization", string(e.Cred.Organization),
					"type", e.Cred.Type,
				)
				continue
			}
			return nil, err
		}

		slot.Email = cred.Email
		slot.Password = cred.Password
		grant[e.Slot] = slot
	}

	return grant, nil
}

// View builds an access-grant shaped document from the full credential
// table, for the admin credentials screen. A slot is marked enabled when a
// credential record exists for it.
func View(creds []*Credential) AccessGrant {
	byKey := make(map[Key]*Credential, len(creds))
	for _, c := range creds {
		byKey[c.Key()] = c
	}

	view := make(AccessGrant, len(slotRegistry))
	for _, e := range slotRegistry {
		var slot Slot
		if c, ok := byKey[e.Cred]; ok {
			slot = Slot{Enabled: true, Email: c.Email, Password: c.Password}
		}
		view[e.Slot] = slot
	}
	return view
}
