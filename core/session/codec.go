package session

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// flexTime decodes the timestamp encodings left behind by the legacy
// implementations: RFC3339 strings, epoch milliseconds, epoch seconds, and
// numeric strings. Anything unparseable decodes to the zero time, which the
// expiry and validation policies treat as expired/invalid.
type flexTime struct {
	time.Time
}

func (t *flexTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			t.Time = time.Time{}
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339Nano, str); err == nil {
			t.Time = parsed
			return nil
		}
		if n, err := strconv.ParseInt(str, 10, 64); err == nil {
			t.Time = epochToTime(n)
			return nil
		}
		t.Time = time.Time{}
		return nil
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		t.Time = epochToTime(n)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		t.Time = epochToTime(int64(f))
		return nil
	}

	t.Time = time.Time{}
	return nil
}

// epochToTime interprets large values as milliseconds and small ones as
// seconds. The cutoff (1e11) corresponds to the year 5138 in seconds and
// 1973 in milliseconds, safely outside any real session timestamp range.
func epochToTime(n int64) time.Time {
	if n <= 0 {
		return time.Time{}
	}
	if n >= 1e11 {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}

// sessionDTO is the persisted wire shape. Canonical writes use camelCase
// keys matching the storage schema the retired clients already wrote.
type sessionDTO struct {
	ID           string          `json:"id"`
	LegacyID     string          `json:"sessionId,omitempty"`
	Token        string          `json:"token"`
	User         json.RawMessage `json:"user"`
	CreatedAt    flexTime        `json:"createdAt"`
	ExpiresAt    flexTime        `json:"expiresAt"`
	LastActivity flexTime        `json:"lastActivity"`
	Version      int             `json:"version,omitempty"`
	IsGuest      bool            `json:"isGuest,omitempty"`
}

// MarshalJSON writes the canonical v2 form with RFC3339 timestamps.
func (s Session) MarshalJSON() ([]byte, error) {
	out := struct {
		ID           string    `json:"id"`
		Token        string    `json:"token"`
		User         User      `json:"user"`
		CreatedAt    time.Time `json:"createdAt"`
		ExpiresAt    time.Time `json:"expiresAt"`
		LastActivity time.Time `json:"lastActivity"`
		Version      int       `json:"version"`
	}{
		ID:           s.ID.String(),
		Token:        s.Token,
		User:         s.User,
		CreatedAt:    s.CreatedAt,
		ExpiresAt:    s.ExpiresAt,
		LastActivity: s.LastActivity,
		Version:      SchemaVersion,
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the canonical form plus every legacy variant:
// "sessionId" key spelling, epoch-millisecond timestamps, and top-level
// guest flags. Decoding never fails on malformed fields; it produces a
// session that Validate or IsExpired will reject, so callers fall through
// to the guest-replacement path instead of crashing on old blobs.
func (s *Session) UnmarshalJSON(data []byte) error {
	var dto sessionDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}

	rawID := dto.ID
	if rawID == "" {
		rawID = dto.LegacyID
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		// Legacy timestamp+suffix IDs are not UUIDs; the session will be
		// rejected by Validate and replaced with a fresh guest.
		id = uuid.Nil
	}

	var user User
	if len(dto.User) > 0 && string(dto.User) != "null" {
		if err := json.Unmarshal(dto.User, &user); err != nil {
			return err
		}
	}
	if dto.IsGuest && !user.IsGuest {
		user.IsGuest = true
		if user.Role == "" {
			user.Role = RoleGuest
		}
	}

	*s = Session{
		ID:           id,
		Token:        dto.Token,
		User:         user,
		CreatedAt:    dto.CreatedAt.Time,
		ExpiresAt:    dto.ExpiresAt.Time,
		LastActivity: dto.LastActivity.Time,
		Version:      dto.Version,
	}
	return nil
}
