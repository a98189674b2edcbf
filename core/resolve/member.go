package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/opensdd/osdd-shortcut/core/shortcut"
)

// Me is the sentinel that stands for the authenticated member.
const Me = "me"

type IdentitySource interface {
	FetchCurrentIdentity(ctx context.Context) (shortcut.Member, error)
}

type MemberSource interface {
	FetchMembers(ctx context.Context) ([]shortcut.Member, error)
}

// Member resolves input to a member ID. "me" is answered by identity alone.
// Any other input matches the first member whose display name or mention handle
// contains it, ignoring case. Unlike State there is no exact-match tier.
func Member(ctx context.Context, input string, identity IdentitySource, members MemberSource) (string, bool, error) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, Me) {
		m, err := identity.FetchCurrentIdentity(ctx)
		if err != nil {
			return "", false, fmt.Errorf("failed to resolve %q: %w", Me, err)
		}
		return m.ID, true, nil
	}

	needle := strings.ToLower(strings.TrimPrefix(input, "@"))
	if needle == "" {
		return "", false, nil
	}

	list, err := members.FetchMembers(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve member %q: %w", input, err)
	}
	for _, m := range list {
		if strings.Contains(strings.ToLower(m.DisplayName()), needle) ||
			strings.Contains(strings.ToLower(m.MentionHandle()), needle) {
			return m.ID, true, nil
		}
	}
	return "", false, nil
}

// MemberNotFoundError is returned by callers that treat a missing member as fatal.
type MemberNotFoundError struct {
	Input string
}

func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("member %q not found: use a display name, mention name or %q", e.Input, Me)
}
